package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducts_DelimiterDetection(t *testing.T) {
	t.Run("semicolon when present on first line", func(t *testing.T) {
		csv := "name;description;price;category;sizes;colors;images;featured;stock\n" +
			`Tee;Basic tee;25.50;Apparel;["S","M"];["Black"];[];true;10`

		rows, errs := ParseProducts(csv)
		require.Empty(t, errs)
		require.Len(t, rows, 1)
		assert.Equal(t, "Tee", rows[0].Name)
		assert.Equal(t, 25.50, rows[0].Price)
		assert.Equal(t, []string{"S", "M"}, rows[0].Sizes)
		assert.Equal(t, []string{"Black"}, rows[0].Colors)
		assert.True(t, rows[0].Featured)
		assert.Equal(t, 10, rows[0].Stock)
	})

	t.Run("comma otherwise", func(t *testing.T) {
		csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
			`Cap,Hat,20,Hats,["One Size"],["Default"],[],false,5`

		rows, errs := ParseProducts(csv)
		require.Empty(t, errs)
		require.Len(t, rows, 1)
		assert.Equal(t, "Cap", rows[0].Name)
		assert.Equal(t, []string{"One Size"}, rows[0].Sizes)
		assert.Equal(t, []string{"Default"}, rows[0].Colors)
		assert.Empty(t, rows[0].Images)
		assert.Equal(t, 5, rows[0].Stock)
	})
}

func TestParseProducts_EmptyContent(t *testing.T) {
	rows, errs := ParseProducts("")
	assert.Empty(t, rows)
	assert.Empty(t, errs)

	rows, errs = ParseProducts("  \n\t ")
	assert.Empty(t, rows)
	assert.Empty(t, errs)
}

func TestParseProducts_QuotedFields(t *testing.T) {
	// Exports from the old admin tool wrap JSON columns in quotes and
	// double-escape the inner ones; runs of four quotes collapse to one.
	csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
		`Tee,Basic,12,Apparel,"[""""S"""",""""M""""]","[""""Black""""]",[],false,4`

	rows, errs := ParseProducts(csv)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"S", "M"}, rows[0].Sizes)
	assert.Equal(t, []string{"Black"}, rows[0].Colors)
}

func TestParseProducts_NarrowSchema(t *testing.T) {
	csv := "name,description,price,category,size,color,image_url,discount_price,stock\n" +
		"Hoodie,Warm hoodie,60,Apparel,L,Navy,https://img.example/h.jpg,15,8"

	rows, errs := ParseProducts(csv)
	require.Empty(t, errs)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, []string{"L"}, row.Sizes)
	assert.Equal(t, []string{"Navy"}, row.Colors)
	assert.Equal(t, []string{"https://img.example/h.jpg"}, row.Images)
	assert.Equal(t, 15.0, row.Discount)
	assert.Equal(t, 8, row.Stock)
}

func TestParseProducts_NarrowSchemaIsPerRow(t *testing.T) {
	// Schema detection happens per row: a row missing one of the narrow
	// marker columns falls back to the wide defaults.
	csv := "name,description,price,category,size,color,image_url,discount_price,stock\n" +
		"Hoodie,Warm,60,Apparel,L,Navy,https://img.example/h.jpg,0,8\n" +
		"Scarf,Knit,20,Apparel,,,,,3"

	rows, errs := ParseProducts(csv)
	require.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"L"}, rows[0].Sizes)
	assert.Equal(t, []string{"One Size"}, rows[1].Sizes)
	assert.Equal(t, []string{"Default"}, rows[1].Colors)
	assert.Empty(t, rows[1].Images)
}

func TestParseProducts_WideDefaults(t *testing.T) {
	csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
		"Mug,Cup,10,Home,,,,false,3"

	rows, errs := ParseProducts(csv)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"One Size"}, rows[0].Sizes)
	assert.Equal(t, []string{"Default"}, rows[0].Colors)
	assert.Empty(t, rows[0].Images)
}

func TestParseProducts_ShortRowsSkippedSilently(t *testing.T) {
	csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
		"A,desc,10,Cat,[],[],[],false,1\n" +
		"broken,row,3\n" +
		"B,desc,20,Cat,[],[],[],false,2\n" +
		"C,desc,30,Cat,[],[],[],false,3"

	rows, errs := ParseProducts(csv)
	assert.Empty(t, errs)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestParseProducts_BadRowRecordedAndSkipped(t *testing.T) {
	csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
		"Good,desc,10,Cat,[],[],[],false,1\n" +
		"BadPrice,desc,not-a-number,Cat,[],[],[],false,1\n" +
		"BadArray,desc,10,Cat,[oops,[],[],false,1\n" +
		"AlsoGood,desc,20,Cat,[],[],[],false,2"

	rows, errs := ParseProducts(csv)
	require.Len(t, rows, 2)
	assert.Equal(t, "Good", rows[0].Name)
	assert.Equal(t, "AlsoGood", rows[1].Name)
	require.Len(t, errs, 2)
	assert.Equal(t, 3, errs[0].Line)
	assert.Contains(t, errs[0].Message, "price")
	assert.Equal(t, 4, errs[1].Line)
}

func TestParseProducts_StockDefaultsToZero(t *testing.T) {
	csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
		"Mug,Cup,10,Home,[],[],[],false,lots"

	rows, errs := ParseProducts(csv)
	require.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Stock)
}

func TestParseProducts_Restartable(t *testing.T) {
	csv := "name,description,price,category,sizes,colors,images,featured,stock\n" +
		`Tee,Basic,12,Apparel,["S"],["Black"],[],true,4` + "\n" +
		"broken,row,3\n" +
		"Mug,Cup,10,Home,,,,false,oops"

	first, firstErrs := ParseProducts(csv)
	second, secondErrs := ParseProducts(csv)
	assert.Equal(t, first, second)
	assert.Equal(t, firstErrs, secondErrs)
}
