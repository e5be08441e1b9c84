package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasonsofindia/the-vault-gate-27/internal/services/shopify"
)

func newTestClient(t *testing.T, handler http.Handler) (*shopify.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := shopify.NewClient(shopify.Config{
		AccessToken: "test-token",
		APIVersion:  "2025-07",
		BaseURL:     server.URL,
	}, testLogger())
	return client, server
}

func TestPropagator_PushStock(t *testing.T) {
	var calls []string
	var setPayload map[string]interface{}

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2025-07/variants/777.json", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "variant")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"variant": map[string]interface{}{"id": 777, "inventory_item_id": 555},
		})
	})
	mux.HandleFunc("/admin/api/2025-07/locations.json", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "locations")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"locations": []map[string]interface{}{{"id": 42, "name": "Main"}, {"id": 43, "name": "Backup"}},
		})
	})
	mux.HandleFunc("/admin/api/2025-07/inventory_levels/set.json", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "set")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&setPayload))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"inventory_level": map[string]interface{}{"inventory_item_id": 555, "location_id": 42, "available": 9},
		})
	})

	client, _ := newTestClient(t, mux)

	t.Run("resolves item then first location then sets level", func(t *testing.T) {
		calls = nil
		p := NewPropagator(client, 0, testLogger())

		require.NoError(t, p.PushStock(context.Background(), "777", 9))
		assert.Equal(t, []string{"variant", "locations", "set"}, calls)
		assert.EqualValues(t, 42, setPayload["location_id"])
		assert.EqualValues(t, 555, setPayload["inventory_item_id"])
		assert.EqualValues(t, 9, setPayload["available"])
	})

	t.Run("configured location skips the locations call", func(t *testing.T) {
		calls = nil
		p := NewPropagator(client, 43, testLogger())

		require.NoError(t, p.PushStock(context.Background(), "777", 4))
		assert.Equal(t, []string{"variant", "set"}, calls)
		assert.EqualValues(t, 43, setPayload["location_id"])
	})
}

func TestPropagator_Errors(t *testing.T) {
	t.Run("non-numeric variant id", func(t *testing.T) {
		client, _ := newTestClient(t, http.NewServeMux())
		p := NewPropagator(client, 0, testLogger())
		err := p.PushStock(context.Background(), "not-a-number", 1)
		assert.Error(t, err)
	})

	t.Run("no locations", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/admin/api/2025-07/variants/777.json", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"variant": map[string]interface{}{"id": 777, "inventory_item_id": 555},
			})
		})
		mux.HandleFunc("/admin/api/2025-07/locations.json", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"locations": []interface{}{}})
		})

		client, _ := newTestClient(t, mux)
		p := NewPropagator(client, 0, testLogger())

		err := p.PushStock(context.Background(), "777", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no inventory location")
	})

	t.Run("remote failure surfaces status and body", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/admin/api/2025-07/variants/777.json", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "variant suspended", http.StatusUnprocessableEntity)
		})

		client, _ := newTestClient(t, mux)
		p := NewPropagator(client, 42, testLogger())

		err := p.PushStock(context.Background(), "777", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "422")
		assert.Contains(t, err.Error(), "variant suspended")
	})
}
