package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendalabs/supermercado/internal/domain"
)

func TestCatalogAvailabilityDefaultsTrue(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	rec := doJSON(t, ws, http.MethodPost, "/catalog", admin, map[string]interface{}{
		"product_id": "64bfe234c9e12ab3456def78",
		"name":       "Oferta de Verano",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["availability"])
}

func TestCatalogExplicitFalseSurvives(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	rec := doJSON(t, ws, http.MethodPost, "/catalog", admin, map[string]interface{}{
		"product_id":   "64bfe234c9e12ab3456def78",
		"name":         "Oferta Agotada",
		"availability": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["availability"])
	id := body["catalog_id"].(string)

	rec = doJSON(t, ws, http.MethodGet, "/catalog/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["availability"])
}

func TestCatalogUpdateWithoutAvailabilityResetsTrue(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	rec := doJSON(t, ws, http.MethodPost, "/catalog", admin, map[string]interface{}{
		"product_id":   "64bfe234c9e12ab3456def78",
		"name":         "Oferta Agotada",
		"availability": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["catalog_id"].(string)

	// replacement semantics: an omitted field falls back to its default
	rec = doJSON(t, ws, http.MethodPut, "/catalog/"+id, admin, map[string]interface{}{
		"product_id": "64bfe234c9e12ab3456def78",
		"name":       "Oferta Repuesta",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["availability"])
}

func TestCatalogPublicReadsAdminWrites(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	user := tokenFor(t, cfg, seedUser(t, store, "user@tienda.io", domain.RoleUser))

	rec := doJSON(t, ws, http.MethodGet, "/catalog", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	payload := map[string]interface{}{
		"product_id": "64bfe234c9e12ab3456def78",
		"name":       "Oferta de Verano",
	}
	rec = doJSON(t, ws, http.MethodPost, "/catalog", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, ws, http.MethodPost, "/catalog", user, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
