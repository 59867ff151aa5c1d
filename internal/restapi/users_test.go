package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendalabs/supermercado/internal/domain"
)

func TestUserCreateDefaultsRole(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	rec := doJSON(t, ws, http.MethodPost, "/users", admin, map[string]interface{}{
		"email":    "nuevo@tienda.io",
		"password": "contrasena9",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, domain.RoleUser, body["role"])
	assert.NotEmpty(t, body["user_id"])
}

func TestUserResponsesNeverCarryPassword(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	rec := doJSON(t, ws, http.MethodPost, "/users", admin, map[string]interface{}{
		"email":    "nuevo@tienda.io",
		"password": "contrasena9",
		"role":     domain.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "contrasena9")
	id := decodeBody(t, rec)["user_id"].(string)

	rec = doJSON(t, ws, http.MethodGet, "/users/"+id, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, ws, http.MethodGet, "/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserValidation(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	admin := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	create := func(body map[string]interface{}) int {
		rec := doJSON(t, ws, http.MethodPost, "/users", admin, body)
		return rec.Code
	}

	// malformed email
	assert.Equal(t, http.StatusUnprocessableEntity, create(map[string]interface{}{
		"email": "no-es-un-correo", "password": "contrasena9",
	}))
	// short password
	assert.Equal(t, http.StatusUnprocessableEntity, create(map[string]interface{}{
		"email": "nuevo@tienda.io", "password": "corta",
	}))
	// role outside the enum
	assert.Equal(t, http.StatusUnprocessableEntity, create(map[string]interface{}{
		"email": "nuevo@tienda.io", "password": "contrasena9", "role": "root",
	}))
}

func TestUserRouteGates(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	buyer := seedUser(t, store, "buyer@tienda.io", domain.RoleUser)
	userToken := tokenFor(t, cfg, buyer)
	adminToken := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	// listing and creation are admin-only
	rec := doJSON(t, ws, http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, ws, http.MethodPost, "/users", userToken, map[string]interface{}{
		"email": "otro@tienda.io", "password": "contrasena9",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// a plain user can read and update by id
	rec = doJSON(t, ws, http.MethodGet, "/users/"+buyer.ID.Hex(), userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, ws, http.MethodPut, "/users/"+buyer.ID.Hex(), userToken, map[string]interface{}{
		"email": "buyer@tienda.io", "password": "otraclave99",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// deletion stays admin-only
	rec = doJSON(t, ws, http.MethodDelete, "/users/"+buyer.ID.Hex(), userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, ws, http.MethodDelete, "/users/"+buyer.ID.Hex(), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserUpdateCannotSelfPromote(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	buyer := seedUser(t, store, "buyer@tienda.io", domain.RoleUser)
	userToken := tokenFor(t, cfg, buyer)
	adminToken := tokenFor(t, cfg, seedUser(t, store, "admin@tienda.io", domain.RoleAdmin))

	// a plain user cannot grant admin, not even to their own account
	rec := doJSON(t, ws, http.MethodPut, "/users/"+buyer.ID.Hex(), userToken, map[string]interface{}{
		"email":    "buyer@tienda.io",
		"password": "password123",
		"role":     domain.RoleAdmin,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, ws, http.MethodGet, "/users/"+buyer.ID.Hex(), userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RoleUser, decodeBody(t, rec)["role"])

	// an admin may promote
	rec = doJSON(t, ws, http.MethodPut, "/users/"+buyer.ID.Hex(), adminToken, map[string]interface{}{
		"email":    "buyer@tienda.io",
		"password": "password123",
		"role":     domain.RoleAdmin,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RoleAdmin, decodeBody(t, rec)["role"])
}

func TestUserUpdateRotatesPassword(t *testing.T) {
	ws, store, cfg := newTestServer(t)
	buyer := seedUser(t, store, "buyer@tienda.io", domain.RoleUser)
	userToken := tokenFor(t, cfg, buyer)

	rec := doJSON(t, ws, http.MethodPut, "/users/"+buyer.ID.Hex(), userToken, map[string]interface{}{
		"email":    "buyer@tienda.io",
		"password": "renovada2025",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// old credential no longer logs in, the new one does
	rec = doJSON(t, ws, http.MethodPost, "/login", "", map[string]interface{}{
		"email": "buyer@tienda.io", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, ws, http.MethodPost, "/login", "", map[string]interface{}{
		"email": "buyer@tienda.io", "password": "renovada2025",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
