package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/storage"
	"github.com/tiendalabs/supermercado/internal/webserver"
)

// RegisterRoutes binds every entity's routes onto the initialized web server.
func RegisterRoutes() {
	registerAuthRoutes()
	registerUserRoutes()
	registerProductRoutes()
	registerCategoryRoutes()
	registerInventoryRoutes()
	registerCatalogRoutes()
	registerOrderRoutes()
}

// GetStore returns the request-scoped document store handle.
func GetStore(c echo.Context) storage.Store {
	return c.Get(webserver.StoreContextKey).(storage.Store)
}

// GetConfig returns the application configuration.
func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(webserver.ConfigContextKey).(*config.AppConfig)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, webserver.ErrorResponse{Code: code, Message: msg, Detail: detail})
}

// failValidation renders every violated field constraint as a 422.
func failValidation(c echo.Context, err error) error {
	return fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
		"Request body failed validation", webserver.TranslateValidationErrors(err))
}

// parseIDParam extracts a path id and checks the persistence-layer id
// shape. A malformed id behaves like an id with no matching document.
func parseIDParam(c echo.Context, name string) (string, error) {
	id := c.Param(name)
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", storage.ErrNotFound
	}
	return id, nil
}

func mustObjectID(id string) primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(id)
	return oid
}
