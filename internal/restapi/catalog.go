package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tiendalabs/supermercado/internal/domain"
	"github.com/tiendalabs/supermercado/internal/storage"
	"github.com/tiendalabs/supermercado/internal/webserver"
)

// Availability is a pointer so an omitted field defaults to true while an
// explicit false survives.
type catalogPayload struct {
	ProductID    string `json:"product_id" validate:"required"`
	Name         string `json:"name" validate:"required,latname"`
	Availability *bool  `json:"availability"`
}

func (p *catalogPayload) available() bool {
	if p.Availability == nil {
		return true
	}
	return *p.Availability
}

func registerCatalogRoutes() {
	webserver.PubGET("/catalog", listCatalogs)
	webserver.PubGET("/catalog/:id", getCatalog)
	webserver.AdminPOST("/catalog", createCatalog)
	webserver.AdminPUT("/catalog/:id", updateCatalog)
	webserver.AdminDELETE("/catalog/:id", deleteCatalog)
}

func listCatalogs(c echo.Context) error {
	catalogs := []domain.Catalog{}
	if err := GetStore(c).FindAll(c.Request().Context(), domain.CollectionCatalogs, &catalogs); err != nil {
		zap.L().Error("failed to query catalogs", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query catalogs", nil)
	}
	return ok(c, catalogs)
}

func getCatalog(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Catalog not found", nil)
	}

	var cat domain.Catalog
	if err := GetStore(c).FindByID(c.Request().Context(), domain.CollectionCatalogs, id, &cat); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Catalog not found", nil)
	} else if err != nil {
		zap.L().Error("failed to query catalog", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query catalog", nil)
	}
	return ok(c, cat)
}

func createCatalog(c echo.Context) error {
	var payload catalogPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse catalog", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	cat := domain.Catalog{
		ProductID:    payload.ProductID,
		Name:         payload.Name,
		Availability: payload.available(),
	}
	id, err := GetStore(c).Insert(c.Request().Context(), domain.CollectionCatalogs, &cat)
	if err != nil {
		zap.L().Error("failed to create catalog", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create catalog", nil)
	}

	cat.ID = mustObjectID(id)
	return created(c, cat)
}

func updateCatalog(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Catalog not found", nil)
	}

	var payload catalogPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse catalog", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	fields := bson.M{
		"product_id":   payload.ProductID,
		"name":         payload.Name,
		"availability": payload.available(),
	}
	if err := GetStore(c).UpdateByID(c.Request().Context(), domain.CollectionCatalogs, id, fields); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Catalog not found", nil)
	} else if err != nil {
		zap.L().Error("failed to update catalog", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update catalog", nil)
	}

	return ok(c, domain.Catalog{
		ID:           mustObjectID(id),
		ProductID:    payload.ProductID,
		Name:         payload.Name,
		Availability: payload.available(),
	})
}

func deleteCatalog(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Catalog not found", nil)
	}

	if err := GetStore(c).DeleteByID(c.Request().Context(), domain.CollectionCatalogs, id); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Catalog not found", nil)
	} else if err != nil {
		zap.L().Error("failed to delete catalog", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete catalog", nil)
	}
	return ok(c, map[string]interface{}{"message": "Catalog entry deleted"})
}
