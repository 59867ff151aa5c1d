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

type categoryPayload struct {
	Name string `json:"name" validate:"required,latalpha"`
}

func registerCategoryRoutes() {
	webserver.PubGET("/categories", listCategories)
	webserver.PubGET("/categories/:id", getCategory)
	webserver.AdminPOST("/categories", createCategory)
	webserver.AdminPUT("/categories/:id", updateCategory)
	webserver.AdminDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	categories := []domain.Category{}
	if err := GetStore(c).FindAll(c.Request().Context(), domain.CollectionCategories, &categories); err != nil {
		zap.L().Error("failed to query categories", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", nil)
	}
	return ok(c, categories)
}

func getCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var cat domain.Category
	if err := GetStore(c).FindByID(c.Request().Context(), domain.CollectionCategories, id, &cat); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		zap.L().Error("failed to query category", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query category", nil)
	}
	return ok(c, cat)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	cat := domain.Category{Name: payload.Name}
	id, err := GetStore(c).Insert(c.Request().Context(), domain.CollectionCategories, &cat)
	if err != nil {
		zap.L().Error("failed to create category", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", nil)
	}

	cat.ID = mustObjectID(id)
	return created(c, cat)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	fields := bson.M{"name": payload.Name}
	if err := GetStore(c).UpdateByID(c.Request().Context(), domain.CollectionCategories, id, fields); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		zap.L().Error("failed to update category", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", nil)
	}

	return ok(c, domain.Category{ID: mustObjectID(id), Name: payload.Name})
}

func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	if err := GetStore(c).DeleteByID(c.Request().Context(), domain.CollectionCategories, id); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	} else if err != nil {
		zap.L().Error("failed to delete category", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", nil)
	}
	return ok(c, map[string]interface{}{"message": "Category deleted"})
}
