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

// One constraint set shared by create and update; the update target id
// arrives in the path, never in the body.
type productPayload struct {
	Name       string  `json:"name" validate:"required,min=2,max=100,latname"`
	Price      float64 `json:"price" validate:"gte=0,price2dp"`
	CategoryID string  `json:"category_id" validate:"required"`
}

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.AdminPOST("/products", createProduct)
	webserver.AdminPUT("/products/:id", updateProduct)
	webserver.AdminDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	products := []domain.Product{}
	if err := GetStore(c).FindAll(c.Request().Context(), domain.CollectionProducts, &products); err != nil {
		zap.L().Error("failed to query products", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var p domain.Product
	if err := GetStore(c).FindByID(c.Request().Context(), domain.CollectionProducts, id, &p); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		zap.L().Error("failed to query product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	p := domain.Product{
		Name:       payload.Name,
		Price:      payload.Price,
		CategoryID: payload.CategoryID,
	}
	id, err := GetStore(c).Insert(c.Request().Context(), domain.CollectionProducts, &p)
	if err != nil {
		zap.L().Error("failed to create product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}

	p.ID = mustObjectID(id)
	return created(c, p)
}

// updateProduct replaces the full field set; the adapter does not echo the
// updated document back, so the response is rebuilt from input plus id.
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	fields := bson.M{
		"name":        payload.Name,
		"price":       payload.Price,
		"category_id": payload.CategoryID,
	}
	if err := GetStore(c).UpdateByID(c.Request().Context(), domain.CollectionProducts, id, fields); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		zap.L().Error("failed to update product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}

	return ok(c, domain.Product{
		ID:         mustObjectID(id),
		Name:       payload.Name,
		Price:      payload.Price,
		CategoryID: payload.CategoryID,
	})
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	if err := GetStore(c).DeleteByID(c.Request().Context(), domain.CollectionProducts, id); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		zap.L().Error("failed to delete product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}
	return ok(c, map[string]interface{}{"message": "Product deleted"})
}
