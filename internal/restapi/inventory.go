package restapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tiendalabs/supermercado/internal/domain"
	"github.com/tiendalabs/supermercado/internal/storage"
	"github.com/tiendalabs/supermercado/internal/webserver"
)

// Stock is a pointer so that an explicit 0 passes required while an
// omitted field does not.
type inventoryPayload struct {
	ProductID string     `json:"product_id" validate:"required"`
	Stock     *int       `json:"stock" validate:"required,gte=0"`
	DateIn    *time.Time `json:"date_in"`
	DateOut   *time.Time `json:"date_out"`
}

func registerInventoryRoutes() {
	webserver.PubGET("/inventory", listInventories)
	webserver.PubGET("/inventory/:id", getInventory)
	webserver.AdminPOST("/inventory", createInventory)
	webserver.AdminPUT("/inventory/:id", updateInventory)
	webserver.AdminDELETE("/inventory/:id", deleteInventory)
}

func listInventories(c echo.Context) error {
	inventories := []domain.Inventory{}
	if err := GetStore(c).FindAll(c.Request().Context(), domain.CollectionInventories, &inventories); err != nil {
		zap.L().Error("failed to query inventories", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inventories", nil)
	}
	return ok(c, inventories)
}

func getInventory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory not found", nil)
	}

	var inv domain.Inventory
	if err := GetStore(c).FindByID(c.Request().Context(), domain.CollectionInventories, id, &inv); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory not found", nil)
	} else if err != nil {
		zap.L().Error("failed to query inventory", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inventory", nil)
	}
	return ok(c, inv)
}

func createInventory(c echo.Context) error {
	var payload inventoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse inventory", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	inv := domain.Inventory{
		ProductID: payload.ProductID,
		Stock:     *payload.Stock,
		DateIn:    payload.DateIn,
		DateOut:   payload.DateOut,
	}
	id, err := GetStore(c).Insert(c.Request().Context(), domain.CollectionInventories, &inv)
	if err != nil {
		zap.L().Error("failed to create inventory", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create inventory", nil)
	}

	inv.ID = mustObjectID(id)
	return created(c, inv)
}

func updateInventory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory not found", nil)
	}

	var payload inventoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse inventory", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	fields := bson.M{
		"product_id": payload.ProductID,
		"stock":      *payload.Stock,
		"date_in":    payload.DateIn,
		"date_out":   payload.DateOut,
	}
	if err := GetStore(c).UpdateByID(c.Request().Context(), domain.CollectionInventories, id, fields); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory not found", nil)
	} else if err != nil {
		zap.L().Error("failed to update inventory", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update inventory", nil)
	}

	return ok(c, domain.Inventory{
		ID:        mustObjectID(id),
		ProductID: payload.ProductID,
		Stock:     *payload.Stock,
		DateIn:    payload.DateIn,
		DateOut:   payload.DateOut,
	})
}

func deleteInventory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory not found", nil)
	}

	if err := GetStore(c).DeleteByID(c.Request().Context(), domain.CollectionInventories, id); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Inventory not found", nil)
	} else if err != nil {
		zap.L().Error("failed to delete inventory", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete inventory", nil)
	}
	return ok(c, map[string]interface{}{"message": "Inventory deleted"})
}
