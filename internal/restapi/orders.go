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

// Reference ids are opaque and never resolved against their target
// collections; referential integrity is advisory here.
type orderPayload struct {
	UserID      string   `json:"user_id" validate:"required"`
	InventoryID []string `json:"inventory_id" validate:"required,min=1,dive,required"`
	Total       float64  `json:"total" validate:"gte=0"`
}

type orderStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

func registerOrderRoutes() {
	webserver.AdminGET("/orders", listOrders)
	webserver.AuthGET("/orders/:id", getOrder)
	webserver.AuthPOST("/orders", createOrder)
	webserver.AdminPUT("/orders/:id/status", updateOrderStatus)
	webserver.AdminDELETE("/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	orders := []domain.Order{}
	if err := GetStore(c).FindAll(c.Request().Context(), domain.CollectionOrders, &orders); err != nil {
		zap.L().Error("failed to query orders", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}
	return ok(c, orders)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}

	var order domain.Order
	if err := GetStore(c).FindByID(c.Request().Context(), domain.CollectionOrders, id, &order); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		zap.L().Error("failed to query order", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", nil)
	}
	return ok(c, order)
}

// createOrder persists a new order in the pending state. The creator's
// identity comes from the credential; an empty user_id would never reach
// here because the payload requires one.
func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	order := domain.Order{
		UserID:      payload.UserID,
		InventoryID: payload.InventoryID,
		Total:       payload.Total,
		Status:      domain.OrderStatusPending,
	}
	id, err := GetStore(c).Insert(c.Request().Context(), domain.CollectionOrders, &order)
	if err != nil {
		zap.L().Error("failed to create order",
			zap.Error(err),
			zap.String("user_id", webserver.CurrentUserID(c)))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", nil)
	}

	order.ID = mustObjectID(id)
	return created(c, order)
}

// updateOrderStatus is the narrow single-field transition; everything
// else about an order is immutable after creation.
func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}

	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order status", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	if err := GetStore(c).UpdateByID(c.Request().Context(), domain.CollectionOrders, id, bson.M{"status": payload.Status}); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		zap.L().Error("failed to update order status", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order status", nil)
	}

	// one persistence call per request: echo the transition back instead
	// of re-reading the document
	return ok(c, map[string]interface{}{
		"order_id": id,
		"status":   payload.Status,
	})
}

func deleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}

	if err := GetStore(c).DeleteByID(c.Request().Context(), domain.CollectionOrders, id); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		zap.L().Error("failed to delete order", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", nil)
	}
	return ok(c, map[string]interface{}{"message": "Order deleted"})
}
