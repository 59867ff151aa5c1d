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
	"github.com/tiendalabs/supermercado/pkg/common"
)

type userPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func registerUserRoutes() {
	webserver.AdminGET("/users", listUsers)
	webserver.AuthGET("/users/:id", getUser)
	webserver.AdminPOST("/users", createUser)
	webserver.AuthPUT("/users/:id", updateUser)
	webserver.AdminDELETE("/users/:id", deleteUser)
}

func listUsers(c echo.Context) error {
	users := []domain.User{}
	if err := GetStore(c).FindAll(c.Request().Context(), domain.CollectionUsers, &users); err != nil {
		zap.L().Error("failed to query users", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query users", nil)
	}
	return ok(c, users)
}

func getUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	var user domain.User
	if err := GetStore(c).FindByID(c.Request().Context(), domain.CollectionUsers, id, &user); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	} else if err != nil {
		zap.L().Error("failed to query user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query user", nil)
	}
	return ok(c, user)
}

func createUser(c echo.Context) error {
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}
	if payload.Role == "" {
		payload.Role = domain.RoleUser
	}

	hash, err := common.HashPassword(payload.Password)
	if err != nil {
		zap.L().Error("failed to hash password", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to create user", nil)
	}

	user := domain.User{
		Email:    payload.Email,
		Password: hash,
		Role:     payload.Role,
	}
	id, err := GetStore(c).Insert(c.Request().Context(), domain.CollectionUsers, &user)
	if err != nil {
		zap.L().Error("failed to create user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create user", nil)
	}

	user.ID = mustObjectID(id)
	return created(c, user)
}

// updateUser replaces the full field set, re-hashing the password.
func updateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}
	if payload.Role == "" {
		payload.Role = domain.RoleUser
	}
	// the route is open to any credential, so granting admin stays gated
	if payload.Role == domain.RoleAdmin && webserver.CurrentLevel(c) != domain.RoleAdmin {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Granting the admin role requires admin privileges", nil)
	}

	hash, err := common.HashPassword(payload.Password)
	if err != nil {
		zap.L().Error("failed to hash password", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to update user", nil)
	}

	fields := bson.M{
		"email":    payload.Email,
		"password": hash,
		"role":     payload.Role,
	}
	if err := GetStore(c).UpdateByID(c.Request().Context(), domain.CollectionUsers, id, fields); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	} else if err != nil {
		zap.L().Error("failed to update user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user", nil)
	}

	return ok(c, domain.User{
		ID:    mustObjectID(id),
		Email: payload.Email,
		Role:  payload.Role,
	})
}

func deleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}

	if err := GetStore(c).DeleteByID(c.Request().Context(), domain.CollectionUsers, id); errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	} else if err != nil {
		zap.L().Error("failed to delete user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user", nil)
	}
	return ok(c, map[string]interface{}{"message": "User deleted"})
}
