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

// Version is stamped at build time.
var Version = "1.0.0"

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func registerAuthRoutes() {
	webserver.PubGET("/", index)
	webserver.PubPOST("/login", login)
}

func index(c echo.Context) error {
	return ok(c, map[string]interface{}{
		"message": "Bienvenido a la API REST de la Tienda",
		"version": Version,
	})
}

// login verifies email+password and issues the bearer credential. The
// same 401 covers unknown emails and wrong passwords.
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return failValidation(c, err)
	}

	var user domain.User
	err := GetStore(c).FindOne(c.Request().Context(), domain.CollectionUsers, bson.M{"email": payload.Email}, &user)
	if errors.Is(err, storage.ErrNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	} else if err != nil {
		zap.L().Error("failed to query user for login", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to process login", nil)
	}

	if !common.CheckPassword(user.Password, payload.Password) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	token, err := webserver.IssueToken(GetConfig(c), &user)
	if err != nil {
		zap.L().Error("failed to sign access token", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue access token", nil)
	}

	return ok(c, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
