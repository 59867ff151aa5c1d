package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/domain"
)

// TokenClaims is the self-describing payload of the bearer credential.
type TokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Level  string `json:"level"`
	jwt.RegisteredClaims
}

// IssueToken signs an access token for the given user with the configured
// secret and lifetime.
func IssueToken(cfg *config.AppConfig, user *domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Level:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.Web.JwtExpire) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Web.Secret))
}

// authMiddleware verifies the bearer credential on every gated route.
// Missing, malformed and expired tokens all surface as 401.
func (s *WebServer) authMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.cfg.Web.Secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(TokenClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing, invalid or expired credentials")
		},
	})
}

// adminOnly runs after authMiddleware and rejects valid non-admin
// credentials. The 403 is deliberately distinct from the 401 above.
func (s *WebServer) adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentLevel(c) != domain.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	}
}

// CurrentClaims returns the verified token claims, or nil outside a
// gated route.
func CurrentClaims(c echo.Context) *TokenClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUserID returns the authenticated user's id, or "".
func CurrentUserID(c echo.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// CurrentLevel returns the authenticated user's authorization level, or "".
func CurrentLevel(c echo.Context) string {
	if claims := CurrentClaims(c); claims != nil {
		return claims.Level
	}
	return ""
}
