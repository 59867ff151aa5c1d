package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/storage"
)

// Context keys under which per-request dependencies are stashed.
const (
	StoreContextKey  = "store"
	ConfigContextKey = "appconfig"
)

// ErrorResponse is the wire shape of every non-2xx body.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

type WebServer struct {
	root  *echo.Echo
	cfg   *config.AppConfig
	store storage.Store
	jwtmw echo.MiddlewareFunc
}

var server *WebServer

// Init builds the package server instance. Route registration helpers
// target the most recently initialized instance.
func Init(cfg *config.AppConfig, store storage.Store) *WebServer {
	server = NewWebServer(cfg, store)
	return server
}

func NewWebServer(cfg *config.AppConfig, store storage.Store) *WebServer {
	s := &WebServer{cfg: cfg, store: store}
	s.initRouter()
	return s
}

func (s *WebServer) initRouter() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = s.cfg.System.Debug
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	}))
	e.Use(s.injectDeps)

	s.jwtmw = s.authMiddleware()
	s.root = e
}

// injectDeps makes the store and config reachable from handlers without
// package-level state, the same way the request-scoped DB handle works.
func (s *WebServer) injectDeps(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(StoreContextKey, s.store)
		c.Set(ConfigContextKey, s.cfg)
		return next(c)
	}
}

// errorHandler renders every error echo catches (including JWT failures
// and unknown routes) in the ErrorResponse shape. Internal causes are
// logged, never returned.
func (s *WebServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	} else {
		zap.L().Error("unhandled request error", zap.Error(err), zap.String("uri", c.Request().RequestURI))
	}
	if err := c.JSON(status, ErrorResponse{Code: statusCode(status), Message: msg}); err != nil {
		zap.L().Error("failed to write error response", zap.Error(err))
	}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// PubGET registers an unauthenticated route.
func PubGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// Auth* routes require a valid credential of any level.
func AuthGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, server.jwtmw)
}

func AuthPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, server.jwtmw)
}

func AuthPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h, server.jwtmw)
}

// Admin* routes additionally require the admin level.
func AdminGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, server.jwtmw, server.adminOnly)
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, server.jwtmw, server.adminOnly)
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h, server.jwtmw, server.adminOnly)
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h, server.jwtmw, server.adminOnly)
}

// ServeHTTP makes the server usable as an http.Handler (httptest included).
func (s *WebServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.root.ServeHTTP(w, r)
}

func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	err := s.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// JSONSerializer is echo's default serializer rebased on json-iterator.
type JSONSerializer struct {
	api jsoniter.API
}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{api: jsoniter.ConfigCompatibleWithStandardLibrary}
}

func (d *JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := d.api.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (d *JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	return d.api.NewDecoder(c.Request().Body).Decode(i)
}
