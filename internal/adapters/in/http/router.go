package http

import (
	"log/slog"

	"logistics/internal/core/application/access"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	Server        *Server
	Authenticator Authenticator
	Policy        *access.Policy
	Document      *openapi3.T
	Logger        *slog.Logger
	CORSOrigin    string
}

// NewRouter builds the echo instance with middleware, routes and API docs.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	validator, err := NewRequestValidator(cfg.Document)
	if err != nil {
		return nil, err
	}
	if err := RegisterSwagger(cfg.Document); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(cfg.Logger))
	if cfg.CORSOrigin != "" {
		e.Use(CORS(cfg.CORSOrigin))
	}

	e.GET("/health", cfg.Server.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, cfg.Server, cfg.Authenticator, validator, cfg.Policy)
	return e, nil
}

// RegisterHandlers mounts the /api routes. Every route except login runs
// authentication, then the permission check, then request validation, so a
// caller without the role gets 403 whatever the body looks like.
func RegisterHandlers(e *echo.Echo, s *Server, auth Authenticator, validator RequestValidator, policy *access.Policy) {
	allow := func(resource access.Resource, action access.Action) echo.MiddlewareFunc {
		return RequirePermission(policy, resource, action)
	}

	api := e.Group("/api")
	api.POST("/auth/login", s.Login, validator.Middleware)

	secured := api.Group("", auth.Middleware)
	secured.POST("/auth/logout", s.Logout, validator.Middleware)
	secured.GET("/auth/me", s.Me, validator.Middleware)

	secured.GET("/shipments", s.ListShipments, allow(access.Shipments, access.Read), validator.Middleware)
	secured.POST("/shipments", s.CreateShipment, allow(access.Shipments, access.Create), validator.Middleware)
	secured.GET("/shipments/:id", s.GetShipment, allow(access.Shipments, access.Read), validator.Middleware)
	secured.PUT("/shipments/:id", s.UpdateShipment, allow(access.Shipments, access.Update), validator.Middleware)
	secured.DELETE("/shipments/:id", s.DeleteShipment, allow(access.Shipments, access.Delete), validator.Middleware)
	secured.PUT("/shipments/:id/status", s.UpdateShipmentStatus, allow(access.ShipmentStatus, access.Update), validator.Middleware)
	secured.POST("/shipments/:id/confirm-delivery", s.ConfirmDelivery, allow(access.ShipmentConfirmation, access.Update), validator.Middleware)
	secured.GET("/shipments/:id/tracking", s.TrackShipment, allow(access.Shipments, access.Read), validator.Middleware)

	secured.GET("/fleet", s.ListVehicles, allow(access.Fleet, access.Read), validator.Middleware)
	secured.POST("/fleet", s.CreateVehicle, allow(access.Fleet, access.Create), validator.Middleware)
	secured.GET("/fleet/:id", s.GetVehicle, allow(access.Fleet, access.Read), validator.Middleware)
	secured.PUT("/fleet/:id", s.UpdateVehicle, allow(access.Fleet, access.Update), validator.Middleware)
	secured.DELETE("/fleet/:id", s.DeleteVehicle, allow(access.Fleet, access.Delete), validator.Middleware)

	secured.GET("/customers", s.ListCustomers, allow(access.Customers, access.Read), validator.Middleware)
	secured.POST("/customers", s.CreateCustomer, allow(access.Customers, access.Create), validator.Middleware)
	secured.GET("/customers/:id", s.GetCustomer, allow(access.Customers, access.Read), validator.Middleware)
	secured.PUT("/customers/:id", s.UpdateCustomer, allow(access.Customers, access.Update), validator.Middleware)
	secured.DELETE("/customers/:id", s.DeleteCustomer, allow(access.Customers, access.Delete), validator.Middleware)

	secured.GET("/locations", s.ListLocations, allow(access.Locations, access.Read), validator.Middleware)
	secured.POST("/locations", s.CreateLocation, allow(access.Locations, access.Create), validator.Middleware)
	secured.GET("/locations/:id", s.GetLocation, allow(access.Locations, access.Read), validator.Middleware)
	secured.PUT("/locations/:id", s.UpdateLocation, allow(access.Locations, access.Update), validator.Middleware)
	secured.DELETE("/locations/:id", s.DeleteLocation, allow(access.Locations, access.Delete), validator.Middleware)

	secured.GET("/users/drivers/available", s.ListAvailableDrivers, allow(access.Drivers, access.Read), validator.Middleware)
	secured.GET("/users", s.ListUsers, allow(access.Users, access.Read), validator.Middleware)
	secured.POST("/users", s.CreateUser, allow(access.Users, access.Create), validator.Middleware)
	secured.GET("/users/:id", s.GetUser, allow(access.Users, access.Read), validator.Middleware)
	secured.PUT("/users/:id", s.UpdateUser, allow(access.Users, access.Update), validator.Middleware)
	secured.DELETE("/users/:id", s.DeleteUser, allow(access.Users, access.Delete), validator.Middleware)

	secured.GET("/logs", s.ListActivityLogs, allow(access.Logs, access.Read), validator.Middleware)
	secured.GET("/dashboard/stats", s.DashboardStats, allow(access.Dashboard, access.Read), validator.Middleware)
}
