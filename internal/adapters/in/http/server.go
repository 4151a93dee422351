package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Login           commands.LoginCommandHandler
	Logout          commands.LogoutCommandHandler
	CreateShipment  commands.CreateShipmentCommandHandler
	UpdateShipment  commands.UpdateShipmentCommandHandler
	UpdateStatus    commands.UpdateShipmentStatusCommandHandler
	ConfirmDelivery commands.ConfirmDeliveryCommandHandler
	DeleteShipment  commands.DeleteShipmentCommandHandler
	CreateVehicle   commands.CreateVehicleCommandHandler
	UpdateVehicle   commands.UpdateVehicleCommandHandler
	DeleteVehicle   commands.DeleteVehicleCommandHandler
	Customers       commands.CustomerCommandHandler
	Locations       commands.LocationCommandHandler
	Users           commands.UserCommandHandler

	Shipments queries.ShipmentQueryHandler
	Vehicles  queries.VehicleQueryHandler
	Directory queries.DirectoryQueryHandler
	Activity  queries.ActivityLogQueryHandler
	Dashboard queries.DashboardStatsQueryHandler
}

// Server implements the REST endpoints. It translates requests into commands
// and queries and renders their results; authorization happens in middleware
// before a handler runs.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Logistics back office API is running",
		"timestamp": time.Now().UTC(),
	})
}

// Auth

// Login handles POST /api/auth/login.
func (s *Server) Login(c echo.Context) error {
	var body LoginRequest
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewLoginCommand(body.Username, body.Password, c.RealIP())
	if err != nil {
		return err
	}
	result, err := s.h.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	u, err := s.userView(c, result.User.ID().String())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.Claims.ExpiresAt,
		User:      u,
	})
}

// Logout handles POST /api/auth/logout.
func (s *Server) Logout(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewLogoutCommand(actor, claims.TokenID, claims.ExpiresAt)
	if err != nil {
		return err
	}
	if err := s.h.Logout.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "Logged out successfully"})
}

// Me handles GET /api/auth/me.
func (s *Server) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	u, err := s.userView(c, actor.UserID.String())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) userView(c echo.Context, id string) (User, error) {
	query, err := queries.NewGetUserQuery(id)
	if err != nil {
		return User{}, err
	}
	v, err := s.h.Directory.GetUser(c.Request().Context(), query)
	if err != nil {
		return User{}, err
	}
	return toUser(v), nil
}

// Shipments

// ListShipments handles GET /api/shipments.
func (s *Server) ListShipments(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var status string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &status); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	query, err := queries.NewListShipmentsQuery(actor, status)
	if err != nil {
		return err
	}
	views, err := s.h.Shipments.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toShipment))
}

// GetShipment handles GET /api/shipments/{id}.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.renderShipment(c, http.StatusOK, id)
}

// CreateShipment handles POST /api/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewShipment
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	params, err := body.params()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(actor, params)
	if err != nil {
		return err
	}
	id, err := s.h.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.renderShipment(c, http.StatusCreated, id.String())
}

// UpdateShipment handles PUT /api/shipments/{id}.
func (s *Server) UpdateShipment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body ShipmentPatch
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	params, err := body.params()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentCommand(actor, id, params)
	if err != nil {
		return err
	}
	if err := s.h.UpdateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderShipment(c, http.StatusOK, id)
}

// UpdateShipmentStatus handles PUT /api/shipments/{id}/status. The body is
// the bare status as text/plain, or {"status": "..."} as JSON.
func (s *Server) UpdateShipmentStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	status, err := readStatus(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(actor, id, status)
	if err != nil {
		return err
	}
	if err := s.h.UpdateStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderShipment(c, http.StatusOK, id)
}

func readStatus(c echo.Context) (string, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var body StatusRequest
		if err := c.Bind(&body); err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause("status", err)
		}
		return body.Status, nil
	}

	raw, err := io.ReadAll(io.LimitReader(req.Body, 256))
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`), nil
}

// ConfirmDelivery handles POST /api/shipments/{id}/confirm-delivery.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body ConfirmDeliveryRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&body); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("body", err)
		}
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actor, id, body.Notes)
	if err != nil {
		return err
	}
	if err := s.h.ConfirmDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderShipment(c, http.StatusOK, id)
}

// DeleteShipment handles DELETE /api/shipments/{id}.
func (s *Server) DeleteShipment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteShipmentCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteShipment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "Shipment deleted successfully"})
}

// TrackShipment handles GET /api/shipments/{id}/tracking.
func (s *Server) TrackShipment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewTrackShipmentQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.Shipments.Track(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTracking(view))
}

func (s *Server) renderShipment(c echo.Context, code int, id string) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetShipmentQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.Shipments.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, toShipment(view))
}

// Fleet

// ListVehicles handles GET /api/fleet.
func (s *Server) ListVehicles(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	views, err := s.h.Vehicles.List(c.Request().Context(), queries.NewListVehiclesQuery(actor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toVehicle))
}

// GetVehicle handles GET /api/fleet/{id}.
func (s *Server) GetVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.renderVehicle(c, http.StatusOK, id)
}

// CreateVehicle handles POST /api/fleet.
func (s *Server) CreateVehicle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewVehicle
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	params, err := body.params()
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateVehicleCommand(actor, params)
	if err != nil {
		return err
	}
	id, err := s.h.CreateVehicle.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.renderVehicle(c, http.StatusCreated, id.String())
}

// UpdateVehicle handles PUT /api/fleet/{id}.
func (s *Server) UpdateVehicle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body VehiclePatch
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	params, err := body.params()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateVehicleCommand(actor, id, params)
	if err != nil {
		return err
	}
	if err := s.h.UpdateVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderVehicle(c, http.StatusOK, id)
}

// DeleteVehicle handles DELETE /api/fleet/{id}.
func (s *Server) DeleteVehicle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteVehicleCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.h.DeleteVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "Vehicle deleted successfully"})
}

func (s *Server) renderVehicle(c echo.Context, code int, id string) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetVehicleQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.Vehicles.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, toVehicle(view))
}

// Customers

func (s *Server) ListCustomers(c echo.Context) error {
	views, err := s.h.Directory.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toCustomer))
}

func (s *Server) GetCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.renderCustomer(c, http.StatusOK, id)
}

func (s *Server) CreateCustomer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewCustomer
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd := commands.NewCreateCustomerCommand(actor, customer.Profile(body))
	id, err := s.h.Customers.Create(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.renderCustomer(c, http.StatusCreated, id.String())
}

func (s *Server) UpdateCustomer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body CustomerPatch
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewUpdateCustomerCommand(actor, id, commands.UpdateCustomerParams(body))
	if err != nil {
		return err
	}
	if err := s.h.Customers.Update(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderCustomer(c, http.StatusOK, id)
}

func (s *Server) DeleteCustomer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteCustomerCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.h.Customers.Delete(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "Customer deleted successfully"})
}

func (s *Server) renderCustomer(c echo.Context, code int, id string) error {
	query, err := queries.NewGetCustomerQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.Directory.GetCustomer(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, toCustomer(view))
}

// Locations

func (s *Server) ListLocations(c echo.Context) error {
	views, err := s.h.Directory.ListLocations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toLocation))
}

func (s *Server) GetLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.renderLocation(c, http.StatusOK, id)
}

func (s *Server) CreateLocation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewLocation
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewCreateLocationCommand(actor, body.params())
	if err != nil {
		return err
	}
	id, err := s.h.Locations.Create(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.renderLocation(c, http.StatusCreated, id.String())
}

func (s *Server) UpdateLocation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body LocationPatch
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewUpdateLocationCommand(actor, id, body.params())
	if err != nil {
		return err
	}
	if err := s.h.Locations.Update(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderLocation(c, http.StatusOK, id)
}

func (s *Server) DeleteLocation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteLocationCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.h.Locations.Delete(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "Location deleted successfully"})
}

func (s *Server) renderLocation(c echo.Context, code int, id string) error {
	query, err := queries.NewGetLocationQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.Directory.GetLocation(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, toLocation(view))
}

// Users

func (s *Server) ListUsers(c echo.Context) error {
	views, err := s.h.Directory.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toUser))
}

// ListAvailableDrivers handles GET /api/users/drivers/available.
func (s *Server) ListAvailableDrivers(c echo.Context) error {
	views, err := s.h.Directory.ListAvailableDrivers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toDriver))
}

func (s *Server) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := s.userView(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) CreateUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body NewUser
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewCreateUserCommand(actor, commands.CreateUserParams(body))
	if err != nil {
		return err
	}
	id, err := s.h.Users.Create(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	u, err := s.userView(c, id.String())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) UpdateUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body UserPatch
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewUpdateUserCommand(actor, id, commands.UpdateUserParams{
		Username: body.Username,
		Email:    body.Email,
		FullName: body.FullName,
		Phone:    body.Phone,
		Password: body.Password,
		Role:     body.Role,
		Active:   body.IsActive,
	})
	if err != nil {
		return err
	}
	if err := s.h.Users.Update(c.Request().Context(), cmd); err != nil {
		return err
	}
	u, err := s.userView(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) DeleteUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteUserCommand(actor, id)
	if err != nil {
		return err
	}
	if err := s.h.Users.Delete(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Message{Message: "User deleted successfully"})
}

// Reporting

// ListActivityLogs handles GET /api/logs.
func (s *Server) ListActivityLogs(c echo.Context) error {
	views, err := s.h.Activity.Handle(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(views, toActivityLog))
}

// DashboardStats handles GET /api/dashboard/stats.
func (s *Server) DashboardStats(c echo.Context) error {
	stats, err := s.h.Dashboard.Handle(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardStats(stats))
}

func pathID(c echo.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}
