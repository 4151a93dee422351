package http

import (
	"strings"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Requests.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CustomerContact struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type FleetRef struct {
	ID string `json:"id"`
}

type NewShipment struct {
	Customer          CustomerContact `json:"customer"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Weight            decimal.Decimal `json:"weight"`
	Status            string          `json:"status"`
	Fleet             *FleetRef       `json:"fleet"`
	EstimatedDelivery *string         `json:"estimatedDelivery"`
	Notes             string          `json:"notes"`
}

func (r NewShipment) params() (commands.CreateShipmentParams, error) {
	eta, err := parseTime("estimatedDelivery", r.EstimatedDelivery)
	if err != nil {
		return commands.CreateShipmentParams{}, err
	}
	p := commands.CreateShipmentParams{
		CustomerName:      deref(r.Customer.Name),
		CustomerPhone:     deref(r.Customer.Phone),
		CustomerAddress:   deref(r.Customer.Address),
		Origin:            r.Origin,
		Destination:       r.Destination,
		Weight:            r.Weight,
		EstimatedDelivery: eta,
		Notes:             r.Notes,
		Status:            r.Status,
	}
	if r.Fleet != nil {
		p.VehicleID = r.Fleet.ID
	}
	return p, nil
}

type ShipmentPatch struct {
	Customer          *CustomerContact `json:"customer"`
	Origin            *string          `json:"origin"`
	Destination       *string          `json:"destination"`
	Weight            *decimal.Decimal `json:"weight"`
	EstimatedDelivery *string          `json:"estimatedDelivery"`
	Notes             *string          `json:"notes"`
}

func (r ShipmentPatch) params() (commands.UpdateShipmentParams, error) {
	eta, err := parseTime("estimatedDelivery", r.EstimatedDelivery)
	if err != nil {
		return commands.UpdateShipmentParams{}, err
	}
	p := commands.UpdateShipmentParams{
		Origin:            r.Origin,
		Destination:       r.Destination,
		Weight:            r.Weight,
		EstimatedDelivery: eta,
		Notes:             r.Notes,
	}
	if r.Customer != nil {
		p.CustomerName = r.Customer.Name
		p.CustomerPhone = r.Customer.Phone
		p.CustomerAddress = r.Customer.Address
	}
	return p, nil
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ConfirmDeliveryRequest struct {
	Notes string `json:"notes"`
}

type NewVehicle struct {
	PlateNumber     string          `json:"plateNumber"`
	Type            string          `json:"type"`
	Capacity        decimal.Decimal `json:"capacity"`
	FuelType        string          `json:"fuelType"`
	Year            int             `json:"year"`
	LastMaintenance *string         `json:"lastMaintenance"`
	NextMaintenance *string         `json:"nextMaintenance"`
	Driver          string          `json:"driver"`
	DriverID        *string         `json:"driverId"`
	Status          string          `json:"status"`
}

func (r NewVehicle) params() (commands.CreateVehicleParams, error) {
	last, err := parseTime("lastMaintenance", r.LastMaintenance)
	if err != nil {
		return commands.CreateVehicleParams{}, err
	}
	next, err := parseTime("nextMaintenance", r.NextMaintenance)
	if err != nil {
		return commands.CreateVehicleParams{}, err
	}
	return commands.CreateVehicleParams{
		PlateNumber:     r.PlateNumber,
		Type:            r.Type,
		Capacity:        r.Capacity,
		FuelType:        r.FuelType,
		Year:            r.Year,
		LastMaintenance: last,
		NextMaintenance: next,
		DriverName:      r.Driver,
		DriverUserID:    deref(r.DriverID),
		Status:          r.Status,
	}, nil
}

// VehiclePatch leaves absent fields untouched. An empty driverId unlinks the
// driver account.
type VehiclePatch struct {
	PlateNumber     *string          `json:"plateNumber"`
	Type            *string          `json:"type"`
	Capacity        *decimal.Decimal `json:"capacity"`
	FuelType        *string          `json:"fuelType"`
	Year            *int             `json:"year"`
	LastMaintenance *string          `json:"lastMaintenance"`
	NextMaintenance *string          `json:"nextMaintenance"`
	Driver          *string          `json:"driver"`
	DriverID        *string          `json:"driverId"`
	Status          *string          `json:"status"`
}

func (r VehiclePatch) params() (commands.UpdateVehicleParams, error) {
	last, err := parseTime("lastMaintenance", r.LastMaintenance)
	if err != nil {
		return commands.UpdateVehicleParams{}, err
	}
	next, err := parseTime("nextMaintenance", r.NextMaintenance)
	if err != nil {
		return commands.UpdateVehicleParams{}, err
	}
	return commands.UpdateVehicleParams{
		PlateNumber:     r.PlateNumber,
		Type:            r.Type,
		Capacity:        r.Capacity,
		FuelType:        r.FuelType,
		Year:            r.Year,
		LastMaintenance: last,
		NextMaintenance: next,
		DriverName:      r.Driver,
		DriverUserID:    r.DriverID,
		Status:          r.Status,
	}, nil
}

type NewCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
}

type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Company *string `json:"company"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NewLocation struct {
	Name             string    `json:"name"`
	CityName         string    `json:"cityName"`
	Type             string    `json:"type"`
	Address          string    `json:"address"`
	Coordinates      *GeoPoint `json:"coordinates"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"currentOccupancy"`
	Manager          string    `json:"manager"`
	IsActive         *bool     `json:"isActive"`
}

func (r NewLocation) params() commands.CreateLocationParams {
	p := commands.CreateLocationParams{
		Name:             r.Name,
		City:             r.CityName,
		Type:             r.Type,
		Address:          r.Address,
		Capacity:         r.Capacity,
		CurrentOccupancy: r.CurrentOccupancy,
		Manager:          r.Manager,
		Active:           r.IsActive,
	}
	if r.Coordinates != nil {
		p.Latitude = r.Coordinates.Lat
		p.Longitude = r.Coordinates.Lng
	}
	return p
}

type LocationPatch struct {
	Name             *string   `json:"name"`
	CityName         *string   `json:"cityName"`
	Type             *string   `json:"type"`
	Address          *string   `json:"address"`
	Coordinates      *GeoPoint `json:"coordinates"`
	Capacity         *int      `json:"capacity"`
	CurrentOccupancy *int      `json:"currentOccupancy"`
	Manager          *string   `json:"manager"`
	IsActive         *bool     `json:"isActive"`
}

func (r LocationPatch) params() commands.UpdateLocationParams {
	p := commands.UpdateLocationParams{
		Name:             r.Name,
		City:             r.CityName,
		Type:             r.Type,
		Address:          r.Address,
		Capacity:         r.Capacity,
		CurrentOccupancy: r.CurrentOccupancy,
		Manager:          r.Manager,
		Active:           r.IsActive,
	}
	if r.Coordinates != nil {
		p.Latitude = &r.Coordinates.Lat
		p.Longitude = &r.Coordinates.Lng
	}
	return p
}

type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// Responses.

type Message struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type ShipmentFleet struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Driver      string `json:"driver"`
}

type ShipmentCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Confirmation struct {
	ConfirmedAt time.Time `json:"confirmedAt"`
	ConfirmedBy string    `json:"confirmedBy"`
	Notes       string    `json:"notes"`
}

type Shipment struct {
	ID                string           `json:"id"`
	Customer          ShipmentCustomer `json:"customer"`
	Origin            string           `json:"origin"`
	Destination       string           `json:"destination"`
	Weight            float64          `json:"weight"`
	Status            string           `json:"status"`
	Fleet             *ShipmentFleet   `json:"fleet"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery"`
	ActualDelivery    *time.Time       `json:"actualDelivery"`
	Notes             string           `json:"notes"`
	Confirmation      *Confirmation    `json:"confirmation,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func toShipment(v queries.ShipmentView) Shipment {
	s := Shipment{
		ID: v.ID,
		Customer: ShipmentCustomer{
			Name:    v.CustomerName,
			Phone:   v.CustomerPhone,
			Address: v.CustomerAddress,
		},
		Origin:            v.Origin,
		Destination:       v.Destination,
		Weight:            v.Weight.InexactFloat64(),
		Status:            v.Status,
		EstimatedDelivery: v.EstimatedDelivery,
		ActualDelivery:    v.ActualDelivery,
		Notes:             v.Notes,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
	if v.VehicleID != nil {
		s.Fleet = &ShipmentFleet{ID: *v.VehicleID, PlateNumber: v.PlateNumber, Driver: v.Driver}
	}
	if v.Confirmation != nil {
		s.Confirmation = &Confirmation{
			ConfirmedAt: v.Confirmation.ConfirmedAt,
			ConfirmedBy: v.Confirmation.ConfirmedBy,
			Notes:       v.Confirmation.Notes,
		}
	}
	return s
}

type Coordinates struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Known bool    `json:"known"`
}

type Tracking struct {
	Shipment      Shipment    `json:"shipment"`
	Origin        Coordinates `json:"origin"`
	Destination   Coordinates `json:"destination"`
	VehicleStatus *string     `json:"vehicleStatus"`
}

func toTracking(v queries.TrackingView) Tracking {
	return Tracking{
		Shipment:      toShipment(v.Shipment),
		Origin:        Coordinates(v.Origin),
		Destination:   Coordinates(v.Destination),
		VehicleStatus: v.VehicleStatus,
	}
}

type Vehicle struct {
	ID              string     `json:"id"`
	PlateNumber     string     `json:"plateNumber"`
	Type            string     `json:"type"`
	Capacity        float64    `json:"capacity"`
	FuelType        string     `json:"fuelType"`
	Year            int        `json:"year"`
	LastMaintenance *time.Time `json:"lastMaintenance"`
	NextMaintenance *time.Time `json:"nextMaintenance"`
	Driver          string     `json:"driver"`
	DriverID        *string    `json:"driverId"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toVehicle(v queries.VehicleView) Vehicle {
	return Vehicle{
		ID:              v.ID,
		PlateNumber:     v.PlateNumber,
		Type:            v.Type,
		Capacity:        v.Capacity.InexactFloat64(),
		FuelType:        v.FuelType,
		Year:            v.Year,
		LastMaintenance: v.LastMaintenance,
		NextMaintenance: v.NextMaintenance,
		Driver:          v.Driver,
		DriverID:        v.DriverUserID,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCustomer(v queries.CustomerView) Customer {
	return Customer(v)
}

type Location struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CityName         string    `json:"cityName"`
	Type             string    `json:"type"`
	Address          string    `json:"address"`
	Coordinates      GeoPoint  `json:"coordinates"`
	Capacity         int       `json:"capacity"`
	CurrentOccupancy int       `json:"currentOccupancy"`
	Manager          string    `json:"manager"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toLocation(v queries.LocationView) Location {
	return Location{
		ID:               v.ID,
		Name:             v.Name,
		CityName:         v.CityName,
		Type:             v.Type,
		Address:          v.Address,
		Coordinates:      GeoPoint{Lat: v.Lat, Lng: v.Lng},
		Capacity:         v.Capacity,
		CurrentOccupancy: v.CurrentOccupancy,
		Manager:          v.Manager,
		IsActive:         v.IsActive,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUser(v queries.UserView) User {
	return User(v)
}

type AssignedVehicle struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

type Driver struct {
	User
	AssignedVehicle *AssignedVehicle `json:"assignedVehicle"`
}

func toDriver(v queries.DriverView) Driver {
	d := Driver{User: toUser(v.UserView)}
	if v.AssignedVehicle != nil {
		av := AssignedVehicle(*v.AssignedVehicle)
		d.AssignedVehicle = &av
	}
	return d
}

type ActivityUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type ActivityLog struct {
	ID        string        `json:"id"`
	Action    string        `json:"action"`
	Details   string        `json:"details"`
	IPAddress string        `json:"ipAddress"`
	Timestamp time.Time     `json:"timestamp"`
	User      *ActivityUser `json:"user"`
}

func toActivityLog(v queries.ActivityView) ActivityLog {
	a := ActivityLog{
		ID:        v.ID,
		Action:    v.Action,
		Details:   v.Details,
		IPAddress: v.IPAddress,
		Timestamp: v.Timestamp,
	}
	if v.User != nil {
		u := ActivityUser(*v.User)
		a.User = &u
	}
	return a
}

type DashboardStats struct {
	Shipments        map[string]int64 `json:"shipments"`
	Fleet            map[string]int64 `json:"fleet"`
	TotalCustomers   int64            `json:"totalCustomers"`
	ActiveLocations  int64            `json:"activeLocations"`
	CompletionRate   float64          `json:"completionRate"`
	FleetUtilization float64          `json:"fleetUtilization"`
}

func toDashboardStats(v queries.DashboardStats) DashboardStats {
	return DashboardStats{
		Shipments: map[string]int64{
			"total":     v.TotalShipments,
			"pending":   v.PendingShipments,
			"inTransit": v.InTransitShipments,
			"delivered": v.DeliveredShipments,
			"cancelled": v.CancelledShipments,
		},
		Fleet: map[string]int64{
			"total":       v.TotalVehicles,
			"available":   v.AvailableVehicles,
			"onRoute":     v.OnRouteVehicles,
			"maintenance": v.MaintenanceVehicles,
			"inactive":    v.InactiveVehicles,
		},
		TotalCustomers:   v.TotalCustomers,
		ActiveLocations:  v.ActiveLocations,
		CompletionRate:   v.CompletionRate,
		FleetUtilization: v.FleetUtilization,
	}
}

func mapSlice[V, R any](in []V, fn func(V) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

// parseTime accepts RFC 3339 timestamps and plain dates. Nil and blank values
// yield nil.
func parseTime(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*s)); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errs.NewValueIsInvalidError(field)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
