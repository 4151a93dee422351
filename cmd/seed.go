package cmd

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// SeedSummary counts what Seed created. Skipped is set when the database
// already held customers and nothing was written.
type SeedSummary struct {
	Users     int
	Customers int
	Locations int
	Vehicles  int
	Shipments int
	Skipped   bool
}

type seedVehicle struct {
	params commands.CreateVehicleParams
	// linkDriver assigns the seeded DRIVER account to the vehicle.
	linkDriver bool
}

type seedShipment struct {
	params commands.CreateShipmentParams
	plate  string
	// path is walked with status updates after creation.
	path []shipment.Status
}

var seedUsers = []commands.CreateUserParams{
	{Username: "manager1", Email: "manager@logistic.com", FullName: "John Manager", Phone: "081234567891", Password: "manager123", Role: string(user.Manager)},
	{Username: "staff1", Email: "staff@logistic.com", FullName: "Jane Staff", Phone: "081234567892", Password: "staff123", Role: string(user.Staff)},
	{Username: "driver1", Email: "driver@logistic.com", FullName: "Mike Driver", Phone: "081234567893", Password: "driver123", Role: string(user.Driver)},
}

var seedCustomers = []customer.Profile{
	{Name: "PT. Maju Jaya", Email: "contact@majujaya.com", Phone: "021-5551234", Address: "Jl. Sudirman No. 123, Jakarta", Company: "PT. Maju Jaya"},
	{Name: "CV. Berkah Abadi", Email: "info@berkahabadi.com", Phone: "022-7778899", Address: "Jl. Asia Afrika No. 45, Bandung", Company: "CV. Berkah Abadi"},
	{Name: "Toko Sejahtera", Email: "toko.sejahtera@gmail.com", Phone: "031-3334455", Address: "Jl. Pemuda No. 78, Surabaya", Company: "Toko Sejahtera"},
	{Name: "PT. Sentosa Makmur", Email: "admin@sentosamakmur.co.id", Phone: "024-8889900", Address: "Jl. Pandanaran No. 12, Semarang", Company: "PT. Sentosa Makmur"},
	{Name: "UD. Sumber Rejeki", Email: "sumberrejeki@yahoo.com", Phone: "0274-556677", Address: "Jl. Malioboro No. 99, Yogyakarta", Company: "UD. Sumber Rejeki"},
}

var seedLocations = []commands.CreateLocationParams{
	{Name: "Warehouse Jakarta Utara", City: "Jakarta", Type: "Warehouse", Address: "Jl. Pluit Raya No. 1, Jakarta Utara", Latitude: -6.1352, Longitude: 106.7944, Capacity: 50000, CurrentOccupancy: 35000, Manager: "Hendra Gunawan"},
	{Name: "Distribution Center Tangerang", City: "Tangerang", Type: "Distribution Center", Address: "Jl. Industri No. 5, Tangerang", Latitude: -6.1783, Longitude: 106.6319, Capacity: 30000, CurrentOccupancy: 18000, Manager: "Lina Marlina"},
	{Name: "Branch Surabaya", City: "Surabaya", Type: "Branch", Address: "Jl. Rungkut Industri No. 8, Surabaya", Latitude: -7.2575, Longitude: 112.7521, Capacity: 15000, CurrentOccupancy: 9000, Manager: "Agus Salim"},
	{Name: "Warehouse Bandung", City: "Bandung", Type: "Warehouse", Address: "Jl. Soekarno Hatta No. 200, Bandung", Latitude: -6.9175, Longitude: 107.6191, Capacity: 25000, CurrentOccupancy: 12000, Manager: "Rina Wati"},
	{Name: "Distribution Center Semarang", City: "Semarang", Type: "Distribution Center", Address: "Jl. Kaligawe No. 17, Semarang", Latitude: -6.9667, Longitude: 110.4167, Capacity: 20000, CurrentOccupancy: 8000, Manager: "Bambang Susilo"},
}

func seedVehicles() []seedVehicle {
	return []seedVehicle{
		{params: commands.CreateVehicleParams{PlateNumber: "B 1234 ABC", Type: "Truck", Capacity: decimal.NewFromInt(5000), FuelType: "Diesel", Year: 2020,
			LastMaintenance: seedDate(2024, 1, 15), NextMaintenance: seedDate(2024, 4, 15), DriverName: "Budi Santoso"}},
		{params: commands.CreateVehicleParams{PlateNumber: "B 5678 DEF", Type: "Van", Capacity: decimal.NewFromInt(1500), FuelType: "Petrol", Year: 2021,
			LastMaintenance: seedDate(2024, 2, 1), NextMaintenance: seedDate(2024, 5, 1), DriverName: "Ahmad Yani"}, linkDriver: true},
		{params: commands.CreateVehicleParams{PlateNumber: "L 9012 GHI", Type: "Truck", Capacity: decimal.NewFromInt(8000), FuelType: "Diesel", Year: 2019,
			DriverName: "Siti Nurhaliza"}},
		{params: commands.CreateVehicleParams{PlateNumber: "D 3456 JKL", Type: "Container", Capacity: decimal.NewFromInt(12000), FuelType: "Diesel", Year: 2018,
			DriverName: "Rudi Hartono", Status: "Maintenance"}},
		{params: commands.CreateVehicleParams{PlateNumber: "B 7890 MNO", Type: "Motorcycle", Capacity: decimal.NewFromInt(50), FuelType: "Petrol", Year: 2022,
			DriverName: "Andi Wijaya"}},
		{params: commands.CreateVehicleParams{PlateNumber: "B 2468 PQR", Type: "Van", Capacity: decimal.NewFromInt(2000), FuelType: "Electric", Year: 2023,
			DriverName: "Dewi Lestari"}},
	}
}

func seedShipments() []seedShipment {
	return []seedShipment{
		{params: commands.CreateShipmentParams{CustomerName: "PT. Maju Jaya", CustomerPhone: "021-5551234", CustomerAddress: "Jl. Sudirman No. 123, Jakarta",
			Origin: "Warehouse Jakarta Utara", Destination: "Branch Surabaya", Weight: decimal.NewFromInt(1200), EstimatedDelivery: seedDate(2024, 3, 20),
			Notes: "Handle with care"}, plate: "B 1234 ABC", path: []shipment.Status{shipment.InTransit, shipment.Delivered}},
		{params: commands.CreateShipmentParams{CustomerName: "Toko Sejahtera", CustomerPhone: "031-3334455", CustomerAddress: "Jl. Pemuda No. 78, Surabaya",
			Origin: "Distribution Center Tangerang", Destination: "Branch Surabaya", Weight: decimal.NewFromInt(300), EstimatedDelivery: seedDate(2024, 3, 10)},
			path: []shipment.Status{shipment.InTransit, shipment.Delivered}},
		{params: commands.CreateShipmentParams{CustomerName: "UD. Sumber Rejeki", CustomerPhone: "0274-556677", CustomerAddress: "Jl. Malioboro No. 99, Yogyakarta",
			Origin: "Warehouse Bandung", Destination: "Distribution Center Semarang", Weight: decimal.NewFromInt(450), Notes: "Customer requested cancellation"},
			path: []shipment.Status{shipment.Cancelled}},
		{params: commands.CreateShipmentParams{CustomerName: "CV. Berkah Abadi", CustomerPhone: "022-7778899", CustomerAddress: "Jl. Asia Afrika No. 45, Bandung",
			Origin: "Warehouse Jakarta Utara", Destination: "Warehouse Bandung", Weight: decimal.NewFromInt(800), EstimatedDelivery: seedDate(2024, 3, 18),
			Status: shipment.InTransit.String()}, plate: "B 5678 DEF"},
		{params: commands.CreateShipmentParams{CustomerName: "PT. Sentosa Makmur", CustomerPhone: "024-8889900", CustomerAddress: "Jl. Pandanaran No. 12, Semarang",
			Origin: "Distribution Center Tangerang", Destination: "Distribution Center Semarang", Weight: decimal.NewFromInt(1500), EstimatedDelivery: seedDate(2024, 3, 22),
			Status: shipment.InTransit.String()}, plate: "B 2468 PQR"},
		{params: commands.CreateShipmentParams{CustomerName: "PT. Maju Jaya", CustomerPhone: "021-5551234", CustomerAddress: "Jl. Sudirman No. 123, Jakarta",
			Origin: "Warehouse Jakarta Utara", Destination: "Distribution Center Semarang", Weight: decimal.NewFromInt(2500), EstimatedDelivery: seedDate(2024, 3, 25)}},
		{params: commands.CreateShipmentParams{CustomerName: "Toko Sejahtera", CustomerPhone: "031-3334455", CustomerAddress: "Jl. Pemuda No. 78, Surabaya",
			Origin: "Branch Surabaya", Destination: "Warehouse Jakarta Utara", Weight: decimal.NewFromInt(150), Notes: "Fragile items"}},
	}
}

func seedDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Seed loads a demo dataset through the regular create commands, acting as
// the bootstrap ADMIN. It never deletes anything and does nothing once any
// customer exists.
func (c *CompositionRoot) Seed(ctx context.Context) (SeedSummary, error) {
	var summary SeedSummary

	directory := c.CreateDirectoryQueryHandler()
	existing, err := directory.ListCustomers(ctx)
	if err != nil {
		return summary, err
	}
	if len(existing) > 0 {
		c.logger.InfoContext(ctx, "Seed skipped, customers already present", "customers", len(existing))
		summary.Skipped = true
		return summary, nil
	}

	if err := c.BootstrapAdmin(ctx); err != nil {
		return summary, err
	}
	actor, err := c.adminActor(ctx)
	if err != nil {
		return summary, err
	}

	var driverID kernel.UUID
	users := c.CreateUserCommandHandler()
	for _, params := range seedUsers {
		cmd, err := commands.NewCreateUserCommand(actor, params)
		if err != nil {
			return summary, fmt.Errorf("seed user %s: %w", params.Username, err)
		}
		id, err := users.Create(ctx, cmd)
		if err != nil {
			return summary, fmt.Errorf("seed user %s: %w", params.Username, err)
		}
		if params.Role == string(user.Driver) {
			driverID = id
		}
		summary.Users++
	}

	customers := c.CreateCustomerCommandHandler()
	for _, profile := range seedCustomers {
		if _, err := customers.Create(ctx, commands.NewCreateCustomerCommand(actor, profile)); err != nil {
			return summary, fmt.Errorf("seed customer %s: %w", profile.Name, err)
		}
		summary.Customers++
	}

	locations := c.CreateLocationCommandHandler()
	for _, params := range seedLocations {
		cmd, err := commands.NewCreateLocationCommand(actor, params)
		if err != nil {
			return summary, fmt.Errorf("seed location %s: %w", params.Name, err)
		}
		if _, err := locations.Create(ctx, cmd); err != nil {
			return summary, fmt.Errorf("seed location %s: %w", params.Name, err)
		}
		summary.Locations++
	}

	plates := map[string]kernel.Code{}
	vehicles := c.CreateCreateVehicleCommandHandler()
	for _, v := range seedVehicles() {
		params := v.params
		if v.linkDriver && !driverID.IsZero() {
			params.DriverUserID = driverID.String()
		}
		cmd, err := commands.NewCreateVehicleCommand(actor, params)
		if err != nil {
			return summary, fmt.Errorf("seed vehicle %s: %w", params.PlateNumber, err)
		}
		code, err := vehicles.Handle(ctx, cmd)
		if err != nil {
			return summary, fmt.Errorf("seed vehicle %s: %w", params.PlateNumber, err)
		}
		plates[params.PlateNumber] = code
		summary.Vehicles++
	}

	shipments := c.CreateCreateShipmentCommandHandler()
	statuses := c.CreateUpdateShipmentStatusCommandHandler()
	for _, s := range seedShipments() {
		params := s.params
		if s.plate != "" {
			params.VehicleID = plates[s.plate].String()
		}
		cmd, err := commands.NewCreateShipmentCommand(actor, params)
		if err != nil {
			return summary, fmt.Errorf("seed shipment for %s: %w", params.CustomerName, err)
		}
		code, err := shipments.Handle(ctx, cmd)
		if err != nil {
			return summary, fmt.Errorf("seed shipment for %s: %w", params.CustomerName, err)
		}
		for _, status := range s.path {
			update, err := commands.NewUpdateShipmentStatusCommand(actor, code.String(), status.String())
			if err != nil {
				return summary, fmt.Errorf("seed shipment %s: %w", code, err)
			}
			if err := statuses.Handle(ctx, update); err != nil {
				return summary, fmt.Errorf("seed shipment %s to %s: %w", code, status, err)
			}
		}
		summary.Shipments++
	}

	c.logger.InfoContext(ctx, "Demo data seeded",
		"users", summary.Users,
		"customers", summary.Customers,
		"locations", summary.Locations,
		"vehicles", summary.Vehicles,
		"shipments", summary.Shipments,
	)
	return summary, nil
}

func (c *CompositionRoot) adminActor(ctx context.Context) (access.Actor, error) {
	users, err := c.CreateDirectoryQueryHandler().ListUsers(ctx)
	if err != nil {
		return access.Actor{}, err
	}
	for _, u := range users {
		if u.Username != c.cfg.AdminUsername {
			continue
		}
		id, err := kernel.UUIDFromString(u.ID)
		if err != nil {
			return access.Actor{}, err
		}
		return access.Actor{UserID: id, Username: u.Username, Role: user.Admin, IPAddress: "127.0.0.1"}, nil
	}
	return access.Actor{}, fmt.Errorf("admin account %q not found", c.cfg.AdminUsername)
}
