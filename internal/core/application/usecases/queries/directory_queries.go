package queries

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetByIDQueryIsNotConstructed = errors.New(
	"GetByIDQuery must be created via a NewGet...Query constructor",
)

// GetByIDQuery addresses one customer, location or user.
type GetByIDQuery struct {
	id    string
	guard guard.ConstructorGuard
}

func NewGetCustomerQuery(id string) (GetByIDQuery, error) {
	return newCodeQuery(kernel.CustomerPrefix, id)
}

func NewGetLocationQuery(id string) (GetByIDQuery, error) {
	return newCodeQuery(kernel.LocationPrefix, id)
}

func NewGetUserQuery(id string) (GetByIDQuery, error) {
	userID, err := kernel.UUIDFromString(id)
	if err != nil {
		return GetByIDQuery{}, err
	}
	return GetByIDQuery{id: userID.String(), guard: guard.NewConstructorGuard()}, nil
}

func newCodeQuery(prefix kernel.Prefix, id string) (GetByIDQuery, error) {
	code, err := kernel.ParseCode(prefix, id)
	if err != nil {
		return GetByIDQuery{}, err
	}
	return GetByIDQuery{id: code.String(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetByIDQueryIsNotConstructed)
}

// DirectoryQueryHandler reads the reference tables: customers, locations and
// users. Lists are newest first.
type DirectoryQueryHandler struct {
	db *gorm.DB
}

func NewDirectoryQueryHandler(db *gorm.DB) DirectoryQueryHandler {
	return DirectoryQueryHandler{db: db}
}

const customerSelect = `
	SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''),
		COALESCE(company, ''), created_at, updated_at
	FROM customers`

func (h DirectoryQueryHandler) ListCustomers(ctx context.Context) ([]CustomerView, error) {
	return h.customers(ctx, customerSelect+"\n\tORDER BY created_at DESC, id")
}

func (h DirectoryQueryHandler) GetCustomer(ctx context.Context, query GetByIDQuery) (CustomerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerView{}, err
	}
	customers, err := h.customers(ctx, customerSelect+"\n\tWHERE id = ?", query.id)
	if err != nil {
		return CustomerView{}, err
	}
	if len(customers) == 0 {
		return CustomerView{}, errs.NewObjectNotFoundError("customer", query.id)
	}
	return customers[0], nil
}

func (h DirectoryQueryHandler) customers(ctx context.Context, sql string, args ...any) ([]CustomerView, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]CustomerView, 0)
	for rows.Next() {
		var c CustomerView
		if err = rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Company, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

const locationSelect = `
	SELECT id, name, COALESCE(city_name, ''), type, address, coordinates_lat, coordinates_lng,
		COALESCE(capacity, 0), COALESCE(current_occupancy, 0), COALESCE(manager, ''),
		COALESCE(is_active, false), created_at, updated_at
	FROM locations`

func (h DirectoryQueryHandler) ListLocations(ctx context.Context) ([]LocationView, error) {
	return h.locations(ctx, locationSelect+"\n\tORDER BY created_at DESC, id")
}

func (h DirectoryQueryHandler) GetLocation(ctx context.Context, query GetByIDQuery) (LocationView, error) {
	if err := query.Validate(); err != nil {
		return LocationView{}, err
	}
	locations, err := h.locations(ctx, locationSelect+"\n\tWHERE id = ?", query.id)
	if err != nil {
		return LocationView{}, err
	}
	if len(locations) == 0 {
		return LocationView{}, errs.NewObjectNotFoundError("location", query.id)
	}
	return locations[0], nil
}

func (h DirectoryQueryHandler) locations(ctx context.Context, sql string, args ...any) ([]LocationView, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]LocationView, 0)
	for rows.Next() {
		var l LocationView
		err = rows.Scan(
			&l.ID,
			&l.Name,
			&l.CityName,
			&l.Type,
			&l.Address,
			&l.Lat,
			&l.Lng,
			&l.Capacity,
			&l.CurrentOccupancy,
			&l.Manager,
			&l.IsActive,
			&l.CreatedAt,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

const userSelect = `
	SELECT u.id, u.username, u.email, u.full_name, COALESCE(u.phone, ''), u.role,
		COALESCE(u.is_active, false), u.created_at, u.updated_at
	FROM users u`

func (h DirectoryQueryHandler) ListUsers(ctx context.Context) ([]UserView, error) {
	return h.users(ctx, userSelect+"\n\tORDER BY u.created_at DESC, u.username")
}

func (h DirectoryQueryHandler) GetUser(ctx context.Context, query GetByIDQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}
	users, err := h.users(ctx, userSelect+"\n\tWHERE u.id = ?", query.id)
	if err != nil {
		return UserView{}, err
	}
	if len(users) == 0 {
		return UserView{}, errs.NewObjectNotFoundError("user", query.id)
	}
	return users[0], nil
}

func (h DirectoryQueryHandler) users(ctx context.Context, sql string, args ...any) ([]UserView, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserView, 0)
	for rows.Next() {
		var u UserView
		if err = rows.Scan(scanUser(&u)...); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(u *UserView) []any {
	return []any{&u.ID, &u.Username, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt}
}

// AssignedVehicleView is the compact vehicle shown next to a driver.
type AssignedVehicleView struct {
	ID          string
	PlateNumber string
	Type        string
	Status      string
}

type DriverView struct {
	UserView
	AssignedVehicle *AssignedVehicleView
}

// ListAvailableDrivers lists DRIVER users by full name, each with the oldest
// vehicle assigned to them, if any.
func (h DirectoryQueryHandler) ListAvailableDrivers(ctx context.Context) ([]DriverView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (u.id)
				u.id, u.username, u.email, u.full_name, COALESCE(u.phone, ''), u.role,
				COALESCE(u.is_active, false), u.created_at, u.updated_at,
				f.id AS vehicle_id, f.plate_number, f.type, f.status AS vehicle_status
			FROM users u
			LEFT JOIN fleet f ON f.driver_id = u.id
			WHERE u.role = ?
			ORDER BY u.id, f.created_at
		) drivers
		ORDER BY full_name
	`, "DRIVER").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]DriverView, 0)
	for rows.Next() {
		var d DriverView
		var vehicleID, plate, vehicleType, status *string

		dest := append(scanUser(&d.UserView), &vehicleID, &plate, &vehicleType, &status)
		if err = rows.Scan(dest...); err != nil {
			return nil, err
		}

		if vehicleID != nil {
			d.AssignedVehicle = &AssignedVehicleView{
				ID:          *vehicleID,
				PlateNumber: deref(plate),
				Type:        deref(vehicleType),
				Status:      deref(status),
			}
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
