package postgres

import (
	"fmt"
	"time"

	"logistics/internal/adapters/out/postgres/activityrepo"
	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/fleetrepo"
	"logistics/internal/adapters/out/postgres/locationrepo"
	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/adapters/out/postgres/shipmentrepo"
	"logistics/internal/adapters/out/postgres/userrepo"

	// database/sql driver registered as "postgres".
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings describes how to reach PostgreSQL.
type ConnectionSettings struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (s ConnectionSettings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.DBName, sslMode)
}

// Open connects through the lib/pq database/sql driver so that driver errors
// surface as *pq.Error and can be classified by pgerr.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table and the partial unique index that
// allows at most one active shipment per vehicle.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&fleetrepo.VehicleDTO{},
		&customerrepo.CustomerDTO{},
		&locationrepo.LocationDTO{},
		&userrepo.UserDTO{},
		&activityrepo.EntryDTO{},
	); err != nil {
		return err
	}

	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON shipments (fleet_id) `+
			`WHERE fleet_id IS NOT NULL AND status IN ('Pending', 'In Transit')`,
		pgerr.ActiveFleetIndex,
	)).Error
}

// Tables lists the tables owned by this adapter.
func Tables() []string {
	return []string{"shipments", "fleet", "customers", "locations", "users", "activity_logs"}
}
