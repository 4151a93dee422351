package queries

import (
	"context"
	"math"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DashboardStats summarises shipments and fleet. Rates are percentages rounded
// to one decimal place and are 0 when the denominator is 0.
type DashboardStats struct {
	TotalShipments      int64
	PendingShipments    int64
	InTransitShipments  int64
	DeliveredShipments  int64
	CancelledShipments  int64
	TotalVehicles       int64
	AvailableVehicles   int64
	OnRouteVehicles     int64
	MaintenanceVehicles int64
	InactiveVehicles    int64
	TotalCustomers      int64
	ActiveLocations     int64
	CompletionRate      float64
	FleetUtilization    float64
}

// DashboardStatsQueryHandler collapses concurrent requests into one round of
// aggregate queries.
type DashboardStatsQueryHandler struct {
	db    *gorm.DB
	group *singleflight.Group
}

func NewDashboardStatsQueryHandler(db *gorm.DB) DashboardStatsQueryHandler {
	return DashboardStatsQueryHandler{db: db, group: &singleflight.Group{}}
}

func (h DashboardStatsQueryHandler) Handle(ctx context.Context) (DashboardStats, error) {
	v, err, _ := h.group.Do("dashboard-stats", func() (any, error) {
		return h.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return DashboardStats{}, err
	}
	return v.(DashboardStats), nil
}

func (h DashboardStatsQueryHandler) load(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	db := h.db.WithContext(ctx)

	err := db.Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'In Transit'),
			COUNT(*) FILTER (WHERE status = 'Delivered'),
			COUNT(*) FILTER (WHERE status = 'Cancelled')
		FROM shipments
	`).Row().Scan(
		&stats.TotalShipments,
		&stats.PendingShipments,
		&stats.InTransitShipments,
		&stats.DeliveredShipments,
		&stats.CancelledShipments,
	)
	if err != nil {
		return DashboardStats{}, err
	}

	err = db.Raw(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Available'),
			COUNT(*) FILTER (WHERE status = 'On Route'),
			COUNT(*) FILTER (WHERE status = 'Maintenance'),
			COUNT(*) FILTER (WHERE status = 'Inactive')
		FROM fleet
	`).Row().Scan(
		&stats.TotalVehicles,
		&stats.AvailableVehicles,
		&stats.OnRouteVehicles,
		&stats.MaintenanceVehicles,
		&stats.InactiveVehicles,
	)
	if err != nil {
		return DashboardStats{}, err
	}

	err = db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM locations WHERE is_active)
	`).Row().Scan(&stats.TotalCustomers, &stats.ActiveLocations)
	if err != nil {
		return DashboardStats{}, err
	}

	stats.CompletionRate = percentage(stats.DeliveredShipments, stats.TotalShipments)
	stats.FleetUtilization = percentage(stats.OnRouteVehicles, stats.TotalVehicles)
	return stats, nil
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
