package cmd

import (
	"context"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/auth"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/activityrepo"
	"logistics/internal/core/application/access"
	"logistics/internal/core/application/audit"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	hasher      auth.BcryptHasher
	tokens      *auth.JWTService
	revocations ports.TokenRevocations
	recorder    *audit.Recorder
	policy      *access.Policy
	logger      *slog.Logger
}

// NewCompositionRoot wires the application over an open database. dispatcher
// may be nil when no broker is configured.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	revocations ports.TokenRevocations,
	dispatcher ports.EventDispatcher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tokens, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	policy, err := access.NewPolicy()
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, dispatcher),
		hasher:      auth.NewBcryptHasher(bcrypt.DefaultCost),
		tokens:      tokens,
		revocations: revocations,
		recorder:    audit.NewRecorder(activityrepo.NewGormActivityLog(gormDB), logger),
		policy:      policy,
		logger:      logger,
	}, nil
}

func (c *CompositionRoot) workflowUoW() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) customerUoW() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) locationUoW() commands.LocationUoWFactory {
	return FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoW() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.userUoW(), c.hasher, c.tokens, c.recorder)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.revocations, c.recorder)
}

func (c *CompositionRoot) CreateBootstrapAdminCommandHandler() commands.BootstrapAdminCommandHandler {
	return commands.NewBootstrapAdminCommandHandler(c.userUoW(), c.hasher)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	return commands.NewUpdateShipmentStatusCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateCreateVehicleCommandHandler() commands.CreateVehicleCommandHandler {
	return commands.NewCreateVehicleCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateUpdateVehicleCommandHandler() commands.UpdateVehicleCommandHandler {
	return commands.NewUpdateVehicleCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateDeleteVehicleCommandHandler() commands.DeleteVehicleCommandHandler {
	return commands.NewDeleteVehicleCommandHandler(c.workflowUoW(), c.recorder)
}

func (c *CompositionRoot) CreateReconcileFleetCommandHandler() commands.ReconcileFleetCommandHandler {
	return commands.NewReconcileFleetCommandHandler(c.workflowUoW())
}

func (c *CompositionRoot) CreateCustomerCommandHandler() commands.CustomerCommandHandler {
	return commands.NewCustomerCommandHandler(c.customerUoW())
}

func (c *CompositionRoot) CreateLocationCommandHandler() commands.LocationCommandHandler {
	return commands.NewLocationCommandHandler(c.locationUoW())
}

func (c *CompositionRoot) CreateUserCommandHandler() commands.UserCommandHandler {
	return commands.NewUserCommandHandler(c.userUoW(), c.hasher)
}

func (c *CompositionRoot) CreateShipmentQueryHandler() queries.ShipmentQueryHandler {
	return queries.NewShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateVehicleQueryHandler() queries.VehicleQueryHandler {
	return queries.NewVehicleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDirectoryQueryHandler() queries.DirectoryQueryHandler {
	return queries.NewDirectoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateActivityLogQueryHandler() queries.ActivityLogQueryHandler {
	return queries.NewActivityLogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDashboardStatsQueryHandler() queries.DashboardStatsQueryHandler {
	return queries.NewDashboardStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		Login:           c.CreateLoginCommandHandler(),
		Logout:          c.CreateLogoutCommandHandler(),
		CreateShipment:  c.CreateCreateShipmentCommandHandler(),
		UpdateShipment:  c.CreateUpdateShipmentCommandHandler(),
		UpdateStatus:    c.CreateUpdateShipmentStatusCommandHandler(),
		ConfirmDelivery: c.CreateConfirmDeliveryCommandHandler(),
		DeleteShipment:  c.CreateDeleteShipmentCommandHandler(),
		CreateVehicle:   c.CreateCreateVehicleCommandHandler(),
		UpdateVehicle:   c.CreateUpdateVehicleCommandHandler(),
		DeleteVehicle:   c.CreateDeleteVehicleCommandHandler(),
		Customers:       c.CreateCustomerCommandHandler(),
		Locations:       c.CreateLocationCommandHandler(),
		Users:           c.CreateUserCommandHandler(),
		Shipments:       c.CreateShipmentQueryHandler(),
		Vehicles:        c.CreateVehicleQueryHandler(),
		Directory:       c.CreateDirectoryQueryHandler(),
		Activity:        c.CreateActivityLogQueryHandler(),
		Dashboard:       c.CreateDashboardStatsQueryHandler(),
	})
}

// CreateRouter returns the echo instance serving the whole API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	doc, err := httpin.LoadDocument()
	if err != nil {
		return nil, err
	}
	return httpin.NewRouter(httpin.RouterConfig{
		Server:        c.CreateServer(),
		Authenticator: httpin.NewAuthenticator(c.tokens, c.revocations),
		Policy:        c.policy,
		Document:      doc,
		Logger:        c.logger.With("component", "http"),
		CORSOrigin:    c.cfg.CORSOrigin,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileFleetCommandHandler(), c.cfg.ReconcileSchedule, c.logger)
}

// BootstrapAdmin creates the default ADMIN account unless it already exists.
func (c *CompositionRoot) BootstrapAdmin(ctx context.Context) error {
	cmd, err := commands.NewBootstrapAdminCommand(user.Profile{
		Username: c.cfg.AdminUsername,
		Email:    c.cfg.AdminEmail,
		FullName: c.cfg.AdminFullName,
		Phone:    c.cfg.AdminPhone,
	}, c.cfg.AdminPassword)
	if err != nil {
		return err
	}

	created, err := c.CreateBootstrapAdminCommandHandler().Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if created {
		c.logger.InfoContext(ctx, "Default admin account created", "username", c.cfg.AdminUsername)
	}
	return nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
