package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/accessory"
	accessoryPostgres "github.com/frahmantamala/asset-management/internal/accessory/postgres"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	"github.com/frahmantamala/asset-management/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/asset-management/internal/assignment/postgres"
	"github.com/frahmantamala/asset-management/internal/cctv"
	cctvPostgres "github.com/frahmantamala/asset-management/internal/cctv/postgres"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/asset-management/internal/dashboard/postgres"
	"github.com/frahmantamala/asset-management/internal/location"
	locationPostgres "github.com/frahmantamala/asset-management/internal/location/postgres"
	"github.com/frahmantamala/asset-management/internal/realtime"
	"github.com/frahmantamala/asset-management/internal/repair"
	repairPostgres "github.com/frahmantamala/asset-management/internal/repair/postgres"
	"github.com/frahmantamala/asset-management/internal/staff"
	staffPostgres "github.com/frahmantamala/asset-management/internal/staff/postgres"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/internal/transport/rest"
	"github.com/frahmantamala/asset-management/internal/transport/swagger"
	"github.com/frahmantamala/asset-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests and the realtime change feed`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	GormDB   *gorm.DB
	DB       *sqlx.DB
	EventBus *events.EventBus
	Hub      *realtime.Hub
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if deps.Hub != nil {
		go deps.Hub.Run(ctx)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		// let in-flight event handlers finish before the hub goes away
		deps.EventBus.Wait()
		stop()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	db := deps.GormDB
	bus := deps.EventBus
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)

	technician := cfg.Inventory.DefaultTechnician

	assetService := asset.NewService(assetPostgres.NewAssetRepository(db), bus, lg)
	staffService := staff.NewService(staffPostgres.NewStaffRepository(db), bus, lg)
	assignmentService := assignment.NewService(assignmentPostgres.NewAssignmentRepository(db), bus, lg)
	repairService := repair.NewService(repairPostgres.NewRepairRepository(db), bus, technician, lg)
	accessoryService := accessory.NewService(accessoryPostgres.NewAccessoryRepository(db), bus, technician, lg)
	cctvService := cctv.NewService(cctvPostgres.NewCCTVRepository(db), bus, technician, cfg.Inventory.DefaultPremise, lg)
	locationService := location.NewService(locationPostgres.NewLocationRepository(db), bus, lg)
	dashboardService := dashboard.NewService(dashboardPostgres.NewDashboardRepository(deps.DB), lg)

	handlers := rest.Handlers{
		Asset:      asset.NewHandler(base, assetService),
		Staff:      staff.NewHandler(base, staffService),
		Assignment: assignment.NewHandler(base, assignmentService),
		Repair:     repair.NewHandler(base, repairService),
		Accessory:  accessory.NewHandler(base, accessoryService),
		CCTV:       cctv.NewHandler(base, cctvService),
		Location:   location.NewHandler(base, locationService),
		Dashboard:  dashboard.NewHandler(base, dashboardService),
	}

	if deps.Hub != nil {
		handlers.Realtime = deps.Hub
		handlers.Health = rest.NewHealthHandler(deps.DB, deps.Hub)
	} else {
		handlers.Health = rest.NewHealthHandler(deps.DB, nil)
	}

	if _, err := swagger.LoadDocument(context.Background(), rest.OpenAPIPath); err != nil {
		lg.Warn("openapi document not served correctly", "error", err)
	}

	rest.RegisterAllRoutes(deps.Router, handlers, cfg.Server.AllowedOrigins, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Configure(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	gormDB, db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(lg)
	bus.Subscribe(events.AllEvents, func(ctx context.Context, event events.Event) error {
		lg.Debug("inventory changed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	var hub *realtime.Hub
	if config.Realtime.Enabled {
		hub = realtime.NewHub(config.Realtime, config.Server.AllowedOrigins, lg)
		bus.Subscribe(events.AllEvents, hub.HandleEvent)
	}

	return &Dependencies{
		Config:   config,
		GormDB:   gormDB,
		DB:       db,
		EventBus: bus,
		Hub:      hub,
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}

// initDB opens one pgx pool shared by gorm (repositories) and sqlx (dashboard, health).
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	pgxConfig, err := pgx.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database source: %w", err)
	}
	if cfg.SimpleProtocol {
		pgxConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	sqlDB := stdlib.OpenDB(*pgxConfig)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logLevel := gormLogger.Warn
	if cfg.LogQueries {
		logLevel = gormLogger.Info
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: cfg.SimpleProtocol,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(logLevel),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return gormDB, sqlx.NewDb(sqlDB, "pgx"), nil
}
