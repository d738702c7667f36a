package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	internal "github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/attendance"
	attendancePostgres "github.com/civicgrid/hr-management/internal/attendance/postgres"
	"github.com/civicgrid/hr-management/internal/auth"
	authPostgres "github.com/civicgrid/hr-management/internal/auth/postgres"
	"github.com/civicgrid/hr-management/internal/auth/session"
	"github.com/civicgrid/hr-management/internal/core/events"
	"github.com/civicgrid/hr-management/internal/dashboard"
	dashboardPostgres "github.com/civicgrid/hr-management/internal/dashboard/postgres"
	"github.com/civicgrid/hr-management/internal/department"
	departmentPostgres "github.com/civicgrid/hr-management/internal/department/postgres"
	"github.com/civicgrid/hr-management/internal/employee"
	employeePostgres "github.com/civicgrid/hr-management/internal/employee/postgres"
	"github.com/civicgrid/hr-management/internal/leave"
	leavePostgres "github.com/civicgrid/hr-management/internal/leave/postgres"
	"github.com/civicgrid/hr-management/internal/role"
	rolePostgres "github.com/civicgrid/hr-management/internal/role/postgres"
	"github.com/civicgrid/hr-management/internal/transport/rest"
	"github.com/civicgrid/hr-management/internal/transport/swagger"
	"github.com/civicgrid/hr-management/pkg/logger"
)

const openAPIPath = "api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	EventBus *events.EventBus
	Router   *chi.Mux
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	lg := logger.L()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	lg.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		lg.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			lg.Error("server shutdown error", "error", err)
		}
		// Let in-flight event handlers drain before closing the stores.
		deps.EventBus.Wait()
		if err := deps.DB.Close(); err != nil {
			lg.Error("database close error", "error", err)
		}
		if err := deps.Redis.Close(); err != nil {
			lg.Error("redis close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			lg.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	lg.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment)
	lg := logger.L()

	// A broken OpenAPI document should stop the server, not render a dead UI.
	if err := swagger.ValidateSpec(openAPIPath); err != nil {
		return nil, fmt.Errorf("openapi spec: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	pingCtx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	// Auth.
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	sessionStore := session.NewRedisStore(redisClient)
	authService := auth.NewService(
		authPostgres.NewRepository(gormDB),
		tokenGen,
		sessionStore,
		config.Security.RefreshTokenDuration,
		config.Security.BCryptCost,
		lg,
	)
	authHandler := auth.NewHandler(authService)
	rbac := auth.NewRoleAuthorization(lg)

	// Domain workflows.
	roleService := role.NewService(rolePostgres.NewRepository(gormDB), eventBus, lg)
	attendanceService := attendance.NewService(attendancePostgres.NewRepository(gormDB), eventBus, lg)
	leaveService := leave.NewService(leavePostgres.NewRepository(gormDB), eventBus, lg)
	departmentService := department.NewService(departmentPostgres.NewRepository(gormDB), lg)
	employeeService := employee.NewService(employeePostgres.NewRepository(gormDB), authService, departmentService, eventBus, lg)

	// Dashboard reads plus the in-memory activity feed.
	feed := dashboard.NewActivityFeed(lg)
	feed.Register(eventBus)
	dashboardService := dashboard.NewService(dashboardPostgres.NewRepository(gormDB), feed, lg)

	router := chi.NewRouter()
	rest.RegisterRoutes(router, rest.RouterDeps{
		Config:      config,
		Health:      rest.NewHealthHandler(db.DB, redisClient),
		Auth:        authHandler,
		RBAC:        rbac,
		Role:        role.NewHandler(roleService),
		Attendance:  attendance.NewHandler(attendanceService),
		Leave:       leave.NewHandler(leaveService),
		Employee:    employee.NewHandler(employeeService),
		Department:  department.NewHandler(departmentService),
		Dashboard:   dashboard.NewHandler(dashboardService),
		OpenAPIPath: openAPIPath,
	})

	return &Dependencies{
		Config:   config,
		DB:       db,
		Redis:    redisClient,
		EventBus: eventBus,
		Router:   router,
	}, nil
}

// initDB opens and verifies the SQL connection pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
