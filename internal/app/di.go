// Package app wires configuration, stores, use cases and servers together. Components
// are built on first access and shared afterwards.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
	authHTTP "github.com/farmrakshaa/farm-guardian/internal/auth/http"
	authService "github.com/farmrakshaa/farm-guardian/internal/auth/service"
	authUseCase "github.com/farmrakshaa/farm-guardian/internal/auth/usecase"
	"github.com/farmrakshaa/farm-guardian/internal/config"
	"github.com/farmrakshaa/farm-guardian/internal/database"
	"github.com/farmrakshaa/farm-guardian/internal/http"
	"github.com/farmrakshaa/farm-guardian/internal/metrics"
	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
	userHTTP "github.com/farmrakshaa/farm-guardian/internal/user/http"
	userUseCase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// mongoConnectTimeout bounds the initial MongoDB ping.
const mongoConnectTimeout = 10 * time.Second

// Container holds every application component.
type Container struct {
	config *config.Config

	// ctx scopes background goroutines started by components; Shutdown cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger            *slog.Logger
	db                *sql.DB
	mongoDB           *mongo.Database
	assessmentDB      *sql.DB
	txManager         database.TxManager
	metricsProvider   *metrics.Provider
	businessMetrics   metrics.BusinessMetrics
	assessmentMetrics metrics.AssessmentMetrics

	// Services
	passwordService userDomain.PasswordHasher
	tokenService    authService.TokenService

	// Repositories
	userRepo       userUseCase.UserRepository
	assessmentRepo assessmentUseCase.AssessmentRepository
	checklistRepo  assessmentUseCase.ChecklistRepository

	// Use Cases
	userUseCase       userUseCase.UseCase
	importUseCase     userUseCase.ImportUseCase
	sessionUseCase    authUseCase.SessionUseCase
	assessmentUseCase assessmentUseCase.UseCase
	complianceUseCase assessmentUseCase.ComplianceUseCase

	// Handlers
	sessionHandler *authHTTP.SessionHandler
	userHandler    *userHTTP.UserHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	mongoDBInit           sync.Once
	assessmentDBInit      sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	assessmentMetricsInit sync.Once
	passwordServiceInit   sync.Once
	tokenServiceInit      sync.Once
	userRepoInit          sync.Once
	assessmentRepoInit    sync.Once
	checklistRepoInit     sync.Once
	userUseCaseInit       sync.Once
	importUseCaseInit     sync.Once
	sessionUseCaseInit    sync.Once
	assessmentUseCaseInit sync.Once
	complianceUseCaseInit sync.Once
	sessionHandlerInit    sync.Once
	userHandlerInit       sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a container for cfg. Nothing is connected until first use.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger at the configured level.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// storedError returns the error recorded for a component whose initialization failed
// on an earlier call.
func (c *Container) storedError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

func (c *Container) storeError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// DB returns the SQL user store pool. It fails when DB_DRIVER is mongodb.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.storeError("db", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("db"); storedErr != nil {
		return nil, storedErr
	}
	return c.db, nil
}

// MongoDatabase returns the MongoDB user store database.
func (c *Container) MongoDatabase() (*mongo.Database, error) {
	var err error
	c.mongoDBInit.Do(func() {
		c.mongoDB, err = c.initMongoDatabase()
		if err != nil {
			c.storeError("mongoDB", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("mongoDB"); storedErr != nil {
		return nil, storedErr
	}
	return c.mongoDB, nil
}

// TxManager returns the transaction manager over the SQL user store.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.storeError("txManager", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("txManager"); storedErr != nil {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.storeError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("metricsProvider"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the use case metrics recorder; a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.storeError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("businessMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// AssessmentMetrics returns the assessment outcome counter; a no-op when metrics are disabled.
func (c *Container) AssessmentMetrics() (metrics.AssessmentMetrics, error) {
	var err error
	c.assessmentMetricsInit.Do(func() {
		c.assessmentMetrics, err = c.initAssessmentMetrics()
		if err != nil {
			c.storeError("assessmentMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("assessmentMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.assessmentMetrics, nil
}

// HTTPServer returns the API server with its router set up.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.storeError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("httpServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.storeError("metricsServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("metricsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown stops background work and closes every connection that was opened.
func (c *Container) Shutdown(ctx context.Context) error {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.mongoDB != nil {
		if err := c.mongoDB.Client().Disconnect(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("mongodb disconnect: %w", err))
		}
	}

	if c.assessmentDB != nil {
		if err := c.assessmentDB.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("assessment database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	if !c.config.UsesSQL() {
		return nil, fmt.Errorf("DB_DRIVER %q is not a SQL driver", c.config.DBDriver)
	}
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initMongoDatabase() (*mongo.Database, error) {
	db, err := database.ConnectMongo(c.ctx, database.MongoConfig{
		URI:            c.config.DBConnectionString,
		Database:       c.config.DBName,
		MaxPoolSize:    uint64(max(c.config.DBMaxOpenConnections, 0)),
		ConnectTimeout: mongoConnectTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

func (c *Container) initAssessmentMetrics() (metrics.AssessmentMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return &metrics.NoOpBusinessMetrics{}, nil
	}
	return metrics.NewAssessmentMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// readinessCheck pings whichever user store DB_DRIVER selects.
func (c *Container) readinessCheck() (http.ReadinessCheck, error) {
	if c.config.DBDriver == config.DriverMongoDB {
		db, err := c.MongoDatabase()
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}, nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	return db.PingContext, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	ready, err := c.readinessCheck()
	if err != nil {
		return nil, fmt.Errorf("failed to get readiness check for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(ready, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.ctx, c.config, sessionHandler, userHandler, sessionUseCase, metricsProvider)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
