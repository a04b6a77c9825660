//go:build e2e

package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"kiosk-sales-api/cmd/bootstrap"
	"kiosk-sales-api/cmd/bootstrap/components"
	"kiosk-sales-api/internal/infra/db"
	"kiosk-sales-api/internal/pkg/config"
	"kiosk-sales-api/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	mysqlContainerOnce sync.Once
	mysqlTestContainer testcontainers.Container

	testUser     = "root"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// ------------------------------------------------------------
// Per test process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*sql.DB, *gin.Engine, config.Config) {
	mysqlInfo := startContainers(t)

	conn, dbConfig := prepareDatabase(t, mysqlInfo)

	router, cfg, app := buildE2EApp(conn, dbConfig)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("Failed to stop fx app", "error", err.Error())
		}
	})

	slog.Info("E2E environment ready",
		"mysql_host", mysqlInfo.Host,
		"mysql_port", mysqlInfo.Port.Port())

	return conn, router, cfg
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startMySQLContainerOnce(t)

	info, err := getContainerHostPort(mysqlTestContainer, "3306/tcp")
	require.NoError(t, err, "failed to read MySQL container info")

	return info
}

// ------------------------------------------------------------
// Database preparation: one database per test process
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, info ContainerInfo) (*sql.DB, config.DBConfig) {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	admin, err := sql.Open("mysql", adminDSN(info))
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			waitTime := min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second)
			time.Sleep(waitTime)
			slog.Warn("Retrying database creation", "attempt", attempts+1, "error", createErr.Error(), "retry_wait", waitTime)
		}
		_, createErr = admin.ExecContext(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupDB, err := sql.Open("mysql", adminDSN(info))
		if err != nil {
			slog.Warn("Cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupDB.Close()

		if _, err := cleanupDB.ExecContext(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("Failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.NewTestConfig().DB
	dbConfig.Host = info.Host
	dbConfig.Port = info.Port.Port()
	dbConfig.User = testUser
	dbConfig.Password = testPassword
	dbConfig.DBName = dbName

	conn, cleanup, err := db.Connect(dbConfig)
	require.NoError(t, err, "database connection failed")
	require.NotNil(t, conn, "database connection is nil")
	t.Cleanup(cleanup)

	err = dbtest.ApplyMigrations(ctx, conn, "migrations/001_initial_schema.sql")
	require.NoError(t, err, "database migration failed")

	return conn, dbConfig
}

func adminDSN(info ContainerInfo) string {
	cfg := mysql.NewConfig()
	cfg.User = testUser
	cfg.Passwd = testPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(info.Host, info.Port.Port())
	return cfg.FormatDSN()
}

// ------------------------------------------------------------
// Application graph for e2e: real repositories over the test database,
// events disabled through the test config.
// ------------------------------------------------------------
func buildE2EApp(conn *sql.DB, dbConfig config.DBConfig) (*gin.Engine, config.Config, *fx.App) {
	var router *gin.Engine
	var cfg config.Config

	testDBModule := fx.Module("testdb",
		fx.Provide(
			func() *sql.DB { return conn },
			fx.Annotate(
				db.NewMySQLPool,
				fx.As(new(db.Pool)),
			),
		),
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config {
			return createTestConfig(dbConfig)
		}),
	)

	app := fx.New(
		testDBModule,
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.EventsModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &cfg),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	if router == nil {
		panic("fx app started without a router")
	}

	return router, cfg, app
}

func createTestConfig(dbConfig config.DBConfig) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	return testConfig
}

func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// ------------------------------------------------------------
// Start the MySQL container once per process
// ------------------------------------------------------------
func startMySQLContainerOnce(t *testing.T) {
	mysqlContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "mysql:8.4",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": testPassword,
				"MYSQL_ROOT_HOST":     "%",
			},
			Tmpfs: map[string]string{
				"/var/lib/mysql": "rw,size=512m",
			},
			Cmd: []string{
				"--innodb-flush-log-at-trx-commit=0",
				"--skip-log-bin",
				"--max-connections=200",
			},
			WaitingFor: wait.ForSQL("3306/tcp", "mysql", func(host string, port nat.Port) string {
				return adminDSN(ContainerInfo{Host: host, Port: port})
			}).WithStartupTimeout(120 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		mysqlTestContainer, err = startGenericContainer(req, 240)
		require.NoError(t, err, "failed to start MySQL container")

		t.Cleanup(func() {
			if mysqlTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := mysqlTestContainer.Terminate(ctx); err != nil {
					slog.Warn("Failed to terminate MySQL container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared e2e suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *sql.DB
	Config config.Config
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	conn, router, cfg := setupE2EEnvironment(t)
	s.DB = conn
	s.Router = router
	s.Config = cfg
	require.NotNil(t, conn, "DB setup failed")
	require.NotEmpty(t, s.Config, "config missing")
	require.NotNil(t, s.Router, "router setup failed")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	err := dbtest.ResetDB(s.DB)
	require.NoError(s.T(), err, "failed to reset database state")
}
