//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/cmd/bootstrap"
	"storefront/cmd/bootstrap/components"
	"storefront/internal/domain/user"
	"storefront/internal/infra/mongodb"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/jwt"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var (
	mongoContainerOnce sync.Once
	mongoTestContainer testcontainers.Container
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// setupE2EEnvironment starts (or reuses) the MongoDB container, builds the
// application against a per-process database and returns the handles tests
// need.
func setupE2EEnvironment(t *testing.T) (*mongo.Database, *gin.Engine, config.Config) {
	mongoInfo := startContainers(t)

	// Each test process works in its own database so parallel packages
	// cannot see each other's documents.
	dbName := "storefront_e2e_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	cfg := config.NewTestConfig()
	cfg.Mongo.URI = "mongodb://" + mongoInfo.Host + ":" + mongoInfo.Port.Port()
	cfg.Mongo.Database = dbName

	router, conn, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	db := conn.Database()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			slog.Warn("failed to drop e2e database", "database", dbName, "error", err.Error())
		}
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return db, router, cfg
}

func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startMongoContainerOnce(t)

	mongoInfo, err := getContainerHostPort(mongoTestContainer, "27017/tcp")
	require.NoError(t, err, "failed to inspect MongoDB container")

	return mongoInfo
}

func buildE2EApp(cfg config.Config) (*gin.Engine, *mongodb.Connection, *fx.App) {
	var (
		router *gin.Engine
		conn   *mongodb.Connection
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(
			func() *gin.Engine { return gin.New() },
			func() *slog.Logger { return slog.Default() },
		),
		bootstrap.MongoModule,
		bootstrap.JWTModule,
		components.RepositoryModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &conn),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic("failed to start fx app: " + err.Error())
	}

	return router, conn, app
}

func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func startMongoContainerOnce(t *testing.T) {
	mongoContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			Tmpfs: map[string]string{
				"/data/db": "rw,size=512m", // keep storage in RAM for test speed
			},
			WaitingFor: wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
			Name:       "mongo-e2e",
			Labels:     map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		mongoTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start MongoDB container")

		t.Cleanup(func() {
			if mongoTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := mongoTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate MongoDB container", "error", err.Error())
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

// SharedSuite is the base for e2e suites: one application and database per
// suite, collections wiped between subtests.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *mongo.Database
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	db, router, cfg := setupE2EEnvironment(s.T())
	s.DB = db
	s.Router = router
	s.Config = cfg
}

func (s *SharedSuite) SetupSubTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range []string{"products", "categories", "users", "orders"} {
		err := s.DB.Collection(name).Drop(ctx)
		require.NoError(s.T(), err, "failed to reset collection %s", name)
	}
}

// GenerateToken mints a token the way the auth endpoints would, signed with
// the suite's configured secret.
func (s *SharedSuite) GenerateToken(userID uuid.UUID, role user.Role) string {
	duration, err := time.ParseDuration(s.Config.JWT.Duration)
	require.NoError(s.T(), err)
	service := jwt.NewService(s.Config.JWT.Secret, duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(s.T(), err)
	return token
}
