package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/adapters/out/postgres/driverrepo"
	"fleetops/internal/core/domain/model/driver"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type DriverRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *driverrepo.GormDriverRepository
}

func (suite *DriverRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.repo = driverrepo.NewGormDriverRepository(db, &mockAggregateTracker{})
}

func (suite *DriverRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DriverRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE drivers CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *DriverRepositoryTestSuite) newDriver(name string) *driver.Driver {
	loc, err := kernel.NewLocation(1.3521, 103.8198)
	suite.Require().NoError(err)
	d, err := driver.NewDriver(kernel.NewUUID(), name, loc)
	suite.Require().NoError(err)
	return d
}

func (suite *DriverRepositoryTestSuite) TestAddAndGet() {
	ctx := context.Background()
	d := suite.newDriver("Alice")

	err := suite.repo.Add(ctx, d)
	suite.Require().NoError(err)

	got, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)

	suite.True(got.IsEqual(d))
	suite.Equal("Alice", got.Name())
	suite.True(got.IsIdle())
}

func (suite *DriverRepositoryTestSuite) TestUpdate_AssignAndUnassignJob() {
	ctx := context.Background()
	d := suite.newDriver("Bob")
	suite.Require().NoError(suite.repo.Add(ctx, d))

	orderID := kernel.NewUUID()
	suite.Require().NoError(d.AssignCurrentJob(orderID))
	suite.Require().NoError(suite.repo.Update(ctx, d))

	got, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.CurrentOrder())
	suite.True(got.CurrentOrder().IsEqual(orderID))

	got.UnassignCurrentJob()
	suite.Require().NoError(suite.repo.Update(ctx, got))

	freed, err := suite.repo.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Nil(freed.CurrentOrder())
	suite.True(freed.IsIdle())
}

func (suite *DriverRepositoryTestSuite) TestGetByPublicID() {
	ctx := context.Background()
	d := suite.newDriver("Carol")
	suite.Require().NoError(suite.repo.Add(ctx, d))

	got, err := suite.repo.GetByPublicID(ctx, d.PublicID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(d))
}

func (suite *DriverRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func TestDriverRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryTestSuite))
}
