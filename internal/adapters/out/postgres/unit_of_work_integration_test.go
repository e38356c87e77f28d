package postgres_test

import (
	"context"
	"testing"
	"time"

	"fleetops/internal/adapters/out/postgres"
	"fleetops/internal/adapters/out/postgres/driverrepo"
	"fleetops/internal/adapters/out/postgres/orderrepo"
	"fleetops/internal/adapters/out/postgres/proofrepo"
	"fleetops/internal/core/domain/model/kernel"
	"fleetops/internal/core/domain/model/order"
	"fleetops/internal/core/domain/model/proof"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tc_postgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	container *tc_postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tc_postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tc_postgres.WithDatabase("testdb"),
		tc_postgres.WithUsername("testuser"),
		tc_postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.PayloadDTO{},
		&orderrepo.PlaceDTO{},
		&orderrepo.WaypointDTO{},
		&orderrepo.EntityDTO{},
		&orderrepo.ActivityDTO{},
		&driverrepo.DriverDTO{},
		&proofrepo.ProofDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, payloads, places, waypoints, entities, activities, drivers, proofs CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkTestSuite) newOrder() *order.Order {
	loc, err := kernel.NewLocation(1.3521, 103.8198)
	suite.Require().NoError(err)
	pickup, err := order.NewPlace("Warehouse", loc)
	suite.Require().NoError(err)
	dropoff, err := order.NewPlace("Customer", loc)
	suite.Require().NoError(err)
	payload, err := order.NewPayload(&pickup, &dropoff, nil, nil, nil)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), "default", payload)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	record, err := proof.NewProof(o.ID(), proof.SubjectOrder, o.ID(), proof.MethodQRCode, "raw", "", "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProofRepository().Add(ctx, record))

	suite.Require().NoError(uow.Commit(ctx))

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockTracker{})
	got, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))

	proofRepo := proofrepo.NewGormProofRepository(suite.db, &mockTracker{})
	gotProof, err := proofRepo.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal(proof.MethodQRCode, gotProof.Method())
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockTracker{})
	_, err := repo.Get(ctx, o.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkTestSuite) TestRollbackAfterCommit_IsInert() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockTracker{})
	_, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
}

type mockTracker struct{}

func (m *mockTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
