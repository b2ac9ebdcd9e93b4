package productionrepo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"stitchfactory/internal/adapters/out/postgres/productionrepo"
	"stitchfactory/internal/core/domain/model/kernel"
	"stitchfactory/internal/core/domain/model/production"
	"stitchfactory/internal/core/domain/model/sku"
	"stitchfactory/internal/core/ports"
	"stitchfactory/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ProductionRepositoryIntegrationTestSuite provides integration tests for
// the production request and waitlist repositories. The store is opened
// through lib/pq because the duplicate-insert classification in Add inspects
// pq error codes.
type ProductionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	repository   *productionrepo.GormProductionRequestRepository
	waitlistRepo *productionrepo.GormWaitlistRepository
	tracker      *MockAggregateTracker
}

func (suite *ProductionRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&productionrepo.RequestDTO{},
		&productionrepo.WaitlistEntryDTO{},
	))
	suite.Require().NoError(productionrepo.Migrate(db))
}

func (suite *ProductionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE production_requests, waitlist_entries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = productionrepo.NewGormProductionRequestRepository(suite.db, suite.tracker)
	suite.waitlistRepo = productionrepo.NewGormWaitlistRepository(suite.db, suite.tracker)
}

func (suite *ProductionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductionRepositoryIntegrationTestSuite) mustSku(code string) sku.SKU {
	s, err := sku.Parse(code)
	suite.Require().NoError(err)
	return s
}

func (suite *ProductionRepositoryIntegrationTestSuite) newRequest(code string) *production.Request {
	request, err := production.NewRequest(
		kernel.NewUUID(), suite.mustSku(code), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	return request
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestAddAndGetPending_RoundTrip() {
	ctx := context.Background()

	request := suite.newRequest("ST-32-X-36-RAW")
	suite.Require().NoError(suite.repository.Add(ctx, request))

	loaded, err := suite.repository.GetPendingByUniversalSku(ctx, suite.mustSku("ST-32-X-36-RAW"))
	suite.Require().NoError(err)
	suite.Equal(request.ID(), loaded.ID())
	suite.Equal(1, loaded.Quantity())
	suite.Equal(production.Pending, loaded.Status())
	suite.Len(loaded.OrderIDs(), 1)
	suite.Len(loaded.LineItemIDs(), 1)
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestAdd_SecondPendingForSameSku_DuplicateError() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newRequest("ST-32-X-36-RAW")))

	err := suite.repository.Add(ctx, suite.newRequest("ST-32-X-36-RAW"))
	suite.Require().ErrorIs(err, ports.ErrDuplicatePendingRequest)
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestAdd_PendingForDifferentSku_Allowed() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newRequest("ST-32-X-36-RAW")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newRequest("ST-34-X-36-RAW")))
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestAdd_AfterPreviousCompleted_Allowed() {
	ctx := context.Background()

	first := suite.newRequest("ST-32-X-36-RAW")
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Manufacturing picked the first batch up; only Pending rows occupy the
	// partial index, so a fresh request for the same SKU may open.
	err := suite.db.Exec("UPDATE production_requests SET status = ? WHERE id = ?",
		int(production.InProgress), first.ID().Bytes()).Error
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, suite.newRequest("ST-32-X-36-RAW")))
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestUpdate_PersistsMergedDemand() {
	ctx := context.Background()

	request := suite.newRequest("ST-32-X-36-RAW")
	suite.Require().NoError(suite.repository.Add(ctx, request))

	suite.Require().NoError(request.Merge(kernel.NewUUID(), kernel.NewUUID()))
	suite.Require().NoError(suite.repository.Update(ctx, request))

	loaded, err := suite.repository.GetPendingByUniversalSku(ctx, suite.mustSku("ST-32-X-36-RAW"))
	suite.Require().NoError(err)
	suite.Equal(2, loaded.Quantity())
	suite.Len(loaded.OrderIDs(), 2)
	suite.Len(loaded.LineItemIDs(), 2)
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestGetPendingByUniversalSku_NotFound() {
	_, err := suite.repository.GetPendingByUniversalSku(
		context.Background(), suite.mustSku("ST-32-X-36-RAW"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestGetAllPending_OldestFirst() {
	ctx := context.Background()

	first := suite.newRequest("ST-32-X-36-RAW")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	second := suite.newRequest("ST-34-X-36-RAW")
	suite.Require().NoError(suite.repository.Add(ctx, second))

	pending, err := suite.repository.GetAllPending(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(first.ID(), pending[0].ID())
	suite.Equal(second.ID(), pending[1].ID())
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestNextPosition_StrictlyIncreasing() {
	ctx := context.Background()

	previous, err := suite.waitlistRepo.NextPosition(ctx)
	suite.Require().NoError(err)

	for range 5 {
		position, posErr := suite.waitlistRepo.NextPosition(ctx)
		suite.Require().NoError(posErr)
		suite.Greater(position, previous)
		previous = position
	}
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestNextPosition_SurvivesRollback() {
	ctx := context.Background()

	before, err := suite.waitlistRepo.NextPosition(ctx)
	suite.Require().NoError(err)

	// Draw a position inside a transaction that rolls back.
	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	txRepo := productionrepo.NewGormWaitlistRepository(tx, suite.tracker)
	discarded, err := txRepo.NextPosition(ctx)
	suite.Require().NoError(err)
	suite.Greater(discarded, before)
	suite.Require().NoError(tx.Rollback().Error)

	// The discarded position is burned, never reissued.
	after, err := suite.waitlistRepo.NextPosition(ctx)
	suite.Require().NoError(err)
	suite.Greater(after, discarded)
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestWaitlistAddAndGetByLineItemID_RoundTrip() {
	ctx := context.Background()

	lineItemID := kernel.NewUUID()
	unitID := kernel.NewUUID()
	entry, err := production.NewUnitEntry(kernel.NewUUID(), 3, kernel.NewUUID(), lineItemID, unitID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.waitlistRepo.Add(ctx, entry))

	loaded, err := suite.waitlistRepo.GetByLineItemID(ctx, lineItemID)
	suite.Require().NoError(err)
	suite.Equal(entry.ID(), loaded.ID())
	suite.Equal(int64(3), loaded.Position())
	suite.Require().NotNil(loaded.UnitID())
	suite.Equal(unitID, *loaded.UnitID())
	suite.Nil(loaded.RequestID())
}

func (suite *ProductionRepositoryIntegrationTestSuite) TestWaitlistGetByLineItemID_NotFound() {
	_, err := suite.waitlistRepo.GetByLineItemID(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestProductionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductionRepositoryIntegrationTestSuite))
}
