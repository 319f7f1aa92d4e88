package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finovabs/backoffice_app/internal/core/domain"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/core/services"
)

type MonitorServiceTestSuite struct {
	suite.Suite
	mockObligationRepo *MockObligationRepository
	mockAlertSvc       *MockAlertService
	today              time.Time
	service            portssvc.MonitorSvcFacade
}

func (suite *MonitorServiceTestSuite) SetupTest() {
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockAlertSvc = new(MockAlertService)
	suite.today = time.Date(2026, time.March, 10, 2, 0, 0, 0, time.UTC)
	suite.service = services.NewMonitorService(
		suite.mockObligationRepo,
		suite.mockAlertSvc,
		services.WithClock(func() time.Time { return suite.today }),
	)
}

func openObligations(n int) []domain.Obligation {
	obligations := make([]domain.Obligation, n)
	for i := range obligations {
		due := time.Date(2026, time.March, 10+i, 0, 0, 0, 0, time.UTC)
		obligations[i] = domain.Obligation{
			ObligationID: uuid.NewString(),
			DueDate:      &due,
			Status:       domain.ObligationOpen,
		}
	}
	return obligations
}

// --- Test Cases ---

func (suite *MonitorServiceTestSuite) TestRunScan_AggregatesOutcomes() {
	ctx := context.Background()
	obligations := openObligations(3)

	suite.mockObligationRepo.On("ListOpenObligations", ctx).Return(obligations, nil).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[0], suite.today).Return(domain.AlertOutcomeCreated, nil).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[1], suite.today).Return(domain.AlertOutcomeUpdated, nil).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[2], suite.today).Return(domain.AlertOutcomeNone, nil).Once()

	summary, err := suite.service.RunScan(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, summary.TransactionsChecked)
	suite.Equal(1, summary.AlertsCreated)
	suite.Equal(1, summary.AlertsUpdated)
	suite.mockAlertSvc.AssertExpectations(suite.T())
}

func (suite *MonitorServiceTestSuite) TestRunScan_ContinuesAfterFailure() {
	ctx := context.Background()
	obligations := openObligations(3)

	suite.mockObligationRepo.On("ListOpenObligations", ctx).Return(obligations, nil).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[0], suite.today).Return(domain.AlertOutcomeNone, errBoom).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[1], suite.today).Return(domain.AlertOutcomeCreated, nil).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[2], suite.today).Return(domain.AlertOutcomeCreated, nil).Once()

	summary, err := suite.service.RunScan(ctx)

	// One failing obligation never aborts the sweep
	suite.Require().NoError(err)
	suite.Equal(3, summary.TransactionsChecked)
	suite.Equal(2, summary.AlertsCreated)
	suite.mockAlertSvc.AssertExpectations(suite.T())
}

func (suite *MonitorServiceTestSuite) TestRunScan_ListError() {
	ctx := context.Background()

	suite.mockObligationRepo.On("ListOpenObligations", ctx).Return(nil, errBoom).Once()

	_, err := suite.service.RunScan(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, errBoom)
}

func (suite *MonitorServiceTestSuite) TestRunScan_EmptySet() {
	ctx := context.Background()

	suite.mockObligationRepo.On("ListOpenObligations", ctx).Return([]domain.Obligation{}, nil).Once()

	summary, err := suite.service.RunScan(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.ScanSummary{}, summary)
}

func (suite *MonitorServiceTestSuite) TestRunScan_ConcurrentScansExcluded() {
	ctx := context.Background()
	obligations := openObligations(1)

	entered := make(chan struct{})
	release := make(chan struct{})

	suite.mockObligationRepo.On("ListOpenObligations", ctx).Return(obligations, nil).Once()
	suite.mockAlertSvc.On("EvaluateObligation", ctx, obligations[0], suite.today).Run(func(args mock.Arguments) {
		close(entered)
		<-release
	}).Return(domain.AlertOutcomeNone, nil).Once()

	firstDone := make(chan error, 1)
	go func() {
		_, err := suite.service.RunScan(ctx)
		firstDone <- err
	}()

	// Wait until the first scan is mid-sweep, then try a second one
	<-entered
	_, err := suite.service.RunScan(ctx)
	suite.ErrorIs(err, services.ErrScanAlreadyRunning)

	close(release)
	suite.Require().NoError(<-firstDone)
}

func TestMonitorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MonitorServiceTestSuite))
}
