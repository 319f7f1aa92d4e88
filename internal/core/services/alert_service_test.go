package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finovabs/backoffice_app/internal/apperrors"
	"github.com/finovabs/backoffice_app/internal/core/domain"
	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/core/services"
)

// MockAlertRepository is a mock type for the AlertRepositoryFacade interface
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) FindAlertByObligationID(ctx context.Context, obligationID string) (*domain.Alert, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) CreateAlert(ctx context.Context, alert domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) UpdateAlert(ctx context.Context, alert domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) DeleteAlertByObligationID(ctx context.Context, obligationID string) error {
	args := m.Called(ctx, obligationID)
	return args.Error(0)
}

// MockNotifierService is a mock type for the NotifierSvcFacade interface
type MockNotifierService struct {
	mock.Mock
}

func (m *MockNotifierService) NotifyAlert(ctx context.Context, obligation domain.Obligation, alert domain.Alert) error {
	args := m.Called(ctx, obligation, alert)
	return args.Error(0)
}

func (m *MockNotifierService) ListNotifications(ctx context.Context, userID string, limit int, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotifierService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AlertServiceTestSuite struct {
	suite.Suite
	mockAlertRepo *MockAlertRepository
	mockNotifier  *MockNotifierService
	service       portssvc.AlertSvcFacade
}

func (suite *AlertServiceTestSuite) SetupTest() {
	suite.mockAlertRepo = new(MockAlertRepository)
	suite.mockNotifier = new(MockNotifierService)
	suite.service = services.NewAlertService(suite.mockAlertRepo, suite.mockNotifier)
}

// openObligation builds an open obligation due on the given date.
func openObligation(dueDate time.Time) domain.Obligation {
	return domain.Obligation{
		ObligationID: uuid.NewString(),
		Amount:       decimal.NewFromInt(1000),
		DueDate:      &dueDate,
		Status:       domain.ObligationOpen,
	}
}

// --- Test Cases ---

func (suite *AlertServiceTestSuite) TestEvaluateObligation_QuietDay() {
	ctx := context.Background()
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	today := due.AddDate(0, 0, -3) // 3 days out: not a trigger day

	outcome, err := suite.service.EvaluateObligation(ctx, openObligation(due), today)

	suite.Require().NoError(err)
	suite.Equal(domain.AlertOutcomeNone, outcome)
	suite.mockAlertRepo.AssertNotCalled(suite.T(), "CreateAlert", mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyAlert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AlertServiceTestSuite) TestEvaluateObligation_CreatesUpcomingAlert() {
	ctx := context.Background()
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	today := due.AddDate(0, 0, -7)
	obligation := openObligation(due)

	var created domain.Alert
	suite.mockAlertRepo.On("CreateAlert", ctx, mock.AnythingOfType("domain.Alert")).Run(func(args mock.Arguments) {
		created = args.Get(1).(domain.Alert)
	}).Return(nil).Once()
	suite.mockNotifier.On("NotifyAlert", ctx, obligation, mock.AnythingOfType("domain.Alert")).Return(nil).Once()

	outcome, err := suite.service.EvaluateObligation(ctx, obligation, today)

	suite.Require().NoError(err)
	suite.Equal(domain.AlertOutcomeCreated, outcome)
	suite.Equal(obligation.ObligationID, created.ObligationID)
	suite.Equal(domain.AlertUpcomingPayment, created.Type)
	suite.Equal(domain.SeverityLow, created.Severity)
	suite.Equal(7, created.DaysUntilDue)
	suite.NotEmpty(created.AlertID)

	suite.mockAlertRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *AlertServiceTestSuite) TestEvaluateObligation_DueToday() {
	ctx := context.Background()
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	obligation := openObligation(due)

	var created domain.Alert
	suite.mockAlertRepo.On("CreateAlert", ctx, mock.AnythingOfType("domain.Alert")).Run(func(args mock.Arguments) {
		created = args.Get(1).(domain.Alert)
	}).Return(nil).Once()
	suite.mockNotifier.On("NotifyAlert", ctx, obligation, mock.AnythingOfType("domain.Alert")).Return(nil).Once()

	outcome, err := suite.service.EvaluateObligation(ctx, obligation, due)

	suite.Require().NoError(err)
	suite.Equal(domain.AlertOutcomeCreated, outcome)
	suite.Equal(domain.AlertPaymentDueToday, created.Type)
	suite.Equal(domain.SeverityMedium, created.Severity)
	suite.Equal(0, created.DaysUntilDue)
}

func (suite *AlertServiceTestSuite) TestEvaluateObligation_UpdatesExistingAlert() {
	ctx := context.Background()
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	today := due.AddDate(0, 0, 40) // 40 days overdue
	obligation := openObligation(due)
	alertID := uuid.NewString()
	obligation.AlertID = &alertID

	existing := &domain.Alert{
		AlertID:      alertID,
		ObligationID: obligation.ObligationID,
		Type:         domain.AlertPaymentOverdue,
		Severity:     domain.SeverityHigh,
		DaysUntilDue: -39,
	}

	var updated domain.Alert
	suite.mockAlertRepo.On("FindAlertByObligationID", ctx, obligation.ObligationID).Return(existing, nil).Once()
	suite.mockAlertRepo.On("UpdateAlert", ctx, mock.AnythingOfType("domain.Alert")).Run(func(args mock.Arguments) {
		updated = args.Get(1).(domain.Alert)
	}).Return(nil).Once()
	suite.mockNotifier.On("NotifyAlert", ctx, obligation, mock.AnythingOfType("domain.Alert")).Return(nil).Once()

	outcome, err := suite.service.EvaluateObligation(ctx, obligation, today)

	suite.Require().NoError(err)
	suite.Equal(domain.AlertOutcomeUpdated, outcome)
	// The row is refreshed in place, never duplicated
	suite.Equal(alertID, updated.AlertID)
	suite.Equal(domain.AlertPaymentOverdue, updated.Type)
	suite.Equal(domain.SeverityCritical, updated.Severity)
	suite.Equal(-40, updated.DaysUntilDue)
	suite.mockAlertRepo.AssertNotCalled(suite.T(), "CreateAlert", mock.Anything, mock.Anything)
}

func (suite *AlertServiceTestSuite) TestEvaluateObligation_CreateConflict() {
	ctx := context.Background()
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	obligation := openObligation(due)

	// The obligation was paid between the scan's read and the alert write.
	suite.mockAlertRepo.On("CreateAlert", ctx, mock.AnythingOfType("domain.Alert")).Return(apperrors.ErrConflict).Once()

	outcome, err := suite.service.EvaluateObligation(ctx, obligation, due)

	suite.Require().NoError(err)
	suite.Equal(domain.AlertOutcomeNone, outcome)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyAlert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AlertServiceTestSuite) TestEvaluateObligation_NoDueDate() {
	ctx := context.Background()
	obligation := domain.Obligation{
		ObligationID: uuid.NewString(),
		Status:       domain.ObligationOpen,
	}

	outcome, err := suite.service.EvaluateObligation(ctx, obligation, time.Now())

	suite.Require().NoError(err)
	suite.Equal(domain.AlertOutcomeNone, outcome)
	suite.mockAlertRepo.AssertNotCalled(suite.T(), "CreateAlert", mock.Anything, mock.Anything)
}

func (suite *AlertServiceTestSuite) TestEvaluateObligation_NotificationFailureSurfaces() {
	ctx := context.Background()
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	obligation := openObligation(due)

	suite.mockAlertRepo.On("CreateAlert", ctx, mock.AnythingOfType("domain.Alert")).Return(nil).Once()
	suite.mockNotifier.On("NotifyAlert", ctx, obligation, mock.AnythingOfType("domain.Alert")).Return(errBoom).Once()

	outcome, err := suite.service.EvaluateObligation(ctx, obligation, due)

	suite.Require().Error(err)
	suite.ErrorIs(err, errBoom)
	// The alert itself was stored; the outcome reflects that
	suite.Equal(domain.AlertOutcomeCreated, outcome)
}

func (suite *AlertServiceTestSuite) TestRemoveAlertForObligation() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockAlertRepo.On("DeleteAlertByObligationID", ctx, obligationID).Return(nil).Once()

	err := suite.service.RemoveAlertForObligation(ctx, obligationID)

	suite.Require().NoError(err)
	suite.mockAlertRepo.AssertExpectations(suite.T())
}

func TestAlertServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AlertServiceTestSuite))
}
