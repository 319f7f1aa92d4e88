package services_test

import (
	"context"
	"errors"
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
	"github.com/finovabs/backoffice_app/internal/dto"
)

// errBoom stands in for an arbitrary downstream failure.
var errBoom = errors.New("boom")

// MockObligationRepository is a mock type for the ObligationRepositoryFacade interface
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) FindRequestByObligationID(ctx context.Context, obligationID string) (*domain.Request, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockObligationRepository) ListOpenObligations(ctx context.Context) ([]domain.Obligation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) SaveObligationWithRequest(ctx context.Context, obligation domain.Obligation, request domain.Request) error {
	args := m.Called(ctx, obligation, request)
	return args.Error(0)
}

func (m *MockObligationRepository) TransitionStatus(ctx context.Context, obligationID string, expected, next domain.ObligationStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, obligationID, expected, next, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockObligationRepository) RecordApproval(ctx context.Context, obligation domain.Obligation, request domain.Request) error {
	args := m.Called(ctx, obligation, request)
	return args.Error(0)
}

func (m *MockObligationRepository) RecordRejection(ctx context.Context, obligation domain.Obligation, request domain.Request) error {
	args := m.Called(ctx, obligation, request)
	return args.Error(0)
}

// MockOrgRepository is a mock type for the OrgRepositoryFacade interface
type MockOrgRepository struct {
	mock.Mock
}

func (m *MockOrgRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockOrgRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockOrgRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockOrgRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAlertService is a mock type for the AlertSvcFacade interface
type MockAlertService struct {
	mock.Mock
}

func (m *MockAlertService) EvaluateObligation(ctx context.Context, obligation domain.Obligation, today time.Time) (domain.AlertOutcome, error) {
	args := m.Called(ctx, obligation, today)
	return args.Get(0).(domain.AlertOutcome), args.Error(1)
}

func (m *MockAlertService) RemoveAlertForObligation(ctx context.Context, obligationID string) error {
	args := m.Called(ctx, obligationID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockObligationRepo *MockObligationRepository
	mockOrgRepo        *MockOrgRepository
	mockAlertSvc       *MockAlertService
	service            portssvc.ApprovalSvcFacade
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockOrgRepo = new(MockOrgRepository)
	suite.mockAlertSvc = new(MockAlertService)
	suite.service = services.NewApprovalService(suite.mockObligationRepo, suite.mockOrgRepo, suite.mockAlertSvc)
}

// pendingSale builds a pending obligation with its owning sale request.
func (suite *ApprovalServiceTestSuite) pendingSale(invoiceDate time.Time) (*domain.Obligation, *domain.Request) {
	now := time.Now().UTC()
	obligation := &domain.Obligation{
		ObligationID: uuid.NewString(),
		Amount:       decimal.NewFromInt(1500),
		Status:       domain.ObligationPendingApproval,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "creator-1",
			LastUpdatedAt: now,
			LastUpdatedBy: "creator-1",
		},
	}
	request := &domain.Request{
		RequestID:      uuid.NewString(),
		ObligationID:   obligation.ObligationID,
		Kind:           domain.RequestKindSale,
		Status:         domain.RequestPending,
		BranchID:       "branch-1",
		CounterpartyID: "client-1",
		InvoiceDate:    invoiceDate,
		AuditFields:    obligation.AuditFields,
	}
	return obligation, request
}

// --- Test Cases ---

func (suite *ApprovalServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateSaleRequest{
		ClientID:    "client-1",
		BranchID:    "branch-1",
		Amount:      decimal.NewFromInt(2500),
		InvoiceDate: time.Date(2026, time.January, 1, 14, 30, 0, 0, time.UTC),
		Description: "January order",
	}

	suite.mockObligationRepo.On("SaveObligationWithRequest", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.Request")).Return(nil).Once()

	obligation, request, err := suite.service.CreateSale(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(obligation)
	suite.Require().NotNil(request)
	suite.NotEmpty(obligation.ObligationID)
	suite.Equal(domain.ObligationPendingApproval, obligation.Status)
	suite.Nil(obligation.DueDate, "due date is fixed at approval, not creation")
	suite.Equal(creatorUserID, obligation.CreatedBy)
	suite.Equal(domain.RequestKindSale, request.Kind)
	suite.Equal(domain.RequestPending, request.Status)
	suite.Equal(obligation.ObligationID, request.ObligationID)
	// Invoice date is normalized to midnight
	suite.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), request.InvoiceDate)
	suite.Nil(request.PaymentTerms)
	suite.Nil(request.InvoiceNumber)

	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestCreateSale_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		ClientID:    "client-1",
		BranchID:    "branch-1",
		Amount:      decimal.Zero,
		InvoiceDate: time.Now(),
	}

	_, _, err := suite.service.CreateSale(ctx, req, "creator-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "SaveObligationWithRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestCreatePaymentRequest_Success() {
	ctx := context.Background()
	req := dto.CreatePaymentRequestRequest{
		SupplierID:  "supplier-1",
		BranchID:    "branch-1",
		Amount:      decimal.NewFromInt(800),
		InvoiceDate: time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
	}

	suite.mockObligationRepo.On("SaveObligationWithRequest", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.Request")).Return(nil).Once()

	obligation, request, err := suite.service.CreatePaymentRequest(ctx, req, "creator-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ObligationPendingApproval, obligation.Status)
	suite.Equal(domain.RequestKindPayment, request.Kind)
	suite.Equal("supplier-1", request.CounterpartyID)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveSale_Success() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	obligation, request := suite.pendingSale(invoiceDate)
	approverUserID := uuid.NewString()

	suite.mockObligationRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockObligationRepo.On("FindRequestByObligationID", ctx, obligation.ObligationID).Return(request, nil).Once()
	suite.mockObligationRepo.On("RecordApproval", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.Request")).Return(nil).Once()

	approveReq := dto.ApproveSaleRequest{
		PaymentTerms:  domain.TermsCurrent30,
		InvoiceNumber: "INV-2026-0042",
	}

	approved, err := suite.service.ApproveSale(ctx, obligation.ObligationID, approveReq, approverUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.ObligationOpen, approved.Status)
	suite.Require().NotNil(approved.DueDate)
	// 2026-01-01 + 30 credit days = 2026-01-31, snapped forward to the 5th
	suite.Equal(time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC), *approved.DueDate)
	suite.Equal(approverUserID, approved.LastUpdatedBy)

	suite.Require().NotNil(request.PaymentTerms)
	suite.Equal(domain.TermsCurrent30, *request.PaymentTerms)
	suite.Require().NotNil(request.InvoiceNumber)
	suite.Equal("INV-2026-0042", *request.InvoiceNumber)
	suite.Equal(domain.RequestApproved, request.Status)

	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveSale_MissingInvoiceNumber() {
	ctx := context.Background()

	_, err := suite.service.ApproveSale(ctx, "some-id", dto.ApproveSaleRequest{
		PaymentTerms:  domain.TermsCurrent30,
		InvoiceNumber: "   ",
	}, "approver-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInvoiceNumberRequired)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "FindObligationByID", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApproveSale_AlreadyOpen() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	obligation, request := suite.pendingSale(invoiceDate)
	obligation.Status = domain.ObligationOpen

	suite.mockObligationRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockObligationRepo.On("FindRequestByObligationID", ctx, obligation.ObligationID).Return(request, nil).Once()

	_, err := suite.service.ApproveSale(ctx, obligation.ObligationID, dto.ApproveSaleRequest{
		PaymentTerms:  domain.TermsCurrent15,
		InvoiceNumber: "INV-1",
	}, "approver-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "RecordApproval", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApproveSale_ConcurrentApproval() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	obligation, request := suite.pendingSale(invoiceDate)

	suite.mockObligationRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockObligationRepo.On("FindRequestByObligationID", ctx, obligation.ObligationID).Return(request, nil).Once()
	// Another approver won the compare-and-set between our read and write.
	suite.mockObligationRepo.On("RecordApproval", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.Request")).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ApproveSale(ctx, obligation.ObligationID, dto.ApproveSaleRequest{
		PaymentTerms:  domain.TermsCurrent30,
		InvoiceNumber: "INV-2",
	}, "approver-2")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApproveSale_WrongKind() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	obligation, request := suite.pendingSale(invoiceDate)
	request.Kind = domain.RequestKindPayment

	suite.mockObligationRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockObligationRepo.On("FindRequestByObligationID", ctx, obligation.ObligationID).Return(request, nil).Once()

	_, err := suite.service.ApproveSale(ctx, obligation.ObligationID, dto.ApproveSaleRequest{
		PaymentTerms:  domain.TermsCurrent30,
		InvoiceNumber: "INV-3",
	}, "approver-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotASale)
}

func (suite *ApprovalServiceTestSuite) TestApprovePaymentRequest_UsesSupplierTerms() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	obligation, request := suite.pendingSale(invoiceDate)
	request.Kind = domain.RequestKindPayment
	request.CounterpartyID = "supplier-1"

	supplier := &domain.Supplier{
		SupplierID:   "supplier-1",
		Name:         "Paper Co",
		PaymentTerms: domain.TermsCurrent15,
	}

	suite.mockObligationRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockObligationRepo.On("FindRequestByObligationID", ctx, obligation.ObligationID).Return(request, nil).Once()
	suite.mockOrgRepo.On("FindSupplierByID", ctx, "supplier-1").Return(supplier, nil).Once()
	suite.mockObligationRepo.On("RecordApproval", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.Request")).Return(nil).Once()

	approved, err := suite.service.ApprovePaymentRequest(ctx, obligation.ObligationID, "approver-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(approved.DueDate)
	// 2026-01-01 + 15 credit days = 2026-01-16, snapped forward to the 20th
	suite.Equal(time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), *approved.DueDate)
	// Payment requests never carry per-approval fields
	suite.Nil(request.InvoiceNumber)

	suite.mockOrgRepo.AssertExpectations(suite.T())
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	obligation, request := suite.pendingSale(invoiceDate)
	rejecterUserID := uuid.NewString()

	suite.mockObligationRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockObligationRepo.On("FindRequestByObligationID", ctx, obligation.ObligationID).Return(request, nil).Once()
	suite.mockObligationRepo.On("RecordRejection", ctx, mock.AnythingOfType("domain.Obligation"), mock.AnythingOfType("domain.Request")).Return(nil).Once()

	err := suite.service.Reject(ctx, obligation.ObligationID, dto.RejectRequest{Reason: "duplicate entry"}, rejecterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ObligationRejected, obligation.Status)
	suite.Equal(domain.RequestRejected, request.Status)
	suite.Require().NotNil(request.RejectionReason)
	suite.Equal("duplicate entry", *request.RejectionReason)
	suite.Require().NotNil(request.RejectedBy)
	suite.Equal(rejecterUserID, *request.RejectedBy)

	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestReject_EmptyReason() {
	ctx := context.Background()

	err := suite.service.Reject(ctx, "some-id", dto.RejectRequest{Reason: ""}, "rejecter-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrRejectionReasonRequired)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "RecordRejection", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestMarkPaid_RemovesAlert() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockObligationRepo.On("TransitionStatus", ctx, obligationID, domain.ObligationOpen, domain.ObligationPaid, "actor-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAlertSvc.On("RemoveAlertForObligation", ctx, obligationID).Return(nil).Once()

	err := suite.service.MarkPaid(ctx, obligationID, "actor-1")

	suite.Require().NoError(err)
	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockAlertSvc.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestMarkPaid_NotOpen() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockObligationRepo.On("TransitionStatus", ctx, obligationID, domain.ObligationOpen, domain.ObligationPaid, "actor-1", mock.AnythingOfType("time.Time")).Return(apperrors.ErrConflict).Once()

	err := suite.service.MarkPaid(ctx, obligationID, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAlertSvc.AssertNotCalled(suite.T(), "RemoveAlertForObligation", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestMarkPaid_AlertRemovalFails() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockObligationRepo.On("TransitionStatus", ctx, obligationID, domain.ObligationOpen, domain.ObligationPaid, "actor-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAlertSvc.On("RemoveAlertForObligation", ctx, obligationID).Return(errBoom).Once()

	err := suite.service.MarkPaid(ctx, obligationID, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, errBoom)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
