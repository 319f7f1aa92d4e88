package mapping

import (
	"github.com/finovabs/backoffice_app/internal/core/domain"
	"github.com/finovabs/backoffice_app/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID: d.ObligationID,
		Amount:       d.Amount,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		Description:  d.Description,
		AlertID:      d.AlertID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainObligation converts a model Obligation to a domain Obligation
func ToDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID: m.ObligationID,
		Amount:       m.Amount,
		DueDate:      m.DueDate,
		Status:       domain.ObligationStatus(m.Status),
		Description:  m.Description,
		AlertID:      m.AlertID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRequest converts a domain Request to a model Request
func ToModelRequest(d domain.Request) models.Request {
	var terms *string
	if d.PaymentTerms != nil {
		value := string(*d.PaymentTerms)
		terms = &value
	}
	return models.Request{
		RequestID:       d.RequestID,
		ObligationID:    d.ObligationID,
		Kind:            string(d.Kind),
		Status:          string(d.Status),
		BranchID:        d.BranchID,
		CounterpartyID:  d.CounterpartyID,
		InvoiceDate:     d.InvoiceDate,
		PaymentTerms:    terms,
		InvoiceNumber:   d.InvoiceNumber,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectedBy:      d.RejectedBy,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRequest converts a model Request to a domain Request
func ToDomainRequest(m models.Request) domain.Request {
	var terms *domain.PaymentTerms
	if m.PaymentTerms != nil {
		value := domain.PaymentTerms(*m.PaymentTerms)
		terms = &value
	}
	return domain.Request{
		RequestID:       m.RequestID,
		ObligationID:    m.ObligationID,
		Kind:            domain.RequestKind(m.Kind),
		Status:          domain.RequestStatus(m.Status),
		BranchID:        m.BranchID,
		CounterpartyID:  m.CounterpartyID,
		InvoiceDate:     m.InvoiceDate,
		PaymentTerms:    terms,
		InvoiceNumber:   m.InvoiceNumber,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectedBy:      m.RejectedBy,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
