package mapping

import (
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	"github.com/Musoni/mifosx-sub001/internal/models"
)

// ToModelClosure converts a domain GLClosure to a model GLClosure.
func ToModelClosure(d domain.GLClosure) models.GLClosure {
	return models.GLClosure{
		ClosureID:   d.ClosureID,
		OfficeID:    d.OfficeID,
		OfficeName:  d.OfficeName,
		ClosingDate: d.ClosingDate,
		Comments:    d.Comments,
		IsDeleted:   d.Deleted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClosure converts a model GLClosure to a domain GLClosure.
func ToDomainClosure(m models.GLClosure) domain.GLClosure {
	return domain.GLClosure{
		ClosureID:   m.ClosureID,
		OfficeID:    m.OfficeID,
		OfficeName:  m.OfficeName,
		ClosingDate: m.ClosingDate,
		Comments:    m.Comments,
		Deleted:     m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClosureSlice converts a slice of model closures.
func ToDomainClosureSlice(ms []models.GLClosure) []domain.GLClosure {
	ds := make([]domain.GLClosure, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClosure(m)
	}
	return ds
}

// ToDomainBooking converts a model IncomeExpenseBooking to its domain form.
func ToDomainBooking(m models.IncomeExpenseBooking) domain.IncomeExpenseBooking {
	return domain.IncomeExpenseBooking{
		BookingID:     m.BookingID,
		ClosureID:     m.ClosureID,
		TransactionID: m.TransactionID,
		Reversed:      m.IsReversed,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccount converts a model GLAccount to its domain form.
func ToDomainAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		AccountID:   m.AccountID,
		Name:        m.Name,
		GLCode:      m.GLCode,
		AccountType: domain.GLAccountType(m.AccountType),
		Disabled:    m.IsDisabled,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOffice converts a model Office to its domain form.
func ToDomainOffice(m models.Office) domain.Office {
	return domain.Office{
		OfficeID:       m.OfficeID,
		Name:           m.Name,
		ParentOfficeID: m.ParentOfficeID,
		Hierarchy:      m.Hierarchy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
