package engine

import (
	"empire-service/internal/repository/model"
	"empire-service/internal/utils"
)

// CreateDebt drafts a contract with the actor as creditor. The total owed is
// fixed at creation: principal plus interest, floored to integer currency.
func (e *Engine) CreateDebt(s Session, w *model.World, debtorId string, principal, interestRate int64, reason, dueDate string) (*model.World, model.DebtContract, error) {
	if principal <= 0 || interestRate < 0 || debtorId == "" {
		return nil, model.DebtContract{}, reject(ReasonIncomplete)
	}
	debtor := w.Citizen(debtorId)
	if debtor == nil {
		return nil, model.DebtContract{}, reject(ReasonCitizenNotFound)
	}

	debt := model.DebtContract{
		Id:           e.NewID(),
		CreditorId:   s.Id,
		CreditorName: s.Name,
		DebtorId:     debtor.Id,
		DebtorName:   debtor.Name,
		Principal:    principal,
		InterestRate: interestRate,
		TotalAmount:  principal * (100 + interestRate) / 100,
		Reason:       reason,
		DueDate:      dueDate,
		Status:       model.DebtDraft,
		Timestamp:    e.Now(),
	}

	next := w.Clone()
	next.Debts = append(next.Debts, debt)
	return next, debt, nil
}

// SignDebt activates a draft. Only the debtor may sign; signing disburses
// the principal from the creditor to the debtor with a ledger entry.
func (e *Engine) SignDebt(s Session, w *model.World, debtId string) (*model.World, model.DebtContract, error) {
	debt := w.Debt(debtId)
	if debt == nil {
		return nil, model.DebtContract{}, reject(ReasonIncomplete)
	}
	if s.Id != debt.DebtorId {
		return nil, model.DebtContract{}, reject(ReasonForbidden)
	}
	if debt.Status != model.DebtDraft {
		return nil, model.DebtContract{}, reject(ReasonInvalidStatus)
	}

	creditor := w.Citizen(debt.CreditorId)
	if creditor == nil {
		return nil, model.DebtContract{}, reject(ReasonCitizenNotFound)
	}
	if creditor.Balance < debt.Principal {
		return nil, model.DebtContract{}, reject(ReasonInsufficientFunds)
	}

	next := w.Clone()
	next.Citizen(debt.CreditorId).Balance -= debt.Principal
	next.Citizen(debt.DebtorId).Balance += debt.Principal

	updated := next.Debt(debtId)
	updated.Status = model.DebtActive
	updated.SignatureDate = utils.PointerOf(e.Now())

	next.Ledger = append(next.Ledger, model.LedgerEntry{
		Id:        e.NewID(),
		FromName:  debt.CreditorName,
		ToName:    debt.DebtorName,
		Amount:    debt.Principal,
		Timestamp: e.Now(),
	})
	return next, *updated, nil
}

// PayDebt settles an active contract in full: the debtor pays the total
// amount back to the creditor.
func (e *Engine) PayDebt(s Session, w *model.World, debtId string) (*model.World, model.DebtContract, error) {
	debt := w.Debt(debtId)
	if debt == nil {
		return nil, model.DebtContract{}, reject(ReasonIncomplete)
	}
	if s.Id != debt.DebtorId {
		return nil, model.DebtContract{}, reject(ReasonForbidden)
	}
	if debt.Status != model.DebtActive {
		return nil, model.DebtContract{}, reject(ReasonInvalidStatus)
	}

	debtor := w.Citizen(debt.DebtorId)
	if debtor == nil || w.Citizen(debt.CreditorId) == nil {
		return nil, model.DebtContract{}, reject(ReasonCitizenNotFound)
	}
	if debtor.Balance < debt.TotalAmount {
		return nil, model.DebtContract{}, reject(ReasonInsufficientFunds)
	}

	next := w.Clone()
	next.Citizen(debt.DebtorId).Balance -= debt.TotalAmount
	next.Citizen(debt.CreditorId).Balance += debt.TotalAmount

	updated := next.Debt(debtId)
	updated.Status = model.DebtPaid

	next.Ledger = append(next.Ledger, model.LedgerEntry{
		Id:        e.NewID(),
		FromName:  debt.DebtorName,
		ToName:    debt.CreditorName,
		Amount:    debt.TotalAmount,
		Timestamp: e.Now(),
	})
	return next, *updated, nil
}

// CancelDebt voids a draft or active contract. Only the creditor or a
// global authority may cancel; an active cancellation forgives the debt
// without refund.
func (e *Engine) CancelDebt(s Session, w *model.World, debtId string) (*model.World, model.DebtContract, error) {
	debt := w.Debt(debtId)
	if debt == nil {
		return nil, model.DebtContract{}, reject(ReasonIncomplete)
	}
	if s.Id != debt.CreditorId && !IsGlobalAuthority(s.Role) {
		return nil, model.DebtContract{}, reject(ReasonForbidden)
	}
	if debt.Status != model.DebtDraft && debt.Status != model.DebtActive {
		return nil, model.DebtContract{}, reject(ReasonInvalidStatus)
	}

	next := w.Clone()
	updated := next.Debt(debtId)
	updated.Status = model.DebtCancelled
	return next, *updated, nil
}
