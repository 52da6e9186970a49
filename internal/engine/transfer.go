package engine

import (
	"fmt"
	"strings"

	"empire-service/internal/repository/model"
)

type AccountKind string

const (
	AccountGlobal  AccountKind = "GLOBAL"
	AccountCountry AccountKind = "COUNTRY"
	AccountCitizen AccountKind = "CITIZEN"
)

// AccountRef names one of the three account kinds: the imperial treasury,
// a nation treasury, or a citizen balance.
type AccountRef struct {
	Kind AccountKind
	Id   string
}

// ParseAccountRef decodes "GLOBAL", "COUNTRY:<id>" or "CITIZEN:<id>".
func ParseAccountRef(raw string) (AccountRef, error) {
	if raw == string(AccountGlobal) {
		return AccountRef{Kind: AccountGlobal}, nil
	}
	kind, id, ok := strings.Cut(raw, ":")
	if !ok || id == "" {
		return AccountRef{}, fmt.Errorf("malformed account ref %q", raw)
	}
	switch AccountKind(kind) {
	case AccountCountry, AccountCitizen:
		return AccountRef{Kind: AccountKind(kind), Id: id}, nil
	}
	return AccountRef{}, fmt.Errorf("unknown account kind %q", kind)
}

func (r AccountRef) String() string {
	if r.Kind == AccountGlobal {
		return string(AccountGlobal)
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.Id)
}

// nationOf resolves the nation an account belongs to; the imperial treasury
// belongs to no nation.
func nationOf(w *model.World, ref AccountRef) string {
	switch ref.Kind {
	case AccountCountry:
		return ref.Id
	case AccountCitizen:
		if c := w.Citizen(ref.Id); c != nil {
			return c.CountryId
		}
	}
	return ""
}

func displayName(w *model.World, ref AccountRef) string {
	switch ref.Kind {
	case AccountGlobal:
		return "Empire"
	case AccountCountry:
		if c := w.Country(ref.Id); c != nil {
			return c.Name
		}
	case AccountCitizen:
		if c := w.Citizen(ref.Id); c != nil {
			return c.Name
		}
	}
	return ref.String()
}

// Transfer validates and applies a point-to-point value movement between two
// accounts. The pipeline fails fast, first violation winning, and nothing is
// applied on failure. Every applied movement appends exactly one ledger
// entry; a foreign-transfer tax appends a second one.
func (e *Engine) Transfer(s Session, w *model.World, source, target AccountRef, amount int64) (*model.World, []model.LedgerEntry, error) {
	if amount <= 0 || source.Kind == "" || target.Kind == "" {
		return nil, nil, reject(ReasonIncomplete)
	}
	if source.Kind != AccountGlobal && source.Id == "" || target.Kind != AccountGlobal && target.Id == "" {
		return nil, nil, reject(ReasonIncomplete)
	}

	global := IsGlobalAuthority(s.Role)

	switch source.Kind {
	case AccountGlobal:
		if !global {
			return nil, nil, reject(ReasonForbiddenGlobal)
		}

	case AccountCitizen:
		if source.Id != s.Id {
			if !isAdministrative(w, s) {
				return nil, nil, reject(ReasonForbiddenDebit)
			}
			debited := w.Citizen(source.Id)
			if debited == nil {
				return nil, nil, reject(ReasonCitizenNotFound)
			}
			if !global && debited.CountryId != s.CountryId {
				debitedCountry := w.Country(debited.CountryId)
				if debitedCountry == nil || !debitedCountry.Laws.AllowExternalDebits {
					return nil, nil, reject(ReasonOutOfJurisdiction)
				}
			}
		}

	case AccountCountry:
		if !isAdministrative(w, s) {
			return nil, nil, reject(ReasonTreasuryProtected)
		}
		if !global && source.Id != s.CountryId {
			return nil, nil, reject(ReasonOutOfJurisdiction)
		}
	}

	// A nation that froze assets blocks its own citizens from spending.
	if source.Kind == AccountCitizen && source.Id == s.Id && !global {
		if actorCountry := w.Country(s.CountryId); actorCountry != nil && actorCountry.Laws.FreezeAssets {
			return nil, nil, reject(ReasonAssetsFrozen)
		}
	}

	sourceNation := nationOf(w, source)
	targetNation := nationOf(w, target)
	if targetNation != "" && sourceNation != targetNation {
		if tc := w.Country(targetNation); tc != nil && tc.Laws.ClosedCurrency {
			return nil, nil, reject(ReasonCurrencyClosed)
		}
	}

	// Sufficiency is pre-checked, never clamped: no balance or treasury may
	// go negative as a result of a validated transfer.
	switch source.Kind {
	case AccountCitizen:
		citizen := w.Citizen(source.Id)
		if citizen == nil {
			return nil, nil, reject(ReasonCitizenNotFound)
		}
		if citizen.Balance < amount {
			return nil, nil, reject(ReasonInsufficientFunds)
		}
	case AccountCountry:
		country := w.Country(source.Id)
		if country == nil {
			return nil, nil, reject(ReasonOutOfJurisdiction)
		}
		if country.Treasury < amount {
			return nil, nil, reject(ReasonInsufficientFunds)
		}
	case AccountGlobal:
		if w.Treasury < amount {
			return nil, nil, reject(ReasonInsufficientFunds)
		}
	}

	if target.Kind == AccountCitizen && w.Citizen(target.Id) == nil {
		return nil, nil, reject(ReasonCitizenNotFound)
	}
	if target.Kind == AccountCountry && w.Country(target.Id) == nil {
		return nil, nil, reject(ReasonOutOfJurisdiction)
	}

	next := w.Clone()
	e.debit(next, source, amount)
	e.credit(next, target, amount)

	entries := []model.LedgerEntry{{
		Id:        e.NewID(),
		FromName:  displayName(w, source),
		ToName:    displayName(w, target),
		Amount:    amount,
		Timestamp: e.Now(),
	}}

	// Foreign-transfer tax: a flat 10% of the amount, rounded to nearest,
	// levied on the receiving citizen after the credit. The original rules
	// have no floor at zero here; a small balance can go negative and is
	// treated as a debt.
	if target.Kind == AccountCitizen && targetNation != "" && sourceNation != targetNation {
		if tc := next.Country(targetNation); tc != nil && tc.Laws.TaxForeignTransfers {
			tax := (amount + 5) / 10
			next.Citizen(target.Id).Balance -= tax
			tc.Treasury += tax
			entries = append(entries, model.LedgerEntry{
				Id:        e.NewID(),
				FromName:  fmt.Sprintf("Taxe (%s)", tc.Name),
				ToName:    tc.Name,
				Amount:    tax,
				Timestamp: e.Now(),
			})
		}
	}

	next.Ledger = append(next.Ledger, entries...)
	return next, entries, nil
}

func (e *Engine) debit(w *model.World, ref AccountRef, amount int64) {
	switch ref.Kind {
	case AccountGlobal:
		w.Treasury -= amount
	case AccountCountry:
		w.Country(ref.Id).Treasury -= amount
	case AccountCitizen:
		w.Citizen(ref.Id).Balance -= amount
	}
}

func (e *Engine) credit(w *model.World, ref AccountRef, amount int64) {
	switch ref.Kind {
	case AccountGlobal:
		w.Treasury += amount
	case AccountCountry:
		w.Country(ref.Id).Treasury += amount
	case AccountCitizen:
		w.Citizen(ref.Id).Balance += amount
	}
}
