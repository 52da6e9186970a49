package engine

import (
	"empire-service/internal/repository/model"
)

// sensitiveChanges lists which guarded fields differ between the existing
// record and the incoming one.
type sensitiveChanges struct {
	balance     bool
	permissions bool
	sale        bool
	ownership   bool
	status      bool
}

func (c sensitiveChanges) any() bool {
	return c.balance || c.permissions || c.sale || c.ownership || c.status
}

func diffSensitive(existing, form *model.Citizen) sensitiveChanges {
	return sensitiveChanges{
		balance:     existing.Balance != form.Balance,
		permissions: existing.Permissions != form.Permissions,
		sale:        existing.IsForSale != form.IsForSale || existing.SalePrice != form.SalePrice,
		ownership:   existing.OwnerId != form.OwnerId,
		status:      existing.Status != form.Status,
	}
}

// UpdateCitizen applies a citizen record mutation. Cosmetic fields (name,
// bio, avatar, occupation, password) always pass through; changes to the
// sensitive fields (balance, ownership, status, permissions, sale listing)
// are guarded by actor authority, target jurisdiction and the target
// nation's laws. Any unmet condition aborts the whole update, so a record
// is never partially applied.
func (e *Engine) UpdateCitizen(s Session, w *model.World, form model.Citizen) (*model.World, error) {
	if form.Id == "" {
		return nil, reject(ReasonIncomplete)
	}

	existing := w.Citizen(form.Id)
	if existing == nil {
		// New record: the creation path is role-gated upstream, sensitive
		// checks do not apply.
		next := w.Clone()
		next.Citizens = append(next.Citizens, form)
		return next, nil
	}

	changes := diffSensitive(existing, &form)
	if !changes.any() {
		return e.applyCitizen(w, form), nil
	}

	global := IsGlobalAuthority(s.Role)
	self := s.Id == existing.Id
	if !self && !global && !HasLocalAuthorityOver(w, s, existing.CountryId) {
		return nil, reject(ReasonForbidden)
	}

	if !global {
		var laws model.Laws
		var rulerRole string
		if country := w.Country(existing.CountryId); country != nil {
			laws = country.Laws
			rulerRole = country.RulerRole
		}
		owner := existing.OwnerId != "" && s.Id == existing.OwnerId

		if changes.balance {
			if !laws.AllowLocalConfiscation {
				return nil, reject(ReasonConfiscationForbidden)
			}
			if existing.CountryId != s.CountryId && !laws.AllowExternalDebits {
				return nil, reject(ReasonOutOfJurisdiction)
			}
		}

		if changes.permissions {
			if !owner && !laws.AllowPermissionEditsByLocalAdmins {
				return nil, reject(ReasonPermissionsProtected)
			}
		}

		if changes.sale {
			allowed := owner
			if !allowed && laws.AllowLocalSales && !laws.BanPublicSlaveMarket {
				allowed = !laws.RequireRulerApprovalForSales || s.Role == rulerRole
			}
			if !allowed {
				return nil, reject(ReasonSaleForbidden)
			}
		}

		if changes.ownership || changes.status {
			allowed := owner || laws.AllowLocalConfiscation
			// A slave may free themself where the nation permits it.
			if !allowed && self && changes.ownership && !changes.status &&
				existing.OwnerId != "" && form.OwnerId == "" && laws.AllowSelfManumission {
				allowed = true
			}
			if !allowed {
				return nil, reject(ReasonOwnershipProtected)
			}
		}
	}

	return e.applyCitizen(w, form), nil
}

func (e *Engine) applyCitizen(w *model.World, form model.Citizen) *model.World {
	next := w.Clone()
	*next.Citizen(form.Id) = form
	return next
}
