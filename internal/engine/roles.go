package engine

import (
	"empire-service/internal/repository/model"
)

const (
	RoleEmpereur        = "EMPEREUR"
	RoleGrandFoncGlobal = "GRAND_FONC_GLOBAL"
	RoleRoi             = "ROI"
	RoleAdminLocal      = "ADMIN_LOCAL"
	RoleCitoyen         = "CITOYEN"
	RoleEsclave         = "ESCLAVE"
)

// localAdminLevel is the minimum role level for nation-local administrative
// actions (treasury debits, citizen mutations, visa validation on behalf of
// the nation).
const localAdminLevel = 40

type RoleInfo struct {
	Label string
	Level int
	Scope model.Scope
}

var baseRoles = map[string]RoleInfo{
	RoleEmpereur:        {Label: "Empereur", Level: 100, Scope: model.ScopeGlobal},
	RoleGrandFoncGlobal: {Label: "Grand Fonctionnaire Impérial", Level: 80, Scope: model.ScopeGlobal},
	RoleRoi:             {Label: "Roi", Level: 60, Scope: model.ScopeLocal},
	RoleAdminLocal:      {Label: "Administrateur Local", Level: 40, Scope: model.ScopeLocal},
	RoleCitoyen:         {Label: "Citoyen", Level: 10, Scope: model.ScopeNone},
	RoleEsclave:         {Label: "Esclave", Level: 0, Scope: model.ScopeNone},
}

// RoleFor resolves a role id against the base table, then against the
// nation's custom roles. Unknown roles resolve to level 0 / scope NONE, so
// an unrecognized actor can never pass an authority check.
func RoleFor(w *model.World, role string, countryId string) RoleInfo {
	if info, ok := baseRoles[role]; ok {
		return info
	}
	if countryId != "" {
		if country := w.Country(countryId); country != nil {
			for _, cr := range country.CustomRoles {
				if cr.Id == role && cr.Type == model.CustomRoleTypeRole {
					return RoleInfo{Label: cr.Name, Level: cr.Level, Scope: model.ScopeLocal}
				}
			}
		}
	}
	return RoleInfo{Scope: model.ScopeNone}
}

// IsGlobalAuthority reports whether the role has empire-wide jurisdiction.
// Only base roles can be global; custom roles are always nation-scoped.
func IsGlobalAuthority(role string) bool {
	return baseRoles[role].Scope == model.ScopeGlobal
}

// HasLocalAuthorityOver reports whether the session holds administrative
// jurisdiction over the target nation: a sufficient role level within its
// own nation, and that nation is the target.
func HasLocalAuthorityOver(w *model.World, s Session, targetCountryId string) bool {
	if targetCountryId == "" || s.CountryId != targetCountryId {
		return false
	}
	return RoleFor(w, s.Role, s.CountryId).Level >= localAdminLevel
}

// isAdministrative reports membership in the administrative set used by the
// transfer engine: global authority or a local role at or above the
// local-admin threshold.
func isAdministrative(w *model.World, s Session) bool {
	if IsGlobalAuthority(s.Role) {
		return true
	}
	return RoleFor(w, s.Role, s.CountryId).Level >= localAdminLevel
}

// AddCustomRole registers a nation-defined role or status. A type ROLE entry
// must stay strictly below the creator's own level at creation time.
func (e *Engine) AddCustomRole(s Session, w *model.World, countryId string, cr model.CustomRole) (*model.World, error) {
	if cr.Id == "" || cr.Name == "" {
		return nil, reject(ReasonIncomplete)
	}

	if !IsGlobalAuthority(s.Role) && !HasLocalAuthorityOver(w, s, countryId) {
		return nil, reject(ReasonForbidden)
	}

	if cr.Type == model.CustomRoleTypeRole {
		creator := RoleFor(w, s.Role, s.CountryId)
		if cr.Level >= creator.Level {
			return nil, reject(ReasonForbidden)
		}
	}

	if w.Country(countryId) == nil {
		return nil, reject(ReasonOutOfJurisdiction)
	}

	next := w.Clone()
	country := next.Country(countryId)
	for i := range country.CustomRoles {
		if country.CustomRoles[i].Id == cr.Id {
			country.CustomRoles[i] = cr
			return next, nil
		}
	}
	country.CustomRoles = append(country.CustomRoles, cr)
	return next, nil
}
