package engine

// Reason is a stable machine-readable rejection code. The engine never
// formats human-readable messages; presentation belongs to the caller.
type Reason string

const (
	// Authorization rejections.
	ReasonForbidden         Reason = "forbidden"
	ReasonForbiddenGlobal   Reason = "forbidden_global"
	ReasonForbiddenDebit    Reason = "forbidden_debit"
	ReasonOutOfJurisdiction Reason = "out_of_jurisdiction"
	ReasonNoExitAuthority   Reason = "no_exit_authority"
	ReasonNoEntryAuthority  Reason = "no_entry_authority"

	// Law rejections.
	ReasonCloseBorders      Reason = "closeBorders"
	ReasonForbidExit        Reason = "forbidExit"
	ReasonCurrencyClosed    Reason = "currency_closed"
	ReasonAssetsFrozen      Reason = "assets_frozen"
	ReasonTreasuryProtected Reason = "treasury_protected"

	// Per-field citizen mutation rejections.
	ReasonConfiscationForbidden Reason = "confiscation_forbidden"
	ReasonPermissionsProtected  Reason = "permissions_protected"
	ReasonSaleForbidden         Reason = "sale_forbidden"
	ReasonOwnershipProtected    Reason = "ownership_protected"

	// Law rejections for the supplemented modules.
	ReasonCensored         Reason = "censored"
	ReasonWeaponsForbidden Reason = "weapons_forbidden"

	// Resource rejections.
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonCitizenNotFound   Reason = "citizen_not_found"
	ReasonMissingItem       Reason = "missing_item"
	ReasonInvalidStatus     Reason = "invalid_status"

	// Input rejections.
	ReasonIncomplete Reason = "incomplete"
)

// Rejection is a policy rejection, not a programming error. Every engine
// operation returns one before computing any mutation, so a rejected call
// never applies a partial state change.
type Rejection struct {
	Reason Reason
}

func (r *Rejection) Error() string {
	return string(r.Reason)
}

func reject(reason Reason) *Rejection {
	return &Rejection{Reason: reason}
}

// ReasonOf extracts the rejection code from an error, if it is one.
func ReasonOf(err error) (Reason, bool) {
	rej, ok := err.(*Rejection)
	if !ok {
		return "", false
	}
	return rej.Reason, true
}
