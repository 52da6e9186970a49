package engine

import (
	"empire-service/internal/repository/model"
)

// CanCreateTravelRequest is the creation gate, evaluated in order with the
// first match winning. Global authorities are NOT exempt from closeBorders
// here, although they are at entry-validation time; the asymmetry is kept
// deliberately (a pending request can be forced through, a new one cannot
// be originated against closed borders).
func (e *Engine) CanCreateTravelRequest(s Session, source, target *model.Country) error {
	if target != nil && target.Laws.CloseBorders {
		return reject(ReasonCloseBorders)
	}
	if source != nil && source.Laws.ForbidExit && !IsGlobalAuthority(s.Role) {
		return reject(ReasonForbidExit)
	}
	return nil
}

// CreateTravelRequest runs the creation gate and appends the request. A
// gated-out request is still recorded, already REJECTED with validations
// frozen at 0/0, as an audit trail; the rejection is returned alongside.
func (e *Engine) CreateTravelRequest(s Session, w *model.World, fromCountry, toCountry, toRegion string) (*model.World, model.TravelRequest, error) {
	req := model.TravelRequest{
		Id:          e.NewID(),
		CitizenId:   s.Id,
		CitizenName: s.Name,
		FromCountry: fromCountry,
		ToCountry:   toCountry,
		ToRegion:    toRegion,
		Status:      model.RequestPending,
		Timestamp:   e.Now(),
	}

	err := e.CanCreateTravelRequest(s, w.Country(fromCountry), w.Country(toCountry))
	if err != nil {
		req.Status = model.RequestRejected
	}

	next := w.Clone()
	next.TravelRequests = append(next.TravelRequests, req)
	return next, req, err
}

// ApplyEntryFee debits the target nation's entry visa fee from the citizen
// and credits the nation's treasury. A fee of zero (or no law at all) is a
// no-op success returning the input state unchanged.
func (e *Engine) ApplyEntryFee(w *model.World, citizenId, toCountryId string) (*model.World, int64, error) {
	country := w.Country(toCountryId)
	if country == nil || country.Laws.EntryVisaFee <= 0 {
		return w, 0, nil
	}
	fee := country.Laws.EntryVisaFee

	citizen := w.Citizen(citizenId)
	if citizen == nil {
		return nil, 0, reject(ReasonCitizenNotFound)
	}
	if citizen.Balance < fee {
		return nil, 0, reject(ReasonInsufficientFunds)
	}

	next := w.Clone()
	next.Citizen(citizenId).Balance -= fee
	next.Country(toCountryId).Treasury += fee
	return next, fee, nil
}

// ValidationResult is the outcome of a single validator step.
type ValidationResult struct {
	Request model.TravelRequest
	// MoveCitizen is set when the request reached APPROVED and the citizen
	// must be relocated and the request retired from the pending set.
	MoveCitizen bool
}

// ValidateRequest advances a pending request by one validator step:
// exit validation first, then entry validation. Laws are re-checked here
// even though they were checked at creation, because they may have changed
// while the request was pending. The returned world has the request updated
// in place; on MoveCitizen it also has the citizen relocated and the
// request removed.
func (e *Engine) ValidateRequest(s Session, w *model.World, requestId string) (*model.World, ValidationResult, error) {
	req := w.TravelRequest(requestId)
	if req == nil {
		return nil, ValidationResult{}, reject(ReasonIncomplete)
	}
	if req.Status != model.RequestPending {
		return nil, ValidationResult{}, reject(ReasonInvalidStatus)
	}

	// Intra-nation moves need no authority at all.
	if req.FromCountry == req.ToCountry {
		next := w.Clone()
		updated := next.TravelRequest(requestId)
		updated.Validations.Exit = true
		updated.Validations.Entry = true
		updated.Status = model.RequestApproved
		result := ValidationResult{Request: *updated, MoveCitizen: true}
		e.completeRelocation(next, result.Request)
		return next, result, nil
	}

	if !req.Validations.Exit {
		source := w.Country(req.FromCountry)
		if source != nil && source.Laws.ForbidExit && !IsGlobalAuthority(s.Role) {
			return nil, ValidationResult{}, reject(ReasonForbidExit)
		}
		if !IsGlobalAuthority(s.Role) && s.CountryId != req.FromCountry {
			return nil, ValidationResult{}, reject(ReasonNoExitAuthority)
		}

		next := w.Clone()
		updated := next.TravelRequest(requestId)
		updated.Validations.Exit = true
		return next, ValidationResult{Request: *updated}, nil
	}

	target := w.Country(req.ToCountry)
	if target != nil && target.Laws.CloseBorders && !IsGlobalAuthority(s.Role) {
		return nil, ValidationResult{}, reject(ReasonCloseBorders)
	}
	if !IsGlobalAuthority(s.Role) && s.CountryId != req.ToCountry {
		return nil, ValidationResult{}, reject(ReasonNoEntryAuthority)
	}

	next := w.Clone()
	updated := next.TravelRequest(requestId)
	updated.Validations.Entry = true
	updated.Status = model.RequestApproved
	result := ValidationResult{Request: *updated, MoveCitizen: true}
	e.completeRelocation(next, result.Request)
	return next, result, nil
}

// completeRelocation applies the caller contract for an approved request:
// the citizen's nation changes and the request leaves the active set.
func (e *Engine) completeRelocation(w *model.World, req model.TravelRequest) {
	if citizen := w.Citizen(req.CitizenId); citizen != nil {
		citizen.CountryId = req.ToCountry
	}
	w.RemoveTravelRequest(req.Id)
}
