package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"empire-service/internal/engine"
	"empire-service/internal/messaging/notifier"
	"empire-service/internal/repository"
	"empire-service/internal/repository/model"
)

// ErrConflict is returned when concurrent world updates exhausted the
// optimistic-concurrency retries.
var ErrConflict = errors.New("world update conflict, retries exhausted")

var errInvalidCredentials = &engine.Rejection{Reason: "invalid_credentials"}

const maxSaveAttempts = 3

// EmpireService orchestrates the read-modify-write cycle around the pure
// engine: read the latest snapshot, run a transition, write back with a
// compare-and-swap on the snapshot version, and publish the outcome.
type EmpireService struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
	notif  notifier.Notifier
	engine *engine.Engine
}

func NewEmpireService(logger *zap.SugaredLogger, repo repository.Repository, notif notifier.Notifier) *EmpireService {
	return &EmpireService{
		logger: logger,
		repo:   repo,
		notif:  notif,
		engine: engine.New(),
	}
}

// withWorld runs fn against the latest snapshot and persists its result.
// fn returning the input snapshot unchanged skips the write. A version
// conflict re-reads and re-runs fn on the fresh snapshot.
func (s *EmpireService) withWorld(ctx context.Context, fn func(w *model.World) (*model.World, error)) error {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		world, err := s.repo.GetWorld(ctx)
		if err != nil {
			return err
		}

		next, err := fn(world)
		if err != nil {
			return err
		}
		if next == nil || next == world {
			return nil
		}

		err = s.repo.SaveWorld(ctx, next, world.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		s.logger.Infow("world version conflict, retrying", "attempt", attempt+1)
	}
	return ErrConflict
}

func (s *EmpireService) GetWorld(ctx context.Context) (*model.World, error) {
	return s.repo.GetWorld(ctx)
}

// Login matches a citizen by name and password, producing the trusted
// session used by every other operation. Failures are opaque.
func (s *EmpireService) Login(ctx context.Context, name, password string) (engine.Session, error) {
	world, err := s.repo.GetWorld(ctx)
	if err != nil {
		return engine.Session{}, err
	}

	citizen := world.CitizenByName(name)
	if citizen == nil || citizen.PasswordHash == "" {
		return engine.Session{}, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(citizen.PasswordHash), []byte(password)) != nil {
		return engine.Session{}, errInvalidCredentials
	}

	return engine.Session{
		Id:        citizen.Id,
		Name:      citizen.Name,
		Role:      citizen.Role,
		CountryId: citizen.CountryId,
	}, nil
}

// CreateTravelRequest records the request whatever the gate decides: a
// rejected request is persisted with frozen validations as an audit trail,
// and the rejection is returned to the actor.
func (s *EmpireService) CreateTravelRequest(ctx context.Context, sess engine.Session, fromCountry, toCountry, toRegion string) (model.TravelRequest, error) {
	var req model.TravelRequest
	var gateErr error

	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next, created, err := s.engine.CreateTravelRequest(sess, w, fromCountry, toCountry, toRegion)
		req = created
		gateErr = err
		return next, nil
	})
	if err != nil {
		return model.TravelRequest{}, err
	}

	if err := s.notif.TravelRequestUpdate(ctx, &req, notifier.ChangeCreate); err != nil {
		s.logger.Errorw("error sending travel request notification", "error", err)
	}
	return req, gateErr
}

// ValidateTravelRequest advances a pending request by one validator step.
// On approval the entry visa fee is levied first; a citizen who cannot pay
// it fails the whole step with no state change.
func (s *EmpireService) ValidateTravelRequest(ctx context.Context, sess engine.Session, requestId string) (engine.ValidationResult, error) {
	var result engine.ValidationResult

	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next, res, err := s.engine.ValidateRequest(sess, w, requestId)
		if err != nil {
			return nil, err
		}

		// Entry fees apply to inter-nation entries only.
		if res.MoveCitizen && res.Request.FromCountry != res.Request.ToCountry {
			next, _, err = s.engine.ApplyEntryFee(next, res.Request.CitizenId, res.Request.ToCountry)
			if err != nil {
				return nil, err
			}
		}

		result = res
		return next, nil
	})
	if err != nil {
		return engine.ValidationResult{}, err
	}

	changeType := notifier.ChangeModify
	if result.MoveCitizen {
		changeType = notifier.ChangeDelete
	}
	if err := s.notif.TravelRequestUpdate(ctx, &result.Request, changeType); err != nil {
		s.logger.Errorw("error sending travel request notification", "error", err)
	}
	return result, nil
}

func (s *EmpireService) Transfer(ctx context.Context, sess engine.Session, source, target engine.AccountRef, amount int64) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry

	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next, appended, err := s.engine.Transfer(sess, w, source, target, amount)
		if err != nil {
			return nil, err
		}
		entries = appended
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.notif.LedgerAppend(ctx, entries); err != nil {
		s.logger.Errorw("error sending ledger notification", "error", err)
	}
	return entries, nil
}

// UpdateCitizen applies a citizen mutation. A non-empty password replaces
// the stored hash; it is a cosmetic field and never gated.
func (s *EmpireService) UpdateCitizen(ctx context.Context, sess engine.Session, form model.Citizen, password string) (model.Citizen, error) {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return model.Citizen{}, err
		}
		form.PasswordHash = string(hash)
	}

	created := false
	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		created = w.Citizen(form.Id) == nil
		if password == "" {
			if existing := w.Citizen(form.Id); existing != nil {
				form.PasswordHash = existing.PasswordHash
			}
		}
		return s.engine.UpdateCitizen(sess, w, form)
	})
	if err != nil {
		return model.Citizen{}, err
	}

	changeType := notifier.ChangeModify
	if created {
		changeType = notifier.ChangeCreate
	}
	if err := s.notif.CitizenUpdate(ctx, &form, changeType); err != nil {
		s.logger.Errorw("error sending citizen notification", "error", err)
	}
	return form, nil
}

func (s *EmpireService) AdvanceDay(ctx context.Context, sess engine.Session) (model.Calendar, error) {
	if !engine.IsGlobalAuthority(sess.Role) {
		return model.Calendar{}, &engine.Rejection{Reason: engine.ReasonForbidden}
	}

	var calendar model.Calendar
	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next := s.engine.AdvanceDay(w)
		calendar = next.Calendar
		return next, nil
	})
	if err != nil {
		return model.Calendar{}, err
	}

	if err := s.notif.DayAdvanced(ctx, calendar); err != nil {
		s.logger.Errorw("error sending calendar notification", "error", err)
	}
	return calendar, nil
}

func (s *EmpireService) CreateDebt(ctx context.Context, sess engine.Session, debtorId string, principal, interestRate int64, reason, dueDate string) (model.DebtContract, error) {
	var debt model.DebtContract
	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next, created, err := s.engine.CreateDebt(sess, w, debtorId, principal, interestRate, reason, dueDate)
		debt = created
		return next, err
	})
	return debt, err
}

func (s *EmpireService) SignDebt(ctx context.Context, sess engine.Session, debtId string) (model.DebtContract, error) {
	return s.debtTransition(ctx, debtId, func(w *model.World) (*model.World, model.DebtContract, error) {
		return s.engine.SignDebt(sess, w, debtId)
	})
}

func (s *EmpireService) PayDebt(ctx context.Context, sess engine.Session, debtId string) (model.DebtContract, error) {
	return s.debtTransition(ctx, debtId, func(w *model.World) (*model.World, model.DebtContract, error) {
		return s.engine.PayDebt(sess, w, debtId)
	})
}

func (s *EmpireService) CancelDebt(ctx context.Context, sess engine.Session, debtId string) (model.DebtContract, error) {
	return s.debtTransition(ctx, debtId, func(w *model.World) (*model.World, model.DebtContract, error) {
		return s.engine.CancelDebt(sess, w, debtId)
	})
}

// debtTransition shares the persist-and-publish tail of the debt state
// machine: any ledger entries the transition appended are published.
func (s *EmpireService) debtTransition(ctx context.Context, debtId string, fn func(w *model.World) (*model.World, model.DebtContract, error)) (model.DebtContract, error) {
	var debt model.DebtContract
	var entries []model.LedgerEntry

	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next, updated, err := fn(w)
		if err != nil {
			return nil, err
		}
		debt = updated
		entries = next.Ledger[len(w.Ledger):]
		return next, nil
	})
	if err != nil {
		return model.DebtContract{}, err
	}

	if len(entries) > 0 {
		if err := s.notif.LedgerAppend(ctx, entries); err != nil {
			s.logger.Errorw("error sending ledger notification", "error", err)
		}
	}
	return debt, nil
}

func (s *EmpireService) SendMessage(ctx context.Context, sess engine.Session, toCitizenId, body string) (model.Message, error) {
	var msg model.Message
	err := s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		next, sent, err := s.engine.SendMessage(sess, w, toCitizenId, body)
		msg = sent
		return next, err
	})
	return msg, err
}

func (s *EmpireService) GiveItem(ctx context.Context, sess engine.Session, fromCitizenId, toCitizenId, itemId string, qty int) error {
	return s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		return s.engine.GiveItem(sess, w, fromCitizenId, toCitizenId, itemId, qty)
	})
}

func (s *EmpireService) AddCustomRole(ctx context.Context, sess engine.Session, countryId string, role model.CustomRole) error {
	return s.withWorld(ctx, func(w *model.World) (*model.World, error) {
		return s.engine.AddCustomRole(sess, w, countryId, role)
	})
}
