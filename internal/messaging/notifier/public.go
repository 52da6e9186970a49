package notifier

import (
	"context"

	"empire-service/internal/repository/model"
)

type ChangeType string

const (
	ChangeCreate ChangeType = "CREATE"
	ChangeModify ChangeType = "MODIFY"
	ChangeDelete ChangeType = "DELETE"
)

// Notifier publishes world events for downstream consumers. Publishing is
// best-effort: the service logs failures but never rolls back state for
// them.
type Notifier interface {
	TravelRequestUpdate(ctx context.Context, req *model.TravelRequest, changeType ChangeType) error
	CitizenUpdate(ctx context.Context, citizen *model.Citizen, changeType ChangeType) error
	LedgerAppend(ctx context.Context, entries []model.LedgerEntry) error
	DayAdvanced(ctx context.Context, calendar model.Calendar) error
}
