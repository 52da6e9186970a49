package engine

import (
	"empire-service/internal/repository/model"
)

// AdvanceDay increments the world calendar: fixed 30-day months, 12-month
// years.
func (e *Engine) AdvanceDay(w *model.World) *model.World {
	next := w.Clone()
	next.Calendar.Day++
	if next.Calendar.Day > 30 {
		next.Calendar.Day = 1
		next.Calendar.Month++
	}
	if next.Calendar.Month > 12 {
		next.Calendar.Month = 1
		next.Calendar.Year++
	}
	return next
}
