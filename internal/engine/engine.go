package engine

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated actor, supplied by the identity layer and
// treated as trusted input.
type Session struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CountryId string `json:"countryId"`
}

// Engine hosts the pure state-transition rules. ID and clock sources are
// injected so tests are deterministic; apart from those two fields every
// method is a pure function of its arguments.
type Engine struct {
	NewID func() string
	Now   func() time.Time
}

func New() *Engine {
	return &Engine{
		NewID: uuid.NewString,
		Now:   time.Now,
	}
}
