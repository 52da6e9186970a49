package engine

import (
	"fmt"
	"time"

	"empire-service/internal/repository/model"
)

// testEngine returns an engine with a counting ID source and a fixed clock
// so transitions are fully deterministic.
func testEngine() *Engine {
	n := 0
	return &Engine{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time {
			return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

func testWorld() *model.World {
	return &model.World{
		Id:       model.WorldId,
		Version:  1,
		Calendar: model.Calendar{Day: 1, Month: 1, Year: 1},
		Treasury: 1000,
		Countries: []model.Country{
			{Id: "A", Name: "Austrasie", RulerRole: RoleRoi, Treasury: 500},
			{Id: "B", Name: "Borée", RulerRole: RoleRoi, Treasury: 10},
		},
		Citizens: []model.Citizen{
			{Id: "alice", Name: "Alice", Role: RoleCitoyen, CountryId: "A", Balance: 100, Status: model.StatusActive},
			{Id: "bob", Name: "Bob", Role: RoleCitoyen, CountryId: "B", Balance: 50, Status: model.StatusActive},
			{Id: "kord", Name: "Kord", Role: RoleAdminLocal, CountryId: "A", Balance: 20, Status: model.StatusActive},
			{Id: "ruler-a", Name: "Sigebert", Role: RoleRoi, CountryId: "A", Balance: 200, Status: model.StatusActive},
			{Id: "imperator", Name: "Imperator", Role: RoleEmpereur, Balance: 10000, Status: model.StatusActive},
			{Id: "slave", Name: "Servius", Role: RoleEsclave, CountryId: "A", Balance: 0, Status: model.StatusActive, OwnerId: "ruler-a"},
		},
	}
}

func sessionFor(w *model.World, citizenId string) Session {
	c := w.Citizen(citizenId)
	return Session{Id: c.Id, Name: c.Name, Role: c.Role, CountryId: c.CountryId}
}

// totalValue sums every balance and treasury in the world; successful
// transfers must conserve it.
func totalValue(w *model.World) int64 {
	total := w.Treasury
	for _, c := range w.Countries {
		total += c.Treasury
	}
	for _, c := range w.Citizens {
		total += c.Balance
	}
	return total
}
