package engine

import (
	"strings"

	"empire-service/internal/repository/model"
)

// isWeapon: weapon items share an id prefix in the item catalog.
func isWeapon(itemId string) bool {
	return strings.HasPrefix(itemId, "weapon_")
}

// GiveItem moves inventory between citizens. The giver acts for themself,
// or an administrator acts on their behalf; weapons cannot enter a nation
// that has not legalized them.
func (e *Engine) GiveItem(s Session, w *model.World, fromCitizenId, toCitizenId, itemId string, qty int) (*model.World, error) {
	if qty <= 0 || itemId == "" || fromCitizenId == "" || toCitizenId == "" {
		return nil, reject(ReasonIncomplete)
	}
	if s.Id != fromCitizenId && !isAdministrative(w, s) {
		return nil, reject(ReasonForbidden)
	}

	giver := w.Citizen(fromCitizenId)
	receiver := w.Citizen(toCitizenId)
	if giver == nil || receiver == nil {
		return nil, reject(ReasonCitizenNotFound)
	}

	if isWeapon(itemId) && !IsGlobalAuthority(s.Role) {
		if country := w.Country(receiver.CountryId); country != nil && !country.Laws.AllowWeapons {
			return nil, reject(ReasonWeaponsForbidden)
		}
	}

	held := 0
	for _, item := range giver.Inventory {
		if item.ItemId == itemId {
			held = item.Qty
			break
		}
	}
	if held < qty {
		return nil, reject(ReasonMissingItem)
	}

	next := w.Clone()
	removeItems(next.Citizen(fromCitizenId), itemId, qty)
	addItems(next.Citizen(toCitizenId), itemId, qty)
	return next, nil
}

func removeItems(c *model.Citizen, itemId string, qty int) {
	for i := range c.Inventory {
		if c.Inventory[i].ItemId != itemId {
			continue
		}
		c.Inventory[i].Qty -= qty
		if c.Inventory[i].Qty <= 0 {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		}
		return
	}
}

func addItems(c *model.Citizen, itemId string, qty int) {
	for i := range c.Inventory {
		if c.Inventory[i].ItemId == itemId {
			c.Inventory[i].Qty += qty
			return
		}
	}
	c.Inventory = append(c.Inventory, model.InventoryItem{ItemId: itemId, Qty: qty})
}
