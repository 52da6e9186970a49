package model

import (
	"time"
)

const WorldId = "world"

// Scope determines whether a role's authority applies empire-wide or only
// within the holder's own nation.
type Scope string

const (
	ScopeGlobal Scope = "GLOBAL"
	ScopeLocal  Scope = "LOCAL"
	ScopeNone   Scope = "NONE"
)

type CustomRoleType string

const (
	CustomRoleTypeRole   CustomRoleType = "ROLE"
	CustomRoleTypeStatus CustomRoleType = "STATUS"
)

// CustomRole is a nation-defined extension of the base role table. Type ROLE
// entries carry LOCAL-scoped authority; type STATUS entries are labels only.
type CustomRole struct {
	Id           string         `bson:"_id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Type         CustomRoleType `bson:"type" json:"type"`
	Level        int            `bson:"level" json:"level"`
	IsRestricted bool           `bson:"isRestricted" json:"isRestricted"`
}

// Laws is a nation's policy flag set. The zero value is the permissive
// default for every flag: an absent law never restricts anything.
type Laws struct {
	CloseBorders                      bool  `bson:"closeBorders,omitempty" json:"closeBorders,omitempty"`
	ForbidExit                        bool  `bson:"forbidExit,omitempty" json:"forbidExit,omitempty"`
	EntryVisaFee                      int64 `bson:"entryVisaFee,omitempty" json:"entryVisaFee,omitempty"`
	AllowWeapons                      bool  `bson:"allowWeapons,omitempty" json:"allowWeapons,omitempty"`
	ClosedCurrency                    bool  `bson:"closedCurrency,omitempty" json:"closedCurrency,omitempty"`
	TaxForeignTransfers               bool  `bson:"taxForeignTransfers,omitempty" json:"taxForeignTransfers,omitempty"`
	FreezeAssets                      bool  `bson:"freezeAssets,omitempty" json:"freezeAssets,omitempty"`
	AllowExternalDebits               bool  `bson:"allowExternalDebits,omitempty" json:"allowExternalDebits,omitempty"`
	AllowLocalConfiscation            bool  `bson:"allowLocalConfiscation,omitempty" json:"allowLocalConfiscation,omitempty"`
	AllowLocalSales                   bool  `bson:"allowLocalSales,omitempty" json:"allowLocalSales,omitempty"`
	RequireRulerApprovalForSales      bool  `bson:"requireRulerApprovalForSales,omitempty" json:"requireRulerApprovalForSales,omitempty"`
	BanPublicSlaveMarket              bool  `bson:"banPublicSlaveMarket,omitempty" json:"banPublicSlaveMarket,omitempty"`
	AllowSelfManumission              bool  `bson:"allowSelfManumission,omitempty" json:"allowSelfManumission,omitempty"`
	MailCensorship                    bool  `bson:"mailCensorship,omitempty" json:"mailCensorship,omitempty"`
	AllowPermissionEditsByLocalAdmins bool  `bson:"allowPermissionEditsByLocalAdmins,omitempty" json:"allowPermissionEditsByLocalAdmins,omitempty"`
}

type Country struct {
	Id          string       `bson:"_id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	RulerRole   string       `bson:"rulerRole,omitempty" json:"rulerRole,omitempty"`
	Treasury    int64        `bson:"treasury" json:"treasury"`
	Laws        Laws         `bson:"laws" json:"laws"`
	CustomRoles []CustomRole `bson:"customRoles,omitempty" json:"customRoles,omitempty"`
}

// Permissions is only meaningful while the citizen is enslaved
// (OwnerId non-empty).
type Permissions struct {
	Post   bool `bson:"post" json:"post"`
	Bank   bool `bson:"bank" json:"bank"`
	Travel bool `bson:"travel" json:"travel"`
}

type InventoryItem struct {
	ItemId string `bson:"itemId" json:"itemId"`
	Qty    int    `bson:"qty" json:"qty"`
}

type Citizen struct {
	Id          string          `bson:"_id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Role        string          `bson:"role" json:"role"`
	CountryId   string          `bson:"countryId,omitempty" json:"countryId,omitempty"` // empty = Empire at large
	Balance     int64           `bson:"balance" json:"balance"`
	Status      string          `bson:"status" json:"status"`
	OwnerId     string          `bson:"ownerId,omitempty" json:"ownerId,omitempty"` // non-empty = enslaved
	Permissions Permissions     `bson:"permissions" json:"permissions"`
	IsForSale   bool            `bson:"isForSale,omitempty" json:"isForSale,omitempty"`
	SalePrice   int64           `bson:"salePrice,omitempty" json:"salePrice,omitempty"`
	Inventory   []InventoryItem `bson:"inventory,omitempty" json:"inventory,omitempty"`

	Bio          string `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar       string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Occupation   string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	PasswordHash string `bson:"passwordHash,omitempty" json:"-"`
}

const (
	StatusActive   = "Actif"
	StatusSick     = "Malade"
	StatusPrisoner = "Prisonnier"
	StatusBanished = "Banni"
	StatusDeceased = "Décédé"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type Validations struct {
	Exit  bool `bson:"exit" json:"exit"`
	Entry bool `bson:"entry" json:"entry"`
}

type TravelRequest struct {
	Id          string        `bson:"_id" json:"id"`
	CitizenId   string        `bson:"citizenId" json:"citizenId"`
	CitizenName string        `bson:"citizenName" json:"citizenName"`
	FromCountry string        `bson:"fromCountry" json:"fromCountry"`
	ToCountry   string        `bson:"toCountry" json:"toCountry"`
	ToRegion    string        `bson:"toRegion,omitempty" json:"toRegion,omitempty"`
	Status      RequestStatus `bson:"status" json:"status"`
	Validations Validations   `bson:"validations" json:"validations"`
	Timestamp   time.Time     `bson:"timestamp" json:"timestamp"`
}

// LedgerEntry is append-only: the engine never mutates or deletes one.
type LedgerEntry struct {
	Id        string    `bson:"_id" json:"id"`
	FromName  string    `bson:"fromName" json:"fromName"`
	ToName    string    `bson:"toName" json:"toName"`
	Amount    int64     `bson:"amount" json:"amount"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type DebtStatus string

const (
	DebtDraft     DebtStatus = "DRAFT"
	DebtActive    DebtStatus = "ACTIVE"
	DebtPaid      DebtStatus = "PAID"
	DebtCancelled DebtStatus = "CANCELLED"
)

type DebtContract struct {
	Id            string     `bson:"_id" json:"id"`
	CreditorId    string     `bson:"creditorId" json:"creditorId"`
	CreditorName  string     `bson:"creditorName" json:"creditorName"`
	DebtorId      string     `bson:"debtorId" json:"debtorId"`
	DebtorName    string     `bson:"debtorName" json:"debtorName"`
	Principal     int64      `bson:"principal" json:"principal"`
	InterestRate  int64      `bson:"interestRate" json:"interestRate"`
	TotalAmount   int64      `bson:"totalAmount" json:"totalAmount"`
	Reason        string     `bson:"reason,omitempty" json:"reason,omitempty"`
	DueDate       string     `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Status        DebtStatus `bson:"status" json:"status"`
	Timestamp     time.Time  `bson:"timestamp" json:"timestamp"`
	SignatureDate *time.Time `bson:"signatureDate,omitempty" json:"signatureDate,omitempty"`
}

type Message struct {
	Id        string    `bson:"_id" json:"id"`
	FromId    string    `bson:"fromId" json:"fromId"`
	FromName  string    `bson:"fromName" json:"fromName"`
	ToId      string    `bson:"toId" json:"toId"`
	Body      string    `bson:"body" json:"body"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Calendar struct {
	Day   int `bson:"day" json:"day"`
	Month int `bson:"month" json:"month"`
	Year  int `bson:"year" json:"year"`
}

// World is the full game-state snapshot. It is stored as a single versioned
// document; Version is bumped on every save and used for compare-and-swap.
type World struct {
	Id       string   `bson:"_id" json:"id"`
	Version  uint64   `bson:"version" json:"version"`
	Calendar Calendar `bson:"calendar" json:"calendar"`

	// Treasury is the imperial (global) treasury.
	Treasury int64 `bson:"treasury" json:"treasury"`

	Countries      []Country       `bson:"countries" json:"countries"`
	Citizens       []Citizen       `bson:"citizens" json:"citizens"`
	TravelRequests []TravelRequest `bson:"travelRequests" json:"travelRequests"`
	Ledger         []LedgerEntry   `bson:"ledger" json:"ledger"`
	Debts          []DebtContract  `bson:"debts" json:"debts"`
	Messages       []Message       `bson:"messages" json:"messages"`
}

func NewWorld() *World {
	return &World{
		Id:       WorldId,
		Version:  0,
		Calendar: Calendar{Day: 1, Month: 1, Year: 1},
	}
}

// Country returns a pointer into the world's country slice, or nil.
func (w *World) Country(id string) *Country {
	for i := range w.Countries {
		if w.Countries[i].Id == id {
			return &w.Countries[i]
		}
	}
	return nil
}

// Citizen returns a pointer into the world's citizen slice, or nil.
func (w *World) Citizen(id string) *Citizen {
	for i := range w.Citizens {
		if w.Citizens[i].Id == id {
			return &w.Citizens[i]
		}
	}
	return nil
}

func (w *World) CitizenByName(name string) *Citizen {
	for i := range w.Citizens {
		if w.Citizens[i].Name == name {
			return &w.Citizens[i]
		}
	}
	return nil
}

// TravelRequest returns a pointer into the world's request slice, or nil.
func (w *World) TravelRequest(id string) *TravelRequest {
	for i := range w.TravelRequests {
		if w.TravelRequests[i].Id == id {
			return &w.TravelRequests[i]
		}
	}
	return nil
}

func (w *World) Debt(id string) *DebtContract {
	for i := range w.Debts {
		if w.Debts[i].Id == id {
			return &w.Debts[i]
		}
	}
	return nil
}

// RemoveTravelRequest deletes a request from the active set. Rejected
// requests are kept for audit, so this is only called on approval.
func (w *World) RemoveTravelRequest(id string) {
	for i := range w.TravelRequests {
		if w.TravelRequests[i].Id == id {
			w.TravelRequests = append(w.TravelRequests[:i], w.TravelRequests[i+1:]...)
			return
		}
	}
}

// Clone deep-copies the snapshot so engine transitions never alias the
// caller's state.
func (w *World) Clone() *World {
	out := *w

	// Nil slices stay nil so a clone round-trips byte-for-byte.
	if len(w.Countries) > 0 {
		out.Countries = make([]Country, len(w.Countries))
		copy(out.Countries, w.Countries)
		for i := range out.Countries {
			if len(out.Countries[i].CustomRoles) > 0 {
				roles := make([]CustomRole, len(out.Countries[i].CustomRoles))
				copy(roles, out.Countries[i].CustomRoles)
				out.Countries[i].CustomRoles = roles
			}
		}
	}

	if len(w.Citizens) > 0 {
		out.Citizens = make([]Citizen, len(w.Citizens))
		copy(out.Citizens, w.Citizens)
		for i := range out.Citizens {
			if len(out.Citizens[i].Inventory) > 0 {
				inv := make([]InventoryItem, len(out.Citizens[i].Inventory))
				copy(inv, out.Citizens[i].Inventory)
				out.Citizens[i].Inventory = inv
			}
		}
	}

	if len(w.TravelRequests) > 0 {
		out.TravelRequests = make([]TravelRequest, len(w.TravelRequests))
		copy(out.TravelRequests, w.TravelRequests)
	}

	if len(w.Ledger) > 0 {
		out.Ledger = make([]LedgerEntry, len(w.Ledger))
		copy(out.Ledger, w.Ledger)
	}

	if len(w.Debts) > 0 {
		out.Debts = make([]DebtContract, len(w.Debts))
		copy(out.Debts, w.Debts)
	}

	if len(w.Messages) > 0 {
		out.Messages = make([]Message, len(w.Messages))
		copy(out.Messages, w.Messages)
	}

	return &out
}
