package engine

import (
	"empire-service/internal/repository/model"
)

// CanSendMessage enforces mail censorship on cross-nation mail. A censoring
// nation blocks letters crossing its border unless the sender is a global
// authority or one of that nation's own administrators.
func (e *Engine) CanSendMessage(s Session, w *model.World, toCitizenId string) error {
	recipient := w.Citizen(toCitizenId)
	if recipient == nil {
		return reject(ReasonCitizenNotFound)
	}
	if IsGlobalAuthority(s.Role) || s.CountryId == recipient.CountryId {
		return nil
	}

	for _, countryId := range []string{s.CountryId, recipient.CountryId} {
		if country := w.Country(countryId); country != nil && country.Laws.MailCensorship {
			if !HasLocalAuthorityOver(w, s, countryId) {
				return reject(ReasonCensored)
			}
		}
	}
	return nil
}

// SendMessage appends a letter after the censorship check.
func (e *Engine) SendMessage(s Session, w *model.World, toCitizenId, body string) (*model.World, model.Message, error) {
	if body == "" || toCitizenId == "" {
		return nil, model.Message{}, reject(ReasonIncomplete)
	}
	if err := e.CanSendMessage(s, w, toCitizenId); err != nil {
		return nil, model.Message{}, err
	}

	msg := model.Message{
		Id:        e.NewID(),
		FromId:    s.Id,
		FromName:  s.Name,
		ToId:      toCitizenId,
		Body:      body,
		Timestamp: e.Now(),
	}
	next := w.Clone()
	next.Messages = append(next.Messages, msg)
	return next, msg, nil
}
