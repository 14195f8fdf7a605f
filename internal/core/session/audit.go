package session

import (
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// EventFromChange turns a login or logout transition into an audit event.
// Overwrites of an existing session (user to user) are not recorded.
func EventFromChange(ch Change, at time.Time) (domain.SessionEvent, bool) {
	switch {
	case ch.Previous == nil && ch.Current != nil:
		return domain.SessionEvent{
			ContextID: ch.ContextID,
			UserID:    ch.Current.ID,
			Username:  ch.Current.Username,
			Kind:      domain.SessionLogin,
			At:        at,
		}, true
	case ch.Previous != nil && ch.Current == nil:
		return domain.SessionEvent{
			ContextID: ch.ContextID,
			UserID:    ch.Previous.ID,
			Username:  ch.Previous.Username,
			Kind:      domain.SessionLogout,
			At:        at,
		}, true
	default:
		return domain.SessionEvent{}, false
	}
}
