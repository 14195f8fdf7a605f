package handler

import (
	"sort"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/menu"
)

func toMenuResponse(tree *menu.Tree, state *menu.State) menuResponse {
	snap := state.Snapshot()
	expanded := make([]string, 0, len(snap.Expanded))
	for k, open := range snap.Expanded {
		if open {
			expanded = append(expanded, k)
		}
	}
	sort.Strings(expanded)

	return menuResponse{
		Entries:   tree.Entries(),
		Active:    state.ActiveKeys(),
		Expanded:  expanded,
		Leaf:      state.ActiveLeaf(),
		ActiveURL: state.ActiveURL(),
	}
}

func toAuditResponse(events []domain.SessionEvent) auditResponse {
	out := make([]auditEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, auditEventResponse{
			ContextID: ev.ContextID,
			UserID:    ev.UserID,
			Username:  ev.Username,
			Kind:      string(ev.Kind),
			At:        ev.At,
		})
	}
	return auditResponse{Events: out}
}
