package service

import "backend/internal/model"

// statusTransitions is the allowed appointment lifecycle:
// pending, confirmed, in_progress, then done, with cancellation reachable
// from pending, confirmed and in_progress. done and cancelled are terminal.
var statusTransitions = map[string][]string{
	model.AppointmentPending:    {model.AppointmentConfirmed, model.AppointmentInProgress, model.AppointmentCancelled},
	model.AppointmentConfirmed:  {model.AppointmentInProgress, model.AppointmentCancelled},
	model.AppointmentInProgress: {model.AppointmentDone, model.AppointmentCancelled},
	model.AppointmentDone:       {},
	model.AppointmentCancelled:  {},
}

// CanTransition reports whether an appointment may move from one status to
// another. Same-status writes are not transitions and are rejected here;
// callers treat them as plain field edits.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions exist
func IsTerminalStatus(status string) bool {
	return len(statusTransitions[status]) == 0
}
