package shifts

import "shiftdesk/internal/models"

type Action string

const (
	ActionCall     Action = "call"
	ActionFinish   Action = "finish"
	ActionCancel   Action = "cancel"
	ActionTransfer Action = "transfer"
)

var transitionMap = map[Action][]models.ShiftState{
	ActionCall:     {models.ShiftPending, models.ShiftPendingTransferred},
	ActionFinish:   {models.ShiftInProgress},
	ActionCancel:   {models.ShiftPending, models.ShiftPendingTransferred},
	ActionTransfer: {models.ShiftPending, models.ShiftPendingTransferred, models.ShiftInProgress},
}

var targetState = map[Action]models.ShiftState{
	ActionCall:     models.ShiftInProgress,
	ActionFinish:   models.ShiftFinished,
	ActionCancel:   models.ShiftCancelled,
	ActionTransfer: models.ShiftTransferred,
}

func ValidTransition(action Action, from models.ShiftState) bool {
	for _, state := range transitionMap[action] {
		if state == from {
			return true
		}
	}
	return false
}

// Target is the state a shift lands in after action.
func Target(action Action) (models.ShiftState, bool) {
	state, ok := targetState[action]
	return state, ok
}
