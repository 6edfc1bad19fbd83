package domain

// Goal is the daily word target chosen during onboarding.
// GoalUnset means onboarding has not completed yet.
type Goal int

const (
	GoalUnset   Goal = 0
	GoalLight   Goal = 10
	GoalSteady  Goal = 20
	GoalIntense Goal = 30
)

// Valid reports whether g is one of the selectable goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalLight, GoalSteady, GoalIntense:
		return true
	}
	return false
}

// IsSet reports whether a goal has been chosen.
func (g Goal) IsSet() bool {
	return g != GoalUnset
}
