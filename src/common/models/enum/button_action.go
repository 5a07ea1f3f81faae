package enum

// ButtonAction tags the operation a session button should trigger when pressed.
type ButtonAction string

const (
	ActionStart       ButtonAction = "start"
	ActionJoin        ButtonAction = "join"
	ActionRejoin      ButtonAction = "rejoin"
	ActionCheckStatus ButtonAction = "check-status"
	ActionNone        ButtonAction = ""
)
