package enum

type SessionStatus string

const (
	SessionWaiting    SessionStatus = "waiting"
	SessionConnecting SessionStatus = "connecting"
	SessionActive     SessionStatus = "active"
	SessionEnded      SessionStatus = "ended"
	SessionUnknown    SessionStatus = ""
)
