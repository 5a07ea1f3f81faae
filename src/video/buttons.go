package video

import (
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/models/enum"
)

// ButtonFor maps (role, appointment status, session status, started-at) to the
// session button the UI should render. Pure; reconciliation calls it only when the
// underlying state actually changed.
//
// Completed and cancelled appointments yield no button at all.
func ButtonFor(role enum.UserRole, snapshot models.SessionStatusSnapshot) models.SessionButton {
	switch snapshot.AppointmentStatus {
	case enum.AppointmentCompleted, enum.AppointmentCancelled:
		return models.SessionButton{}
	}

	session := snapshot.EffectiveSessionStatus()

	if role == enum.Doctor {
		return doctorButton(snapshot, session)
	}
	return patientButton(snapshot, session)
}

func doctorButton(snapshot models.SessionStatusSnapshot, session enum.SessionStatus) models.SessionButton {
	switch session {
	case enum.SessionActive, enum.SessionConnecting:
		return models.SessionButton{Action: enum.ActionRejoin, Label: "Rejoin consultation", Enabled: true}
	case enum.SessionWaiting:
		return models.SessionButton{Action: enum.ActionRejoin, Label: "Return to waiting room", Enabled: true}
	}

	switch snapshot.AppointmentStatus {
	case enum.AppointmentConfirmed, enum.AppointmentInProgress:
		return models.SessionButton{Action: enum.ActionStart, Label: "Start consultation", Enabled: true}
	default:
		// Scheduled but not yet confirmed: the doctor sees the control, greyed out.
		return models.SessionButton{Action: enum.ActionStart, Label: "Start consultation", Enabled: false}
	}
}

func patientButton(snapshot models.SessionStatusSnapshot, session enum.SessionStatus) models.SessionButton {
	switch session {
	case enum.SessionActive, enum.SessionConnecting, enum.SessionWaiting:
		return models.SessionButton{Action: enum.ActionJoin, Label: "Join consultation", Enabled: true}
	}

	// No session yet: the patient can only poll until the doctor starts.
	return models.SessionButton{Action: enum.ActionCheckStatus, Label: "Waiting for doctor", Enabled: false}
}
