package models

import "time"

// CalendarSyncStatus describes the user's external-calendar connection state.
type CalendarSyncStatus struct {
	Connected    bool       `json:"connected"`
	Provider     string     `json:"provider,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	SyncEnabled  bool       `json:"sync_enabled"`
}

type CalendarSyncSettings struct {
	SyncEnabled      bool `json:"sync_enabled"`
	ReminderMinutes  int  `json:"reminder_minutes"`
	IncludeCancelled bool `json:"include_cancelled"`
}
