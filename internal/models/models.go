package models

import "time"

// SectionDraft holds unsaved edits for one profile section, keyed by user.
// The in-memory store still does a full reload after every save, so drafts
// are how edits to *other* sections survive that reload (and survive the
// user switching tabs or devices).
type SectionDraft struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// No soft delete: a deleted draft row would still occupy the unique
	// (user, section) index and block the next upsert.
	UserKey string `gorm:"uniqueIndex:idx_drafts_user_section;not null" json:"user_key"`
	Section string `gorm:"uniqueIndex:idx_drafts_user_section;not null" json:"section"`
	// Payload is the section's local-shape JSON, stored opaquely.
	Payload string `gorm:"type:text" json:"payload"`
}

// SyncSession is the durable record of an in-memory profile session, used
// for bookkeeping and for the reaper to report what it expired.
type SyncSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserKey  string    `gorm:"index" json:"user_key"`
	LastSeen time.Time `json:"last_seen"`
}

// SyncEvent is an audit row written after notable sync operations.
type SyncEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserKey   string `gorm:"index" json:"user_key"`
	Section   string `json:"section"`
	EventType string `json:"event_type"`
	Details   string `gorm:"type:text" json:"details"`
}
