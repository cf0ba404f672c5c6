package models

import "time"

// MutedConversation records that a user has silenced the conversation with
// another user. One row per (user, muted user) pair; the composite unique
// index makes duplicate mutes impossible and lets mute/unmute run as single
// atomic statements.
type MutedConversation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_muted" json:"user_id"`
	MutedUserID uint      `gorm:"not null;uniqueIndex:idx_user_muted" json:"muted_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
