package models

import "time"

// Favorite marks a team or Pokémon as a favorite of a user.
// Adding the same favorite twice is a no-op (ON CONFLICT DO NOTHING).
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetKind string    `gorm:"not null;uniqueIndex:idx_user_target" json:"target_kind"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}
