package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment target kinds. A comment attaches to either a team or a catalog
// Pokémon; the kind travels with the row so votes only need the comment ID.
const (
	TargetKindTeam    = "team"
	TargetKindPokemon = "pokemon"
)

// ValidTargetKind reports whether kind names a commentable resource.
func ValidTargetKind(kind string) bool {
	return kind == TargetKindTeam || kind == TargetKindPokemon
}

// Comment represents a comment on a team or a Pokémon.
// Author and target are fixed at creation; updates may only change content.
type Comment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Content    string `gorm:"not null" json:"content"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	User       User   `gorm:"foreignKey:UserID" json:"user"`
	TargetKind string `gorm:"not null;index:idx_comment_target" json:"target_kind"`
	TargetID   uint   `gorm:"not null;index:idx_comment_target" json:"target_id"`
	// UpvotesCount is not persisted; computed at query time
	UpvotesCount int `gorm:"->" json:"upvotes_count"`
	// DownvotesCount is not persisted; computed at query time
	DownvotesCount int            `gorm:"->" json:"downvotes_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
