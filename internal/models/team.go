package models

import (
	"time"

	"gorm.io/gorm"
)

// Slot bounds and the moveset cap for a team member.
const (
	MinSlot         = 1
	MaxSlot         = 6
	TeamSize        = 6
	MaxMovesPerSlot = 4
	MaxTeamNameLen  = 100
)

// Team represents a user-built team of up to six Pokémon.
// IsComplete is derived server-side: it is true exactly when all six slots
// are filled, and is recomputed in the same transaction as every slot change.
type Team struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	IsPrivate  bool           `gorm:"not null;default:false" json:"is_private"`
	IsComplete bool           `gorm:"not null;default:false" json:"is_complete"`
	Slots      []TeamSlot     `gorm:"foreignKey:TeamID" json:"slots"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TeamSlot binds a Pokémon to a numbered position on a team.
// The (team_id, slot) pair is unique at the database level; a violation
// surfaces to callers as a SlotOccupied conflict.
type TeamSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_team_slot" json:"team_id"`
	Slot      int       `gorm:"not null;uniqueIndex:idx_team_slot" json:"slot"`
	PokemonID uint      `gorm:"not null;index" json:"pokemon_id"`
	Pokemon   Pokemon   `gorm:"foreignKey:PokemonID" json:"pokemon"`
	Moves     []Move    `gorm:"many2many:team_slot_moves" json:"moves"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
