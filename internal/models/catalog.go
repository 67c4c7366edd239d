package models

// The catalog tables (types, pokemon, moves) are reference data loaded by the
// seeder. The API never mutates them.

// Type represents an elemental type such as Fire or Water.
type Type struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Pokemon represents a catalog species with its base stats.
type Pokemon struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null;index" json:"name"`
	PrimaryTypeID   uint   `gorm:"not null" json:"primary_type_id"`
	PrimaryType     Type   `gorm:"foreignKey:PrimaryTypeID" json:"primary_type"`
	SecondaryTypeID *uint  `json:"secondary_type_id,omitempty"`
	SecondaryType   *Type  `gorm:"foreignKey:SecondaryTypeID" json:"secondary_type,omitempty"`
	HP              int    `gorm:"not null" json:"hp"`
	Attack          int    `gorm:"not null" json:"attack"`
	Defense         int    `gorm:"not null" json:"defense"`
	SpAttack        int    `gorm:"not null" json:"sp_attack"`
	SpDefense       int    `gorm:"not null" json:"sp_defense"`
	Speed           int    `gorm:"not null" json:"speed"`
	IsLegendary     bool   `gorm:"not null;default:false" json:"is_legendary"`
	IsMythical      bool   `gorm:"not null;default:false" json:"is_mythical"`
}

// TableName keeps the table singular; the default pluralizer mangles it.
func (Pokemon) TableName() string { return "pokemon" }

// Move categories as used by the games.
const (
	MoveCategoryPhysical = "physical"
	MoveCategorySpecial  = "special"
	MoveCategoryStatus   = "status"
)

// Move represents a catalog move. Power, accuracy and PP are pointers because
// status moves legitimately have no power and some moves never miss.
type Move struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;index" json:"name"`
	TypeID   uint   `gorm:"not null" json:"type_id"`
	Type     Type   `gorm:"foreignKey:TypeID" json:"type"`
	Category string `gorm:"not null" json:"category"`
	Power    *int   `json:"power"`
	Accuracy *int   `json:"accuracy"`
	PP       *int   `json:"pp"`
}
