// Package seed provides database seeding utilities for development and testing.
package seed

import (
	_ "embed"
	"fmt"

	"teamdex/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed pokedex.yml
var pokedexYAML []byte

type catalogFixture struct {
	Types   []string         `yaml:"types"`
	Pokemon []pokemonFixture `yaml:"pokemon"`
	Moves   []moveFixture    `yaml:"moves"`
}

type pokemonFixture struct {
	Name          string `yaml:"name"`
	PrimaryType   string `yaml:"primary_type"`
	SecondaryType string `yaml:"secondary_type"`
	HP            int    `yaml:"hp"`
	Attack        int    `yaml:"attack"`
	Defense       int    `yaml:"defense"`
	SpAttack      int    `yaml:"sp_attack"`
	SpDefense     int    `yaml:"sp_defense"`
	Speed         int    `yaml:"speed"`
	IsLegendary   bool   `yaml:"is_legendary"`
	IsMythical    bool   `yaml:"is_mythical"`
}

type moveFixture struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Category string `yaml:"category"`
	Power    *int   `yaml:"power"`
	Accuracy *int   `yaml:"accuracy"`
	PP       *int   `yaml:"pp"`
}

// ParseCatalog decodes the embedded catalog fixture.
func ParseCatalog() (*catalogFixture, error) {
	var fixture catalogFixture
	if err := yaml.Unmarshal(pokedexYAML, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse catalog fixture: %w", err)
	}
	return &fixture, nil
}

// LoadCatalog upserts the embedded type/Pokémon/move catalog into the
// database. Rows are matched by name, so re-running is safe.
func LoadCatalog(db *gorm.DB) error {
	fixture, err := ParseCatalog()
	if err != nil {
		return err
	}

	typeIDs := make(map[string]uint, len(fixture.Types))
	for _, name := range fixture.Types {
		var t models.Type
		if err := db.Where(models.Type{Name: name}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("failed to seed type %q: %w", name, err)
		}
		typeIDs[name] = t.ID
	}

	for _, p := range fixture.Pokemon {
		primaryID, ok := typeIDs[p.PrimaryType]
		if !ok {
			return fmt.Errorf("pokemon %q references unknown type %q", p.Name, p.PrimaryType)
		}
		var secondaryID *uint
		if p.SecondaryType != "" {
			id, ok := typeIDs[p.SecondaryType]
			if !ok {
				return fmt.Errorf("pokemon %q references unknown type %q", p.Name, p.SecondaryType)
			}
			secondaryID = &id
		}

		var pokemon models.Pokemon
		err := db.Where(models.Pokemon{Name: p.Name}).
			Attrs(models.Pokemon{
				PrimaryTypeID:   primaryID,
				SecondaryTypeID: secondaryID,
				HP:              p.HP,
				Attack:          p.Attack,
				Defense:         p.Defense,
				SpAttack:        p.SpAttack,
				SpDefense:       p.SpDefense,
				Speed:           p.Speed,
				IsLegendary:     p.IsLegendary,
				IsMythical:      p.IsMythical,
			}).
			FirstOrCreate(&pokemon).Error
		if err != nil {
			return fmt.Errorf("failed to seed pokemon %q: %w", p.Name, err)
		}
	}

	for _, m := range fixture.Moves {
		typeID, ok := typeIDs[m.Type]
		if !ok {
			return fmt.Errorf("move %q references unknown type %q", m.Name, m.Type)
		}

		var move models.Move
		err := db.Where(models.Move{Name: m.Name}).
			Attrs(models.Move{
				TypeID:   typeID,
				Category: m.Category,
				Power:    m.Power,
				Accuracy: m.Accuracy,
				PP:       m.PP,
			}).
			FirstOrCreate(&move).Error
		if err != nil {
			return fmt.Errorf("failed to seed move %q: %w", m.Name, err)
		}
	}

	return nil
}
