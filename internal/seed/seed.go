// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"teamdex/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumTeams    int
	NumComments int
	ShouldClean bool
}

// SystemUsername owns the showcase teams created by BuiltInTeams.
const SystemUsername = "teamdex"

// Seed populates the database with the catalog, showcase teams and test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d teams...", opts.NumUsers, opts.NumTeams)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := LoadCatalog(db); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Println("✓ Catalog loaded")

	if err := BuiltInTeams(db); err != nil {
		return fmt.Errorf("failed to create built-in teams: %w", err)
	}
	log.Println("✓ Built-in showcase teams created")

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))
	if len(users) == 0 {
		return fmt.Errorf("no users could be created")
	}

	var pokemon []models.Pokemon
	if err := db.Find(&pokemon).Error; err != nil {
		return err
	}
	var moves []models.Move
	if err := db.Find(&moves).Error; err != nil {
		return err
	}

	teams := make([]*models.Team, 0, opts.NumTeams)
	for i := 0; i < opts.NumTeams; i++ {
		user := users[f.r.Intn(len(users))]
		team, err := f.CreateTeam(user)
		if err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		// Some rosters stay partial so incomplete teams exist in dev data.
		if err := f.FillSlots(team, f.r.Intn(models.TeamSize+1), pokemon, moves); err != nil {
			return fmt.Errorf("failed to fill team slots: %w", err)
		}
		teams = append(teams, team)
	}
	log.Printf("✓ %d teams created", len(teams))

	if err := seedEngagement(f, users, teams, pokemon, opts.NumComments); err != nil {
		return fmt.Errorf("failed to seed engagement: %w", err)
	}
	log.Printf("✓ %d comments created with votes and favorites", opts.NumComments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// seedEngagement spreads comments, votes and favorites across public teams
// and the Pokémon catalog.
func seedEngagement(f *Factory, users []*models.User, teams []*models.Team, pokemon []models.Pokemon, numComments int) error {
	for i := 0; i < numComments; i++ {
		author := users[f.r.Intn(len(users))]

		var comment *models.Comment
		var err error
		if len(teams) > 0 && f.r.Float32() < 0.7 {
			team := teams[f.r.Intn(len(teams))]
			if team.IsPrivate && team.UserID != author.ID {
				continue
			}
			comment, err = f.CreateComment(author, models.TargetKindTeam, team.ID)
		} else {
			species := pokemon[f.r.Intn(len(pokemon))]
			comment, err = f.CreateComment(author, models.TargetKindPokemon, species.ID)
		}
		if err != nil {
			return err
		}

		// A handful of votes per comment; duplicate (user, comment) pairs
		// hit the unique index and are ignored.
		for v := 0; v < f.r.Intn(5); v++ {
			voter := users[f.r.Intn(len(users))]
			_ = f.CreateVote(voter, comment, f.r.Float32() < 0.75)
		}
	}

	for _, user := range users {
		if f.r.Float32() < 0.5 {
			species := pokemon[f.r.Intn(len(pokemon))]
			_ = f.CreateFavorite(user, models.TargetKindPokemon, species.ID)
		}
		if len(teams) > 0 && f.r.Float32() < 0.5 {
			team := teams[f.r.Intn(len(teams))]
			if !team.IsPrivate || team.UserID == user.ID {
				_ = f.CreateFavorite(user, models.TargetKindTeam, team.ID)
			}
		}
	}
	return nil
}

// builtInTeams are the showcase rosters owned by the system user.
var builtInTeams = []struct {
	Name    string
	Members []string
}{
	{"Kanto Starters", []string{"Venusaur", "Charizard", "Blastoise", "Pikachu", "Snorlax", "Lapras"}},
	{"Legendary Birds", []string{"Articuno", "Zapdos", "Moltres", "Dragonite", "Mewtwo", "Mew"}},
	{"Eeveelutions", []string{"Eevee", "Vaporeon", "Jolteon", "Flareon", "Gengar", "Gyarados"}},
}

// BuiltInTeams creates the system user and its showcase teams. It is
// idempotent: existing rows are left alone.
func BuiltInTeams(db *gorm.DB) error {
	var system models.User
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	err := db.Where(models.User{Username: SystemUsername}).
		Attrs(models.User{
			Email:    "system@teamdex.dev",
			Password: string(hashedPassword),
		}).
		FirstOrCreate(&system).Error
	if err != nil {
		return err
	}

	for _, preset := range builtInTeams {
		var team models.Team
		err := db.Where(models.Team{Name: preset.Name, UserID: system.ID}).FirstOrCreate(&team).Error
		if err != nil {
			return err
		}

		var count int64
		if err := db.Model(&models.TeamSlot{}).Where("team_id = ?", team.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for i, name := range preset.Members {
			var species models.Pokemon
			if err := db.Where("name = ?", name).First(&species).Error; err != nil {
				return fmt.Errorf("built-in team %q references unknown pokemon %q: %w", preset.Name, name, err)
			}
			slot := &models.TeamSlot{
				TeamID:    team.ID,
				Slot:      i + 1,
				PokemonID: species.ID,
			}
			if err := db.Create(slot).Error; err != nil {
				return err
			}
		}
		if err := db.Model(&models.Team{}).Where("id = ?", team.ID).Update("is_complete", true).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE votes, comments, favorites, team_slot_moves, team_slots, teams, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
