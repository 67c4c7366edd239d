// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"teamdex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashedPassword),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTeam constructs and persists a team for the given user with a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreateTeam(user *models.User, overrides ...func(*models.Team)) (*models.Team, error) {
	team := &models.Team{
		Name:      fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounCollectiveAnimal()),
		UserID:    user.ID,
		IsPrivate: f.r.Float32() < 0.2,
	}
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	team.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(team)
	}

	if err := f.db.Create(team).Error; err != nil {
		return nil, err
	}
	return team, nil
}

// FillSlots assigns random Pokémon and movesets to the first n slots of the
// team and recomputes its completeness flag.
func (f *Factory) FillSlots(team *models.Team, n int, pokemon []models.Pokemon, moves []models.Move) error {
	if n > models.TeamSize {
		n = models.TeamSize
	}
	for slot := 1; slot <= n; slot++ {
		species := pokemon[f.r.Intn(len(pokemon))]
		teamSlot := &models.TeamSlot{
			TeamID:    team.ID,
			Slot:      slot,
			PokemonID: species.ID,
		}
		if err := f.db.Create(teamSlot).Error; err != nil {
			return err
		}

		moveset := f.pickMoves(moves, f.r.Intn(models.MaxMovesPerSlot+1))
		if len(moveset) > 0 {
			if err := f.db.Model(teamSlot).Association("Moves").Replace(moveset); err != nil {
				return err
			}
		}
	}
	if n == models.TeamSize {
		return f.db.Model(&models.Team{}).Where("id = ?", team.ID).Update("is_complete", true).Error
	}
	return nil
}

// pickMoves selects up to n distinct moves.
func (f *Factory) pickMoves(moves []models.Move, n int) []models.Move {
	if n > len(moves) {
		n = len(moves)
	}
	picked := make([]models.Move, 0, n)
	for _, i := range f.r.Perm(len(moves))[:n] {
		picked = append(picked, moves[i])
	}
	return picked
}

// CreateComment constructs and persists a comment on the given target
// authored by the given user.
func (f *Factory) CreateComment(user *models.User, targetKind string, targetID uint, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:    gofakeit.Sentence(8),
		UserID:     user.ID,
		TargetKind: targetKind,
		TargetID:   targetID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateVote persists a vote from `user` on `comment`. Duplicate votes hit
// the unique index and are skipped silently by the seeder.
func (f *Factory) CreateVote(user *models.User, comment *models.Comment, isUpvote bool) error {
	vote := &models.Vote{
		UserID:    user.ID,
		CommentID: comment.ID,
		IsUpvote:  isUpvote,
	}
	return f.db.Create(vote).Error
}

// CreateFavorite persists a favorite from `user` on the given target.
func (f *Factory) CreateFavorite(user *models.User, targetKind string, targetID uint) error {
	favorite := &models.Favorite{
		UserID:     user.ID,
		TargetKind: targetKind,
		TargetID:   targetID,
	}
	return f.db.Create(favorite).Error
}
