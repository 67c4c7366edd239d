package repository

import (
	"context"
	"errors"

	"teamdex/internal/cache"
	"teamdex/internal/middleware"
	"teamdex/internal/models"

	"gorm.io/gorm"
)

// TeamFilter narrows the caller's team listing.
type TeamFilter struct {
	Name       string
	IsComplete *bool
	IsPrivate  *bool
	Limit      int
	Offset     int
}

// TeamRepository defines the interface for team and slot data operations.
// Every slot mutation runs in a transaction that also recomputes the team's
// is_complete flag, so the derived state can never drift from the slots.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uint) (*models.Team, error)
	ListByUser(ctx context.Context, userID uint, f TeamFilter) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uint) error

	GetSlot(ctx context.Context, teamID uint, slot int) (*models.TeamSlot, error)
	ListSlots(ctx context.Context, teamID uint) ([]*models.TeamSlot, error)
	CreateSlot(ctx context.Context, slot *models.TeamSlot, moves []models.Move) error
	UpdateSlot(ctx context.Context, slot *models.TeamSlot, moves []models.Move, replaceMoves bool) error
	DeleteSlot(ctx context.Context, teamID uint, slot int) error
	ReplaceSlots(ctx context.Context, teamID uint, slots []*models.TeamSlot, movesBySlot map[int][]models.Move) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_slots.slot ASC")
		}).
		Preload("Slots.Pokemon").
		Preload("Slots.Pokemon.PrimaryType").
		Preload("Slots.Pokemon.SecondaryType").
		Preload("Slots.Moves").
		First(&team, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Team", id)
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) ListByUser(ctx context.Context, userID uint, f TeamFilter) ([]*models.Team, error) {
	db := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_slots.slot ASC")
		}).
		Preload("Slots.Pokemon").
		Where("user_id = ?", userID)

	if f.Name != "" {
		db = db.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Name+"%")
	}
	if f.IsComplete != nil {
		db = db.Where("is_complete = ?", *f.IsComplete)
	}
	if f.IsPrivate != nil {
		db = db.Where("is_private = ?", *f.IsPrivate)
	}

	var teams []*models.Team
	err := db.Order("created_at DESC, id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&teams).Error
	return teams, err
}

func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":       team.Name,
			"is_private": team.IsPrivate,
		}).Error
	if err == nil {
		cache.InvalidateTeam(ctx, team.ID)
	}
	return err
}

// Delete removes the team and all dependent rows in one transaction:
// slot movesets, slots, comments targeting the team, their votes, and
// favorites pointing at it.
func (r *teamRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").
			Where("target_kind = ? AND target_id = ?", models.TargetKindTeam, id)
		if err := tx.Unscoped().Where("comment_id IN (?)", commentIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetKindTeam, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetKindTeam, id).
			Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		slotIDs := tx.Model(&models.TeamSlot{}).Select("id").Where("team_id = ?", id)
		if err := tx.Exec("DELETE FROM team_slot_moves WHERE team_slot_id IN (?)", slotIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamSlot{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, id).Error
	})
	if err == nil {
		cache.InvalidateTeam(ctx, id)
	}
	return err
}

func (r *teamRepository) GetSlot(ctx context.Context, teamID uint, slot int) (*models.TeamSlot, error) {
	var teamSlot models.TeamSlot
	err := r.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Moves").
		Where("team_id = ? AND slot = ?", teamID, slot).
		First(&teamSlot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Slot", slot)
		}
		return nil, err
	}
	return &teamSlot, nil
}

func (r *teamRepository) ListSlots(ctx context.Context, teamID uint) ([]*models.TeamSlot, error) {
	var slots []*models.TeamSlot
	err := r.db.WithContext(ctx).
		Preload("Pokemon").
		Preload("Pokemon.PrimaryType").
		Preload("Pokemon.SecondaryType").
		Preload("Moves").
		Where("team_id = ?", teamID).
		Order("slot ASC").
		Find(&slots).Error
	return slots, err
}

func (r *teamRepository) CreateSlot(ctx context.Context, slot *models.TeamSlot, moves []models.Move) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Moves", "Pokemon").Create(slot).Error; err != nil {
			if isDuplicateKey(err) {
				return models.NewConflictError("Slot is already occupied")
			}
			return err
		}
		if len(moves) > 0 {
			if err := tx.Model(slot).Association("Moves").Replace(moves); err != nil {
				return err
			}
		}
		return recomputeCompleteness(tx, slot.TeamID)
	})
	if err == nil {
		cache.InvalidateTeam(ctx, slot.TeamID)
	}
	return err
}

func (r *teamRepository) UpdateSlot(ctx context.Context, slot *models.TeamSlot, moves []models.Move, replaceMoves bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TeamSlot{}).
			Where("id = ?", slot.ID).
			Updates(map[string]interface{}{
				"pokemon_id": slot.PokemonID,
				"slot":       slot.Slot,
			}).Error; err != nil {
			if isDuplicateKey(err) {
				return models.NewConflictError("Slot is already occupied")
			}
			return err
		}
		if replaceMoves {
			if err := tx.Model(slot).Association("Moves").Replace(moves); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		cache.InvalidateTeam(ctx, slot.TeamID)
	}
	return err
}

func (r *teamRepository) DeleteSlot(ctx context.Context, teamID uint, slot int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var teamSlot models.TeamSlot
		if err := tx.Where("team_id = ? AND slot = ?", teamID, slot).First(&teamSlot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Slot", slot)
			}
			return err
		}
		if err := tx.Model(&teamSlot).Association("Moves").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&teamSlot).Error; err != nil {
			return err
		}
		return recomputeCompleteness(tx, teamID)
	})
	if err == nil {
		cache.InvalidateTeam(ctx, teamID)
	}
	return err
}

// ReplaceSlots swaps the whole roster atomically: either every new slot lands
// or the previous roster stays intact.
func (r *teamRepository) ReplaceSlots(ctx context.Context, teamID uint, slots []*models.TeamSlot, movesBySlot map[int][]models.Move) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slotIDs := tx.Model(&models.TeamSlot{}).Select("id").Where("team_id = ?", teamID)
		if err := tx.Exec("DELETE FROM team_slot_moves WHERE team_slot_id IN (?)", slotIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamSlot{}).Error; err != nil {
			return err
		}

		for _, slot := range slots {
			slot.TeamID = teamID
			if err := tx.Omit("Moves", "Pokemon").Create(slot).Error; err != nil {
				if isDuplicateKey(err) {
					return models.NewConflictError("Slot is already occupied")
				}
				return err
			}
			if moves := movesBySlot[slot.Slot]; len(moves) > 0 {
				if err := tx.Model(slot).Association("Moves").Replace(moves); err != nil {
					return err
				}
			}
		}
		return recomputeCompleteness(tx, teamID)
	})
	if err == nil {
		cache.InvalidateTeam(ctx, teamID)
	}
	return err
}

// recomputeCompleteness derives is_complete from the live slot count inside
// the caller's transaction.
func recomputeCompleteness(tx *gorm.DB, teamID uint) error {
	var count int64
	if err := tx.Model(&models.TeamSlot{}).Where("team_id = ?", teamID).Count(&count).Error; err != nil {
		return err
	}
	complete := count == int64(models.TeamSize)

	var team models.Team
	if err := tx.Select("id", "is_complete").First(&team, teamID).Error; err != nil {
		return err
	}
	if team.IsComplete == complete {
		return nil
	}
	if complete {
		middleware.TeamsCompleted.Inc()
	}
	return tx.Model(&models.Team{}).Where("id = ?", teamID).Update("is_complete", complete).Error
}
