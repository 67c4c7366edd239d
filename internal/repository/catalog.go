package repository

import (
	"context"
	"errors"

	"teamdex/internal/cache"
	"teamdex/internal/models"

	"gorm.io/gorm"
)

// StatRange holds comparison filters for a single numeric column.
type StatRange struct {
	Eq  *int
	Gt  *int
	Gte *int
	Lt  *int
	Lte *int
}

// PokemonFilter holds the fixed, enumerated filter set for the Pokémon catalog.
type PokemonFilter struct {
	Name         string
	NameContains string
	TypeName     string
	IsLegendary  *bool
	IsMythical   *bool
	HP           StatRange
	Attack       StatRange
	Defense      StatRange
	SpAttack     StatRange
	SpDefense    StatRange
	Speed        StatRange
	Sort         string
	Limit        int
	Offset       int
}

// MoveFilter holds the fixed, enumerated filter set for the move catalog.
type MoveFilter struct {
	Name         string
	NameContains string
	TypeName     string
	Category     string
	Power        StatRange
	Accuracy     StatRange
	PP           StatRange
	Sort         string
	Limit        int
	Offset       int
}

// CatalogRepository defines read access to the reference data.
type CatalogRepository interface {
	GetPokemon(ctx context.Context, id uint) (*models.Pokemon, error)
	ListPokemon(ctx context.Context, f PokemonFilter) ([]*models.Pokemon, error)
	GetMove(ctx context.Context, id uint) (*models.Move, error)
	GetMovesByIDs(ctx context.Context, ids []uint) ([]models.Move, error)
	ListMoves(ctx context.Context, f MoveFilter) ([]*models.Move, error)
	ListTypes(ctx context.Context) ([]models.Type, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetPokemon(ctx context.Context, id uint) (*models.Pokemon, error) {
	var pokemon models.Pokemon
	err := cache.Aside(ctx, cache.PokemonKey(id), &pokemon, cache.PokemonTTL, func() error {
		return readDB(r.db).WithContext(ctx).
			Preload("PrimaryType").
			Preload("SecondaryType").
			First(&pokemon, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pokemon", id)
		}
		return nil, err
	}
	return &pokemon, nil
}

func (r *catalogRepository) ListPokemon(ctx context.Context, f PokemonFilter) ([]*models.Pokemon, error) {
	db := readDB(r.db).WithContext(ctx).
		Model(&models.Pokemon{}).
		Preload("PrimaryType").
		Preload("SecondaryType")

	if f.Name != "" {
		db = db.Where("LOWER(pokemon.name) = LOWER(?)", f.Name)
	}
	if f.NameContains != "" {
		db = db.Where("LOWER(pokemon.name) LIKE LOWER(?)", "%"+f.NameContains+"%")
	}
	if f.TypeName != "" {
		typeIDs := readDB(r.db).Model(&models.Type{}).Select("id").Where("LOWER(name) = LOWER(?)", f.TypeName)
		db = db.Where("primary_type_id IN (?) OR secondary_type_id IN (?)", typeIDs, typeIDs)
	}
	if f.IsLegendary != nil {
		db = db.Where("is_legendary = ?", *f.IsLegendary)
	}
	if f.IsMythical != nil {
		db = db.Where("is_mythical = ?", *f.IsMythical)
	}

	db = applyStatRange(db, "hp", f.HP)
	db = applyStatRange(db, "attack", f.Attack)
	db = applyStatRange(db, "defense", f.Defense)
	db = applyStatRange(db, "sp_attack", f.SpAttack)
	db = applyStatRange(db, "sp_defense", f.SpDefense)
	db = applyStatRange(db, "speed", f.Speed)

	var pokemon []*models.Pokemon
	err := applyCatalogSort(db, f.Sort, pokemonSortColumns).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&pokemon).Error
	return pokemon, err
}

func (r *catalogRepository) GetMove(ctx context.Context, id uint) (*models.Move, error) {
	var move models.Move
	err := cache.Aside(ctx, cache.MoveKey(id), &move, cache.MoveTTL, func() error {
		return readDB(r.db).WithContext(ctx).Preload("Type").First(&move, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Move", id)
		}
		return nil, err
	}
	return &move, nil
}

func (r *catalogRepository) GetMovesByIDs(ctx context.Context, ids []uint) ([]models.Move, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var moves []models.Move
	err := readDB(r.db).WithContext(ctx).Where("id IN ?", ids).Find(&moves).Error
	return moves, err
}

func (r *catalogRepository) ListMoves(ctx context.Context, f MoveFilter) ([]*models.Move, error) {
	db := readDB(r.db).WithContext(ctx).
		Model(&models.Move{}).
		Preload("Type")

	if f.Name != "" {
		db = db.Where("LOWER(moves.name) = LOWER(?)", f.Name)
	}
	if f.NameContains != "" {
		db = db.Where("LOWER(moves.name) LIKE LOWER(?)", "%"+f.NameContains+"%")
	}
	if f.TypeName != "" {
		typeIDs := readDB(r.db).Model(&models.Type{}).Select("id").Where("LOWER(name) = LOWER(?)", f.TypeName)
		db = db.Where("type_id IN (?)", typeIDs)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}

	db = applyStatRange(db, "power", f.Power)
	db = applyStatRange(db, "accuracy", f.Accuracy)
	db = applyStatRange(db, "pp", f.PP)

	var moves []*models.Move
	err := applyCatalogSort(db, f.Sort, moveSortColumns).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&moves).Error
	return moves, err
}

func (r *catalogRepository) ListTypes(ctx context.Context) ([]models.Type, error) {
	var types []models.Type
	err := cache.Aside(ctx, cache.TypesKey, &types, cache.TypesTTL, func() error {
		return readDB(r.db).WithContext(ctx).Order("id ASC").Find(&types).Error
	})
	return types, err
}

func applyStatRange(db *gorm.DB, column string, r StatRange) *gorm.DB {
	// column is always one of the fixed catalog columns above; never user input.
	if r.Eq != nil {
		db = db.Where(column+" = ?", *r.Eq)
	}
	if r.Gt != nil {
		db = db.Where(column+" > ?", *r.Gt)
	}
	if r.Gte != nil {
		db = db.Where(column+" >= ?", *r.Gte)
	}
	if r.Lt != nil {
		db = db.Where(column+" < ?", *r.Lt)
	}
	if r.Lte != nil {
		db = db.Where(column+" <= ?", *r.Lte)
	}
	return db
}

var pokemonSortColumns = map[string]string{
	"id": "id", "name": "name", "hp": "hp", "attack": "attack",
	"defense": "defense", "sp_attack": "sp_attack",
	"sp_defense": "sp_defense", "speed": "speed",
}

var moveSortColumns = map[string]string{
	"id": "id", "name": "name", "power": "power",
	"accuracy": "accuracy", "pp": "pp",
}

// applyCatalogSort orders by a whitelisted column, "-" prefix for descending.
// Unknown sorts fall back to id ascending so pagination stays deterministic.
func applyCatalogSort(db *gorm.DB, sort string, allowed map[string]string) *gorm.DB {
	desc := false
	if len(sort) > 0 && sort[0] == '-' {
		desc = true
		sort = sort[1:]
	}
	column, ok := allowed[sort]
	if !ok {
		return db.Order("id ASC")
	}
	if desc {
		return db.Order(column + " DESC, id ASC")
	}
	return db.Order(column + " ASC, id ASC")
}
