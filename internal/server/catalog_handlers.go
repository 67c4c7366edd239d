// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"strconv"

	"teamdex/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const defaultCatalogPageSize = 20

// GetPokemonList handles GET /api/pokemon
// @Summary List Pokémon
// @Description Browse the Pokémon catalog with filters
// @Tags catalog
// @Produce json
// @Param name query string false "Exact name (case-insensitive)"
// @Param name_contains query string false "Substring match on name"
// @Param type query string false "Primary or secondary type name"
// @Param is_legendary query bool false "Legendary filter"
// @Param is_mythical query bool false "Mythical filter"
// @Param sort query string false "Sort column, '-' prefix for descending"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Pokemon
// @Router /pokemon [get]
func (s *Server) GetPokemonList(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pagination := parsePagination(c, defaultCatalogPageSize)

	f := repository.PokemonFilter{
		Name:         c.Query("name"),
		NameContains: c.Query("name_contains"),
		TypeName:     c.Query("type"),
		IsLegendary:  queryBool(c, "is_legendary"),
		IsMythical:   queryBool(c, "is_mythical"),
		HP:           queryStatRange(c, "hp"),
		Attack:       queryStatRange(c, "attack"),
		Defense:      queryStatRange(c, "defense"),
		SpAttack:     queryStatRange(c, "sp_attack"),
		SpDefense:    queryStatRange(c, "sp_defense"),
		Speed:        queryStatRange(c, "speed"),
		Sort:         c.Query("sort"),
		Limit:        pagination.Limit,
		Offset:       pagination.Offset,
	}

	pokemon, err := s.catalogRepo.ListPokemon(ctx, f)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(pokemon)
}

// GetPokemon handles GET /api/pokemon/:id
// @Summary Get a Pokémon
// @Tags catalog
// @Produce json
// @Param id path int true "Pokémon ID"
// @Success 200 {object} models.Pokemon
// @Failure 404 {object} models.ErrorResponse
// @Router /pokemon/{id} [get]
func (s *Server) GetPokemon(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pokemon, err := s.catalogRepo.GetPokemon(ctx, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(pokemon)
}

// GetMoves handles GET /api/moves
// @Summary List moves
// @Description Browse the move catalog with filters
// @Tags catalog
// @Produce json
// @Param name query string false "Exact name (case-insensitive)"
// @Param name_contains query string false "Substring match on name"
// @Param type query string false "Type name"
// @Param category query string false "physical, special or status"
// @Param sort query string false "Sort column, '-' prefix for descending"
// @Success 200 {array} models.Move
// @Router /moves [get]
func (s *Server) GetMoves(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pagination := parsePagination(c, defaultCatalogPageSize)

	f := repository.MoveFilter{
		Name:         c.Query("name"),
		NameContains: c.Query("name_contains"),
		TypeName:     c.Query("type"),
		Category:     c.Query("category"),
		Power:        queryStatRange(c, "power"),
		Accuracy:     queryStatRange(c, "accuracy"),
		PP:           queryStatRange(c, "pp"),
		Sort:         c.Query("sort"),
		Limit:        pagination.Limit,
		Offset:       pagination.Offset,
	}

	moves, err := s.catalogRepo.ListMoves(ctx, f)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(moves)
}

// GetMove handles GET /api/moves/:id
// @Summary Get a move
// @Tags catalog
// @Produce json
// @Param id path int true "Move ID"
// @Success 200 {object} models.Move
// @Failure 404 {object} models.ErrorResponse
// @Router /moves/{id} [get]
func (s *Server) GetMove(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	move, err := s.catalogRepo.GetMove(ctx, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(move)
}

// GetTypes handles GET /api/types
// @Summary List types
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Type
// @Router /types [get]
func (s *Server) GetTypes(c *fiber.Ctx) error {
	types, err := s.catalogRepo.ListTypes(c.UserContext())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(types)
}

// queryBool reads an optional boolean query parameter; absence means nil.
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryStatRange reads the comparison suffixes for a numeric column, e.g.
// hp=50, hp_gt=50, hp_gte=50, hp_lt=50, hp_lte=50.
func queryStatRange(c *fiber.Ctx, name string) repository.StatRange {
	return repository.StatRange{
		Eq:  queryInt(c, name),
		Gt:  queryInt(c, name+"_gt"),
		Gte: queryInt(c, name+"_gte"),
		Lt:  queryInt(c, name+"_lt"),
		Lte: queryInt(c, name+"_lte"),
	}
}

func queryInt(c *fiber.Ctx, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
