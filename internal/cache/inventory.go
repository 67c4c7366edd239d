package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PokemonKeyPrefix = "pokemon:%d"
	MoveKeyPrefix    = "move:%d"
	TypesKey         = "types:all"
	TeamKeyPrefix    = "team:%d"
)

const (
	// Catalog entries are effectively immutable outside of reseeding.
	PokemonTTL = 1 * time.Hour
	MoveTTL    = 1 * time.Hour
	TypesTTL   = 1 * time.Hour
	TeamTTL    = 5 * time.Minute
)

func PokemonKey(pokemonID uint) string {
	return fmt.Sprintf(PokemonKeyPrefix, pokemonID)
}

func MoveKey(moveID uint) string {
	return fmt.Sprintf(MoveKeyPrefix, moveID)
}

func TeamKey(teamID uint) string {
	return fmt.Sprintf(TeamKeyPrefix, teamID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateTeam(ctx context.Context, teamID uint) {
	Invalidate(ctx, TeamKey(teamID))
}

func InvalidateCatalog(ctx context.Context) {
	Invalidate(ctx, TypesKey)
}
