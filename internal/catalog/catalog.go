// Package catalog holds the read-only registry of rounds and their
// challenge items for one game mode. The catalog is built once at startup;
// lookups afterwards are map hits, never scans.
package catalog

import (
	"context"

	"github.com/wajih79/kia-python-game/internal/domain"
)

// Loader fetches round content from a backing store (static definition,
// Postgres, a cache in front of either).
type Loader interface {
	LoadRounds(ctx context.Context, catalogID string) ([]domain.Round, error)
}

// Catalog is an immutable set of rounds with O(1) item lookup by ID.
type Catalog struct {
	rounds  []domain.Round
	byID    map[string]domain.CatalogItem
	roundNo map[int]domain.Round
}

// Build loads rounds through the loader and indexes them.
func Build(ctx context.Context, loader Loader, catalogID string) (*Catalog, error) {
	rounds, err := loader.LoadRounds(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	return New(rounds), nil
}

// New indexes an already-loaded round list.
func New(rounds []domain.Round) *Catalog {
	c := &Catalog{
		rounds:  rounds,
		byID:    make(map[string]domain.CatalogItem),
		roundNo: make(map[int]domain.Round),
	}
	for _, round := range rounds {
		c.roundNo[round.Number] = round
		for _, item := range round.Items {
			c.byID[item.ID] = item
		}
	}
	return c
}

// Item resolves a catalog item by its "<round>.<index>" identifier.
func (c *Catalog) Item(id string) (domain.CatalogItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return domain.CatalogItem{}, domain.ErrUnknownItem
	}
	return item, nil
}

// Round returns the round with the given 1-indexed number.
func (c *Catalog) Round(number int) (domain.Round, error) {
	round, ok := c.roundNo[number]
	if !ok {
		return domain.Round{}, domain.ErrUnknownRound
	}
	return round, nil
}

// Rounds returns all rounds in declaration order.
func (c *Catalog) Rounds() []domain.Round {
	return c.rounds
}

// TotalRounds reports how many rounds the catalog contains.
func (c *Catalog) TotalRounds() int {
	return len(c.rounds)
}
