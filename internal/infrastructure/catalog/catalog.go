// Package catalog adapts the host game's store catalog for the pipeline. The
// in-memory variant is seeded from code or a JSON file; option-set lookups go
// through a short TTL cache because the host recomputes compatibility lists on
// every call.
package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const optionSetCacheTTL = 5 * time.Minute

type Catalog struct {
	items map[string]*entity.CatalogItem

	optionSetCache *cache.Cache
}

func New(items ...entity.CatalogItem) *Catalog {
	c := &Catalog{
		items:          make(map[string]*entity.CatalogItem, len(items)),
		optionSetCache: cache.New(optionSetCacheTTL, optionSetCacheTTL),
	}

	for i := range items {
		item := items[i]
		c.items[item.Ref] = &item
	}

	return c
}

// LoadFile builds a catalog from a JSON array of items.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var items []entity.CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return New(items...), nil
}

func (c *Catalog) FindItem(_ context.Context, ref string) (*entity.CatalogItem, error) {
	item, ok := c.items[ref]
	if !ok {
		return nil, domain.NewError(errcodes.CatalogItemNotFound, "catalog item not found: "+ref)
	}

	return item, nil
}

func (c *Catalog) OptionSets(ctx context.Context, ref string) ([]entity.OptionSet, error) {
	if cached, ok := c.optionSetCache.Get(ref); ok {
		return cached.([]entity.OptionSet), nil //nolint:forcetypeassert
	}

	item, err := c.FindItem(ctx, ref)
	if err != nil {
		return nil, err
	}

	c.optionSetCache.SetDefault(ref, item.OptionSets)

	return item.OptionSets, nil
}
