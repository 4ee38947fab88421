package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/internal/infrastructure/catalog"
	"used_market/pkg/errcodes"
)

func TestFindItem(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	items := catalog.New(
		entity.CatalogItem{Ref: "tractor.m9540", Name: "M 9540 Tractor", StorePrice: 100000},
		entity.CatalogItem{Ref: "truck.hx620", Name: "HX 620 Hauler", StorePrice: 190000},
	)

	item, err := items.FindItem(ctx, "truck.hx620")
	rq.NoError(err)
	rq.Equal("HX 620 Hauler", item.Name)
	rq.EqualValues(190000, item.StorePrice)

	_, err = items.FindItem(ctx, "tractor.unknown")
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.CatalogItemNotFound))
}

func TestOptionSets(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	items := catalog.New(entity.CatalogItem{
		Ref:        "tractor.m9540",
		StorePrice: 100000,
		OptionSets: []entity.OptionSet{
			{Class: "tires", Choices: []string{"standard", "flotation"}},
		},
	})

	sets, err := items.OptionSets(ctx, "tractor.m9540")
	rq.NoError(err)
	rq.Len(sets, 1)
	rq.Equal("tires", sets[0].Class)

	// Second lookup comes out of the cache with the same content.
	cached, err := items.OptionSets(ctx, "tractor.m9540")
	rq.NoError(err)
	rq.Equal(sets, cached)

	_, err = items.OptionSets(ctx, "tractor.unknown")
	rq.Error(err)
}

func TestLoadFile(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	rq.NoError(os.WriteFile(path, []byte(`[
		{
			"ref": "tractor.m9540",
			"name": "M 9540 Tractor",
			"store_price": 100000,
			"option_sets": [
				{"class": "tires", "choices": ["standard", "flotation"]}
			]
		}
	]`), 0o600))

	items, err := catalog.LoadFile(path)
	rq.NoError(err)

	item, err := items.FindItem(context.Background(), "tractor.m9540")
	rq.NoError(err)
	rq.EqualValues(100000, item.StorePrice)
	rq.Len(item.OptionSets, 1)
}

func TestLoadFileMissing(t *testing.T) {
	rq := require.New(t)

	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	rq.Error(err)
}
