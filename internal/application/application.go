package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"used_market/internal/config"
	"used_market/internal/domain/entity"
	"used_market/internal/domain/service/condition"
	"used_market/internal/domain/service/inspection"
	listingfactory "used_market/internal/domain/service/listing"
	"used_market/internal/domain/service/negotiation"
	"used_market/internal/domain/service/search"
	"used_market/internal/infrastructure/catalog"
	"used_market/internal/infrastructure/inventory"
	"used_market/internal/infrastructure/ledger"
	"used_market/internal/infrastructure/notifier"
	"used_market/internal/infrastructure/persistence"
	"used_market/internal/infrastructure/simclock"
	"used_market/internal/server"
	"used_market/pkg/application/connectors"
	"used_market/pkg/application/modules"
	"used_market/pkg/middlewarex"
)

const httpShutdownTimeout = 10 * time.Second

func Run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	seed := cfg.Pipeline.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	random := rand.New(rand.NewSource(seed)) //nolint:gosec // game simulation, not crypto

	items, err := loadCatalog(cfg.Pipeline.CatalogPath)
	if err != nil {
		return fmt.Errorf("loadCatalog: %w", err)
	}

	registry := inventory.NewRegistry()
	accounts := ledger.New()
	clock := simclock.New()
	sink := notifier.NewLog()

	var (
		saver    *snapshotSaver
		restored []*entity.Listing
	)

	// The snapshot carries the simulated clock positions, so loading has to
	// happen before any service captures the clock: listing deadlines and
	// discovery months from the previous run only make sense against it.
	if cfg.Postgres.Enabled() {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		db := pg.Client(ctx)
		defer pg.Close(ctx)

		store := persistence.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("store.EnsureSchema: %w", err)
		}

		snap, err := store.LoadSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("store.LoadSnapshot: %w", err)
		}

		clock = simclock.NewAt(snap.Month, snap.Hour)
		registry.Restore(snap.Requests, snap.Listings)
		restored = snap.Listings
		log.Info("state restored",
			"requests", len(snap.Requests),
			"listings", len(snap.Listings),
			"month", snap.Month,
			"hour", snap.Hour,
		)

		saver = &snapshotSaver{store: store, registry: registry, clock: clock}
	}

	profiles := condition.NewGenerator(random)
	factory := listingfactory.NewFactory(items, profiles, random).
		WithCommissionPercent(cfg.Pipeline.CommissionPercent)

	searchSvc := search.NewService(registry, accounts, items, factory, sink, clock, random).
		WithListingExpiry(cfg.Pipeline.ListingExpiryMonths)

	inspectionSvc := inspection.NewService(registry, accounts, sink, clock)
	inspectionSvc.Restore(restored)

	negotiationSvc := negotiation.NewService(registry, clock, sink, negotiation.NewEngine(random)).
		WithCooldowns(cfg.Pipeline.RejectCooldown, cfg.Pipeline.CounterCooldown)

	pipelineServer := server.NewPipelineServer(
		searchSvc, inspectionSvc, negotiationSvc, registry, clock, saverOrNil(saver),
	)

	router := chi.NewRouter()
	router.Use(middlewarex.Recovery)
	router.Use(middlewarex.TraceID)
	router.Use(middlewarex.Logger)
	server.NewServer(pipelineServer).RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: httpShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsListenAddress}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	if saver != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpShutdownTimeout)
		defer cancel()

		if err := saver.Save(saveCtx); err != nil {
			return fmt.Errorf("saver.Save: %w", err)
		}

		log.Info("state saved")
	}

	return nil
}

type snapshotSaver struct {
	store    *persistence.Store
	registry *inventory.Registry
	clock    *simclock.Clock
}

func (s *snapshotSaver) Save(ctx context.Context) error {
	requests, listings := s.registry.Snapshot()

	return s.store.SaveSnapshot(ctx, persistence.Snapshot{
		Requests: requests,
		Listings: listings,
		Month:    s.clock.CurrentMonth(),
		Hour:     s.clock.CurrentHour(),
	})
}

// saverOrNil keeps the typed-nil out of the server's interface field.
func saverOrNil(s *snapshotSaver) server.StateSaver {
	if s == nil {
		return nil
	}
	return s
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.LoadFile(path)
	}

	// Built-in demo catalog for standalone runs.
	return catalog.New(
		entity.CatalogItem{
			Ref:        "harvester.tx480",
			Name:       "TX 480 Combine",
			Brand:      "Borward",
			Category:   "harvesters",
			StorePrice: 425000,
			OptionSets: []entity.OptionSet{
				{Class: "tires", Choices: []string{"standard", "wide", "narrow_duals"}},
				{Class: "cab_trim", Choices: []string{"base", "deluxe"}},
				{Class: "header_mount", Choices: []string{"fixed"}, UnsafeToRandomize: true},
			},
		},
		entity.CatalogItem{
			Ref:        "tractor.m9540",
			Name:       "M 9540 Tractor",
			Brand:      "Kistler",
			Category:   "tractors",
			StorePrice: 100000,
			OptionSets: []entity.OptionSet{
				{Class: "tires", Choices: []string{"standard", "flotation"}},
				{Class: "loader", Choices: []string{"none", "fl500"}},
			},
		},
		entity.CatalogItem{
			Ref:        "truck.hx620",
			Name:       "HX 620 Hauler",
			Brand:      "Vornet",
			Category:   "trucks",
			StorePrice: 190000,
		},
	), nil
}
