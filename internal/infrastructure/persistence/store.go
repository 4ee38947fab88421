// Package persistence is the Postgres adapter for the pipeline's save/load
// pass. Saving replaces the whole snapshot atomically; it is never interleaved
// with ticking.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"used_market/internal/domain"
	"used_market/internal/domain/entity"
	"used_market/pkg/errcodes"
)

// Snapshot is the complete persistable pipeline state: registry content plus
// the simulated clock positions. Without the clocks a reload would restart at
// month/hour zero underneath listings whose deadlines and discovery months
// reference the previous run.
type Snapshot struct {
	Requests []*entity.SearchRequest
	Listings []*entity.Listing
	Month    int
	Hour     int
}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS search_requests (
	id             TEXT PRIMARY KEY,
	account_id     BIGINT NOT NULL,
	catalog_ref    TEXT NOT NULL,
	tier           TEXT NOT NULL,
	quality        TEXT NOT NULL,
	months_elapsed INT NOT NULL,
	found          INT NOT NULL,
	status         TEXT NOT NULL,
	hired_at_month INT NOT NULL,
	fee_paid       BIGINT NOT NULL,
	position       INT NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id                  TEXT PRIMARY KEY,
	request_id          TEXT NOT NULL,
	account_id          BIGINT NOT NULL,
	catalog_ref         TEXT NOT NULL,
	variant             JSONB NOT NULL,
	age_years           INT NOT NULL,
	hours_operated      INT NOT NULL,
	damage              DOUBLE PRECISION NOT NULL,
	cosmetic_wear       DOUBLE PRECISION NOT NULL,
	profile             JSONB NOT NULL,
	base_price          BIGINT NOT NULL,
	commission_percent  DOUBLE PRECISION NOT NULL,
	commission_amount   BIGINT NOT NULL,
	agreed_price        BIGINT NOT NULL,
	personality         TEXT NOT NULL,
	inspection          JSONB NOT NULL,
	lock_state          JSONB NOT NULL,
	status              TEXT NOT NULL,
	discovered_at_month INT NOT NULL,
	position            INT NOT NULL
);

CREATE TABLE IF NOT EXISTS pipeline_state (
	id    INT PRIMARY KEY,
	month INT NOT NULL,
	hour  INT NOT NULL
);
`

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to create schema")
	}

	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// SaveSnapshot persists the full pipeline state, replacing the previous save.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
			return fmt.Errorf("clear listings: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM search_requests`); err != nil {
			return fmt.Errorf("clear search_requests: %w", err)
		}

		for i, req := range snap.Requests {
			if err := insertRequest(ctx, tx, newSearchRequestSchema(req, i)); err != nil {
				return fmt.Errorf("insert request %s: %w", req.ID, err)
			}
		}

		for i, l := range snap.Listings {
			row, err := newListingSchema(l, i)
			if err != nil {
				return fmt.Errorf("listing %s: %w", l.ID, err)
			}

			if err := insertListing(ctx, tx, row); err != nil {
				return fmt.Errorf("insert listing %s: %w", l.ID, err)
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO pipeline_state (id, month, hour) VALUES (1, $1, $2)
			ON CONFLICT (id) DO UPDATE SET month = EXCLUDED.month, hour = EXCLUDED.hour`,
			snap.Month, snap.Hour)
		if err != nil {
			return fmt.Errorf("upsert pipeline_state: %w", err)
		}

		return nil
	})
}

func insertRequest(ctx context.Context, tx *sqlx.Tx, row searchRequestSchema) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO search_requests (
			id, account_id, catalog_ref, tier, quality,
			months_elapsed, found, status, hired_at_month, fee_paid, position
		) VALUES (
			:id, :account_id, :catalog_ref, :tier, :quality,
			:months_elapsed, :found, :status, :hired_at_month, :fee_paid, :position
		)`, row)

	return err
}

func insertListing(ctx context.Context, tx *sqlx.Tx, row listingSchema) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO listings (
			id, request_id, account_id, catalog_ref, variant,
			age_years, hours_operated, damage, cosmetic_wear, profile,
			base_price, commission_percent, commission_amount, agreed_price,
			personality, inspection, lock_state, status, discovered_at_month, position
		) VALUES (
			:id, :request_id, :account_id, :catalog_ref, :variant,
			:age_years, :hours_operated, :damage, :cosmetic_wear, :profile,
			:base_price, :commission_percent, :commission_amount, :agreed_price,
			:personality, :inspection, :lock_state, :status, :discovered_at_month, :position
		)`, row)

	return err
}

// LoadSnapshot reads back the last save in stored order. A database without a
// save yields an empty snapshot with both clocks at zero.
func (s *Store) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	var requestRows []searchRequestSchema

	err := s.db.SelectContext(ctx, &requestRows, `
		SELECT id, account_id, catalog_ref, tier, quality,
		       months_elapsed, found, status, hired_at_month, fee_paid, position
		FROM search_requests ORDER BY position`)
	if err != nil {
		return Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to load search requests")
	}

	var listingRows []listingSchema

	err = s.db.SelectContext(ctx, &listingRows, `
		SELECT id, request_id, account_id, catalog_ref, variant,
		       age_years, hours_operated, damage, cosmetic_wear, profile,
		       base_price, commission_percent, commission_amount, agreed_price,
		       personality, inspection, lock_state, status, discovered_at_month, position
		FROM listings ORDER BY position`)
	if err != nil {
		return Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to load listings")
	}

	snap := Snapshot{
		Requests: make([]*entity.SearchRequest, 0, len(requestRows)),
		Listings: make([]*entity.Listing, 0, len(listingRows)),
	}

	for _, row := range requestRows {
		snap.Requests = append(snap.Requests, row.toEntity())
	}

	for _, row := range listingRows {
		l, err := row.toEntity()
		if err != nil {
			return Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to decode listing "+row.ID)
		}

		snap.Listings = append(snap.Listings, l)
	}

	var state struct {
		Month int `db:"month"`
		Hour  int `db:"hour"`
	}

	err = s.db.GetContext(ctx, &state, `SELECT month, hour FROM pipeline_state WHERE id = 1`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, domain.WrapError(err, errcodes.InternalServerError, "failed to load pipeline state")
	}

	snap.Month = state.Month
	snap.Hour = state.Hour

	return snap, nil
}
