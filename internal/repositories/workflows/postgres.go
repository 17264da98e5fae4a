package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS listing_workflows (
    id              UUID PRIMARY KEY,
    status          TEXT NOT NULL,
    terms           JSONB NOT NULL,
    details         JSONB NOT NULL,
    property_id     TEXT,
    prev_counter    TEXT,
    listing_tx_hash TEXT NOT NULL DEFAULT '',
    details_tx_hash TEXT NOT NULL DEFAULT '',
    last_error      TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);
`

// tables created before prev_counter existed
const addPrevCounterSQL = `ALTER TABLE listing_workflows ADD COLUMN IF NOT EXISTS prev_counter TEXT;`

const upsertSQL = `
INSERT INTO listing_workflows
    (id, status, terms, details, property_id, prev_counter, listing_tx_hash, details_tx_hash, last_error, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    property_id = EXCLUDED.property_id,
    prev_counter = EXCLUDED.prev_counter,
    listing_tx_hash = EXCLUDED.listing_tx_hash,
    details_tx_hash = EXCLUDED.details_tx_hash,
    last_error = EXCLUDED.last_error,
    updated_at = EXCLUDED.updated_at;
`

const selectColumns = `id::text, status, terms, details, property_id, prev_counter, listing_tx_hash, details_tx_hash, last_error, created_at, updated_at`

// PostgresStore persists workflows so listings without details survive restarts
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("workflows: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("workflows: ping: %w", err)
	}
	for _, stmt := range []string{createTableSQL, addPrevCounterSQL} {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("workflows: migrate: %w", err)
		}
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Save(ctx context.Context, wf *estate.ListingWorkflow) error {
	rec := toRecord(wf)
	terms, err := json.Marshal(rec.Terms)
	if err != nil {
		return fmt.Errorf("workflows: marshal terms: %w", err)
	}
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("workflows: marshal details: %w", err)
	}

	_, err = s.pool.Exec(ctx, upsertSQL,
		wf.ID.String(), string(wf.Status), terms, details, rec.PropertyID, rec.PrevCounter,
		wf.ListingTxHash, wf.DetailsTxHash, wf.LastError, wf.CreatedAt.UTC(), wf.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("workflows: save %s: %w", wf.ID, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*estate.ListingWorkflow, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM listing_workflows WHERE id = $1`, id.String())
	wf, err := scanWorkflow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, estate.ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("workflows: get %s: %w", id, err)
	}
	return wf, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*estate.ListingWorkflow, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM listing_workflows ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("workflows: list: %w", err)
	}
	defer rows.Close()

	res := []*estate.ListingWorkflow{}
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("workflows: list: %w", err)
		}
		res = append(res, wf)
	}
	return res, rows.Err()
}

func scanWorkflow(row pgx.Row) (*estate.ListingWorkflow, error) {
	var (
		id         string
		status     string
		terms      []byte
		details    []byte
		propertyID *string
		counter    *string
		rec        record
		createdAt  time.Time
		updatedAt  time.Time
	)
	wf := &estate.ListingWorkflow{}
	err := row.Scan(&id, &status, &terms, &details, &propertyID, &counter, &wf.ListingTxHash, &wf.DetailsTxHash, &wf.LastError, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	wf.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(terms, &rec.Terms); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(details, &rec.Details); err != nil {
		return nil, err
	}
	rec.PropertyID = propertyID
	rec.PrevCounter = counter

	fromRecord(wf, rec)
	wf.Status = estate.WorkflowStatus(status)
	wf.CreatedAt = createdAt
	wf.UpdatedAt = updatedAt
	return wf, nil
}

type termsRecord struct {
	Price         *big.Int `json:"price"`
	ForSale       bool     `json:"forSale"`
	ForRent       bool     `json:"forRent"`
	RentAmount    *big.Int `json:"rentAmount"`
	RentDuration  *big.Int `json:"rentDuration"`
	AcceptingBids bool     `json:"acceptingBids"`
}

type detailsRecord struct {
	Name            string   `json:"name"`
	PhysicalAddress string   `json:"physicalAddress"`
	ResidenceType   string   `json:"residenceType"`
	Bedrooms        uint8    `json:"bedrooms"`
	Bathrooms       uint8    `json:"bathrooms"`
	SquareFeet      *big.Int `json:"squareFeet"`
	YearBuilt       uint16   `json:"yearBuilt"`
	KeyFeatures     []string `json:"keyFeatures"`
	Amenities       []string `json:"amenities"`
	Description     string   `json:"description"`
}

type record struct {
	Terms       termsRecord
	Details     detailsRecord
	PropertyID  *string
	PrevCounter *string
}

func toRecord(wf *estate.ListingWorkflow) record {
	rec := record{
		Terms: termsRecord{
			Price:         wf.Terms.Price,
			ForSale:       wf.Terms.ForSale,
			ForRent:       wf.Terms.ForRent,
			RentAmount:    wf.Terms.RentAmount,
			RentDuration:  wf.Terms.RentDuration,
			AcceptingBids: wf.Terms.AcceptingBids,
		},
		Details: detailsRecord(wf.Details),
	}
	rec.PropertyID = bigToText(wf.PropertyID)
	rec.PrevCounter = bigToText(wf.PrevCounter)
	return rec
}

func fromRecord(wf *estate.ListingWorkflow, rec record) {
	wf.Terms = estate.ListingTerms{
		Price:         rec.Terms.Price,
		ForSale:       rec.Terms.ForSale,
		ForRent:       rec.Terms.ForRent,
		RentAmount:    rec.Terms.RentAmount,
		RentDuration:  rec.Terms.RentDuration,
		AcceptingBids: rec.Terms.AcceptingBids,
	}
	wf.Details = estate.PropertyDetails(rec.Details)
	wf.PropertyID = textToBig(rec.PropertyID)
	wf.PrevCounter = textToBig(rec.PrevCounter)
}

func bigToText(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func textToBig(s *string) *big.Int {
	if s == nil {
		return nil
	}
	v, ok := new(big.Int).SetString(*s, 10)
	if !ok {
		return nil
	}
	return v
}
