package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dom "Renewals/internal/domain"
	"Renewals/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound means no checklist is stored for the key. Absence is not
// an error of the feature; callers fall back to the default template.
var ErrNotFound = errors.New("checklist not found")

// ErrCorrupted means a stored payload did not parse as a checklist.
// Treated the same as absence, but worth a warning in the log.
var ErrCorrupted = errors.New("checklist payload corrupt")

// ChecklistRepo persists one checklist per policy key.
//
// Save is a full overwrite with last-writer-wins semantics: a caller
// holding a stale copy clobbers concurrent edits on save. This is
// accepted, documented behavior; there is no merge.
type ChecklistRepo interface {
	Load(ctx context.Context, policyKey string) (dom.Checklist, error)
	Save(ctx context.Context, policyKey string, cl dom.Checklist) error
	Clear(ctx context.Context, policyKey string) error
	Keys(ctx context.Context) ([]string, error)
}

// PGChecklistRepo implements ChecklistRepo with Postgres. The checklist
// is stored as a JSONB array, one row per policy key.
type PGChecklistRepo struct {
	db *pgxpool.Pool
}

// NewPGChecklistRepo returns a new PGChecklistRepo.
func NewPGChecklistRepo(db *pgxpool.Pool) *PGChecklistRepo {
	return &PGChecklistRepo{db: db}
}

func (r *PGChecklistRepo) Load(ctx context.Context, policyKey string) (dom.Checklist, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT tasks FROM renewal_checklists WHERE policy_key = $1`,
		policyKey,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var cl dom.Checklist
	if err := json.Unmarshal(payload, &cl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return cl, nil
}

func (r *PGChecklistRepo) Save(ctx context.Context, policyKey string, cl dom.Checklist) error {
	payload, err := json.Marshal(cl)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	query := `
		INSERT INTO renewal_checklists (policy_key, tasks, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (policy_key) DO UPDATE SET tasks = $2, updated_at = NOW()`
	_, err = r.db.Exec(ctx, query, policyKey, payload)
	if utils.IsPGUniqueViolation(err) {
		// Two writers raced the first insert for this key; retry once,
		// the row exists now and the upsert path wins.
		_, err = r.db.Exec(ctx, query, policyKey, payload)
	}
	return err
}

func (r *PGChecklistRepo) Clear(ctx context.Context, policyKey string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM renewal_checklists WHERE policy_key = $1`, policyKey)
	return err
}

func (r *PGChecklistRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT policy_key FROM renewal_checklists ORDER BY policy_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
