package repository

import (
	"context"
	"errors"
	"fmt"

	"lead_tracker/internal/filter"
	"lead_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leadColumns = `id, user_id, first_name, last_name, email, phone, company, city, state,
            source, status, score, lead_value, last_activity_at, is_qualified, created_at, updated_at`

// leadCopyColumns is the column order used by bulk inserts
var leadCopyColumns = []string{
	"id", "user_id", "first_name", "last_name", "email", "phone", "company", "city", "state",
	"source", "status", "score", "lead_value", "last_activity_at", "is_qualified", "created_at", "updated_at",
}

// LeadRepository defines operations for lead data. Every read and write is scoped to an owner.
type LeadRepository interface {
	Create(ctx context.Context, lead *model.Lead) error
	CreateMany(ctx context.Context, leads []model.Lead) (int64, error)
	Find(ctx context.Context, q *filter.Query) ([]model.Lead, error)
	Count(ctx context.Context, q *filter.Query) (int64, error)
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Lead, error)
	Update(ctx context.Context, lead *model.Lead) (bool, error)
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context) error
}

type leadRepository struct {
	db DBTX
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db DBTX) LeadRepository {
	return &leadRepository{db: db}
}

func scanLead(row pgx.Row, l *model.Lead) error {
	return row.Scan(
		&l.ID, &l.UserID, &l.FirstName, &l.LastName, &l.Email, &l.Phone, &l.Company, &l.City, &l.State,
		&l.Source, &l.Status, &l.Score, &l.LeadValue, &l.LastActivityAt, &l.IsQualified, &l.CreatedAt, &l.UpdatedAt,
	)
}

// Create inserts a new lead into the database
func (r *leadRepository) Create(ctx context.Context, l *model.Lead) error {
	sql := `INSERT INTO leads (` + leadColumns + `)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, sql,
		l.ID, l.UserID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
		l.Source, l.Status, l.Score, l.LeadValue, l.LastActivityAt, l.IsQualified, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", translate(err))
	}
	return nil
}

// CreateMany bulk inserts leads with COPY
func (r *leadRepository) CreateMany(ctx context.Context, leads []model.Lead) (int64, error) {
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"leads"}, leadCopyColumns, pgx.CopyFromSlice(len(leads), func(i int) ([]any, error) {
		l := leads[i]
		return []any{
			l.ID, l.UserID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
			l.Source, l.Status, l.Score, l.LeadValue, l.LastActivityAt, l.IsQualified, l.CreatedAt, l.UpdatedAt,
		}, nil
	}))
	if err != nil {
		return 0, fmt.Errorf("failed to copy leads: %w", translate(err))
	}
	return n, nil
}

// Find returns one page of the owner's leads matching q, newest first
func (r *leadRepository) Find(ctx context.Context, q *filter.Query) ([]model.Lead, error) {
	where, args, err := leadWhere(q)
	if err != nil {
		return nil, err
	}
	args = append(args, q.Limit, q.Offset())
	sql := fmt.Sprintf(`SELECT %s FROM leads%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		leadColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		leads = append(leads, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead rows: %w", err)
	}
	return leads, nil
}

// Count returns the number of the owner's leads matching q, ignoring pagination
func (r *leadRepository) Count(ctx context.Context, q *filter.Query) (int64, error) {
	where, args, err := leadWhere(q)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return total, nil
}

// FindByIDForOwner retrieves a lead only if ownerID owns it. A missing or foreign lead is (nil, nil).
func (r *leadRepository) FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Lead, error) {
	l := &model.Lead{}
	sql := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND user_id = $2`
	if err := scanLead(r.db.QueryRow(ctx, sql, id, ownerID), l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find lead by ID: %w", err)
	}
	return l, nil
}

// Update writes every mutable column of lead. It reports false when the lead
// does not exist or is not owned by lead.UserID.
func (r *leadRepository) Update(ctx context.Context, l *model.Lead) (bool, error) {
	sql := `UPDATE leads
            SET first_name = $1, last_name = $2, email = $3, phone = $4, company = $5, city = $6, state = $7,
                source = $8, status = $9, score = $10, lead_value = $11, last_activity_at = $12, is_qualified = $13,
                updated_at = NOW()
            WHERE id = $14 AND user_id = $15 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
		l.Source, l.Status, l.Score, l.LeadValue, l.LastActivityAt, l.IsQualified,
		l.ID, l.UserID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update lead: %w", translate(err))
	}
	return true, nil
}

// DeleteForOwner removes a lead owned by ownerID and reports whether one was removed
func (r *leadRepository) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete lead: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// DeleteAll removes every lead of every owner; used by the seeder only
func (r *leadRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM leads`); err != nil {
		return fmt.Errorf("failed to delete leads: %w", err)
	}
	return nil
}
