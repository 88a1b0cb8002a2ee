package repository

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"lead_tracker/internal/filter"
	"lead_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leadRowColumns = []string{
	"id", "user_id", "first_name", "last_name", "email", "phone", "company", "city", "state",
	"source", "status", "score", "lead_value", "last_activity_at", "is_qualified", "created_at", "updated_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleLead(owner uuid.UUID) model.Lead {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return model.Lead{
		ID:          uuid.New(),
		UserID:      owner,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "l@x.com",
		Company:     "Analytical",
		Source:      model.SourceWebsite,
		Status:      model.StatusNew,
		Score:       50,
		LeadValue:   1200,
		IsQualified: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func leadRow(l model.Lead) []any {
	var lastActivity any
	if l.LastActivityAt != nil {
		lastActivity = l.LastActivityAt
	}
	return []any{
		l.ID, l.UserID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
		l.Source, l.Status, l.Score, l.LeadValue, lastActivity, l.IsQualified, l.CreatedAt, l.UpdatedAt,
	}
}

func TestLeadWhere_OwnerOnly(t *testing.T) {
	owner := uuid.New()

	where, args, err := leadWhere(&filter.Query{OwnerID: owner, Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, " WHERE user_id = $1", where)
	assert.Equal(t, []any{owner}, args)
}

func TestLeadWhere_AllOperators(t *testing.T) {
	owner := uuid.New()
	q, err := filter.Compile(owner, url.Values{
		"email":        {"contains:Foo"},
		"status":       {"in:new,lost"},
		"score":        {"between:10,20"},
		"lead_value":   {"gt:500"},
		"created_at":   {"before:2024-01-01"},
		"is_qualified": {"true"},
	})
	require.NoError(t, err)

	where, args, err := leadWhere(q)

	require.NoError(t, err)
	assert.Equal(t, " WHERE user_id = $1"+
		" AND strpos(lower(email), lower($2)) > 0"+
		" AND status = ANY($3)"+
		" AND score >= $4::double precision AND score <= $5::double precision"+
		" AND lead_value > $6::double precision"+
		" AND created_at < $7::timestamptz"+
		" AND is_qualified = $8", where)
	assert.Equal(t, []any{
		owner, "Foo", []string{"new", "lost"}, 10.0, 20.0, 500.0,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true,
	}, args)
}

func TestLeadWhere_RejectsUnregisteredField(t *testing.T) {
	q := &filter.Query{
		OwnerID: uuid.New(),
		Conditions: []filter.Condition{
			{Field: "user_id", Kind: filter.KindText, Op: filter.OpEquals, Args: []any{"x"}},
		},
	}
	_, _, err := leadWhere(q)
	assert.Error(t, err)

	q.Conditions = []filter.Condition{{Field: "score", Kind: filter.KindNumeric, Op: filter.OpBetween, Args: []any{1.0}}}
	_, _, err = leadWhere(q)
	assert.Error(t, err)
}

func TestLeadRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	l := sampleLead(uuid.New())

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(
			l.ID, l.UserID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
			l.Source, l.Status, l.Score, l.LeadValue, l.LastActivityAt, l.IsQualified, l.CreatedAt, l.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), &l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_CreateConstraintViolation(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	l := sampleLead(uuid.New())

	mock.ExpectExec("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23514", Message: `new row for relation "leads" violates check constraint "leads_score_check"`})

	err := repo.Create(context.Background(), &l)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraint))
	var ce *ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Error(), "leads_score_check")
}

func TestLeadRepository_CreateMany(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	owner := uuid.New()

	mock.ExpectCopyFrom(pgx.Identifier{"leads"}, leadCopyColumns).WillReturnResult(2)

	n, err := repo.CreateMany(context.Background(), []model.Lead{sampleLead(owner), sampleLead(owner)})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindScopesToOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	owner := uuid.New()
	l := sampleLead(owner)

	q, err := filter.Compile(owner, url.Values{"score": {"gt:40"}, "page": {"2"}, "limit": {"10"}})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM leads WHERE user_id = $1 AND score > $2::double precision ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`)).
		WithArgs(owner, 40.0, 10, 10).
		WillReturnRows(mock.NewRows(leadRowColumns).AddRow(leadRow(l)...))

	leads, err := repo.Find(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, l, leads[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindEmpty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	owner := uuid.New()

	q, err := filter.Compile(owner, url.Values{"score": {"lt:40"}})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM leads WHERE user_id = $1 AND score < $2::double precision`)).
		WithArgs(owner, 40.0, 20, 0).
		WillReturnRows(mock.NewRows(leadRowColumns))

	leads, err := repo.Find(context.Background(), q)

	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_Count(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	owner := uuid.New()

	q, err := filter.Compile(owner, url.Values{"status": {"in:new,lost"}})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM leads WHERE user_id = $1 AND status = ANY($2)`)).
		WithArgs(owner, []string{"new", "lost"}).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(7)))

	total, err := repo.Count(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByIDForOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	owner := uuid.New()
	l := sampleLead(owner)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM leads WHERE id = $1 AND user_id = $2`)).
		WithArgs(l.ID, owner).
		WillReturnRows(mock.NewRows(leadRowColumns).AddRow(leadRow(l)...))

	got, err := repo.FindByIDForOwner(context.Background(), l.ID, owner)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, l, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByIDForOtherOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	id, stranger := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM leads WHERE id = $1 AND user_id = $2`)).
		WithArgs(id, stranger).
		WillReturnRows(mock.NewRows(leadRowColumns))

	got, err := repo.FindByIDForOwner(context.Background(), id, stranger)

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_Update(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	l := sampleLead(uuid.New())
	l.Score = 75
	updatedAt := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE id = $14 AND user_id = $15 RETURNING updated_at`)).
		WithArgs(
			l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
			l.Source, l.Status, 75, l.LeadValue, l.LastActivityAt, l.IsQualified,
			l.ID, l.UserID,
		).
		WillReturnRows(mock.NewRows([]string{"updated_at"}).AddRow(updatedAt))

	ok, err := repo.Update(context.Background(), &l)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, updatedAt, l.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateNotOwned(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	l := sampleLead(uuid.New())

	mock.ExpectQuery("UPDATE leads").
		WithArgs(
			l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.City, l.State,
			l.Source, l.Status, l.Score, l.LeadValue, l.LastActivityAt, l.IsQualified,
			l.ID, l.UserID,
		).
		WillReturnRows(mock.NewRows([]string{"updated_at"}))

	ok, err := repo.Update(context.Background(), &l)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_DeleteForOwner(t *testing.T) {
	mock := newMockPool(t)
	repo := NewLeadRepository(mock)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM leads WHERE id = $1 AND user_id = $2`)).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM leads WHERE id = $1 AND user_id = $2`)).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.DeleteForOwner(context.Background(), id, owner)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteForOwner(context.Background(), id, owner)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
