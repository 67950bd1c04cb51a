package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfect-cfw/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func sectionColumns() []string {
	return []string{
		"id", "title", "icon", "type", "sort_order", "active", "rules",
		"content", "table_headers", "table_rows", "notes", "card_style",
		"created_at", "updated_at",
	}
}

func sectionRow(id uuid.UUID, sortOrder int) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), "General", "📋", "list", sortOrder, true, []byte("[]"),
		"", []byte("[]"), []byte("[]"), []byte("[]"), "normal",
		now, now,
	}
}

func TestRuleSectionCreateAppends(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRuleSectionRepository(db)
	now := time.Now()

	// The insert computes its own rank: one past the current maximum.
	mock.ExpectQuery(regexp.QuoteMeta(`(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM rule_sections)`)).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order", "created_at", "updated_at"}).AddRow(4, now, now))

	section := &domain.RuleSection{
		ID:    uuid.New(),
		Title: "General",
		Icon:  "📋",
		Type:  domain.SectionList,
	}
	err := repo.Create(context.Background(), section)

	require.NoError(t, err)
	assert.Equal(t, 4, section.SortOrder)
	assert.Equal(t, now, section.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleSectionReorderShiftsDown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRuleSectionRepository(db)
	id := uuid.New()

	// Moving from rank 1 to rank 3: everything in (1,3] steps down one.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sort_order FROM rule_sections WHERE id = $1 FOR UPDATE`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rule_sections SET sort_order = sort_order - 1 WHERE sort_order > $1 AND sort_order <= $2`)).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE rule_sections SET sort_order = $2, updated_at = NOW() WHERE id = $1 RETURNING *`)).
		WithArgs(id, 3).
		WillReturnRows(sqlmock.NewRows(sectionColumns()).AddRow(sectionRow(id, 3)...))
	mock.ExpectCommit()

	section, err := repo.Reorder(context.Background(), id, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, section.SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleSectionReorderShiftsUp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRuleSectionRepository(db)
	id := uuid.New()

	// Moving from rank 4 to rank 1: everything in [1,4) steps up one.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sort_order FROM rule_sections WHERE id = $1 FOR UPDATE`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rule_sections SET sort_order = sort_order + 1 WHERE sort_order >= $1 AND sort_order < $2`)).
		WithArgs(1, 4).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE rule_sections SET sort_order = $2, updated_at = NOW() WHERE id = $1 RETURNING *`)).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows(sectionColumns()).AddRow(sectionRow(id, 1)...))
	mock.ExpectCommit()

	section, err := repo.Reorder(context.Background(), id, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, section.SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleSectionReorderSamePosition(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRuleSectionRepository(db)
	id := uuid.New()

	// No shift statement when the section stays where it is.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sort_order FROM rule_sections WHERE id = $1 FOR UPDATE`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE rule_sections SET sort_order = $2, updated_at = NOW() WHERE id = $1 RETURNING *`)).
		WithArgs(id, 2).
		WillReturnRows(sqlmock.NewRows(sectionColumns()).AddRow(sectionRow(id, 2)...))
	mock.ExpectCommit()

	section, err := repo.Reorder(context.Background(), id, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, section.SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleSectionReorderUnknownSection(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRuleSectionRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT sort_order FROM rule_sections WHERE id = $1 FOR UPDATE`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}))
	mock.ExpectRollback()

	section, err := repo.Reorder(context.Background(), id, 0)

	assert.NoError(t, err)
	assert.Nil(t, section)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRuleSectionDeleteClosesGap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRuleSectionRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM rule_sections WHERE id = $1 RETURNING sort_order`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rule_sections SET sort_order = sort_order - 1 WHERE sort_order > $1`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
