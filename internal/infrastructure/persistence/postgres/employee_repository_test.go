package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"talent-match/internal/domain/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanEmployee(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	row := fakeRow{values: []any{id, "a@b.io", "hash", "Ann", "Engineering", "Backend", "manager", true, now, now}}

	e, err := scanEmployee(row)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, employee.RoleManager, e.Role)
	assert.True(t, e.IsActive)
}

func TestScanEmployee_NotFound(t *testing.T) {
	_, err := scanEmployee(fakeRow{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, employee.ErrNotFound)

	boom := errors.New("boom")
	_, err = scanEmployee(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestNewEmployeeRepository_NilDB(t *testing.T) {
	_, err := NewEmployeeRepository(t.Context(), nil)
	assert.Error(t, err)
}
