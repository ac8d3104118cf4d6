package sqlbridge_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlbridge/sqlbridge"
)

func TestLockTimeoutError(t *testing.T) {
	native := errors.New("ORA-00054: resource busy and acquire with NOWAIT specified")
	err := &sqlbridge.LockTimeoutError{Code: 54, Err: native}

	t.Run("Is", func(t *testing.T) {
		assert.True(t, errors.Is(err, sqlbridge.ErrLockTimeout))
	})

	t.Run("IsLockTimeout", func(t *testing.T) {
		assert.True(t, sqlbridge.IsLockTimeout(err))
		assert.True(t, sqlbridge.IsLockTimeout(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, sqlbridge.IsLockTimeout(sqlbridge.ErrLockTimeout))
		assert.False(t, sqlbridge.IsLockTimeout(errors.New("other")))
		assert.False(t, sqlbridge.IsLockTimeout(nil))
	})

	t.Run("Unwrap", func(t *testing.T) {
		assert.True(t, errors.Is(err, native))
	})
}

func TestDeadlockError(t *testing.T) {
	native := errors.New("deadlock detected")
	err := &sqlbridge.DeadlockError{State: "40P01", Err: native}

	assert.True(t, errors.Is(err, sqlbridge.ErrDeadlock))
	assert.True(t, sqlbridge.IsDeadlock(err))
	assert.True(t, sqlbridge.IsDeadlock(fmt.Errorf("exec: %w", err)))
	assert.False(t, sqlbridge.IsDeadlock(sqlbridge.ErrLockTimeout))
}

func TestConstraintViolationError(t *testing.T) {
	native := errors.New(`duplicate key value violates unique constraint "uq_person_email"`)
	err := &sqlbridge.ConstraintViolationError{Constraint: "uq_person_email", State: "23505", Err: native}

	t.Run("Error", func(t *testing.T) {
		assert.Contains(t, err.Error(), `"uq_person_email"`)
	})

	t.Run("ConstraintName", func(t *testing.T) {
		assert.Equal(t, "uq_person_email", sqlbridge.ConstraintName(err))
		assert.Equal(t, "uq_person_email", sqlbridge.ConstraintName(fmt.Errorf("insert: %w", err)))
		assert.Empty(t, sqlbridge.ConstraintName(errors.New("other")))
	})

	t.Run("IsConstraintViolation", func(t *testing.T) {
		assert.True(t, sqlbridge.IsConstraintViolation(err))
		assert.True(t, errors.Is(err, sqlbridge.ErrConstraintViolation))
	})
}

func TestQueryTimeoutError(t *testing.T) {
	err := &sqlbridge.QueryTimeoutError{Code: 1013, Err: errors.New("user requested cancel")}
	assert.True(t, sqlbridge.IsQueryTimeout(err))
	assert.True(t, errors.Is(err, sqlbridge.ErrQueryTimeout))
	assert.False(t, sqlbridge.IsQueryTimeout(nil))
}

func TestConfigurationError(t *testing.T) {
	err := sqlbridge.NewConfigurationError("no column type mapping for %s", "GEOMETRY")
	assert.Equal(t, "sqlbridge: configuration: no column type mapping for GEOMETRY", err.Error())
	assert.True(t, sqlbridge.IsConfiguration(err))
	assert.True(t, sqlbridge.IsConfiguration(fmt.Errorf("ddl: %w", err)))
	assert.False(t, sqlbridge.IsConfiguration(errors.New("other")))
}

func TestTranslationError(t *testing.T) {
	err := sqlbridge.NewTranslationError("unsupported statement kind %d", 42)
	assert.Equal(t, "sqlbridge: translation: unsupported statement kind 42", err.Error())
	assert.True(t, sqlbridge.IsTranslation(err))
	assert.False(t, sqlbridge.IsTranslation(nil))
}

// Classification must be distinguishable from configuration failures: a
// runtime lock timeout is never a ConfigurationError and vice versa.
func TestTaxonomyDisjoint(t *testing.T) {
	lock := &sqlbridge.LockTimeoutError{Err: errors.New("busy")}
	conf := sqlbridge.NewConfigurationError("broken")

	assert.False(t, sqlbridge.IsConfiguration(lock))
	assert.False(t, sqlbridge.IsLockTimeout(conf))
	assert.False(t, sqlbridge.IsDeadlock(lock))
	assert.False(t, sqlbridge.IsQueryTimeout(lock))
}
