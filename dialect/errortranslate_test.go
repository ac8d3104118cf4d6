package dialect

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sijms/go-ora/v2/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sqlbridge/sqlbridge"
)

func TestTranslatePostgres(t *testing.T) {
	d := buildPostgres(MakeVersion(15))

	t.Run("unique violation via lib/pq", func(t *testing.T) {
		err := d.Translate(&pq.Error{
			Code:    "23505",
			Message: `duplicate key value violates unique constraint "uq_person_email"`,
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "uq_person_email", sqlbridge.ConstraintName(err))
	})

	t.Run("deadlock via pgx", func(t *testing.T) {
		err := d.Translate(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})
		assert.True(t, sqlbridge.IsDeadlock(err))
	})

	t.Run("lock not available", func(t *testing.T) {
		err := d.Translate(&pgconn.PgError{Code: "55P03", Message: "could not obtain lock on row"})
		assert.True(t, sqlbridge.IsLockTimeout(err))
	})

	t.Run("statement cancelled", func(t *testing.T) {
		err := d.Translate(&pq.Error{Code: "57014", Message: "canceling statement due to statement timeout"})
		assert.True(t, sqlbridge.IsQueryTimeout(err))
	})

	t.Run("not null column", func(t *testing.T) {
		err := d.Translate(&pgconn.PgError{
			Code:    "23502",
			Message: `null value in column "email" violates not-null constraint`,
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "email", sqlbridge.ConstraintName(err))
	})

	t.Run("foreign key", func(t *testing.T) {
		err := d.Translate(&pq.Error{
			Code:    "23503",
			Message: `insert or update on table "address" violates foreign key constraint "fk_address_person"`,
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "fk_address_person", sqlbridge.ConstraintName(err))
	})
}

func TestTranslateCockroach(t *testing.T) {
	d := buildCockroach(MakeVersion(23, 1))

	t.Run("serialization retry", func(t *testing.T) {
		err := d.Translate(&pgconn.PgError{Code: "40001", Message: "restart transaction"})
		assert.True(t, sqlbridge.IsDeadlock(err))
	})

	t.Run("check violation", func(t *testing.T) {
		err := d.Translate(&pgconn.PgError{
			Code:    "23514",
			Message: `failed to satisfy CHECK constraint: new row violates check constraint "ck_age_positive"`,
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "ck_age_positive", sqlbridge.ConstraintName(err))
	})
}

func TestTranslateOracle(t *testing.T) {
	d := buildOracle(MakeVersion(19))

	t.Run("unique constraint with schema-qualified name", func(t *testing.T) {
		err := d.Translate(&network.OracleError{
			ErrCode: 1,
			ErrMsg:  "ORA-00001: unique constraint (HR.UQ_PERSON_EMAIL) violated",
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "HR.UQ_PERSON_EMAIL", sqlbridge.ConstraintName(err))
	})

	t.Run("nowait lock failure", func(t *testing.T) {
		err := d.Translate(&network.OracleError{
			ErrCode: 54,
			ErrMsg:  "ORA-00054: resource busy and acquire with NOWAIT specified",
		})
		assert.True(t, sqlbridge.IsLockTimeout(err))
	})

	t.Run("wait timeout", func(t *testing.T) {
		err := d.Translate(&network.OracleError{ErrCode: 30006, ErrMsg: "ORA-30006: resource busy"})
		assert.True(t, sqlbridge.IsLockTimeout(err))
	})

	t.Run("deadlock", func(t *testing.T) {
		err := d.Translate(&network.OracleError{ErrCode: 60, ErrMsg: "ORA-00060: deadlock detected while waiting for resource"})
		assert.True(t, sqlbridge.IsDeadlock(err))
	})

	t.Run("user cancel", func(t *testing.T) {
		err := d.Translate(&network.OracleError{ErrCode: 1013, ErrMsg: "ORA-01013: user requested cancel of current operation"})
		assert.True(t, sqlbridge.IsQueryTimeout(err))
	})

	t.Run("missing parent key", func(t *testing.T) {
		err := d.Translate(&network.OracleError{
			ErrCode: 2291,
			ErrMsg:  "ORA-02291: integrity constraint (HR.FK_ADDRESS_PERSON) violated - parent key not found",
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "HR.FK_ADDRESS_PERSON", sqlbridge.ConstraintName(err))
	})
}

// H2 errors arrive through bridge drivers as plain code/message pairs.
func TestClassifyH2(t *testing.T) {
	d := buildH2(MakeVersion(2, 1, 214))

	t.Run("unique index violation", func(t *testing.T) {
		err := d.ClassifyNative(NativeError{
			Code:    23505,
			Message: `Unique index or primary key violation: "UQ_PERSON_EMAIL_INDEX_8 ON PUBLIC.PERSON(EMAIL) VALUES 2"`,
			Err:     errors.New("h2"),
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
	})

	t.Run("referential violation trims quoted name", func(t *testing.T) {
		err := d.ClassifyNative(NativeError{
			Code:    23506,
			Message: `Referential integrity constraint violation: "FK_ADDRESS_PERSON: PUBLIC.ADDRESS FOREIGN KEY(PERSON_ID) REFERENCES PUBLIC.PERSON(ID) 5"`,
			Err:     errors.New("h2"),
		})
		require.True(t, sqlbridge.IsConstraintViolation(err))
		assert.Equal(t, "FK_ADDRESS_PERSON", sqlbridge.ConstraintName(err))
	})

	t.Run("lock timeout", func(t *testing.T) {
		err := d.ClassifyNative(NativeError{Code: 50200, Err: errors.New("h2")})
		assert.True(t, sqlbridge.IsLockTimeout(err))
	})

	t.Run("deadlock", func(t *testing.T) {
		err := d.ClassifyNative(NativeError{Code: 40001, Err: errors.New("h2")})
		assert.True(t, sqlbridge.IsDeadlock(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		err := d.ClassifyNative(NativeError{Code: 57014, Err: errors.New("h2")})
		assert.True(t, sqlbridge.IsQueryTimeout(err))
	})
}

func TestTranslateSpanner(t *testing.T) {
	d := buildSpanner(MakeVersion(1))

	t.Run("aborted retries as deadlock", func(t *testing.T) {
		err := d.Translate(status.Error(codes.Aborted, "transaction was aborted"))
		assert.True(t, sqlbridge.IsDeadlock(err))
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		err := d.Translate(status.Error(codes.DeadlineExceeded, "deadline exceeded"))
		assert.True(t, sqlbridge.IsQueryTimeout(err))
	})

	t.Run("already exists", func(t *testing.T) {
		err := d.Translate(status.Error(codes.AlreadyExists, "row already exists"))
		assert.True(t, sqlbridge.IsConstraintViolation(err))
	})
}

// Unrecognized errors pass through untouched; classification never invents
// failures.
func TestTranslatePassthrough(t *testing.T) {
	boring := errors.New("connection refused")
	for vendor, d := range allDialects() {
		got := d.Translate(boring)
		assert.Same(t, boring, got, vendor)
	}
	assert.Nil(t, buildPostgres(MakeVersion(15)).Translate(nil))
}

// Same input, same category, any call order.
func TestClassificationPurity(t *testing.T) {
	d := buildOracle(MakeVersion(19))
	in := &network.OracleError{ErrCode: 60, ErrMsg: "ORA-00060: deadlock detected"}

	first := d.Translate(in)
	d.Translate(&network.OracleError{ErrCode: 54, ErrMsg: "ORA-00054: busy"})
	second := d.Translate(in)
	assert.True(t, sqlbridge.IsDeadlock(first))
	assert.True(t, sqlbridge.IsDeadlock(second))
	assert.Equal(t, first.Error(), second.Error())
}

func TestConstraintTemplateExtract(t *testing.T) {
	tmpl := ConstraintTemplate{Prefix: `violates unique constraint "`, Suffix: `"`}
	assert.Equal(t, "uq_person_email",
		tmpl.Extract(`duplicate key value violates unique constraint "uq_person_email"`))
	assert.Empty(t, tmpl.Extract("no delimiters here"))
	assert.Empty(t, tmpl.Extract(`violates unique constraint "unterminated`))
}
