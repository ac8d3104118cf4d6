package dialect

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).
			AddRow("PostgreSQL 15.4 on x86_64-pc-linux-gnu, compiled by gcc 11.3.0"))

	d, err := Detect(context.Background(), Postgres, db)
	require.NoError(t, err)
	assert.Equal(t, MakeVersion(15, 4), d.Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectCockroach(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).
			AddRow("CockroachDB CCL v22.1.9 (x86_64-pc-linux-gnu, built 2022/10/03)"))

	d, err := Detect(context.Background(), CockroachDB, db)
	require.NoError(t, err)
	assert.Equal(t, MakeVersion(22, 1, 9), d.Version())
}

func TestDetectH2(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT H2VERSION\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"h2version"}).AddRow("2.1.214 (2022-06-13)"))

	d, err := Detect(context.Background(), H2, db)
	require.NoError(t, err)
	assert.Equal(t, MakeVersion(2, 1, 214), d.Version())
}

// An unparseable banner falls back to the vendor minimum instead of failing:
// a connectable database stays usable.
func TestDetectFallsBackToMinimum(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("something unexpected"))

	d, err := Detect(context.Background(), CockroachDB, db)
	require.NoError(t, err)
	assert.Equal(t, MakeVersion(21, 1), d.Version())
}

// Spanner is versionless from the client's perspective; no query is issued.
func TestDetectSpanner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	d, err := Detect(context.Background(), Spanner, db)
	require.NoError(t, err)
	assert.Equal(t, Spanner, d.Vendor())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed probe query also degrades to the vendor minimum: version metadata
// never makes a connectable database unusable.
func TestDetectQueryErrorFallsBackToMinimum(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT version\(\)`).WillReturnError(assert.AnError)

	d, err := Detect(context.Background(), Postgres, db)
	require.NoError(t, err)
	assert.Equal(t, MakeVersion(12), d.Version())
	assert.NoError(t, mock.ExpectationsWereMet())
}
