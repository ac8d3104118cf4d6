package dialect

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbridge/sqlbridge"
)

func TestNew(t *testing.T) {
	t.Run("known vendor", func(t *testing.T) {
		d, err := New(Postgres, MakeVersion(15, 4))
		require.NoError(t, err)
		assert.Equal(t, Postgres, d.Vendor())
		assert.Equal(t, MakeVersion(15, 4), d.Version())
		assert.Equal(t, DriverPostgres, d.Driver())
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, err := New("mysql", MakeVersion(8))
		require.Error(t, err)
		assert.True(t, sqlbridge.IsConfiguration(err))
	})

	t.Run("version below minimum clamps", func(t *testing.T) {
		d, err := New(CockroachDB, MakeVersion(20, 2))
		require.NoError(t, err)
		assert.Equal(t, MakeVersion(21, 1), d.Version())
	})
}

func TestNewWithOptions(t *testing.T) {
	t.Run("function override", func(t *testing.T) {
		d, err := New(Postgres, MakeVersion(15), WithFunction("md5", RendererFunc(
			func(name string, args []string) (string, error) {
				return "digest(" + args[0] + ", 'md5')", nil
			})))
		require.NoError(t, err)
		got, err := d.Functions().Render("md5", []string{"payload"})
		require.NoError(t, err)
		assert.Equal(t, "digest(payload, 'md5')", got)
	})

	t.Run("classifier runs before the vendor chain", func(t *testing.T) {
		d, err := New(Postgres, MakeVersion(15), WithClassifier(ClassifierFunc(
			func(n NativeError) error {
				if n.State == "XX000" {
					return sqlbridge.ErrQueryTimeout
				}
				return nil
			})))
		require.NoError(t, err)
		assert.ErrorIs(t, d.ClassifyNative(NativeError{State: "XX000"}), sqlbridge.ErrQueryTimeout)
		// Everything else still flows through the vendor chain.
		assert.True(t, sqlbridge.IsDeadlock(d.ClassifyNative(NativeError{State: "40P01"})))
	})

	t.Run("private instance bypasses the registry", func(t *testing.T) {
		shared, err := New(Postgres, MakeVersion(15))
		require.NoError(t, err)
		private, err := New(Postgres, MakeVersion(15), WithFunction("noop", RendererFunc(
			func(name string, args []string) (string, error) { return name, nil })))
		require.NoError(t, err)
		assert.NotSame(t, shared, private)
		assert.False(t, shared.Functions().Supports("noop"))
	})
}

// One (vendor, version) pair always yields the same instance, also under
// concurrent construction.
func TestNewDeduplicates(t *testing.T) {
	const workers = 16
	out := make([]*Dialect, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := New(Oracle, MakeVersion(19, 3))
			assert.NoError(t, err)
			out[i] = d
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		assert.Same(t, out[0], out[i])
	}
}

func TestQuoteIdentifier(t *testing.T) {
	pg, err := New(Postgres, MakeVersion(15))
	require.NoError(t, err)
	assert.Equal(t, `"person"`, pg.QuoteIdentifier("person"))
	assert.Equal(t, `"we""ird"`, pg.QuoteIdentifier(`we"ird`))

	spanner, err := New(Spanner, MakeVersion(1))
	require.NoError(t, err)
	assert.Equal(t, "`person`", spanner.QuoteIdentifier("person"))
}

func TestBooleanLiteral(t *testing.T) {
	assert.Equal(t, "true", buildPostgres(MakeVersion(15)).BooleanLiteral(true))
	assert.Equal(t, "false", buildH2(MakeVersion(2, 1, 214)).BooleanLiteral(false))
	// Booleans live in number(1,0) columns.
	assert.Equal(t, "1", buildOracle(MakeVersion(19)).BooleanLiteral(true))
	assert.Equal(t, "0", buildOracle(MakeVersion(19)).BooleanLiteral(false))
}

func TestBinaryLiteral(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	assert.Equal(t, "hextoraw('deadbeef')", buildOracle(MakeVersion(19)).BinaryLiteral(data))
	assert.Equal(t, `'\xdeadbeef'`, buildPostgres(MakeVersion(15)).BinaryLiteral(data))
	assert.Equal(t, `'\xdeadbeef'`, buildCockroach(MakeVersion(23, 1)).BinaryLiteral(data))
	assert.Equal(t, "from_hex('deadbeef')", buildSpanner(MakeVersion(1)).BinaryLiteral(data))
	assert.Equal(t, "X'deadbeef'", buildH2(MakeVersion(2, 1, 214)).BinaryLiteral(data))
}

func TestUUIDLiteral(t *testing.T) {
	u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'", buildPostgres(MakeVersion(15)).UUIDLiteral(u))
	assert.Equal(t, "hextoraw('6BA7B8109DAD11D180B400C04FD430C8')", buildOracle(MakeVersion(19)).UUIDLiteral(u))
}

func TestStringLiteral(t *testing.T) {
	d := buildPostgres(MakeVersion(15))
	assert.Equal(t, "'it''s'", d.StringLiteral("it's"))
}
