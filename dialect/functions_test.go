package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbridge/sqlbridge"
)

func TestFunctionCatalogRender(t *testing.T) {
	d := buildPostgres(MakeVersion(15))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"abs", []string{"x"}, "abs(x)"},
		{"coalesce", []string{"a", "b", "c"}, "coalesce(a, b, c)"},
		{"locate", []string{"'foo'", "name"}, "position('foo' in name)"},
		{"listagg", []string{"name", "','"}, "string_agg(name, ',')"},
		{"every", []string{"active"}, "bool_and(active)"},
		{"current_timestamp", nil, "current_timestamp"},
	}
	for _, tt := range tests {
		got, err := d.Functions().Render(tt.name, tt.args)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestFunctionCatalogUnknownName(t *testing.T) {
	d := buildPostgres(MakeVersion(15))
	_, err := d.Functions().Render("no_such_function", []string{"x"})
	require.Error(t, err)
	assert.True(t, sqlbridge.IsConfiguration(err))
	assert.False(t, d.Functions().Supports("no_such_function"))
}

func TestFunctionCatalogMissingArgument(t *testing.T) {
	d := buildPostgres(MakeVersion(15))
	_, err := d.Functions().Render("locate", []string{"'foo'"})
	require.Error(t, err)
	assert.True(t, sqlbridge.IsTranslation(err))
}

func TestFunctionCatalogNoParens(t *testing.T) {
	d := buildPostgres(MakeVersion(15))
	_, err := d.Functions().Render("current_date", []string{"x"})
	require.Error(t, err)
	assert.True(t, sqlbridge.IsTranslation(err))
}

// The later registration wins: H2 swaps the group_concat emulation for
// native listagg at 2.0.
func TestH2ListaggOverride(t *testing.T) {
	old := buildH2(MakeVersion(1, 4, 200))
	got, err := old.Functions().Render("listagg", []string{"name", "','"})
	require.NoError(t, err)
	assert.Equal(t, "group_concat(name separator ',')", got)

	v2 := buildH2(MakeVersion(2, 1, 214))
	got, err = v2.Functions().Render("listagg", []string{"name", "','"})
	require.NoError(t, err)
	assert.Equal(t, "listagg(name, ',')", got)
}

func TestOracleFunctionRewrites(t *testing.T) {
	d := buildOracle(MakeVersion(19))

	tests := []struct {
		name string
		args []string
		want string
	}{
		// Argument order flips: locate(needle, haystack) is instr(haystack, needle).
		{"locate", []string{"'foo'", "name"}, "instr(name, 'foo')"},
		{"every", []string{"active = 1"}, "min(case when active = 1 then 1 else 0 end)"},
		{"listagg", []string{"name", "','"}, "listagg(name, ',') within group (order by name)"},
		{"substring", []string{"name", "2", "3"}, "substr(name, 2, 3)"},
		{"substring", []string{"name", "2"}, "substr(name, 2)"},
		{"day_of_year", []string{"hired_at"}, "to_number(to_char(hired_at, 'DDD'))"},
	}
	for _, tt := range tests {
		got, err := d.Functions().Render(tt.name, tt.args)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

// Rendering is pure: repeated calls agree, whatever the call order.
func TestFunctionRenderDeterministic(t *testing.T) {
	d := buildSpanner(MakeVersion(1))
	first, err := d.Functions().Render("locate", []string{"'x'", "s"})
	require.NoError(t, err)
	_, err = d.Functions().Render("listagg", []string{"s", "','"})
	require.NoError(t, err)
	again, err := d.Functions().Render("locate", []string{"'x'", "s"})
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, "strpos(s, 'x')", first)
}
