package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbridge/sqlbridge"
)

func TestDatetimeFormatToChar(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"dd/MM/yyyy", "DD/MM/YYYY"},
		{"yyyy-MM-dd HH:mm:ss.SSSSSS", "YYYY-MM-DD HH24:MI:SS.FF6"},
		{"EEEE, MMMM d", "Day, Month DD"},
		{"MMM yy", "Mon YY"},
		{"hh:mm a", "HH12:MI AM"},
		{"yyyy'T'HH", `YYYY"T"HH24`},
		{"hh 'o''clock' a", `HH12 "o'clock" AM`},
		{"HH:mm:ssxxx", "HH24:MI:SSTZH:TZM"},
	}
	pg := buildPostgres(MakeVersion(15))
	oracle := buildOracle(MakeVersion(19))
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := pg.DatetimeFormat(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			got, err = oracle.DatetimeFormat(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatetimeFormatStrftime(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"yyyy-MM-dd", "%Y-%m-%d"},
		{"HH:mm:ss", "%H:%M:%S"},
		{"MMM d", "%b %d"},
		{"EEEE", "%A"},
		{"hh:mm a", "%I:%M %p"},
		{"yyyy'%'", "%Y%%"},
	}
	spanner := buildSpanner(MakeVersion(1))
	crdb := buildCockroach(MakeVersion(23, 1))
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := spanner.DatetimeFormat(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			got, err = crdb.DatetimeFormat(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatetimeFormatErrors(t *testing.T) {
	t.Run("field the vendor cannot express", func(t *testing.T) {
		// strftime has no era directive.
		_, err := buildSpanner(MakeVersion(1)).DatetimeFormat("G yyyy")
		require.Error(t, err)
		assert.True(t, sqlbridge.IsTranslation(err))
	})

	t.Run("unterminated literal", func(t *testing.T) {
		_, err := buildPostgres(MakeVersion(15)).DatetimeFormat("yyyy'T")
		require.Error(t, err)
		assert.True(t, sqlbridge.IsTranslation(err))
	})
}

func TestFormatDatetimeFunction(t *testing.T) {
	tests := []struct {
		d    *Dialect
		want string
	}{
		{buildPostgres(MakeVersion(15)), "to_char(hired_at, 'YYYY-MM-DD')"},
		{buildOracle(MakeVersion(19)), "to_char(hired_at, 'YYYY-MM-DD')"},
		{buildCockroach(MakeVersion(23, 1)), "experimental_strftime(hired_at, '%Y-%m-%d')"},
		{buildSpanner(MakeVersion(1)), "format_timestamp('%Y-%m-%d', hired_at)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.d.Vendor()), func(t *testing.T) {
			pattern, err := tt.d.DatetimeFormat("yyyy-MM-dd")
			require.NoError(t, err)
			got, err := tt.d.Functions().Render("format_datetime", []string{"hired_at", "'" + pattern + "'"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
