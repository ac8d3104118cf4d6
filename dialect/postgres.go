package dialect

import (
	"github.com/sqlbridge/sqlbridge"
)

// pgConstraintTemplates maps PostgreSQL-protocol constraint SQLSTATEs to the
// delimiters around the constraint name in the server message. Shared with
// CockroachDB, which speaks the same protocol and message formats.
var pgConstraintTemplates = map[string]ConstraintTemplate{
	"23505": {Prefix: `violates unique constraint "`, Suffix: `"`},
	"23503": {Prefix: `violates foreign key constraint "`, Suffix: `"`},
	"23514": {Prefix: `violates check constraint "`, Suffix: `"`},
	"23502": {Prefix: `null value in column "`, Suffix: `"`},
}

// pgClassifier classifies PostgreSQL-protocol errors by SQLSTATE.
var pgClassifier = ClassifierFunc(func(n NativeError) error {
	switch n.State {
	case "40P01", "40001":
		return &sqlbridge.DeadlockError{State: n.State, Err: n.Err}
	case "55P03":
		return &sqlbridge.LockTimeoutError{State: n.State, Err: n.Err}
	case "57014":
		return &sqlbridge.QueryTimeoutError{State: n.State, Err: n.Err}
	}
	if tmpl, ok := pgConstraintTemplates[n.State]; ok {
		return &sqlbridge.ConstraintViolationError{
			Constraint: tmpl.Extract(n.Message),
			State:      n.State,
			Err:        n.Err,
		}
	}
	return nil
})

// pgIntervalAdd is the interval-arithmetic timestampadd family shared by
// PostgreSQL and CockroachDB. Quarters are three months and weeks seven days;
// sub-second units scale a one-second interval.
func pgIntervalAdd() map[TemporalUnit]string {
	return map[TemporalUnit]string{
		UnitNanosecond: "(?2 + (?1) * interval '1 second' / 1000000000)",
		UnitSecond:     "(?2 + (?1) * interval '1 second')",
		UnitMinute:     "(?2 + (?1) * interval '1 minute')",
		UnitHour:       "(?2 + (?1) * interval '1 hour')",
		UnitDay:        "(?2 + (?1) * interval '1 day')",
		UnitWeek:       "(?2 + (?1) * interval '7 day')",
		UnitMonth:      "(?2 + (?1) * interval '1 month')",
		UnitQuarter:    "(?2 + (?1) * interval '3 month')",
		UnitYear:       "(?2 + (?1) * interval '1 year')",
	}
}

// pgEpochDiff is the extract-based timestampdiff family shared by PostgreSQL
// and CockroachDB. Calendar units count boundaries; clock units divide the
// epoch difference.
func pgEpochDiff() map[TemporalUnit]string {
	return map[TemporalUnit]string{
		UnitNanosecond: "(extract(epoch from ?2 - ?1) * 1000000000)",
		UnitSecond:     "floor(extract(epoch from ?2 - ?1))",
		UnitMinute:     "floor(extract(epoch from ?2 - ?1) / 60)",
		UnitHour:       "floor(extract(epoch from ?2 - ?1) / 3600)",
		UnitDay:        "floor(extract(epoch from ?2 - ?1) / 86400)",
		UnitWeek:       "floor(extract(epoch from ?2 - ?1) / 604800)",
		UnitMonth:      "((extract(year from ?2) - extract(year from ?1)) * 12 + (extract(month from ?2) - extract(month from ?1)))",
		UnitQuarter:    "floor(((extract(year from ?2) - extract(year from ?1)) * 12 + (extract(month from ?2) - extract(month from ?1))) / 3)",
		UnitYear:       "(extract(year from ?2) - extract(year from ?1))",
	}
}

func buildPostgres(v Version) *Dialect {
	types := newTypeMapper().
		column(TypeTinyInt, "smallint").
		column(TypeFloat, "float($p)").
		column(TypeChar, "char($l)").
		column(TypeNChar, "char($l)").
		column(TypeNVarchar, "varchar($l)").
		column(TypeLongVarchar, "text").
		column(TypeClob, "text").
		column(TypeNClob, "text").
		column(TypeBinary, "bytea").
		column(TypeVarbinary, "bytea").
		column(TypeLongVarbinary, "bytea").
		column(TypeBlob, "bytea").
		column(TypeTimestampUTC, "timestamptz($p)").
		column(TypeJSON, "jsonb").
		column(TypeInet, "inet").
		column(TypeXML, "xml").
		resolver(resolvePostgresType).
		build()

	funcs := newFunctionCatalog()
	registerCommonFunctions(funcs)
	for _, name := range []string{
		"bool_and", "bool_or", "string_agg", "array_agg", "date_trunc",
		"to_char", "to_date", "to_timestamp", "now", "cbrt", "md5",
		"char_length", "octet_length", "ascii", "chr", "initcap", "repeat",
		"translate", "lpad", "rpad", "split_part", "regexp_replace",
	} {
		funcs.standard(name)
	}
	funcs.pattern("listagg", "string_agg(?1, ?2)")
	funcs.pattern("every", "bool_and(?1)")
	funcs.pattern("any", "bool_or(?1)")
	funcs.pattern("locate", "position(?1 in ?2)")
	funcs.pattern("format_datetime", "to_char(?1, ?2)")
	funcs.noParens("localtimestamp")

	caps := Capabilities{
		Pagination:               LimitOffset,
		SupportsFetchClause:      true,
		SupportsOffsetInSubquery: true,

		SupportsForUpdate:          true,
		RowLock:                    LockTables,
		SupportsNoWait:             true,
		SupportsSkipLocked:         true,
		SupportsOuterJoinForUpdate: true,

		Identity:          IdentityColumn,
		SupportsSequences: true,
		SequenceNextVal:   "nextval('$name')",
		SequenceCurrVal:   "currval('$name')",
		QuerySequences:    "select sequence_name from information_schema.sequences",

		TempTable:          TempTableLocal,
		TempTableBeforeUse: BeforeUseCreate,

		SupportsWindowFunctions:       true,
		SupportsRecursiveCTE:          true,
		SupportsStandardArrays:        true,
		SupportsLateral:               true,
		SupportsTupleComparison:       true,
		SupportsTemporalLiteralOffset: true,
		SupportsTimeLiteralOffset:     true,
		SupportsInsertReturning:       true,
		SupportsCaseInsensitiveLike:   true,
		CaseInsensitiveLike:           "ilike",

		DefaultNullOrdering:    NullsHighest,
		SupportsNullPrecedence: true,

		MaxVarcharLength:    10485760,
		MaxNVarcharLength:   10485760,
		MaxIdentifierLength: 63,
		MaxAliasLength:      63,

		CascadeConstraintsClause: " cascade",
		SupportsIfExistsOnDrop:   true,
		NationalizedImplicit:     true,

		CurrentTimestampSelect: "select now()",
	}

	return &Dialect{
		vendor:       Postgres,
		driver:       DriverPostgres,
		version:      v,
		caps:         caps,
		types:        types,
		funcs:        funcs,
		classifier:   classifierChain{pgClassifier, sqlStateClassifier},
		quoteOpen:    `"`,
		quoteClose:   `"`,
		shareLock:    " for share",
		addPatterns:  pgIntervalAdd(),
		diffPatterns: pgEpochDiff(),
	}
}

// resolvePostgresType maps native PostgreSQL type names that the shared
// table cannot, mostly the internal aliases pg_catalog reports.
func resolvePostgresType(name string, precision, scale int) (TypeCode, bool) {
	switch name {
	case "bool":
		return TypeBoolean, true
	case "int2":
		return TypeSmallInt, true
	case "int4", "serial":
		return TypeInteger, true
	case "int8", "bigserial":
		return TypeBigInt, true
	case "float4":
		return TypeReal, true
	case "float8":
		return TypeDouble, true
	case "bytea":
		return TypeVarbinary, true
	case "text":
		return TypeLongVarchar, true
	case "bpchar":
		return TypeChar, true
	case "timestamptz":
		return TypeTimestampUTC, true
	case "timetz":
		return TypeTimeWithTimezone, true
	case "json", "jsonb":
		return TypeJSON, true
	case "uuid":
		return TypeUUID, true
	case "inet", "cidr":
		return TypeInet, true
	case "xml":
		return TypeXML, true
	}
	if len(name) > 1 && name[0] == '_' {
		return TypeArray, true
	}
	return 0, false
}
