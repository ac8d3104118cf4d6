package dialect

import (
	"google.golang.org/grpc/codes"

	"github.com/sqlbridge/sqlbridge"
)

func buildSpanner(v Version) *Dialect {
	types := newTypeMapper().
		column(TypeBoolean, "bool").
		column(TypeTinyInt, "int64").
		column(TypeSmallInt, "int64").
		column(TypeInteger, "int64").
		column(TypeBigInt, "int64").
		column(TypeReal, "float64").
		column(TypeFloat, "float64").
		column(TypeDouble, "float64").
		column(TypeNumeric, "numeric").
		column(TypeDecimal, "numeric").
		column(TypeChar, "string($l)").
		column(TypeVarchar, "string($l)").
		column(TypeNChar, "string($l)").
		column(TypeNVarchar, "string($l)").
		column(TypeLongVarchar, "string(max)").
		column(TypeClob, "string(max)").
		column(TypeNClob, "string(max)").
		column(TypeBinary, "bytes($l)").
		column(TypeVarbinary, "bytes($l)").
		column(TypeLongVarbinary, "bytes(max)").
		column(TypeBlob, "bytes(max)").
		column(TypeTime, "timestamp").
		column(TypeTimeWithTimezone, "timestamp").
		column(TypeTimestamp, "timestamp").
		column(TypeTimestampWithTimezone, "timestamp").
		column(TypeTimestampUTC, "timestamp").
		column(TypeUUID, "string(36)").
		column(TypeJSON, "json").
		column(TypeInet, "string(45)").
		column(TypeArray, "array").
		resolver(resolveSpannerType).
		build()

	funcs := newFunctionCatalog()
	registerCommonFunctions(funcs)
	for _, name := range []string{
		"string_agg", "array_agg", "array_length", "starts_with", "ends_with",
		"strpos", "byte_length", "char_length", "format", "lpad", "rpad",
		"repeat", "reverse", "safe_divide", "ieee_divide", "farm_fingerprint",
		"sha256", "sha512", "to_json_string", "regexp_contains",
		"regexp_extract", "regexp_replace",
	} {
		funcs.standard(name)
	}
	funcs.pattern("locate", "strpos(?2, ?1)")
	funcs.pattern("listagg", "string_agg(?1, ?2)")
	funcs.pattern("every", "logical_and(?1)")
	funcs.pattern("any", "logical_or(?1)")
	funcs.pattern("format_datetime", "format_timestamp(?2, ?1)")

	caps := Capabilities{
		Pagination: LimitOffset,

		// No row locks: reads lock nothing, mutations conflict at commit.
		SupportsForUpdate: false,
		RowLock:           LockNone,

		Identity: IdentityNone,

		TempTable: TempTableNone,

		SupportsWindowFunctions: true,
		SupportsStandardArrays:  true,

		DefaultNullOrdering:    NullsSmallest,
		SupportsNullPrecedence: false,

		MaxVarcharLength:    2621440,
		MaxIdentifierLength: 128,
		MaxAliasLength:      128,

		DropIndexesBeforeTable: true,

		CurrentTimestampSelect: "select current_timestamp()",
	}

	return &Dialect{
		vendor:       Spanner,
		driver:       DriverSpanner,
		version:      v,
		caps:         caps,
		types:        types,
		funcs:        funcs,
		classifier:   classifierChain{spannerClassifier, sqlStateClassifier},
		quoteOpen:    "`",
		quoteClose:   "`",
		addPatterns:  spannerDateAdd(),
		diffPatterns: spannerDateDiff(),
	}
}

func spannerDateAdd() map[TemporalUnit]string {
	return map[TemporalUnit]string{
		UnitNanosecond: "timestamp_add(?2, interval ?1 nanosecond)",
		UnitSecond:     "timestamp_add(?2, interval ?1 second)",
		UnitMinute:     "timestamp_add(?2, interval ?1 minute)",
		UnitHour:       "timestamp_add(?2, interval ?1 hour)",
		UnitDay:        "timestamp_add(?2, interval ?1 day)",
		UnitWeek:       "timestamp_add(?2, interval (?1) * 7 day)",
	}
}

func spannerDateDiff() map[TemporalUnit]string {
	return map[TemporalUnit]string{
		UnitNanosecond: "timestamp_diff(?2, ?1, nanosecond)",
		UnitSecond:     "timestamp_diff(?2, ?1, second)",
		UnitMinute:     "timestamp_diff(?2, ?1, minute)",
		UnitHour:       "timestamp_diff(?2, ?1, hour)",
		UnitDay:        "timestamp_diff(?2, ?1, day)",
		UnitWeek:       "timestamp_diff(?2, ?1, week)",
	}
}

func resolveSpannerType(name string, precision, scale int) (TypeCode, bool) {
	switch name {
	case "bool":
		return TypeBoolean, true
	case "int64":
		return TypeBigInt, true
	case "float64":
		return TypeDouble, true
	case "numeric":
		return TypeNumeric, true
	case "string", "string(max)":
		return TypeVarchar, true
	case "bytes", "bytes(max)":
		return TypeVarbinary, true
	case "timestamp":
		return TypeTimestampUTC, true
	case "date":
		return TypeDate, true
	case "json":
		return TypeJSON, true
	}
	return 0, false
}

// spannerClassifier classifies gRPC status codes. ABORTED marks a
// transaction the backend chose to abort under contention, which maps to the
// deadlock/serialization retry category.
var spannerClassifier = ClassifierFunc(func(n NativeError) error {
	switch codes.Code(n.Code) {
	case codes.Aborted:
		return &sqlbridge.DeadlockError{Code: n.Code, Err: n.Err}
	case codes.DeadlineExceeded, codes.Canceled:
		return &sqlbridge.QueryTimeoutError{Code: n.Code, Err: n.Err}
	case codes.AlreadyExists, codes.FailedPrecondition:
		return &sqlbridge.ConstraintViolationError{Code: n.Code, Err: n.Err}
	}
	return nil
})
