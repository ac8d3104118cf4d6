package dialect

import (
	"strings"

	"github.com/sqlbridge/sqlbridge"
)

// H2 version gates. 1.4.198 introduced the ANSI sequence and fetch syntax,
// 1.4.200 window functions and cascade on drop, 2.0 the strict type system.
func h2AnsiSequence(v Version) bool { return v.AtLeast(1, 4, 198) }
func h2FetchClause(v Version) bool  { return v.AtLeast(1, 4, 198) }
func h2Window(v Version) bool       { return v.AtLeast(1, 4, 200) }
func h2CascadeDrop(v Version) bool  { return v.AtLeast(1, 4, 200) }
func h2StrictTypes(v Version) bool  { return v.AtLeast(2) }

func buildH2(v Version) *Dialect {
	types := newTypeMapper().
		column(TypeLongVarchar, "varchar($l)").
		column(TypeLongVarbinary, "varbinary($l)").
		column(TypeUUID, "uuid").
		column(TypeJSON, "json").
		column(TypeGeometry, "geometry").
		cast(TypeChar, "varchar").
		cast(TypeVarchar, "varchar").
		cast(TypeNChar, "varchar").
		cast(TypeNVarchar, "varchar").
		cast(TypeLongVarchar, "varchar").
		cast(TypeBinary, "varbinary").
		cast(TypeVarbinary, "varbinary").
		cast(TypeLongVarbinary, "varbinary").
		resolver(resolveH2Type).
		build()
	if !h2StrictTypes(v) {
		// Before 2.0 NUMERIC is an alias the engine reports back as DECIMAL.
		types.columns[TypeNumeric] = "decimal($p,$s)"
	}

	funcs := newFunctionCatalog()
	registerCommonFunctions(funcs)
	for _, name := range []string{
		"bool_and", "bool_or", "group_concat", "array_agg", "stddev",
		"char_length", "octet_length", "ascii", "char", "difference",
		"hextoraw", "rawtohex", "insert", "repeat", "lpad", "rpad",
		"soundex", "space", "stringtoutf8", "utf8tostring", "translate",
		"dayname", "monthname", "day_of_week", "day_of_year", "iso_week",
	} {
		funcs.standard(name)
	}
	funcs.pattern("every", "bool_and(?1)")
	funcs.pattern("any", "bool_or(?1)")
	funcs.pattern("format_datetime", "to_char(?1, ?2)")
	funcs.pattern("listagg", "group_concat(?1 separator ?2)")
	if v.AtLeast(2) {
		// Native listagg replaces the group_concat emulation.
		funcs.pattern("listagg", "listagg(?1, ?2)")
	}

	seqNext, seqCurr := "$name.nextval", "$name.currval"
	if h2AnsiSequence(v) {
		seqNext, seqCurr = "next value for $name", "current value for $name"
	}

	caps := Capabilities{
		Pagination:               LimitOffset,
		SupportsFetchClause:      h2FetchClause(v),
		SupportsOffsetInSubquery: true,

		SupportsForUpdate: true,
		RowLock:           LockNone,

		Identity:          IdentityColumn,
		SupportsSequences: true,
		SequenceNextVal:   seqNext,
		SequenceCurrVal:   seqCurr,
		QuerySequences:    "select sequence_name from information_schema.sequences",

		TempTable:          TempTableLocal,
		TempTableBeforeUse: BeforeUseCreate,

		SupportsWindowFunctions:       h2Window(v),
		SupportsRecursiveCTE:          true,
		SupportsTupleComparison:       true,
		SupportsTemporalLiteralOffset: true,
		SupportsTimeLiteralOffset:     h2StrictTypes(v),
		SupportsCaseInsensitiveLike:   h2StrictTypes(v),

		DefaultNullOrdering:    NullsSmallest,
		SupportsNullPrecedence: true,

		MaxIdentifierLength: 256,
		MaxAliasLength:      256,

		SupportsIfExistsOnDrop: true,
		NationalizedImplicit:   true,

		CurrentTimestampSelect: "call current_timestamp()",
	}
	if h2StrictTypes(v) {
		caps.MaxVarcharLength = 1048576
		caps.MaxVarbinaryLength = 1048576
		caps.CaseInsensitiveLike = "ilike"
	}
	if h2CascadeDrop(v) {
		caps.CascadeConstraintsClause = " cascade"
	}

	return &Dialect{
		vendor:       H2,
		driver:       DriverH2,
		version:      v,
		caps:         caps,
		types:        types,
		funcs:        funcs,
		classifier:   classifierChain{h2Classifier, sqlStateClassifier},
		quoteOpen:    `"`,
		quoteClose:   `"`,
		addPatterns:  h2DateAdd(),
		diffPatterns: h2DateDiff(),
	}
}

// h2DateAdd uses the native dateadd function for every unit.
func h2DateAdd() map[TemporalUnit]string {
	m := make(map[TemporalUnit]string, len(temporalUnitNames))
	for unit, name := range temporalUnitNames {
		m[unit] = "dateadd(" + name + ", ?1, ?2)"
	}
	return m
}

// h2DateDiff uses the native datediff function for every unit.
func h2DateDiff() map[TemporalUnit]string {
	m := make(map[TemporalUnit]string, len(temporalUnitNames))
	for unit, name := range temporalUnitNames {
		m[unit] = "datediff(" + name + ", ?1, ?2)"
	}
	return m
}

// resolveH2Type handles the names the engine reports under a different code
// than the one that created the column.
func resolveH2Type(name string, precision, scale int) (TypeCode, bool) {
	switch name {
	case "float":
		if precision > 0 && precision <= 24 {
			return TypeReal, true
		}
		return TypeDouble, true
	case "character varying", "varchar_casesensitive", "varchar_ignorecase":
		return TypeVarchar, true
	case "double precision":
		return TypeDouble, true
	case "binary large object":
		return TypeBlob, true
	case "character large object":
		return TypeClob, true
	case "geometry":
		return TypeGeometry, true
	}
	return 0, false
}

// H2 native error codes.
const (
	h2Deadlock             = 40001
	h2LockTimeout          = 50200
	h2QueryCancelled       = 57014
	h2GeneralConstraint    = 90006
	h2ReferentialViolation = 23506
)

// h2Classifier classifies H2 errors by native code. Constraint messages
// carry the name after "violation: "; referential violations wrap it in
// quotes with a trailing detail after a colon.
var h2Classifier = ClassifierFunc(func(n NativeError) error {
	switch n.Code {
	case h2Deadlock:
		return &sqlbridge.DeadlockError{Code: n.Code, Err: n.Err}
	case h2LockTimeout:
		return &sqlbridge.LockTimeoutError{Code: n.Code, Err: n.Err}
	case h2QueryCancelled:
		return &sqlbridge.QueryTimeoutError{Code: n.Code, Err: n.Err}
	}
	if n.Code == h2GeneralConstraint || (n.Code >= 23000 && n.Code < 24000) {
		return &sqlbridge.ConstraintViolationError{
			Constraint: h2ExtractConstraint(n.Message, n.Code),
			Code:       n.Code,
			Err:        n.Err,
		}
	}
	return nil
})

func h2ExtractConstraint(message string, code int) string {
	i := strings.Index(message, "violation: ")
	if i < 0 {
		return ""
	}
	name := strings.TrimSpace(message[i+len("violation: "):])
	if code == h2ReferentialViolation && strings.HasPrefix(name, `"`) {
		name = name[1:]
		if j := strings.IndexAny(name, `:"`); j >= 0 {
			name = name[:j]
		}
	}
	return name
}
