package dialect

import (
	"regexp"
	"strings"
	"time"

	"github.com/sqlbridge/sqlbridge"
)

// oracleFloatScale is the scale Oracle reports for NUMBER columns created
// from FLOAT: binary precision with no fixed decimal scale.
const oracleFloatScale = -127

// oracleInListLimit is the hard server cap on IN-list expressions.
const oracleInListLimit = 1000

func buildOracle(v Version) *Dialect {
	types := newTypeMapper().
		column(TypeBoolean, "number(1,0)").
		column(TypeTinyInt, "number(3,0)").
		column(TypeSmallInt, "number(5,0)").
		column(TypeInteger, "number(10,0)").
		column(TypeBigInt, "number(19,0)").
		column(TypeReal, "real").
		column(TypeFloat, "float($p)").
		column(TypeDouble, "double precision").
		column(TypeNumeric, "number($p,$s)").
		column(TypeDecimal, "number($p,$s)").
		column(TypeChar, "char($l char)").
		column(TypeVarchar, "varchar2($l char)").
		column(TypeNChar, "nchar($l)").
		column(TypeNVarchar, "nvarchar2($l)").
		column(TypeLongVarchar, "clob").
		column(TypeBinary, "raw($l)").
		column(TypeVarbinary, "raw($l)").
		column(TypeLongVarbinary, "blob").
		column(TypeTime, "date").
		column(TypeTimeWithTimezone, "date").
		column(TypeTimestampUTC, "timestamp($p)").
		column(TypeUUID, "raw(16)").
		column(TypeInet, "varchar2(45 char)").
		column(TypeXML, "xmltype").
		column(TypeRowID, "rowid").
		resolver(resolveOracleType).
		build()
	if v.AtLeast(21) {
		types.columns[TypeJSON] = "json"
	} else {
		types.columns[TypeJSON] = "blob"
	}

	funcs := newFunctionCatalog()
	registerCommonFunctions(funcs)
	for _, name := range []string{
		"substr", "instr", "to_char", "to_date", "to_number", "to_timestamp",
		"nvl", "nvl2", "decode", "lpad", "rpad", "translate", "initcap",
		"soundex", "add_months", "months_between", "last_day", "trunc",
		"sysdate", "stddev", "variance", "greatest", "least", "vsize",
	} {
		funcs.standard(name)
	}
	funcs.pattern("locate", "instr(?2, ?1)")
	funcs.pattern("every", "min(case when ?1 then 1 else 0 end)")
	funcs.pattern("any", "max(case when ?1 then 1 else 0 end)")
	funcs.pattern("listagg", "listagg(?1, ?2) within group (order by ?1)")
	funcs.pattern("format_datetime", "to_char(?1, ?2)")
	funcs.pattern("day_of_year", "to_number(to_char(?1, 'DDD'))")
	funcs.pattern("day_of_week", "to_number(to_char(?1, 'D'))")
	funcs.register("substring", RendererFunc(func(name string, args []string) (string, error) {
		if len(args) < 2 {
			return "", sqlbridge.NewTranslationError("substring needs at least two arguments")
		}
		return "substr(" + strings.Join(args, ", ") + ")", nil
	}))

	offsetFetch := v.AtLeast(12)
	identLen := 30
	if v.AtLeast(12, 2) {
		identLen = 128
	}

	caps := Capabilities{
		SupportsFetchClause:      offsetFetch,
		SupportsOffsetInSubquery: false,

		SupportsForUpdate:   true,
		RowLock:             LockColumns,
		SupportsNoWait:      true,
		SupportsSkipLocked:  true,
		SupportsWait:        true,
		UsesFollowOnLocking: true,

		Identity:          IdentitySequence,
		SupportsSequences: true,
		SequenceNextVal:   "$name.nextval",
		SequenceCurrVal:   "$name.currval",
		QuerySequences:    "select sequence_name from all_sequences",

		TempTable:              TempTableGlobal,
		TempTableBeforeUse:     BeforeUseNone,
		TempTableCreateOptions: "on commit delete rows",

		SupportsWindowFunctions:       true,
		SupportsRecursiveCTE:          v.AtLeast(11, 2),
		SupportsLateral:               v.AtLeast(12),
		SupportsTemporalLiteralOffset: true,

		DefaultNullOrdering:    NullsHighest,
		SupportsNullPrecedence: true,

		MaxVarcharLength:    4000,
		MaxNVarcharLength:   2000,
		MaxVarbinaryLength:  2000,
		MaxIdentifierLength: identLen,
		MaxAliasLength:      30,
		InListLimit:         oracleInListLimit,

		CascadeConstraintsClause: " cascade constraints",

		CurrentTimestampSelect: "select systimestamp from dual",
	}
	if offsetFetch {
		caps.Pagination = OffsetFetch
		caps.Identity = IdentityColumn
	} else {
		caps.Pagination = Rownum
	}

	return &Dialect{
		vendor:       Oracle,
		driver:       DriverOracle,
		version:      v,
		caps:         caps,
		types:        types,
		funcs:        funcs,
		classifier:   classifierChain{oracleClassifier, sqlStateClassifier},
		quoteOpen:    `"`,
		quoteClose:   `"`,
		hint:         oracleHint,
		addPatterns:  oracleDateAdd(),
		diffPatterns: oracleDateDiff(),
		literal:      oracleLiteral,
	}
}

// oracleYQM builds month arithmetic with day-of-month clamping: moving
// January 31 one month forward lands on the last day of February, not on
// March 2. months is the magnitude expression scaled to months.
func oracleYQM(months string) string {
	shifted := "trunc(?2, 'MONTH') + numtoyminterval(" + months + ", 'MONTH')"
	return "(" + shifted +
		" + (least(extract(day from ?2), extract(day from last_day(" + shifted + "))) - 1))"
}

func oracleDateAdd() map[TemporalUnit]string {
	return map[TemporalUnit]string{
		UnitNanosecond: "(?2 + numtodsinterval((?1) / 1e9, 'second'))",
		UnitSecond:     "(?2 + numtodsinterval(?1, 'second'))",
		UnitMinute:     "(?2 + numtodsinterval(?1, 'minute'))",
		UnitHour:       "(?2 + numtodsinterval(?1, 'hour'))",
		UnitDay:        "(?2 + numtodsinterval(?1, 'day'))",
		UnitWeek:       "(?2 + numtodsinterval(7 * (?1), 'day'))",
		UnitMonth:      oracleYQM("?1"),
		UnitQuarter:    oracleYQM("3 * (?1)"),
		UnitYear:       oracleYQM("12 * (?1)"),
	}
}

func oracleDateDiff() map[TemporalUnit]string {
	return map[TemporalUnit]string{
		UnitNanosecond: "((cast(?2 as date) - cast(?1 as date)) * 86400 * 1e9)",
		UnitSecond:     "trunc((cast(?2 as date) - cast(?1 as date)) * 86400)",
		UnitMinute:     "trunc((cast(?2 as date) - cast(?1 as date)) * 1440)",
		UnitHour:       "trunc((cast(?2 as date) - cast(?1 as date)) * 24)",
		UnitDay:        "trunc(cast(?2 as date) - cast(?1 as date))",
		UnitWeek:       "trunc((cast(?2 as date) - cast(?1 as date)) / 7)",
		UnitMonth:      "trunc(months_between(?2, ?1))",
		UnitQuarter:    "trunc(months_between(?2, ?1) / 3)",
		UnitYear:       "trunc(months_between(?2, ?1) / 12)",
	}
}

// oracleVerbRe finds the statement verb so hints land directly after it.
var oracleVerbRe = regexp.MustCompile(`(?i)^\s*(select|insert|update|delete|merge)\b`)

// oracleHint injects optimizer hints as a "/*+ ... */" comment after the
// statement verb.
func oracleHint(sql string, hints []string) string {
	loc := oracleVerbRe.FindStringIndex(sql)
	if loc == nil {
		return sql
	}
	return sql[:loc[1]] + " /*+ " + strings.Join(hints, " ") + " */" + sql[loc[1]:]
}

// oracleLiteral renders temporal literals. Oracle has no TIME type; time
// values use the JDBC escape form.
func oracleLiteral(v time.Time, precision TemporalPrecision) string {
	var b strings.Builder
	switch precision {
	case PrecisionTime:
		b.WriteString("{t '")
		b.WriteString(v.Format("15:04:05"))
		b.WriteString("'}")
	default:
		AppendDateTimeLiteral(&b, v, precision)
	}
	return b.String()
}

// Oracle native error codes.
const (
	oraUniqueViolation     = 1
	oraLockNoWait          = 54
	oraDeadlock            = 60
	oraQueryCancelled      = 1013
	oraNotNullInsert       = 1400
	oraNotNullUpdate       = 1407
	oraFKNoParent          = 2291
	oraFKChildFound        = 2292
	oraDistributedDeadlock = 4020
	oraLockSelfDeadlock    = 4021
	oraLockWaitTimeout     = 30006
)

// oracleConstraintTemplate extracts "SCHEMA.NAME" from messages shaped like
// `ORA-00001: unique constraint (SCHEMA.UQ_NAME) violated`.
var oracleConstraintTemplate = ConstraintTemplate{Prefix: "(", Suffix: ")"}

var oracleClassifier = ClassifierFunc(func(n NativeError) error {
	switch n.Code {
	case oraLockNoWait, oraLockSelfDeadlock, oraLockWaitTimeout:
		return &sqlbridge.LockTimeoutError{Code: n.Code, Err: n.Err}
	case oraDeadlock, oraDistributedDeadlock:
		return &sqlbridge.DeadlockError{Code: n.Code, Err: n.Err}
	case oraQueryCancelled:
		return &sqlbridge.QueryTimeoutError{Code: n.Code, Err: n.Err}
	case oraUniqueViolation, oraNotNullInsert, oraNotNullUpdate, oraFKNoParent, oraFKChildFound:
		return &sqlbridge.ConstraintViolationError{
			Constraint: oracleConstraintTemplate.Extract(n.Message),
			Code:       n.Code,
			Err:        n.Err,
		}
	}
	return nil
})

// resolveOracleType undoes NUMBER flattening: FLOAT columns come back as
// NUMBER with scale -127, and exact NUMBER(p,0) columns map to the smallest
// integer code that holds p digits.
func resolveOracleType(name string, precision, scale int) (TypeCode, bool) {
	switch name {
	case "number":
		if scale == oracleFloatScale {
			if precision > 0 && precision <= 24 {
				return TypeFloat, true
			}
			return TypeDouble, true
		}
		if scale == 0 && precision > 0 {
			switch {
			case precision == 1:
				return TypeBoolean, true
			case precision <= 10:
				return TypeInteger, true
			case precision <= 19:
				return TypeBigInt, true
			}
		}
		return TypeNumeric, true
	case "varchar2":
		return TypeVarchar, true
	case "nvarchar2":
		return TypeNVarchar, true
	case "raw":
		if precision == 16 {
			return TypeUUID, true
		}
		return TypeVarbinary, true
	case "long raw":
		return TypeLongVarbinary, true
	case "long":
		return TypeLongVarchar, true
	case "binary_float":
		return TypeReal, true
	case "binary_double":
		return TypeDouble, true
	case "xmltype":
		return TypeXML, true
	case "date":
		return TypeDate, true
	}
	if strings.HasPrefix(name, "timestamp") {
		if strings.Contains(name, "time zone") {
			return TypeTimestampWithTimezone, true
		}
		return TypeTimestamp, true
	}
	return 0, false
}
