package dialect

// PaginationStyle selects the row-limiting syntax family a dialect emits.
type PaginationStyle int

// Pagination syntax families.
const (
	// LimitOffset emits "limit N offset M".
	LimitOffset PaginationStyle = iota
	// OffsetFetch emits ANSI "offset M rows fetch next N rows only".
	OffsetFetch
	// Rownum wraps the query in nested rownum predicates.
	Rownum
)

// IdentityStyle selects how a dialect declares auto-generated key columns.
type IdentityStyle int

// Identity declaration families.
const (
	// IdentityNone means the dialect has no native identity columns.
	IdentityNone IdentityStyle = iota
	// IdentityColumn appends "generated by default as identity".
	IdentityColumn
	// IdentityAlways appends "generated always as identity".
	IdentityAlways
	// IdentitySequence backs generated keys with an explicit sequence.
	IdentitySequence
)

// RowLockStrategy says what a FOR UPDATE OF clause names.
type RowLockStrategy int

// Lock targets.
const (
	// LockColumns names columns in FOR UPDATE OF (Oracle, H2).
	LockColumns RowLockStrategy = iota
	// LockTables names table aliases in FOR UPDATE OF (PostgreSQL family).
	LockTables
	// LockNone means FOR UPDATE OF is unsupported.
	LockNone
)

// TempTableKind describes the staging-table flavor a dialect supports for
// multi-table bulk mutations.
type TempTableKind int

// Staging-table flavors.
const (
	// TempTableNone means no staging tables; multi-table mutations use CTEs.
	TempTableNone TempTableKind = iota
	// TempTableLocal is a session-scoped temporary table created on demand.
	TempTableLocal
	// TempTableGlobal is a global temporary table, created once up front,
	// with per-session rows.
	TempTableGlobal
)

// BeforeUseAction is the statement issued before a staging table is used
// within a transaction.
type BeforeUseAction int

// Staging-table preparation actions.
const (
	// BeforeUseNone requires no preparation.
	BeforeUseNone BeforeUseAction = iota
	// BeforeUseCreate creates the table before use.
	BeforeUseCreate
)

// NullOrdering describes where a backend places nulls in sorted output when
// no explicit NULLS FIRST/LAST clause is present.
type NullOrdering int

// Default null placement in ascending sorts.
const (
	// NullsSmallest sorts nulls as the smallest value.
	NullsSmallest NullOrdering = iota
	// NullsHighest sorts nulls as the greatest value.
	NullsHighest
	// NullsFirst always sorts nulls first.
	NullsFirst
	// NullsLast always sorts nulls last.
	NullsLast
)

// Capabilities is the flat feature matrix of one dialect at one version.
// Every field is resolved once at construction from the version gate; callers
// branch on fields instead of on vendor names. A flag enabled at some version
// stays enabled for every later version.
type Capabilities struct {
	// Pagination.
	Pagination               PaginationStyle
	SupportsFetchClause      bool // ANSI offset/fetch syntax available
	SupportsOffsetInSubquery bool

	// Locking.
	SupportsForUpdate          bool
	RowLock                    RowLockStrategy
	SupportsNoWait             bool
	SupportsSkipLocked         bool
	SupportsWait               bool // "for update wait N"
	SupportsOuterJoinForUpdate bool
	UsesFollowOnLocking        bool // paginated/distinct locks need a follow-on read

	// Identity and sequences.
	Identity          IdentityStyle
	SupportsSequences bool
	// SequenceNextVal is the next-value pattern with $name substituted.
	SequenceNextVal string
	// SequenceCurrVal is the current-value pattern with $name substituted.
	SequenceCurrVal string
	// QuerySequences lists the backend's sequences, empty when unsupported.
	QuerySequences string

	// Staging tables.
	TempTable TempTableKind
	// TempTableBeforeUse is issued inside the transaction before first use.
	TempTableBeforeUse BeforeUseAction
	// TempTableCreateOptions is the trailing clause on create, e.g.
	// "on commit delete rows".
	TempTableCreateOptions string

	// Expressions.
	SupportsWindowFunctions       bool
	SupportsRecursiveCTE          bool
	SupportsStandardArrays        bool
	SupportsLateral               bool
	SupportsTupleComparison       bool
	SupportsTemporalLiteralOffset bool // zone offsets in ANSI temporal literals
	SupportsTimeLiteralOffset     bool
	SupportsInsertReturning       bool
	SupportsCaseInsensitiveLike   bool
	// CaseInsensitiveLike is the operator keyword, e.g. "ilike"; empty when
	// SupportsCaseInsensitiveLike is false.
	CaseInsensitiveLike string

	// Sorting.
	DefaultNullOrdering    NullOrdering
	SupportsNullPrecedence bool

	// Limits.
	MaxVarcharLength    int
	MaxNVarcharLength   int
	MaxVarbinaryLength  int
	MaxIdentifierLength int
	MaxAliasLength      int
	// InListLimit caps IN-list size; 0 means unlimited.
	InListLimit int

	// DDL.
	CascadeConstraintsClause string // appended to DROP TABLE, e.g. " cascade constraints"
	SupportsIfExistsOnDrop   bool
	DropIndexesBeforeTable   bool
	NationalizedImplicit     bool // varchar is already nationalized (UTF-8 backends)

	// Misc.
	CurrentTimestampSelect string // statement that selects the server clock
}
