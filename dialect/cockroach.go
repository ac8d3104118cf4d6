package dialect

func buildCockroach(v Version) *Dialect {
	types := newTypeMapper().
		column(TypeTinyInt, "int2").
		column(TypeSmallInt, "int2").
		column(TypeInteger, "int4").
		column(TypeBigInt, "int8").
		column(TypeReal, "float4").
		column(TypeFloat, "float8").
		column(TypeDouble, "float8").
		column(TypeChar, "char($l)").
		column(TypeNChar, "char($l)").
		column(TypeNVarchar, "varchar($l)").
		column(TypeLongVarchar, "string").
		column(TypeClob, "string").
		column(TypeNClob, "string").
		column(TypeBinary, "bytes").
		column(TypeVarbinary, "bytes").
		column(TypeLongVarbinary, "bytes").
		column(TypeBlob, "bytes").
		column(TypeTimestampUTC, "timestamptz($p)").
		column(TypeJSON, "jsonb").
		column(TypeInet, "inet").
		cast(TypeChar, "string").
		cast(TypeVarchar, "string").
		cast(TypeNChar, "string").
		cast(TypeNVarchar, "string").
		cast(TypeBinary, "bytes").
		cast(TypeVarbinary, "bytes").
		resolver(resolveCockroachType).
		build()

	funcs := newFunctionCatalog()
	registerCommonFunctions(funcs)
	for _, name := range []string{
		"bool_and", "bool_or", "string_agg", "array_agg", "date_trunc",
		"now", "md5", "char_length", "octet_length", "ascii", "chr",
		"initcap", "repeat", "translate", "lpad", "rpad", "split_part",
		"regexp_replace", "experimental_strftime", "experimental_strptime",
	} {
		funcs.standard(name)
	}
	funcs.pattern("listagg", "string_agg(?1, ?2)")
	funcs.pattern("every", "bool_and(?1)")
	funcs.pattern("any", "bool_or(?1)")
	funcs.pattern("locate", "strpos(?2, ?1)")
	funcs.pattern("format_datetime", "experimental_strftime(?1, ?2)")

	caps := Capabilities{
		Pagination:               LimitOffset,
		SupportsFetchClause:      true,
		SupportsOffsetInSubquery: true,

		SupportsForUpdate:          true,
		RowLock:                    LockTables,
		SupportsNoWait:             true,
		SupportsSkipLocked:         v.AtLeast(22, 1),
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
		SupportsLateral:               v.AtLeast(22, 2),
		SupportsTupleComparison:       true,
		SupportsTemporalLiteralOffset: true,
		SupportsTimeLiteralOffset:     true,
		SupportsInsertReturning:       true,
		SupportsCaseInsensitiveLike:   true,
		CaseInsensitiveLike:           "ilike",

		DefaultNullOrdering:    NullsSmallest,
		SupportsNullPrecedence: true,

		MaxIdentifierLength: 128,
		MaxAliasLength:      128,

		CascadeConstraintsClause: " cascade",
		SupportsIfExistsOnDrop:   true,
		NationalizedImplicit:     true,

		CurrentTimestampSelect: "select now()",
	}

	return &Dialect{
		vendor:  CockroachDB,
		driver:  DriverPostgres,
		version: v,
		caps:    caps,
		types:   types,
		funcs:   funcs,
		// CockroachDB reports PostgreSQL SQLSTATEs and message formats.
		classifier:   classifierChain{pgClassifier, sqlStateClassifier},
		quoteOpen:    `"`,
		quoteClose:   `"`,
		shareLock:    " for share",
		addPatterns:  pgIntervalAdd(),
		diffPatterns: pgEpochDiff(),
	}
}

// resolveCockroachType maps CockroachDB's native aliases. The `_` prefix
// marks array element types in introspection output.
func resolveCockroachType(name string, precision, scale int) (TypeCode, bool) {
	switch name {
	case "bool":
		return TypeBoolean, true
	case "int2":
		return TypeSmallInt, true
	case "int4":
		return TypeInteger, true
	case "int8", "int":
		return TypeBigInt, true
	case "float4":
		return TypeReal, true
	case "float8", "float":
		return TypeDouble, true
	case "string", "text":
		return TypeLongVarchar, true
	case "bytes", "bytea":
		return TypeVarbinary, true
	case "timestamptz":
		return TypeTimestampUTC, true
	case "json", "jsonb":
		return TypeJSON, true
	case "uuid":
		return TypeUUID, true
	case "inet":
		return TypeInet, true
	}
	if len(name) > 1 && name[0] == '_' {
		return TypeArray, true
	}
	return 0, false
}
