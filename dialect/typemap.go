package dialect

import (
	"strconv"
	"strings"

	"github.com/sqlbridge/sqlbridge"
)

// Size carries the optional precision, scale, and length arguments of a
// column type request. Zero fields fall back to the dialect defaults.
type Size struct {
	Precision int
	Scale     int
	Length    int
}

// Default size arguments substituted into type patterns when the caller
// leaves the corresponding Size field zero.
const (
	DefaultLength    = 255
	DefaultPrecision = 19
	DefaultScale     = 2
)

// TypeMapper resolves portable type codes to vendor column and cast syntax,
// and vendor native type names back to portable codes. A mapper is built once
// per dialect at construction and is immutable afterwards.
type TypeMapper struct {
	columns map[TypeCode]string
	casts   map[TypeCode]string
	resolve func(name string, precision, scale int) (TypeCode, bool)
}

// pattern placeholders: $p precision, $s scale, $l length.
func expandPattern(pattern string, size Size) string {
	if !strings.ContainsRune(pattern, '$') {
		return pattern
	}
	p, s, l := size.Precision, size.Scale, size.Length
	if p == 0 {
		p = DefaultPrecision
	}
	if s == 0 {
		s = DefaultScale
	}
	if l == 0 {
		l = DefaultLength
	}
	r := strings.NewReplacer(
		"$p", strconv.Itoa(p),
		"$s", strconv.Itoa(s),
		"$l", strconv.Itoa(l),
	)
	return r.Replace(pattern)
}

// ColumnType returns the vendor column definition syntax for the given code,
// with size arguments substituted. An unmapped code is a configuration error.
func (m *TypeMapper) ColumnType(code TypeCode, size Size) (string, error) {
	pattern, ok := m.columns[code]
	if !ok {
		return "", sqlbridge.NewConfigurationError("no column type mapping for %s", code)
	}
	return expandPattern(pattern, size), nil
}

// CastType returns the vendor syntax used as a CAST target for the given
// code. Codes without an explicit cast override fall back to the column
// pattern.
func (m *TypeMapper) CastType(code TypeCode, size Size) (string, error) {
	if pattern, ok := m.casts[code]; ok {
		return expandPattern(pattern, size), nil
	}
	return m.ColumnType(code, size)
}

// ResolveTypeCode maps a native type name reported by the backend (during
// introspection) to a portable code. Vendor resolution rules run first, then
// an exact match against the portable code names, then a declaration-order
// scan of the column table bases. The second result is false when the name is
// unknown to the dialect.
func (m *TypeMapper) ResolveTypeCode(name string, precision, scale int) (TypeCode, bool) {
	lower := strings.ToLower(name)
	if m.resolve != nil {
		if code, ok := m.resolve(lower, precision, scale); ok {
			return code, true
		}
	}
	for _, code := range TypeCodes() {
		if strings.EqualFold(code.String(), lower) {
			if _, mapped := m.columns[code]; mapped {
				return code, true
			}
		}
	}
	for _, code := range TypeCodes() {
		pattern, ok := m.columns[code]
		if !ok {
			continue
		}
		base, _, _ := strings.Cut(pattern, "(")
		if strings.EqualFold(strings.TrimSpace(base), lower) {
			return code, true
		}
	}
	return TypeOther, false
}

// typeMapperBuilder accumulates the generic table and per-dialect overrides.
// Registration order is irrelevant; the last registration for a code wins.
type typeMapperBuilder struct {
	m *TypeMapper
}

func newTypeMapper() *typeMapperBuilder {
	b := &typeMapperBuilder{m: &TypeMapper{
		columns: make(map[TypeCode]string),
		casts:   make(map[TypeCode]string),
	}}
	b.registerGeneric()
	return b
}

// column registers (or overrides) the column pattern for a code.
func (b *typeMapperBuilder) column(code TypeCode, pattern string) *typeMapperBuilder {
	b.m.columns[code] = pattern
	return b
}

// cast registers a cast pattern distinct from the column pattern.
func (b *typeMapperBuilder) cast(code TypeCode, pattern string) *typeMapperBuilder {
	b.m.casts[code] = pattern
	return b
}

// resolver installs the vendor native-name resolution hook. The hook receives
// the lowercased native name.
func (b *typeMapperBuilder) resolver(fn func(name string, precision, scale int) (TypeCode, bool)) *typeMapperBuilder {
	b.m.resolve = fn
	return b
}

func (b *typeMapperBuilder) build() *TypeMapper {
	return b.m
}

// registerGeneric installs the ANSI-leaning fallback table every dialect
// starts from. Vendors override the codes they spell differently.
func (b *typeMapperBuilder) registerGeneric() {
	b.column(TypeBoolean, "boolean")
	b.column(TypeTinyInt, "tinyint")
	b.column(TypeSmallInt, "smallint")
	b.column(TypeInteger, "integer")
	b.column(TypeBigInt, "bigint")
	b.column(TypeReal, "real")
	b.column(TypeFloat, "float($p)")
	b.column(TypeDouble, "double precision")
	b.column(TypeNumeric, "numeric($p,$s)")
	b.column(TypeDecimal, "decimal($p,$s)")
	b.column(TypeChar, "char($l)")
	b.column(TypeVarchar, "varchar($l)")
	b.column(TypeNChar, "nchar($l)")
	b.column(TypeNVarchar, "nvarchar($l)")
	b.column(TypeLongVarchar, "varchar($l)")
	b.column(TypeClob, "clob")
	b.column(TypeNClob, "nclob")
	b.column(TypeBinary, "binary($l)")
	b.column(TypeVarbinary, "varbinary($l)")
	b.column(TypeLongVarbinary, "varbinary($l)")
	b.column(TypeBlob, "blob")
	b.column(TypeDate, "date")
	b.column(TypeTime, "time($p)")
	b.column(TypeTimeWithTimezone, "time($p) with time zone")
	b.column(TypeTimestamp, "timestamp($p)")
	b.column(TypeTimestampWithTimezone, "timestamp($p) with time zone")
	b.column(TypeTimestampUTC, "timestamp($p) with time zone")
	b.column(TypeIntervalSecond, "interval second($s)")
	b.column(TypeUUID, "uuid")
	b.column(TypeJSON, "json")
	b.column(TypeInet, "varchar(45)")
	b.column(TypeGeometry, "geometry")
	b.column(TypeGeography, "geography")
	b.column(TypeArray, "array")
	b.column(TypeXML, "xml")
	b.column(TypeRowID, "rowid")
	b.column(TypeOther, "other")
}
