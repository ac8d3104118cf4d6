package dialect

//go:generate go run ../internal/gen

// TypeCode is the portable, vendor-neutral column type vocabulary. Every
// dialect maps each code it supports to concrete column and cast syntax, and
// maps reported native type names back to a code during introspection.
//
// The set is closed: codes are never created dynamically.
type TypeCode int

// The portable type codes. Order is stable; the String table in
// typecode_string.go is generated from it.
const (
	TypeBoolean TypeCode = iota + 1
	TypeTinyInt
	TypeSmallInt
	TypeInteger
	TypeBigInt
	TypeReal
	TypeFloat
	TypeDouble
	TypeNumeric
	TypeDecimal
	TypeChar
	TypeVarchar
	TypeNChar
	TypeNVarchar
	TypeLongVarchar
	TypeClob
	TypeNClob
	TypeBinary
	TypeVarbinary
	TypeLongVarbinary
	TypeBlob
	TypeDate
	TypeTime
	TypeTimeWithTimezone
	TypeTimestamp
	TypeTimestampWithTimezone
	TypeTimestampUTC
	TypeIntervalSecond
	TypeUUID
	TypeJSON
	TypeInet
	TypeGeometry
	TypeGeography
	TypeArray
	TypeXML
	TypeRowID
	TypeOther

	maxTypeCode
)

// TypeCodes returns every portable type code, in declaration order. Used by
// DDL generation and by the totality tests.
func TypeCodes() []TypeCode {
	codes := make([]TypeCode, 0, int(maxTypeCode)-1)
	for c := TypeBoolean; c < maxTypeCode; c++ {
		codes = append(codes, c)
	}
	return codes
}

// Valid reports whether c is a member of the portable vocabulary.
func (c TypeCode) Valid() bool {
	return c >= TypeBoolean && c < maxTypeCode
}

// Temporal reports whether c is a date/time code.
func (c TypeCode) Temporal() bool {
	switch c {
	case TypeDate, TypeTime, TypeTimeWithTimezone, TypeTimestamp,
		TypeTimestampWithTimezone, TypeTimestampUTC, TypeIntervalSecond:
		return true
	}
	return false
}

// Character reports whether c is a character-data code.
func (c TypeCode) Character() bool {
	switch c {
	case TypeChar, TypeVarchar, TypeNChar, TypeNVarchar, TypeLongVarchar, TypeClob, TypeNClob:
		return true
	}
	return false
}
