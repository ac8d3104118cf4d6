package dialect

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// BooleanLiteral renders b as an inline literal. Oracle stores booleans in
// number(1,0) columns, so it gets numeric literals.
func (d *Dialect) BooleanLiteral(b bool) string {
	if d.vendor == Oracle {
		if b {
			return "1"
		}
		return "0"
	}
	if b {
		return "true"
	}
	return "false"
}

// BinaryLiteral renders raw bytes as an inline literal in the vendor's hex
// syntax.
func (d *Dialect) BinaryLiteral(data []byte) string {
	h := hex.EncodeToString(data)
	switch d.vendor {
	case Oracle:
		return "hextoraw('" + h + "')"
	case Postgres, CockroachDB:
		return `'\x` + h + "'"
	case Spanner:
		return "from_hex('" + h + "')"
	default:
		return "X'" + h + "'"
	}
}

// UUIDLiteral renders u as an inline literal matching the vendor's UUID
// column mapping: raw(16) bytes on Oracle, the canonical string elsewhere.
func (d *Dialect) UUIDLiteral(u uuid.UUID) string {
	if d.vendor == Oracle {
		return "hextoraw('" + strings.ToUpper(hex.EncodeToString(u[:])) + "')"
	}
	return "'" + u.String() + "'"
}

// StringLiteral renders s as an inline literal, doubling embedded quotes.
func (d *Dialect) StringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
