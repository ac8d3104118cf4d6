package dialect

import (
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/sqlbridge/sqlbridge"
)

// CreateTableSQL renders a CREATE TABLE statement for abstract table
// metadata. Spanner places the primary key after the closing parenthesis;
// every other vendor inlines it.
func (d *Dialect) CreateTableSQL(t *schema.Table) (string, error) {
	if len(t.Columns) == 0 {
		return "", sqlbridge.NewTranslationError("table %s has no columns", t.Name)
	}
	var defs []string
	for _, c := range t.Columns {
		def, err := d.columnDef(c)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}
	pk := d.primaryKeyColumns(t)
	if len(pk) > 0 && d.vendor != Spanner {
		defs = append(defs, "primary key ("+strings.Join(pk, ", ")+")")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "create table %s (%s)", d.QuoteIdentifier(t.Name), strings.Join(defs, ", "))
	if len(pk) > 0 && d.vendor == Spanner {
		fmt.Fprintf(&b, " primary key (%s)", strings.Join(pk, ", "))
	}
	return b.String(), nil
}

// DropTableSQL renders the statement sequence dropping a table. Dialects
// that refuse to drop indexed tables drop the indexes first; the cascade
// clause and if-exists placement follow the capability matrix.
func (d *Dialect) DropTableSQL(t *schema.Table) []string {
	var stmts []string
	if d.caps.DropIndexesBeforeTable {
		for _, idx := range t.Indexes {
			stmts = append(stmts, "drop index "+d.QuoteIdentifier(idx.Name))
		}
	}
	var b strings.Builder
	b.WriteString("drop table ")
	if d.caps.SupportsIfExistsOnDrop {
		b.WriteString("if exists ")
	}
	b.WriteString(d.QuoteIdentifier(t.Name))
	b.WriteString(d.caps.CascadeConstraintsClause)
	return append(stmts, b.String())
}

func (d *Dialect) columnDef(c *schema.Column) (string, error) {
	typ, err := d.columnTypeSQL(c.Type)
	if err != nil {
		return "", fmt.Errorf("column %s: %w", c.Name, err)
	}
	def := d.QuoteIdentifier(c.Name) + " " + typ
	if !c.Type.Null {
		def += " not null"
	}
	return def, nil
}

// columnTypeSQL maps an atlas column type onto this dialect's syntax. A raw
// type string passes through untouched.
func (d *Dialect) columnTypeSQL(t *schema.ColumnType) (string, error) {
	if t.Raw != "" {
		return t.Raw, nil
	}
	code, size := atlasTypeCode(t.Type)
	if code == 0 {
		return "", sqlbridge.NewConfigurationError("unsupported column type %T", t.Type)
	}
	return d.types.ColumnType(code, size)
}

// atlasTypeCode maps atlas's concrete type structs to portable codes.
func atlasTypeCode(t schema.Type) (TypeCode, Size) {
	switch t := t.(type) {
	case *schema.BoolType:
		return TypeBoolean, Size{}
	case *schema.IntegerType:
		switch {
		case strings.Contains(t.T, "big"):
			return TypeBigInt, Size{}
		case strings.Contains(t.T, "small"):
			return TypeSmallInt, Size{}
		case strings.Contains(t.T, "tiny"):
			return TypeTinyInt, Size{}
		default:
			return TypeInteger, Size{}
		}
	case *schema.FloatType:
		if t.Precision > 0 && t.Precision <= 24 {
			return TypeReal, Size{Precision: t.Precision}
		}
		return TypeDouble, Size{Precision: t.Precision}
	case *schema.DecimalType:
		return TypeDecimal, Size{Precision: t.Precision, Scale: t.Scale}
	case *schema.StringType:
		if strings.Contains(t.T, "char") && !strings.Contains(t.T, "var") {
			return TypeChar, Size{Length: t.Size}
		}
		return TypeVarchar, Size{Length: t.Size}
	case *schema.BinaryType:
		var size Size
		if t.Size != nil {
			size.Length = *t.Size
		}
		return TypeVarbinary, size
	case *schema.TimeType:
		var size Size
		if t.Precision != nil {
			size.Precision = *t.Precision
		}
		switch {
		case t.T == "date":
			return TypeDate, size
		case strings.HasPrefix(t.T, "time") && !strings.HasPrefix(t.T, "timestamp"):
			return TypeTime, size
		case strings.Contains(t.T, "tz") || strings.Contains(t.T, "time zone"):
			return TypeTimestampWithTimezone, size
		default:
			return TypeTimestamp, size
		}
	case *schema.JSONType:
		return TypeJSON, Size{}
	case *schema.EnumType:
		return TypeVarchar, Size{}
	case *schema.SpatialType:
		return TypeGeometry, Size{}
	case *schema.UUIDType:
		return TypeUUID, Size{}
	default:
		return 0, Size{}
	}
}

func (d *Dialect) primaryKeyColumns(t *schema.Table) []string {
	if t.PrimaryKey == nil {
		return nil
	}
	var cols []string
	for _, part := range t.PrimaryKey.Parts {
		if part.C != nil {
			cols = append(cols, d.QuoteIdentifier(part.C.Name))
		}
	}
	return cols
}
