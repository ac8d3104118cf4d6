package dialect

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sqlbridge/sqlbridge"
)

// LockMode is the requested row-lock strength.
type LockMode int

// Lock strengths.
const (
	// LockModeNone requests no lock clause.
	LockModeNone LockMode = iota
	// LockModeShare requests a read lock; dialects without one upgrade to a
	// write lock.
	LockModeShare
	// LockModeUpdate requests a write lock.
	LockModeUpdate
)

// LockOptions shapes the lock clause of a query.
type LockOptions struct {
	Mode LockMode
	// Of restricts the lock to the named columns or table aliases, per the
	// dialect's RowLockStrategy.
	Of []string
	// NoWait fails immediately when a row is already locked.
	NoWait bool
	// SkipLocked skips already-locked rows.
	SkipLocked bool
	// Wait bounds the lock wait; zero means wait forever.
	Wait time.Duration
}

// QueryOptions shapes one translated query.
type QueryOptions struct {
	// Limit caps the row count; zero means unlimited.
	Limit int
	// Offset skips leading rows.
	Offset int
	Lock   LockOptions
	// Hints are vendor optimizer hints, injected where the vendor allows.
	Hints []string
}

// Translator renders abstract statement shapes against one dialect. It is
// stateless and pure: translation never inspects the database.
type Translator struct {
	d *Dialect
}

// NewTranslator returns a translator over d.
func NewTranslator(d *Dialect) *Translator {
	return &Translator{d: d}
}

// Query applies hints, pagination, and locking to a rendered SELECT, in the
// dialect's required order.
func (t *Translator) Query(sql string, opts QueryOptions) (string, error) {
	sql = t.ApplyHints(sql, opts.Hints)
	sql, err := t.ApplyPagination(sql, opts.Limit, opts.Offset)
	if err != nil {
		return "", err
	}
	if opts.Lock.Mode != LockModeNone {
		sql, err = t.ApplyLock(sql, opts.Lock)
		if err != nil {
			return "", err
		}
	}
	return sql, nil
}

// ApplyPagination appends or wraps the dialect's row-limiting syntax. The
// style is taken from the capability matrix, never inferred from the SQL
// text. A zero limit with a zero offset returns sql unchanged.
func (t *Translator) ApplyPagination(sql string, limit, offset int) (string, error) {
	if limit < 0 || offset < 0 {
		return "", sqlbridge.NewTranslationError("negative pagination bounds (limit %d, offset %d)", limit, offset)
	}
	if limit == 0 && offset == 0 {
		return sql, nil
	}
	switch t.d.caps.Pagination {
	case LimitOffset:
		var b strings.Builder
		b.WriteString(sql)
		if limit > 0 {
			fmt.Fprintf(&b, " limit %d", limit)
		}
		if offset > 0 {
			fmt.Fprintf(&b, " offset %d", offset)
		}
		return b.String(), nil
	case OffsetFetch:
		var b strings.Builder
		b.WriteString(sql)
		if offset > 0 {
			fmt.Fprintf(&b, " offset %d rows", offset)
		}
		if limit > 0 {
			if offset > 0 {
				fmt.Fprintf(&b, " fetch next %d rows only", limit)
			} else {
				fmt.Fprintf(&b, " fetch first %d rows only", limit)
			}
		}
		return b.String(), nil
	case Rownum:
		if offset == 0 {
			return fmt.Sprintf("select * from ( %s ) where rownum <= %d", sql, limit), nil
		}
		last := offset + limit
		return fmt.Sprintf(
			"select * from ( select row_.*, rownum rownum_ from ( %s ) row_ where rownum <= %d ) where rownum_ > %d",
			sql, last, offset), nil
	default:
		return "", sqlbridge.NewTranslationError("unknown pagination style %d", t.d.caps.Pagination)
	}
}

// ApplyLock appends the dialect's lock clause. Share locks degrade to update
// locks on dialects without a read-lock syntax. Unsupported wait policies are
// dropped rather than rendered.
func (t *Translator) ApplyLock(sql string, opts LockOptions) (string, error) {
	if opts.Mode == LockModeNone {
		return sql, nil
	}
	caps := t.d.caps
	if !caps.SupportsForUpdate {
		return "", sqlbridge.NewTranslationError("%s does not support row locking", t.d.vendor)
	}
	var b strings.Builder
	b.WriteString(sql)
	if opts.Mode == LockModeShare && t.d.shareLock != "" {
		b.WriteString(t.d.shareLock)
	} else {
		b.WriteString(" for update")
	}
	if len(opts.Of) > 0 && caps.RowLock != LockNone {
		b.WriteString(" of ")
		b.WriteString(strings.Join(opts.Of, ", "))
	}
	switch {
	case opts.NoWait && caps.SupportsNoWait:
		b.WriteString(" nowait")
	case opts.SkipLocked && caps.SupportsSkipLocked:
		b.WriteString(" skip locked")
	case opts.Wait > 0 && caps.SupportsWait:
		fmt.Fprintf(&b, " wait %d", int(opts.Wait.Round(time.Second).Seconds()))
	}
	return b.String(), nil
}

// ApplyHints injects optimizer hints using the vendor's comment convention.
// Dialects without a hint syntax return sql unchanged.
func (t *Translator) ApplyHints(sql string, hints []string) string {
	if len(hints) == 0 || t.d.hint == nil {
		return sql
	}
	return t.d.hint(sql, hints)
}

// followOnRe matches the statement shapes a dialect with follow-on locking
// cannot lock directly. The scan is case-insensitive over the rendered text.
var followOnRe = regexp.MustCompile(`(?i)\b(distinct|group by|union)\b`)

var orderByRe = regexp.MustCompile(`(?i)\border by\b`)

// RequiresFollowOnLocking reports whether the rendered query cannot carry its
// lock clause directly and must be followed by a secondary key-locking read.
// Always false on dialects that can lock any query shape.
func (t *Translator) RequiresFollowOnLocking(sql string, opts QueryOptions) bool {
	if !t.d.caps.UsesFollowOnLocking {
		return false
	}
	if opts.Offset > 0 {
		return true
	}
	if followOnRe.MatchString(sql) {
		return true
	}
	if opts.Limit > 0 && orderByRe.MatchString(sql) {
		return true
	}
	return false
}

// KeyLockStatement builds the secondary read issued under follow-on locking:
// a SELECT over the primary key columns, filtered by the keys the first read
// returned, carrying the lock clause the first read could not.
func (t *Translator) KeyLockStatement(table string, keyColumns []string, rows int, opts LockOptions) (string, error) {
	if len(keyColumns) == 0 || rows <= 0 {
		return "", sqlbridge.NewTranslationError("key lock statement needs key columns and a positive row count")
	}
	cols := strings.Join(keyColumns, ", ")
	var b strings.Builder
	fmt.Fprintf(&b, "select %s from %s where ", cols, table)
	if len(keyColumns) == 1 {
		fmt.Fprintf(&b, "%s in (%s)", keyColumns[0], placeholders(rows))
	} else {
		tuple := "(" + cols + ")"
		fmt.Fprintf(&b, "%s in (%s)", tuple, tuplePlaceholders(len(keyColumns), rows))
	}
	return t.ApplyLock(b.String(), opts)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func tuplePlaceholders(width, rows int) string {
	one := "(" + placeholders(width) + ")"
	parts := make([]string, rows)
	for i := range parts {
		parts[i] = one
	}
	return strings.Join(parts, ", ")
}

// TimestampAdd renders date arithmetic: magnitude units added to datetime.
// Patterns are selected per vendor at construction; ?1 is the magnitude and
// ?2 the datetime expression.
func (t *Translator) TimestampAdd(unit TemporalUnit, magnitude, datetime string) (string, error) {
	pattern, ok := t.d.addPatterns[unit]
	if !ok {
		return "", sqlbridge.NewConfigurationError("%s cannot add %s units", t.d.vendor, unit)
	}
	return expandTemplate("timestampadd", pattern, []string{magnitude, datetime})
}

// TimestampDiff renders the count of whole units between two datetimes;
// ?1 is the start and ?2 the end expression.
func (t *Translator) TimestampDiff(unit TemporalUnit, from, to string) (string, error) {
	pattern, ok := t.d.diffPatterns[unit]
	if !ok {
		return "", sqlbridge.NewConfigurationError("%s cannot diff %s units", t.d.vendor, unit)
	}
	return expandTemplate("timestampdiff", pattern, []string{from, to})
}

// DateTimeLiteral renders t as an inline literal at the given precision,
// honoring the dialect's literal quirks.
func (t *Translator) DateTimeLiteral(v time.Time, precision TemporalPrecision) string {
	if t.d.literal != nil {
		return t.d.literal(v, precision)
	}
	var b strings.Builder
	AppendDateTimeLiteral(&b, v, precision)
	return b.String()
}
