package dialect

import (
	"strconv"
	"strings"

	"github.com/sqlbridge/sqlbridge"
)

// DatetimeFormat translates a java.time-style datetime pattern into the
// vendor's native format vocabulary: to_char tokens for Oracle, H2, and
// PostgreSQL, strftime directives for Spanner and CockroachDB. Fields the
// vendor cannot express are a TranslationError.
func (d *Dialect) DatetimeFormat(pattern string) (string, error) {
	switch d.vendor {
	case Spanner, CockroachDB:
		return translatePattern(pattern, strftimeField, escapePercent)
	default:
		return translatePattern(pattern, toCharField, quoteToCharLiteral)
	}
}

// translatePattern scans a java.time pattern: runs of the same letter are
// format fields, '...' sections are literals ('' escapes a quote), and
// everything else passes through.
func translatePattern(pattern string, field func(letter byte, run int) (string, bool), literal func(string) string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			lit, next, ok := scanLiteral(pattern, i)
			if !ok {
				return "", sqlbridge.NewTranslationError("datetime pattern %q: unterminated literal", pattern)
			}
			b.WriteString(literal(lit))
			i = next
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			out, ok := field(c, j-i)
			if !ok {
				return "", sqlbridge.NewTranslationError("datetime pattern %q: unsupported field %q", pattern, string(c))
			}
			b.WriteString(out)
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// scanLiteral consumes the quoted section starting at pattern[start] and
// returns its unescaped text and the index past the closing quote. A bare ''
// yields a single quote.
func scanLiteral(pattern string, start int) (string, int, bool) {
	var lit strings.Builder
	i := start + 1
	for i < len(pattern) {
		if pattern[i] != '\'' {
			lit.WriteByte(pattern[i])
			i++
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '\'' {
			lit.WriteByte('\'')
			i += 2
			continue
		}
		if lit.Len() == 0 {
			return "'", i + 1, true
		}
		return lit.String(), i + 1, true
	}
	return "", 0, false
}

// toCharField maps one java.time field to the to_char vocabulary shared by
// Oracle, H2, and PostgreSQL.
func toCharField(letter byte, run int) (string, bool) {
	switch letter {
	case 'G':
		return "AD", true
	case 'y', 'u':
		if run == 2 {
			return "YY", true
		}
		return "YYYY", true
	case 'M', 'L':
		switch {
		case run <= 2:
			return "MM", true
		case run == 3:
			return "Mon", true
		default:
			return "Month", true
		}
	case 'd':
		return "DD", true
	case 'D':
		return "DDD", true
	case 'E':
		if run <= 3 {
			return "Dy", true
		}
		return "Day", true
	case 'e':
		return "D", true
	case 'w':
		return "IW", true
	case 'a':
		return "AM", true
	case 'H':
		return "HH24", true
	case 'h':
		return "HH12", true
	case 'm':
		return "MI", true
	case 's':
		return "SS", true
	case 'S':
		return "FF" + strconv.Itoa(run), true
	case 'z':
		return "TZR", true
	case 'Z', 'x', 'X':
		return "TZH:TZM", true
	}
	return "", false
}

// strftimeField maps one java.time field to the strftime vocabulary used by
// Spanner's format_timestamp and CockroachDB's experimental_strftime.
func strftimeField(letter byte, run int) (string, bool) {
	switch letter {
	case 'y', 'u':
		if run == 2 {
			return "%y", true
		}
		return "%Y", true
	case 'M', 'L':
		switch {
		case run <= 2:
			return "%m", true
		case run == 3:
			return "%b", true
		default:
			return "%B", true
		}
	case 'd':
		return "%d", true
	case 'D':
		return "%j", true
	case 'E':
		if run <= 3 {
			return "%a", true
		}
		return "%A", true
	case 'w':
		return "%V", true
	case 'a':
		return "%p", true
	case 'H':
		return "%H", true
	case 'h':
		return "%I", true
	case 'm':
		return "%M", true
	case 's':
		return "%S", true
	case 'S':
		return "%f", true
	case 'z':
		return "%Z", true
	case 'Z', 'x', 'X':
		return "%z", true
	}
	return "", false
}

func quoteToCharLiteral(s string) string { return `"` + s + `"` }

func escapePercent(s string) string { return strings.ReplaceAll(s, "%", "%%") }
