package dialect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sqlbridge/sqlbridge"
)

// Renderer renders one registered SQL function invocation. Implementations
// are pure: the same name and arguments always produce the same text.
type Renderer interface {
	Render(name string, args []string) (string, error)
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(name string, args []string) (string, error)

// Render calls f.
func (f RendererFunc) Render(name string, args []string) (string, error) {
	return f(name, args)
}

// FunctionCatalog maps portable function names to vendor renderings. The
// catalog is assembled at dialect construction from an ordered registration
// list; a later registration for the same name replaces the earlier one, so
// version-gated overrides simply register after the common set.
type FunctionCatalog struct {
	renderers map[string]Renderer
}

// newFunctionCatalog returns an empty catalog.
func newFunctionCatalog() *FunctionCatalog {
	return &FunctionCatalog{renderers: make(map[string]Renderer)}
}

// register binds name to r, replacing any earlier binding. Names are
// case-insensitive and stored lowercase.
func (c *FunctionCatalog) register(name string, r Renderer) {
	c.renderers[strings.ToLower(name)] = r
}

// pattern registers a template rendering where ?1, ?2, ... are replaced by
// the positional arguments. An argument referenced by the template but not
// supplied is a translation error at render time.
func (c *FunctionCatalog) pattern(name, template string) {
	c.register(name, RendererFunc(func(fname string, args []string) (string, error) {
		return expandTemplate(fname, template, args)
	}))
}

// standard registers the unremarkable "name(arg, arg, ...)" rendering.
func (c *FunctionCatalog) standard(name string) {
	c.register(name, RendererFunc(func(fname string, args []string) (string, error) {
		return fname + "(" + strings.Join(args, ", ") + ")", nil
	}))
}

// noParens registers a rendering without an argument list, e.g.
// current_timestamp.
func (c *FunctionCatalog) noParens(name string) {
	c.register(name, RendererFunc(func(fname string, args []string) (string, error) {
		if len(args) != 0 {
			return "", sqlbridge.NewTranslationError("function %s takes no arguments", fname)
		}
		return fname, nil
	}))
}

// Render renders the named function over the given argument texts. Unknown
// names are a configuration error: the catalog never guesses a fallback.
func (c *FunctionCatalog) Render(name string, args []string) (string, error) {
	r, ok := c.renderers[strings.ToLower(name)]
	if !ok {
		return "", sqlbridge.NewConfigurationError("no rendering registered for function %q", name)
	}
	return r.Render(strings.ToLower(name), args)
}

// Supports reports whether the catalog has a rendering for name.
func (c *FunctionCatalog) Supports(name string) bool {
	_, ok := c.renderers[strings.ToLower(name)]
	return ok
}

// Names returns the registered function names, sorted.
func (c *FunctionCatalog) Names() []string {
	names := make([]string, 0, len(c.renderers))
	for name := range c.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expandTemplate substitutes ?N placeholders in template with args[N-1].
func expandTemplate(name, template string, args []string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] != '?' {
			b.WriteByte(template[i])
			continue
		}
		j := i + 1
		for j < len(template) && template[j] >= '0' && template[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte('?')
			continue
		}
		n, _ := strconv.Atoi(template[i+1 : j])
		if n < 1 || n > len(args) {
			return "", sqlbridge.NewTranslationError("function %s: missing argument ?%d", name, n)
		}
		b.WriteString(args[n-1])
		i = j - 1
	}
	return b.String(), nil
}

// registerCommonFunctions installs the portable core every dialect supports
// with ANSI spellings. Vendors override or extend afterwards.
func registerCommonFunctions(c *FunctionCatalog) {
	for _, name := range []string{
		"abs", "ceiling", "floor", "round", "mod", "sign", "sqrt", "exp", "ln", "power",
		"lower", "upper", "length", "substring", "trim", "replace", "concat",
		"coalesce", "nullif", "cast",
		"count", "sum", "min", "max", "avg",
	} {
		c.standard(name)
	}
	c.noParens("current_date")
	c.noParens("current_time")
	c.noParens("current_timestamp")
	c.pattern("locate", "position(?1 in ?2)")
	c.pattern("left", "substring(?1, 1, ?2)")
	c.pattern("right", "substring(?1, -?2)")
}
