// Package dialect implements vendor SQL dialects: portable type mapping,
// function rendering, capability negotiation, statement translation, and
// native error classification for H2, Oracle, CockroachDB, Cloud Spanner,
// and PostgreSQL.
package dialect

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sqlbridge/sqlbridge"
)

// Vendor identifies a supported database family.
type Vendor string

// Supported vendors.
const (
	H2          Vendor = "h2"
	Oracle      Vendor = "oracle"
	CockroachDB Vendor = "cockroachdb"
	Spanner     Vendor = "spanner"
	Postgres    Vendor = "postgres"
)

// DriverKind is the wire-protocol family a vendor speaks. CockroachDB speaks
// the PostgreSQL protocol, so its driver-level error shapes are PostgreSQL's.
type DriverKind int

// Driver families.
const (
	DriverPostgres DriverKind = iota + 1
	DriverOracle
	DriverH2
	DriverSpanner
)

// Dialect is one vendor at one version: an immutable bundle of capabilities,
// type mappings, function renderings, a statement translator, and an error
// classifier. Construct with New or Detect; all methods are safe for
// concurrent use.
type Dialect struct {
	vendor     Vendor
	driver     DriverKind
	version    Version
	caps       Capabilities
	types      *TypeMapper
	funcs      *FunctionCatalog
	classifier Classifier

	quoteOpen  string
	quoteClose string

	// shareLock is the read-lock clause, empty when reads upgrade to writes.
	shareLock string
	// hint injects optimizer hints into a rendered statement.
	hint func(sql string, hints []string) string
	// addPatterns/diffPatterns are the per-unit date arithmetic templates.
	addPatterns  map[TemporalUnit]string
	diffPatterns map[TemporalUnit]string
	// literal overrides temporal literal rendering.
	literal func(t time.Time, precision TemporalPrecision) string
}

// Vendor returns the database family.
func (d *Dialect) Vendor() Vendor { return d.vendor }

// Driver returns the wire-protocol family.
func (d *Dialect) Driver() DriverKind { return d.driver }

// Version returns the resolved database version.
func (d *Dialect) Version() Version { return d.version }

// Capabilities returns the resolved feature matrix.
func (d *Dialect) Capabilities() Capabilities { return d.caps }

// Types returns the type mapper.
func (d *Dialect) Types() *TypeMapper { return d.types }

// Functions returns the function catalog.
func (d *Dialect) Functions() *FunctionCatalog { return d.funcs }

// QuoteIdentifier quotes name with the vendor's identifier delimiters,
// escaping embedded delimiters by doubling.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.quoteClose, d.quoteClose+d.quoteClose)
	return d.quoteOpen + escaped + d.quoteClose
}

// builder constructs one vendor dialect for a resolved version.
type builder func(v Version) *Dialect

var vendorBuilders = map[Vendor]struct {
	build      builder
	minVersion Version
}{
	H2:          {buildH2, MakeVersion(1, 4, 197)},
	Oracle:      {buildOracle, MakeVersion(11, 2)},
	CockroachDB: {buildCockroach, MakeVersion(21, 1)},
	Spanner:     {buildSpanner, MakeVersion(1)},
	Postgres:    {buildPostgres, MakeVersion(12)},
}

var (
	registry sync.Map // string -> *Dialect
	buildSF  singleflight.Group
)

// Option customizes a dialect at construction time.
type Option func(*Dialect)

// WithFunction registers or replaces a function rendering.
func WithFunction(name string, r Renderer) Option {
	return func(d *Dialect) { d.funcs.register(name, r) }
}

// WithClassifier prepends a classifier consulted before the vendor chain.
func WithClassifier(c Classifier) Option {
	return func(d *Dialect) { d.classifier = classifierChain{c, d.classifier} }
}

// New returns the dialect for the given vendor and version. Versions below
// the vendor's supported minimum are clamped to it with a warning; feature
// gates then resolve against the clamp. Construction is deduplicated: the
// same (vendor, version) pair always yields the same *Dialect. A dialect
// built with options is a private instance and bypasses the shared registry.
func New(vendor Vendor, version Version, opts ...Option) (*Dialect, error) {
	vb, ok := vendorBuilders[vendor]
	if !ok {
		return nil, sqlbridge.NewConfigurationError("unsupported vendor %q", vendor)
	}
	if version.Before(vb.minVersion.Major, vb.minVersion.Minor, vb.minVersion.Patch) {
		slog.Warn("sqlbridge: version below supported minimum, clamping",
			"vendor", vendor, "version", version.String(), "minimum", vb.minVersion.String())
		version = vb.minVersion
	}
	if len(opts) > 0 {
		d := vb.build(version)
		for _, opt := range opts {
			opt(d)
		}
		return d, nil
	}
	key := string(vendor) + "/" + version.String()
	if d, ok := registry.Load(key); ok {
		return d.(*Dialect), nil
	}
	d, _, _ := buildSF.Do(key, func() (any, error) {
		d := vb.build(version)
		registry.Store(key, d)
		return d, nil
	})
	return d.(*Dialect), nil
}

// Detect probes the connected database for its vendor version and returns
// the matching dialect. The probe issues a single version query; a failed
// probe or an unparseable reply falls back to the vendor minimum.
func Detect(ctx context.Context, vendor Vendor, db ExecQuerier, opts ...Option) (*Dialect, error) {
	return New(vendor, probeVersion(ctx, vendor, db), opts...)
}
