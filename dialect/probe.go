package dialect

import (
	"context"
	"database/sql"
	"log/slog"
)

// ExecQuerier is the smallest query surface Detect needs. *sql.DB and
// *sql.Conn satisfy it.
type ExecQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Version probe statements, one per vendor.
const (
	h2VersionQuery        = "SELECT H2VERSION()"
	oracleVersionQuery    = "SELECT version FROM product_component_version WHERE product LIKE 'Oracle%'"
	cockroachVersionQuery = "SELECT version()"
	postgresVersionQuery  = "SELECT version()"
)

// probeVersion queries the backend for its version and parses the reply.
// A failed probe or a reply without a parseable version resolves to the
// vendor minimum rather than failing: a connectable database is usable even
// when its metadata is unexpected.
func probeVersion(ctx context.Context, vendor Vendor, db ExecQuerier) Version {
	min := vendorBuilders[vendor].minVersion
	var query string
	switch vendor {
	case H2:
		query = h2VersionQuery
	case Oracle:
		query = oracleVersionQuery
	case CockroachDB:
		query = cockroachVersionQuery
	case Postgres:
		query = postgresVersionQuery
	case Spanner:
		// Spanner is versionless from the client's perspective.
		return min
	default:
		return min
	}

	var reported string
	if err := db.QueryRowContext(ctx, query).Scan(&reported); err != nil {
		slog.Warn("sqlbridge: version probe failed, assuming minimum",
			"vendor", vendor, "error", err, "minimum", min.String())
		return min
	}

	var (
		v  Version
		ok bool
	)
	switch vendor {
	case H2:
		v, ok = ParseH2Version(reported)
	case CockroachDB:
		v, ok = ParseCockroachBanner(reported)
	case Postgres:
		v, ok = ParsePostgresBanner(reported)
	case Oracle:
		v, ok = parseDotted(reported), reported != ""
	}
	if !ok {
		slog.Warn("sqlbridge: could not parse reported version, assuming minimum",
			"vendor", vendor, "reported", reported, "minimum", min.String())
		return min
	}
	return v
}
