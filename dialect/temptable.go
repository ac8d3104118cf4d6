package dialect

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/sqlbridge/sqlbridge"
)

// MutationStrategy is how a multi-table bulk mutation stages the affected
// keys. It is a pure function of the capability matrix, resolved once per
// entity shape.
type MutationStrategy int

// Staging strategies.
const (
	// StrategyCTE stages keys in a with-clause; no table is created.
	StrategyCTE MutationStrategy = iota
	// StrategyLocalTempTable creates a session temporary table on demand.
	StrategyLocalTempTable
	// StrategyGlobalTempTable reuses a pre-created global temporary table.
	StrategyGlobalTempTable
)

// MutationStrategy returns the staging strategy for this dialect.
func (d *Dialect) MutationStrategy() MutationStrategy {
	switch d.caps.TempTable {
	case TempTableGlobal:
		return StrategyGlobalTempTable
	case TempTableLocal:
		return StrategyLocalTempTable
	default:
		return StrategyCTE
	}
}

// StagingTableName derives the staging table name for an entity: the "ht_"
// prefix plus the underscored base name, truncated to the dialect's
// identifier limit.
func (d *Dialect) StagingTableName(entity string) string {
	name := "ht_" + inflect.Underscore(entity)
	if max := d.caps.MaxIdentifierLength; max > 0 && len(name) > max {
		name = name[:max]
	}
	return name
}

// StagingPlan is the statement sequence of one staged multi-table mutation.
// Fields that do not apply under the chosen strategy are empty.
type StagingPlan struct {
	Strategy MutationStrategy
	// Table is the staging table name; empty under StrategyCTE.
	Table string
	// Create is the table DDL. Under StrategyGlobalTempTable it runs once at
	// schema setup; under StrategyLocalTempTable it runs per BeforeUse.
	Create string
	// BeforeUse runs inside the transaction before the first use, or is
	// empty when no preparation is needed.
	BeforeUse string
	// InsertKeys captures the affected keys into the staging table.
	InsertKeys string
	// Cleanup runs after the per-table mutations.
	Cleanup string
}

// BuildStagingPlan assembles the staging sequence for one entity.
// keyColumns are "name type" definitions and selectKeys is the rendered
// query producing the affected key rows.
func (t *Translator) BuildStagingPlan(entity string, keyColumns []string, selectKeys string) (StagingPlan, error) {
	if len(keyColumns) == 0 {
		return StagingPlan{}, sqlbridge.NewTranslationError("staging plan for %s needs key columns", entity)
	}
	strategy := t.d.MutationStrategy()
	if strategy == StrategyCTE {
		return StagingPlan{Strategy: StrategyCTE}, nil
	}
	plan := StagingPlan{
		Strategy: strategy,
		Table:    t.d.StagingTableName(entity),
	}
	kind := "local temporary"
	if strategy == StrategyGlobalTempTable {
		kind = "global temporary"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "create %s table %s (%s)", kind, plan.Table, strings.Join(keyColumns, ", "))
	if opts := t.d.caps.TempTableCreateOptions; opts != "" {
		b.WriteString(" ")
		b.WriteString(opts)
	}
	plan.Create = b.String()
	if t.d.caps.TempTableBeforeUse == BeforeUseCreate {
		plan.BeforeUse = plan.Create
	}
	plan.InsertKeys = fmt.Sprintf("insert into %s %s", plan.Table, selectKeys)
	switch strategy {
	case StrategyGlobalTempTable:
		plan.Cleanup = "delete from " + plan.Table
	case StrategyLocalTempTable:
		plan.Cleanup = "drop table " + plan.Table
	}
	return plan, nil
}

// StagedDelete renders one per-table delete keyed by the staged keys, e.g.
// "delete from addresses where person_id in (select id from ht_person)".
func (t *Translator) StagedDelete(table, matchColumn string, plan StagingPlan, keyColumn string) (string, error) {
	if plan.Strategy == StrategyCTE {
		return "", sqlbridge.NewTranslationError("per-table mutations under a CTE strategy inline the with-clause")
	}
	return fmt.Sprintf("delete from %s where %s in (select %s from %s)",
		table, matchColumn, keyColumn, plan.Table), nil
}

// StagedUpdate renders one per-table update keyed by the staged keys.
func (t *Translator) StagedUpdate(table, setClause, matchColumn string, plan StagingPlan, keyColumn string) (string, error) {
	if plan.Strategy == StrategyCTE {
		return "", sqlbridge.NewTranslationError("per-table mutations under a CTE strategy inline the with-clause")
	}
	return fmt.Sprintf("update %s set %s where %s in (select %s from %s)",
		table, setClause, matchColumn, keyColumn, plan.Table), nil
}
