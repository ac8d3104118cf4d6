// Command dialectinfo prints the capability and type-mapping matrix of one
// or all supported dialects as YAML.
//
// Usage:
//
//	dialectinfo [-vendor postgres] [-version 15.4]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sqlbridge/sqlbridge/dialect"
)

var defaultVersions = map[dialect.Vendor]dialect.Version{
	dialect.H2:          dialect.MakeVersion(2, 1, 214),
	dialect.Oracle:      dialect.MakeVersion(19),
	dialect.CockroachDB: dialect.MakeVersion(23, 1),
	dialect.Spanner:     dialect.MakeVersion(1),
	dialect.Postgres:    dialect.MakeVersion(15),
}

type report struct {
	Vendor       string               `yaml:"vendor"`
	Version      string               `yaml:"version"`
	Capabilities dialect.Capabilities `yaml:"capabilities"`
	ColumnTypes  map[string]string    `yaml:"column_types"`
	Functions    []string             `yaml:"functions"`
}

func main() {
	vendorFlag := flag.String("vendor", "", "vendor to describe (default: all)")
	versionFlag := flag.String("version", "", "database version, e.g. 15.4")
	flag.Parse()

	vendors := []dialect.Vendor{
		dialect.H2, dialect.Oracle, dialect.CockroachDB, dialect.Spanner, dialect.Postgres,
	}
	if *vendorFlag != "" {
		vendors = []dialect.Vendor{dialect.Vendor(*vendorFlag)}
	}

	var out []report
	for _, vendor := range vendors {
		version := defaultVersions[vendor]
		if *versionFlag != "" {
			version = parseVersion(*versionFlag)
		}
		d, err := dialect.New(vendor, version)
		if err != nil {
			log.Fatalf("dialectinfo: %v", err)
		}
		out = append(out, describe(d))
	}
	if err := yaml.NewEncoder(os.Stdout).Encode(out); err != nil {
		log.Fatalf("dialectinfo: encode: %v", err)
	}
}

func describe(d *dialect.Dialect) report {
	cols := make(map[string]string)
	for _, code := range dialect.TypeCodes() {
		if sql, err := d.Types().ColumnType(code, dialect.Size{}); err == nil {
			cols[code.String()] = sql
		} else {
			cols[code.String()] = fmt.Sprintf("(unsupported: %v)", err)
		}
	}
	return report{
		Vendor:       string(d.Vendor()),
		Version:      d.Version().String(),
		Capabilities: d.Capabilities(),
		ColumnTypes:  cols,
		Functions:    d.Functions().Names(),
	}
}

func parseVersion(s string) dialect.Version {
	var parts []int
	for _, p := range strings.Split(s, ".") {
		n, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("dialectinfo: bad version %q", s)
		}
		parts = append(parts, n)
	}
	return dialect.MakeVersion(parts...)
}
