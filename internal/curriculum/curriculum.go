// Package curriculum holds the hand-authored prerequisite table used by the
// knowledge-graph builder. The table ships embedded; deployments can point
// CURRICULUM_PATH at their own TOML file.
package curriculum

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed curriculum.toml
var defaultTOML string

// Table maps concept → successor → prerequisite strength in (0,1].
type Table struct {
	links map[string]map[string]float64
}

type tableFile struct {
	Prerequisites map[string]map[string]float64 `toml:"prerequisites"`
}

// Load reads a prerequisite table from a TOML file.
func Load(path string) (*Table, error) {
	var tf tableFile
	if _, err := toml.DecodeFile(path, &tf); err != nil {
		return nil, fmt.Errorf("load curriculum %s: %w", path, err)
	}
	return fromFile(tf), nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded curriculum table.
func Default() *Table {
	defaultOnce.Do(func() {
		var tf tableFile
		if _, err := toml.Decode(defaultTOML, &tf); err != nil {
			// The embedded table is part of the build; a parse failure is
			// a programming error, not a runtime condition.
			panic(fmt.Sprintf("curriculum: embedded table invalid: %v", err))
		}
		defaultTable = fromFile(tf)
	})
	return defaultTable
}

func fromFile(tf tableFile) *Table {
	t := &Table{links: make(map[string]map[string]float64, len(tf.Prerequisites))}
	for concept, succ := range tf.Prerequisites {
		key := Normalize(concept)
		m := make(map[string]float64, len(succ))
		for s, strength := range succ {
			m[Normalize(s)] = strength
		}
		t.links[key] = m
	}
	return t
}

// Strength returns the prerequisite strength between two concepts, checking
// both directions. Unknown pairs score 0.
func (t *Table) Strength(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if v, ok := t.links[a][b]; ok {
		return v
	}
	if v, ok := t.links[b][a]; ok {
		return v
	}
	return 0
}

// Concepts returns how many concepts appear on the left-hand side of the
// table. Used for sanity checks and stats, not by the graph builder.
func (t *Table) Concepts() int {
	return len(t.links)
}

// Normalize converts a free-form concept label into the canonical key used
// across the graph: lower case, trimmed, inner whitespace collapsed to a
// single hyphen.
func Normalize(concept string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(concept)))
	return strings.Join(fields, "-")
}
