// Package text looks up response strings and hint bodies by key.
package text

import (
	"sort"
	"strings"
)

// Marker is replaced by the response argument at display time.
const Marker = "$0"

// Keys the engine and action handlers print. A data file that lacks any of
// them fails to load.
var Required = []string{
	"unknown", "unexpected", "what", "no_such", "dark",
	"cannot_go", "blocked",
	"taken", "already_have", "needs_container", "dropped", "floats", "falls", "breaks", "sinks", "evaporates",
	"into_what", "put", "emptied", "already_empty", "filled", "no_liquid",
	"burnt", "essential", "eaten", "inedible", "drunk",
	"worn", "not_wearable", "removed", "not_worn",
	"switched_on", "switched_off", "not_switchable", "already_on", "already_off",
	"thrown", "to_whom", "given", "not_recipient",
	"no_writing", "nothing_special",
	"carrying", "empty_handed", "here",
	"score", "help", "no_hint", "time_passes", "goodbye",
	"suffocate", "hazard", "float", "float_ceiling",
	"reincarnate", "reincarnated", "yes_no",
}

// Table maps tags to content.
type Table struct {
	entries map[string]string
}

// New returns a table over entries. The map is not copied.
func New(entries map[string]string) *Table {
	if entries == nil {
		entries = map[string]string{}
	}
	return &Table{entries: entries}
}

// Has reports whether key is defined.
func (t *Table) Has(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// Raw returns the content for key without substitution.
func (t *Table) Raw(key string) (string, bool) {
	s, ok := t.entries[key]
	return s, ok
}

// Format returns the content for key with every $0 replaced by arg. An
// unknown key renders as the key in brackets so it shows up in play.
func (t *Table) Format(key, arg string) string {
	s, ok := t.entries[key]
	if !ok {
		return "[" + key + "]"
	}
	return strings.ReplaceAll(s, Marker, arg)
}

// Missing returns the keys from want that the table does not define.
func (t *Table) Missing(want []string) []string {
	var missing []string
	for _, k := range want {
		if !t.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Keys returns all keys, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }
