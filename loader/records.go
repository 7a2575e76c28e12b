package loader

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/nathoo/stranded/types"
)

// DefaultPenalty is the reincarnation score penalty when the params
// section does not set one.
const DefaultPenalty = 5

// Field counts per record.
const (
	paramFields    = 2
	locationFields = 1 + int(types.NumDirections) + 4
	itemFields     = 10
	commandFields  = 3
	tableFields    = 2
)

// index remembers where each definition came from so later checks can
// report line numbers.
type index struct {
	params    map[string]int
	locations map[types.LocationID]int
	items     map[types.ItemID]int
	commands  []int
}

func newIndex() *index {
	return &index{
		params:    map[string]int{},
		locations: map[types.LocationID]int{},
		items:     map[types.ItemID]int{},
	}
}

// problems accumulates errors and warnings across every section.
type problems struct {
	errors   []string
	warnings []string
}

func (p *problems) add(sec string, line int, format string, args ...any) {
	p.errors = append(p.errors, (&LineError{Section: sec, Line: line, Err: fmt.Errorf(format, args...)}).Error())
}

func (p *problems) warn(sec string, line int, format string, args ...any) {
	p.warnings = append(p.warnings, (&LineError{Section: sec, Line: line, Err: fmt.Errorf(format, args...)}).Error())
}

func (p *problems) err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: p.errors, Warnings: p.warnings}
}

// fields checks the field count of rec. Items may omit the trailing
// writing field.
func (p *problems) fields(sec section, rec record, lo, hi int) bool {
	n := len(rec.fields)
	switch {
	case n < lo:
		p.add(sec.name, rec.line, "short record: %d field(s), want %d", n, hi)
		return false
	case n > hi:
		p.add(sec.name, rec.line, "too many fields: %d, want %d", n, hi)
		return false
	}
	return true
}

// unescape turns the two-character sequence \n into a newline.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad id %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative id %d", n)
	}
	return n, nil
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad property mask %q", s)
	}
	return uint32(n), nil
}

// parseOwner reads L<id>, I, C<id> or N.
func parseOwner(s string) (types.Owner, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Owner{}, fmt.Errorf("missing owner")
	}
	switch s[0] {
	case 'I':
		if len(s) == 1 {
			return types.Inventory, nil
		}
	case 'N':
		if len(s) == 1 {
			return types.Nursery, nil
		}
	case 'L', 'C':
		n, err := strconv.Atoi(s[1:])
		if err != nil || n <= 0 {
			break
		}
		if s[0] == 'L' {
			return types.AtLocation(types.LocationID(n)), nil
		}
		return types.InItem(types.ItemID(n)), nil
	}
	return types.Owner{}, fmt.Errorf("bad owner %q", s)
}

func parseWords(s string) []string {
	fold := cases.Fold()
	var words []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, fold.String(w))
		}
	}
	return words
}

func parseParams(sec section, ix *index, p *problems) types.GameDef {
	game := types.GameDef{Penalty: DefaultPenalty}
	for _, rec := range sec.records {
		if !p.fields(sec, rec, paramFields, paramFields) {
			continue
		}
		key, value := strings.TrimSpace(rec.fields[0]), unescape(rec.fields[1])
		if _, dup := ix.params[key]; dup {
			p.add(sec.name, rec.line, "duplicate parameter %q", key)
			continue
		}
		ix.params[key] = rec.line

		var err error
		switch key {
		case "title":
			game.Title = value
		case "intro":
			game.Intro = value
		case "start":
			var n int
			n, err = parseID(value)
			game.Start = types.LocationID(n)
		case "treasury":
			var n int
			n, err = parseID(value)
			game.Treasury = types.LocationID(n)
		case "capacity":
			game.Capacity, err = strconv.Atoi(strings.TrimSpace(value))
		case "penalty":
			game.Penalty, err = strconv.Atoi(strings.TrimSpace(value))
		default:
			p.warn(sec.name, rec.line, "unknown parameter %q", key)
		}
		if err != nil {
			p.add(sec.name, rec.line, "parameter %s: %v", key, err)
		}
	}
	for _, key := range []string{"title", "start", "capacity"} {
		if _, ok := ix.params[key]; !ok {
			p.add(sec.name, sec.start, "missing required parameter %q", key)
		}
	}
	return game
}

func parseLocations(sec section, ix *index, p *problems) []types.LocationDef {
	var defs []types.LocationDef
	for _, rec := range sec.records {
		if !p.fields(sec, rec, locationFields, locationFields) {
			continue
		}
		f := rec.fields
		id, err := parseID(f[0])
		if err != nil {
			p.add(sec.name, rec.line, "%v", err)
			continue
		}
		def := types.LocationDef{ID: types.LocationID(id)}
		ok := true
		for d := 0; d < int(types.NumDirections); d++ {
			field := strings.TrimSpace(f[1+d])
			if field == "" {
				continue
			}
			target, err := parseID(field)
			if err != nil {
				p.add(sec.name, rec.line, "exit %d: %v", d, err)
				ok = false
				continue
			}
			def.Exits[d] = types.LocationID(target)
		}
		props, err := parseHex(f[11])
		if err != nil {
			p.add(sec.name, rec.line, "%v", err)
			ok = false
		}
		if !ok {
			continue
		}
		def.Props = types.LocationProps(props)
		def.Short, def.Long, def.Description = unescape(f[12]), unescape(f[13]), unescape(f[14])

		if first, dup := ix.locations[def.ID]; dup {
			p.add(sec.name, rec.line, "duplicate location id %d (first on line %d)", id, first)
			continue
		}
		ix.locations[def.ID] = rec.line
		defs = append(defs, def)
	}
	return defs
}

func parseItems(sec section, ix *index, p *problems) []types.ItemDef {
	var defs []types.ItemDef
	for _, rec := range sec.records {
		if !p.fields(sec, rec, itemFields-1, itemFields) {
			continue
		}
		f := rec.fields
		id, err := parseID(f[0])
		if err != nil {
			p.add(sec.name, rec.line, "%v", err)
			continue
		}
		props, err := parseHex(f[1])
		if err != nil {
			p.add(sec.name, rec.line, "%v", err)
			continue
		}
		size, err := strconv.Atoi(strings.TrimSpace(f[2]))
		if err != nil {
			p.add(sec.name, rec.line, "bad size %q", f[2])
			continue
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(f[3]))
		if err != nil {
			p.add(sec.name, rec.line, "bad capacity %q", f[3])
			continue
		}
		owner, err := parseOwner(f[4])
		if err != nil {
			p.add(sec.name, rec.line, "%v", err)
			continue
		}
		def := types.ItemDef{
			ID:          types.ItemID(id),
			Props:       types.ItemProps(props),
			Size:        size,
			Capacity:    capacity,
			Owner:       owner,
			Words:       parseWords(f[5]),
			Short:       unescape(f[6]),
			Long:        unescape(f[7]),
			Description: unescape(f[8]),
		}
		if len(f) == itemFields {
			def.Writing = unescape(f[9])
		}
		if len(def.Words) == 0 {
			p.warn(sec.name, rec.line, "item %d has no words and cannot be named", id)
		}
		if first, dup := ix.items[def.ID]; dup {
			p.add(sec.name, rec.line, "duplicate item id %d (first on line %d)", id, first)
			continue
		}
		ix.items[def.ID] = rec.line
		defs = append(defs, def)
	}
	return defs
}

func parseCommands(sec section, ix *index, p *problems) []types.CommandDef {
	fold := cases.Fold()
	var defs []types.CommandDef
	for _, rec := range sec.records {
		if !p.fields(sec, rec, commandFields, commandFields) {
			continue
		}
		props, err := parseHex(rec.fields[1])
		if err != nil {
			p.add(sec.name, rec.line, "%v", err)
			continue
		}
		defs = append(defs, types.CommandDef{
			Name:    fold.String(strings.TrimSpace(rec.fields[0])),
			Props:   types.CommandProps(props),
			Handler: strings.TrimSpace(rec.fields[2]),
		})
		ix.commands = append(ix.commands, rec.line)
	}
	return defs
}

// parseTable reads a tag/content section such as strings or hints.
func parseTable(sec section, p *problems) map[string]string {
	entries := map[string]string{}
	lines := map[string]int{}
	for _, rec := range sec.records {
		if !p.fields(sec, rec, tableFields, tableFields) {
			continue
		}
		key := strings.TrimSpace(rec.fields[0])
		if first, dup := lines[key]; dup {
			p.add(sec.name, rec.line, "duplicate key %q (first on line %d)", key, first)
			continue
		}
		lines[key] = rec.line
		entries[key] = unescape(rec.fields[1])
	}
	return entries
}
