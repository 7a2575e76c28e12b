package items

import (
	"strings"

	"github.com/nathoo/stranded/types"
)

// Mode selects the display form of an item.
type Mode int

const (
	// Short is the inline form used in inventory and location listings.
	Short Mode = iota
	// Long is the full form used when examining.
	Long
)

const indentUnit = "  "

// Display renders it in the given mode. depth is the nesting level of it
// and sets the indentation of long-form lines.
func (p *Pool) Display(it *Item, mode Mode, depth int) string {
	child := p.Child(it)

	if mode == Short {
		s := it.Short + stateSuffix(it)
		if child != nil {
			s += " containing " + p.Display(child, Short, depth+1)
		}
		return s
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString(it.Long)
	b.WriteString(stateSuffix(it))
	if child != nil {
		b.WriteString(" containing:\n")
		b.WriteString(p.Display(child, Long, depth+1))
		return b.String()
	}
	b.WriteString(terminator(it))
	return b.String()
}

// stateSuffix marks switch position and worn items. It goes before the
// terminator.
func stateSuffix(it *Item) string {
	var s string
	if it.Is(types.ItemSwitchable) {
		if it.On {
			s = " (on)"
		} else {
			s = " (off)"
		}
	}
	if it.Worn {
		s += " (worn)"
	}
	return s
}

func terminator(it *Item) string {
	if it.Is(types.ItemObstruction) || it.Is(types.ItemTreasure) {
		return "!"
	}
	return "."
}
