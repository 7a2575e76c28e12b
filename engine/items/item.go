// Package items implements the item containment model: a pool of items,
// each with exactly one owner context, and the rules that decide whether
// one item may be placed inside another.
package items

import (
	"fmt"

	"github.com/nathoo/stranded/types"
)

// Item is a single object of the game world. Owner and containment links
// are only changed through the Pool.
type Item struct {
	ID          types.ItemID
	Props       types.ItemProps
	Size        int
	Capacity    int
	Words       []string
	Short       string
	Long        string
	Description string
	Writing     string
	On          bool
	Worn        bool

	owner  types.Owner
	within types.ItemID // single direct child, 0 when empty
	prior  types.Owner  // owner held before the last Insert
	origin types.Owner  // owner given by the data file
}

// Is reports whether the item has every bit of flag.
func (it *Item) Is(flag types.ItemProps) bool { return it.Props.Has(flag) }

// Owner returns the item's current owner context.
func (it *Item) Owner() types.Owner { return it.owner }

// Origin returns the owner the item was loaded with.
func (it *Item) Origin() types.Owner { return it.origin }

// Within returns the id of the item's direct child, or 0.
func (it *Item) Within() types.ItemID { return it.within }

// IsEmpty reports whether the item holds nothing.
func (it *Item) IsEmpty() bool { return it.within == 0 }

// IsOn reports the on/off state. Items that cannot be switched count as on.
func (it *Item) IsOn() bool { return !it.Is(types.ItemSwitchable) || it.On }

// Live reports whether the item takes part in play.
func (it *Item) Live() bool {
	return it.owner.Kind != types.OwnerGraveyard && it.owner.Kind != types.OwnerNursery
}

// Retired reports whether the item has been moved to the graveyard.
func (it *Item) Retired() bool { return it.owner.Kind == types.OwnerGraveyard }

// Matches reports whether word is part of the item's vocabulary.
func (it *Item) Matches(word string) bool {
	for _, w := range it.Words {
		if w == word {
			return true
		}
	}
	return false
}

// Name returns the first vocabulary word, used in messages.
func (it *Item) Name() string {
	if len(it.Words) > 0 {
		return it.Words[0]
	}
	return fmt.Sprintf("item%d", it.ID)
}

// InvariantError reports internal misuse of the containment model. It is
// raised with panic: it can only happen through a programming error.
type InvariantError struct {
	Op        string
	Container types.ItemID
	Item      types.ItemID
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: item %d is not contained in item %d", e.Op, e.Item, e.Container)
}
