package items

import (
	"fmt"
	"sort"

	"github.com/nathoo/stranded/types"
)

// Pool is the registry of every item, keyed by id. All owner relations are
// id lookups through the pool.
type Pool struct {
	items map[types.ItemID]*Item
	order []types.ItemID
}

// NewPool creates the items described by defs and places them with their
// initial owners. Items placed inside other items go through the same
// acceptance rules as play, so bad nesting in the data is an error.
func NewPool(defs []types.ItemDef) (*Pool, error) {
	p := &Pool{items: make(map[types.ItemID]*Item, len(defs))}

	for _, def := range defs {
		if def.ID <= 0 {
			return nil, fmt.Errorf("invalid item id %d", def.ID)
		}
		if _, dup := p.items[def.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", def.ID)
		}
		p.items[def.ID] = &Item{
			ID:          def.ID,
			Props:       def.Props,
			Size:        def.Size,
			Capacity:    def.Capacity,
			Words:       def.Words,
			Short:       def.Short,
			Long:        def.Long,
			Description: def.Description,
			Writing:     def.Writing,
			owner:       types.Nursery,
			origin:      def.Owner,
		}
		p.order = append(p.order, def.ID)
	}
	sort.Slice(p.order, func(i, j int) bool { return p.order[i] < p.order[j] })

	// Plain owners first so containers are in place before anything is
	// inserted into them.
	for _, def := range defs {
		if def.Owner.Kind != types.OwnerItem {
			p.items[def.ID].owner = def.Owner
		}
	}
	for _, def := range defs {
		if def.Owner.Kind != types.OwnerItem {
			continue
		}
		container, ok := p.items[def.Owner.Item]
		if !ok {
			return nil, fmt.Errorf("item %d is inside undefined item %d", def.ID, def.Owner.Item)
		}
		it := p.items[def.ID]
		if problem := p.HasProblemAccepting(container, it); problem != None {
			return nil, fmt.Errorf("item %d cannot start inside item %d: %s", def.ID, container.ID, problem)
		}
		p.Insert(container, it)
		it.prior = types.InItem(container.ID)
	}

	return p, nil
}

// Get returns the item with the given id, or nil.
func (p *Pool) Get(id types.ItemID) *Item {
	return p.items[id]
}

// All returns every item in id order.
func (p *Pool) All() []*Item {
	out := make([]*Item, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.items[id])
	}
	return out
}

// At returns the items directly owned by owner, in id order.
func (p *Pool) At(owner types.Owner) []*Item {
	var out []*Item
	for _, id := range p.order {
		if it := p.items[id]; it.owner == owner {
			out = append(out, it)
		}
	}
	return out
}

// Live returns every item taking part in play, in id order.
func (p *Pool) Live() []*Item {
	var out []*Item
	for _, id := range p.order {
		if it := p.items[id]; it.Live() {
			out = append(out, it)
		}
	}
	return out
}

// Root returns the first owner up the containment chain that is not an
// item: the location, inventory or sentinel where the outermost container
// lives.
func (p *Pool) Root(it *Item) types.Owner {
	owner := it.owner
	for owner.Kind == types.OwnerItem {
		parent, ok := p.items[owner.Item]
		if !ok {
			break
		}
		owner = parent.owner
	}
	return owner
}

// Contains reports whether container holds id at any depth.
func (p *Pool) Contains(container *Item, id types.ItemID) bool {
	for cur := container; cur != nil && cur.within != 0; cur = p.items[cur.within] {
		if cur.within == id {
			return true
		}
	}
	return false
}

// Child returns the direct child of container, or nil.
func (p *Pool) Child(container *Item) *Item {
	if container.within == 0 {
		return nil
	}
	return p.items[container.within]
}

// Move reassigns it to owner, clearing the link held by its previous
// container. Use Insert to move into another item.
func (p *Pool) Move(it *Item, owner types.Owner) {
	if owner.Kind == types.OwnerItem {
		panic(&InvariantError{Op: "move", Container: owner.Item, Item: it.ID})
	}
	p.detach(it)
	it.owner = owner
}

// Insert places it inside container. The caller must have checked
// HasProblemAccepting first.
func (p *Pool) Insert(container, it *Item) {
	prior := it.owner
	p.detach(it)
	it.prior = prior
	it.owner = types.InItem(container.ID)
	container.within = it.ID
}

// RemoveCertain detaches id from the containment chain under container.
// A liquid evaporates: it returns to the nursery, or to its origin when it
// is a factory item. Anything else goes back to the owner it had before it
// was inserted. Removing something that is not contained is an invariant
// break and panics.
func (p *Pool) RemoveCertain(container *Item, id types.ItemID) *Item {
	parent := p.parentOf(container, id, "remove")
	child := p.items[id]
	parent.within = 0

	switch {
	case child.Is(types.ItemLiquid) && child.Is(types.ItemFactory) && child.origin.Kind == types.OwnerLocation:
		child.owner = child.origin
	case child.Is(types.ItemLiquid):
		child.owner = types.Nursery
	case child.prior.Kind == types.OwnerItem:
		// Back into the earlier container if it can still take the item,
		// else where the outermost container lives.
		if back := p.items[child.prior.Item]; back != nil && back != parent &&
			back.Live() && back.IsEmpty() && p.HasProblemAccepting(back, child) == None {
			child.owner = child.prior
			back.within = child.ID
		} else {
			child.owner = p.Root(parent)
		}
	default:
		child.owner = child.prior
	}
	return child
}

// RetireCertain detaches id from the chain under container and retires it.
func (p *Pool) RetireCertain(container *Item, id types.ItemID) *Item {
	parent := p.parentOf(container, id, "retire")
	child := p.items[id]
	parent.within = 0
	p.Retire(child)
	return child
}

// Retire permanently removes it and everything inside it from play.
// Liquids held inside evaporate. Factory items are produced again at their
// origin. Retiring a retired item changes nothing.
func (p *Pool) Retire(it *Item) {
	if it.Retired() {
		return
	}
	if child := p.Child(it); child != nil {
		it.within = 0
		if child.Is(types.ItemLiquid) && !child.Is(types.ItemFactory) {
			child.owner = types.Nursery
		} else {
			p.Retire(child)
		}
	}
	p.detach(it)
	it.Worn = false
	if it.Is(types.ItemFactory) && it.origin.Kind == types.OwnerLocation {
		it.owner = it.origin
		return
	}
	it.owner = types.Graveyard
}

// detach clears the within slot of the container currently holding it.
func (p *Pool) detach(it *Item) {
	if it.owner.Kind != types.OwnerItem {
		return
	}
	if parent, ok := p.items[it.owner.Item]; ok && parent.within == it.ID {
		parent.within = 0
	}
}

// parentOf finds the item directly holding id inside the chain under
// container.
func (p *Pool) parentOf(container *Item, id types.ItemID, op string) *Item {
	for cur := container; cur != nil && cur.within != 0; cur = p.items[cur.within] {
		if cur.within == id {
			return cur
		}
	}
	panic(&InvariantError{Op: op, Container: container.ID, Item: id})
}

// TreasureValue is 1 for a treasure plus the value of its nested child.
func (p *Pool) TreasureValue(it *Item) int {
	v := 0
	if it.Is(types.ItemTreasure) {
		v = 1
	}
	if child := p.Child(it); child != nil {
		v += p.TreasureValue(child)
	}
	return v
}

// EffectiveProperty reports whether it, or anything nested inside it, has
// flag. With onRequired the item's own flag only counts while it is on.
func (p *Pool) EffectiveProperty(it *Item, flag types.ItemProps, onRequired bool) bool {
	if it.Is(flag) && (!onRequired || it.IsOn()) {
		return true
	}
	if child := p.Child(it); child != nil {
		return p.EffectiveProperty(child, flag, onRequired)
	}
	return false
}
