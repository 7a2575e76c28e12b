package items

import "github.com/nathoo/stranded/types"

// Problem names the first containment rule an operation violates. The
// value doubles as the string-table key reported to the player; None means
// the operation is allowed.
type Problem string

const (
	None             Problem = ""
	NotContainer     Problem = "not_container"
	IntoItself       Problem = "into_itself"
	SolidIntoLiquid  Problem = "solid_into_liquid"
	LiquidIntoSolid  Problem = "liquid_into_solid"
	Occupied         Problem = "occupied"
	TooBig           Problem = "too_big"
	ContainsTarget   Problem = "contains_target"
	WearableInserted Problem = "wearable"
	NotMobile        Problem = "fixed"
)

// Problems lists every Problem key the string table must define.
var Problems = []Problem{
	NotContainer, IntoItself, SolidIntoLiquid, LiquidIntoSolid,
	Occupied, TooBig, ContainsTarget, WearableInserted, NotMobile,
}

// HasProblemAccepting checks, in order: container property, self
// insertion, liquid/solid compatibility, vacancy, size, and finally that
// the item does not already hold the container somewhere inside it.
func (p *Pool) HasProblemAccepting(container, it *Item) Problem {
	switch {
	case !container.Is(types.ItemContainer):
		return NotContainer
	case container.ID == it.ID:
		return IntoItself
	case container.Is(types.ItemLiquidContainer) && !it.Is(types.ItemLiquid):
		return SolidIntoLiquid
	case !container.Is(types.ItemLiquidContainer) && it.Is(types.ItemLiquid):
		return LiquidIntoSolid
	case !container.IsEmpty():
		return Occupied
	case it.Size > container.Capacity:
		return TooBig
	case p.Contains(it, container.ID):
		return ContainsTarget
	}
	return None
}

// HasProblemEmptying fails when the target cannot hold anything.
func (p *Pool) HasProblemEmptying(container *Item) Problem {
	if !container.Is(types.ItemContainer) {
		return NotContainer
	}
	return None
}

// HasProblemInserting fails for items that cannot go inside a container.
func (p *Pool) HasProblemInserting(it *Item) Problem {
	switch {
	case it.Is(types.ItemWearable):
		return WearableInserted
	case !it.Is(types.ItemMobile):
		return NotMobile
	}
	return None
}
