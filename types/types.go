// Package types defines the shared data structures for the stranded engine.
// This package contains type definitions only; the few methods it declares
// are bit tests on flag sets.
package types

// LocationID identifies a location. Zero means "no location".
type LocationID int

// ItemID identifies an item. Zero means "no item".
type ItemID int

// Direction is one of the ten fixed exits of a location.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	SouthWest
	SouthEast
	NorthWest
	Up
	Down
	NumDirections
)

// LocationProps is the property bitmask of a location.
type LocationProps uint32

const (
	LocLight LocationProps = 1 << iota
	LocAir
	LocGravity
	LocCeiling
	LocFloor
	LocLand
	LocHazard
)

// Has reports whether every bit of f is set.
func (p LocationProps) Has(f LocationProps) bool { return p&f == f }

// ItemProps is the property bitmask of an item.
type ItemProps uint32

const (
	ItemContainer ItemProps = 1 << iota
	ItemMobile
	ItemObstruction
	ItemSwitchable
	ItemLight
	ItemAir
	ItemGravity
	ItemAntiHazard
	ItemLiquidContainer
	ItemFragile
	ItemWearable
	ItemLiquid
	ItemEssential
	ItemEdible
	ItemInvisibility
	ItemTreasure
	ItemFactory
	ItemSilent
	ItemLand
	ItemRecipient
)

// Has reports whether every bit of f is set.
func (p ItemProps) Has(f ItemProps) bool { return p&f == f }

// CommandProps is the property bitmask of a command.
type CommandProps uint32

const (
	CmdArgMandatory CommandProps = 1 << iota
	CmdArgOptional
	CmdMovement
	CmdPresent
	CmdInventory
	CmdInvertible
	CmdFree // exempt from the instruction counter and turn checks
)

// Has reports whether every bit of f is set.
func (p CommandProps) Has(f CommandProps) bool { return p&f == f }

// OwnerKind tells which kind of context currently owns an item.
type OwnerKind int

const (
	OwnerNursery OwnerKind = iota // not yet introduced
	OwnerGraveyard                // permanently retired
	OwnerLocation
	OwnerInventory
	OwnerItem
)

// Owner is the single owner context of an item. Only the field matching
// Kind is meaningful.
type Owner struct {
	Kind     OwnerKind
	Location LocationID
	Item     ItemID
}

// Sentinel owners.
var (
	Nursery   = Owner{Kind: OwnerNursery}
	Graveyard = Owner{Kind: OwnerGraveyard}
	Inventory = Owner{Kind: OwnerInventory}
)

// AtLocation returns the owner context "placed at location id".
func AtLocation(id LocationID) Owner { return Owner{Kind: OwnerLocation, Location: id} }

// InItem returns the owner context "inside item id".
func InItem(id ItemID) Owner { return Owner{Kind: OwnerItem, Item: id} }

// Scope constrains where a command argument may be resolved from.
type Scope int

const (
	ScopeAny Scope = iota
	ScopePresent
	ScopeInventory
)

// GameDef holds the parameters section of a data file.
type GameDef struct {
	Title    string
	Intro    string
	Start    LocationID
	Treasury LocationID // 0 when the game keeps no treasury
	Capacity int
	Penalty  int
}

// LocationDef is a parsed location record before cross-referencing.
type LocationDef struct {
	ID          LocationID
	Exits       [NumDirections]LocationID
	Props       LocationProps
	Short       string
	Long        string
	Description string
}

// ItemDef is a parsed item record.
type ItemDef struct {
	ID          ItemID
	Props       ItemProps
	Size        int
	Capacity    int
	Owner       Owner
	Words       []string
	Short       string
	Long        string
	Description string
	Writing     string
}

// CommandDef is a parsed command record.
type CommandDef struct {
	Name    string
	Props   CommandProps
	Handler string
}

// Condition is a predicate that must hold for an event to fire.
type Condition struct {
	Type   string
	Params map[string]any
	Inner  *Condition // for "not"
}

// Effect is a single atomic state mutation applied by an event.
type Effect struct {
	Type   string
	Params map[string]any
}

// EventDef is a scripted trigger compiled from the data file's Lua section.
type EventDef struct {
	ID         string
	Turn       int  // earliest turn the event may fire; 0 = any
	Every      int  // fire on turns divisible by Every; 0 = no period
	Once       bool // spent after firing
	Conditions []Condition
	Effects    []Effect
}

// Response is the outcome of an action: a string-table key plus the
// value substituted for its $0 marker.
type Response struct {
	Key string
	Arg string
}

// Result describes one processed input line.
type Result struct {
	Input     []string
	Command   string
	Argument  string
	Scope     Scope
	Responses []Response
	Events    []string
}
