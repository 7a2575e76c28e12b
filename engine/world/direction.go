package world

import "github.com/nathoo/stranded/types"

var directionNames = [types.NumDirections]string{
	types.North:     "north",
	types.South:     "south",
	types.East:      "east",
	types.West:      "west",
	types.NorthEast: "northeast",
	types.SouthWest: "southwest",
	types.SouthEast: "southeast",
	types.NorthWest: "northwest",
	types.Up:        "up",
	types.Down:      "down",
}

var directionAbbrevs = map[string]types.Direction{
	"n":  types.North,
	"s":  types.South,
	"e":  types.East,
	"w":  types.West,
	"ne": types.NorthEast,
	"sw": types.SouthWest,
	"se": types.SouthEast,
	"nw": types.NorthWest,
	"u":  types.Up,
	"d":  types.Down,
}

// DirectionName returns the full lowercase name of dir.
func DirectionName(dir types.Direction) string {
	if dir < 0 || dir >= types.NumDirections {
		return "nowhere"
	}
	return directionNames[dir]
}

// ParseDirection maps a full or abbreviated direction name to a Direction.
func ParseDirection(name string) (types.Direction, bool) {
	if d, ok := directionAbbrevs[name]; ok {
		return d, true
	}
	for d, n := range directionNames {
		if n == name {
			return types.Direction(d), true
		}
	}
	return 0, false
}
