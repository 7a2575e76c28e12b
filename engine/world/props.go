package world

import "github.com/nathoo/stranded/types"

var propNames = map[string]types.LocationProps{
	"light":   types.LocLight,
	"air":     types.LocAir,
	"gravity": types.LocGravity,
	"ceiling": types.LocCeiling,
	"floor":   types.LocFloor,
	"land":    types.LocLand,
	"hazard":  types.LocHazard,
}

// ParseProp maps a lowercase property name such as "air" to its flag.
func ParseProp(name string) (types.LocationProps, bool) {
	p, ok := propNames[name]
	return p, ok
}
