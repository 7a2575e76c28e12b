// Package world holds the fixed-topology location graph.
package world

import (
	"errors"
	"fmt"

	"github.com/nathoo/stranded/types"
)

// ErrNotFound is returned by Get for an unknown location id.
var ErrNotFound = errors.New("location not found")

// LinkError reports a directional exit whose target does not exist.
type LinkError struct {
	From   types.LocationID
	Dir    types.Direction
	Target types.LocationID
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("location %d exit %s points to undefined location %d",
		e.From, DirectionName(e.Dir), e.Target)
}

// Location is a node of the graph. Exits are resolved at build time and
// never change afterwards.
type Location struct {
	ID          types.LocationID
	Props       types.LocationProps
	Short       string
	Long        string
	Description string

	exits [types.NumDirections]*Location
}

// Exit returns the id of the location reached by going dir.
func (l *Location) Exit(dir types.Direction) (types.LocationID, bool) {
	if dir < 0 || dir >= types.NumDirections || l.exits[dir] == nil {
		return 0, false
	}
	return l.exits[dir].ID, true
}

// Exits returns the directions that lead somewhere, in direction order.
func (l *Location) Exits() []types.Direction {
	var dirs []types.Direction
	for d, target := range l.exits {
		if target != nil {
			dirs = append(dirs, types.Direction(d))
		}
	}
	return dirs
}

// Graph is the frozen set of locations.
type Graph struct {
	locations map[types.LocationID]*Location
	order     []types.LocationID
}

// Build inserts every record, then resolves the directional fields in a
// second pass. Any unresolved exit aborts the build.
func Build(defs []types.LocationDef) (*Graph, error) {
	g := &Graph{locations: make(map[types.LocationID]*Location, len(defs))}

	for _, def := range defs {
		if def.ID <= 0 {
			return nil, fmt.Errorf("invalid location id %d", def.ID)
		}
		if _, dup := g.locations[def.ID]; dup {
			return nil, fmt.Errorf("duplicate location id %d", def.ID)
		}
		g.locations[def.ID] = &Location{
			ID:          def.ID,
			Props:       def.Props,
			Short:       def.Short,
			Long:        def.Long,
			Description: def.Description,
		}
		g.order = append(g.order, def.ID)
	}

	for _, def := range defs {
		loc := g.locations[def.ID]
		for d, target := range def.Exits {
			if target == 0 {
				continue
			}
			dest, ok := g.locations[target]
			if !ok {
				return nil, &LinkError{From: def.ID, Dir: types.Direction(d), Target: target}
			}
			loc.exits[d] = dest
		}
	}

	return g, nil
}

// Get returns the location with the given id.
func (g *Graph) Get(id types.LocationID) (*Location, error) {
	loc, ok := g.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return loc, nil
}

// Has reports whether id names a location.
func (g *Graph) Has(id types.LocationID) bool {
	_, ok := g.locations[id]
	return ok
}

// IDs returns all location ids in load order.
func (g *Graph) IDs() []types.LocationID {
	return append([]types.LocationID(nil), g.order...)
}

// Len returns the number of locations.
func (g *Graph) Len() int { return len(g.order) }

// Nearest performs a breadth-first search from start, following exits in
// direction order, and returns the first location accepted by match.
// The start location itself is considered first.
func (g *Graph) Nearest(start types.LocationID, match func(*Location) bool) (types.LocationID, bool) {
	first, ok := g.locations[start]
	if !ok {
		return 0, false
	}
	seen := map[types.LocationID]bool{start: true}
	queue := []*Location{first}
	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]
		if match(loc) {
			return loc.ID, true
		}
		for _, next := range loc.exits {
			if next != nil && !seen[next.ID] {
				seen[next.ID] = true
				queue = append(queue, next)
			}
		}
	}
	return 0, false
}
