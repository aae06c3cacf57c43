package entities

import "sort"

// ZoneAssignment places one element (in one layer, for vertical
// extents) into a zone.
type ZoneAssignment struct {
	Element int
	Layer   int
	Zone    int
}

// ZoneDefinition declares a zone layout for zone-budget analysis.
// Names is optional; zones without an entry stay unnamed.
type ZoneDefinition struct {
	Vertical    bool
	Assignments []ZoneAssignment
	Names       map[int]string
}

// NamedZones returns the zone ids carrying names, ascending, with the
// names in matching order. The engine takes the two lists separately.
func (d ZoneDefinition) NamedZones() ([]int, []string) {
	ids := make([]int, 0, len(d.Names))
	for id := range d.Names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = d.Names[id]
	}
	return ids, names
}

// ZoneList pairs the zone ids defined in a zone-budget file with their
// names, parallel by index.
type ZoneList struct {
	IDs   []int
	Names []string
}

// NameOf returns the name of the zone with the given id, or "" when
// the id is not in the list.
func (l ZoneList) NameOf(id int) string {
	for i, zid := range l.IDs {
		if zid == id {
			return l.Names[i]
		}
	}
	return ""
}
