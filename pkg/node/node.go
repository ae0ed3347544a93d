// Package node assigns the dense row/column indices that the MNA matrices
// are built against. A Collection is built fresh for every analysis: it
// never outlives the matrices it indexes.
package node

import "sort"

// Type distinguishes a voltage unknown (a circuit node potential) from a
// current unknown (the extra row/column a G2 device introduces).
type Type int

const (
	Voltage Type = iota
	Current
)

// GroundName is the reserved node label that never receives an index.
const GroundName = "0"

// Node is one row of the MNA system.
type Node struct {
	Name string
	Kind Type
	Idx  int
}

// Stamper is the minimal subset of device.Stamp a Collection needs to
// enumerate terminals and current-unknown names. It is satisfied by
// device.Stamp; declared narrowly here so this package does not import the
// device package (which itself depends on node for its Stamp signatures).
type Stamper interface {
	Name() string
	Nodes() []string
	Group() int
	GroupStartup() int
}

// Group tags, mirrored from package device to avoid an import cycle.
const (
	G1 = iota
	G2
)

// Collection is the ordered name -> Node map used throughout one analysis.
type Collection struct {
	byName map[string]Node
	names  []string // insertion order: voltage nodes first, then current unknowns
}

// Len returns the number of unknowns (the matrix dimension N).
func (c *Collection) Len() int { return len(c.names) }

// GetIdx returns the row index for name, or (0, false) if name is ground or
// unknown.
func (c *Collection) GetIdx(name string) (int, bool) {
	if name == GroundName {
		return 0, false
	}
	n, ok := c.byName[name]
	if !ok {
		return 0, false
	}
	return n.Idx, true
}

// Get returns the full Node record for name.
func (c *Collection) Get(name string) (Node, bool) {
	n, ok := c.byName[name]
	return n, ok
}

// Names returns node names in index order.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// VoltageNames returns the subset of Names that are Voltage-kind, still in
// index order.
func (c *Collection) VoltageNames() []string {
	var out []string
	for _, name := range c.names {
		if c.byName[name].Kind == Voltage {
			out = append(out, name)
		}
	}
	return out
}

func newCollectionFromVoltageAndCurrentNames(vNames, iNames []string) *Collection {
	c := &Collection{byName: make(map[string]Node, len(vNames)+len(iNames))}
	idx := 0
	for _, name := range vNames {
		c.byName[name] = Node{Name: name, Kind: Voltage, Idx: idx}
		c.names = append(c.names, name)
		idx++
	}
	for _, name := range iNames {
		c.byName[name] = Node{Name: name, Kind: Current, Idx: idx}
		c.names = append(c.names, name)
		idx++
	}
	return c
}

func collectVoltageNames(elems []Stamper) []string {
	seen := make(map[string]struct{})
	for _, e := range elems {
		for _, n := range e.Nodes() {
			if n == GroundName {
				continue
			}
			seen[n] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FromElems builds the normal-regime Collection: every voltage node
// (name-sorted), then one current row per G2 device (name-sorted).
func FromElems(elems []Stamper) *Collection {
	vNames := collectVoltageNames(elems)

	var iNames []string
	for _, e := range elems {
		if e.Group() == G2 {
			iNames = append(iNames, e.Name())
		}
	}
	sort.Strings(iNames)

	return newCollectionFromVoltageAndCurrentNames(vNames, iNames)
}

// FromStartupElems builds the OP "startup" regime Collection used for the
// initial operating point: inductors (G1 normally, G2 at startup) get an
// additional current row appended after the normal build.
func FromStartupElems(elems []Stamper) *Collection {
	vNames := collectVoltageNames(elems)

	var iNames []string
	for _, e := range elems {
		if e.Group() == G2 {
			iNames = append(iNames, e.Name())
		}
	}
	sort.Strings(iNames)

	var startupNames []string
	for _, e := range elems {
		if e.Group() == G1 && e.GroupStartup() == G2 {
			startupNames = append(startupNames, e.Name())
		}
	}
	sort.Strings(startupNames)

	iNames = append(iNames, startupNames...)

	return newCollectionFromVoltageAndCurrentNames(vNames, iNames)
}
