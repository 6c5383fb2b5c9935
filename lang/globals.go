package lang

// GlobalCellID addresses a Cell. It is the stable "address" spec §3
// promises: once allocated for a name, the same ID (and *Cell) is
// returned for every subsequent reference to that name.
type GlobalCellID int32

// Cell is a Value with a stable address.
type Cell struct {
	Value Value
}

// Globals is the Global Value Store (spec §3, §6): stable-address cells
// for named globals, with name interning. Reading an undefined name
// yields a Nil-valued cell allocated lazily, matching "cell_for_name"
// and "get" both never failing.
type Globals struct {
	cells  []*Cell
	byName map[string]GlobalCellID
}

func NewGlobals() *Globals {
	return &Globals{byName: make(map[string]GlobalCellID)}
}

// CellForName returns the stable cell id for name, allocating a
// Nil-valued cell on first reference.
func (g *Globals) CellForName(name string) GlobalCellID {
	if id, ok := g.byName[name]; ok {
		return id
	}
	id := GlobalCellID(len(g.cells))
	g.cells = append(g.cells, &Cell{})
	g.byName[name] = id
	return id
}

// ValueOfCell reads the value stored in the cell addressed by id.
func (g *Globals) ValueOfCell(id GlobalCellID) Value {
	return g.cells[id].Value
}

// SetCell writes the value stored in the cell addressed by id.
func (g *Globals) SetCell(id GlobalCellID, v Value) {
	g.cells[id].Value = v
}

// Get reads a global by name without pre-resolving its cell id; used by
// the tree-walking evaluator and by native functions.
func (g *Globals) Get(name string) Value {
	return g.ValueOfCell(g.CellForName(name))
}

// Set writes a global by name, allocating its cell if this is the first
// reference.
func (g *Globals) Set(name string, v Value) {
	g.SetCell(g.CellForName(name), v)
}
