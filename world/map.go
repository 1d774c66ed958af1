package world

// ResourceMap is the external map-generation collaborator the core
// consumes: the core never generates or owns tiles itself, only
// queries one. The extractor uses IsOre/IsTree/IsCoal to decide what
// resource a tile yields.
type ResourceMap interface {
	IsOre(pos GridCoord) bool
	IsTree(pos GridCoord) bool
	IsCoal(pos GridCoord) bool
	IsWithinBounds(pos GridCoord) bool
	ResourceAmountAt(pos GridCoord) int
}

// GridResourceMap is a minimal reference ResourceMap backed by plain
// per-tile tags, useful for tests and for cmd/simconsole fixtures that
// don't need a full procedural generator.
type GridResourceMap struct {
	width, height int
	tiles         map[GridCoord]tileInfo
}

type tileInfo struct {
	ore, tree, coal bool
	amount          int
}

// NewGridResourceMap returns an empty map of the given dimensions; every
// tile starts with no resource.
func NewGridResourceMap(width, height int) *GridResourceMap {
	return &GridResourceMap{width: width, height: height, tiles: make(map[GridCoord]tileInfo)}
}

// SetOre marks pos as an ore tile with the given extractable amount.
func (m *GridResourceMap) SetOre(pos GridCoord, amount int) {
	m.tiles[pos] = tileInfo{ore: true, amount: amount}
}

// SetTree marks pos as a tree tile.
func (m *GridResourceMap) SetTree(pos GridCoord) {
	m.tiles[pos] = tileInfo{tree: true, amount: 1}
}

// SetCoal marks pos as a coal tile with the given extractable amount.
func (m *GridResourceMap) SetCoal(pos GridCoord, amount int) {
	m.tiles[pos] = tileInfo{coal: true, amount: amount}
}

func (m *GridResourceMap) IsOre(pos GridCoord) bool  { return m.tiles[pos].ore }
func (m *GridResourceMap) IsTree(pos GridCoord) bool { return m.tiles[pos].tree }
func (m *GridResourceMap) IsCoal(pos GridCoord) bool { return m.tiles[pos].coal }

func (m *GridResourceMap) IsWithinBounds(pos GridCoord) bool {
	return pos.X >= 0 && pos.X < m.width && pos.Y >= 0 && pos.Y < m.height
}

func (m *GridResourceMap) ResourceAmountAt(pos GridCoord) int {
	return m.tiles[pos].amount
}
