package mcp

// --- Tool Arguments ---

type FindPathArgs struct {
	FromX int `json:"from_x" jsonschema:"Column of the start cell"`
	FromY int `json:"from_y" jsonschema:"Row of the start cell"`
	ToX   int `json:"to_x" jsonschema:"Column of the goal cell"`
	ToY   int `json:"to_y" jsonschema:"Row of the goal cell"`
}

type FindPathResult struct {
	Status   string   `json:"status"`
	Cost     float64  `json:"cost"`
	Path     [][2]int `json:"path,omitempty"`
	Checksum uint64   `json:"checksum"`
	Expanded int      `json:"expanded"`
}

type NearCellsArgs struct {
	X       int     `json:"x" jsonschema:"Column of the origin cell"`
	Y       int     `json:"y" jsonschema:"Row of the origin cell"`
	MaxCost float64 `json:"max_cost" jsonschema:"Movement budget; one straight step costs 1"`
}

type NearCell struct {
	X    int     `json:"x"`
	Y    int     `json:"y"`
	Cost float64 `json:"cost"`
}

type NearCellsResult struct {
	Cells []NearCell `json:"cells"`
}

type SetDoorsArgs struct {
	Open bool `json:"open" jsonschema:"True opens every door, false closes them"`
}

type SetDoorsResult struct {
	DoorsOpen bool `json:"doors_open"`
}

type ShowMapArgs struct {
	Path [][2]int `json:"path,omitempty" jsonschema:"Optional list of [x, y] cells to mark with '*'"`
}

type ShowMapResult struct {
	Map       string `json:"map"`
	DoorsOpen bool   `json:"doors_open"`
}
