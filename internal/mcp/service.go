package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorpath/pkg/dungeon"
	"github.com/sanonone/kektorpath/pkg/engine"
)

type Service struct {
	engine *engine.Engine
}

func NewService(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// --- Tool Handlers ---

func (s *Service) FindPath(ctx context.Context, req *mcp.CallToolRequest, args FindPathArgs) (*mcp.CallToolResult, FindPathResult, error) {
	from := dungeon.Cell{X: args.FromX, Y: args.FromY}
	to := dungeon.Cell{X: args.ToX, Y: args.ToY}

	res, err := s.engine.FindPath(from, to)
	if err != nil {
		return nil, FindPathResult{}, err
	}
	return nil, FindPathResult{
		Status:   res.Status.String(),
		Cost:     res.Cost,
		Path:     toPairs(res.Path),
		Checksum: res.Checksum,
		Expanded: res.Expanded,
	}, nil
}

func (s *Service) NearCells(ctx context.Context, req *mcp.CallToolRequest, args NearCellsArgs) (*mcp.CallToolResult, NearCellsResult, error) {
	near, err := s.engine.Near(dungeon.Cell{X: args.X, Y: args.Y}, args.MaxCost)
	if err != nil {
		return nil, NearCellsResult{}, err
	}
	out := NearCellsResult{Cells: make([]NearCell, len(near))}
	for i, n := range near {
		out.Cells[i] = NearCell{X: n.Cell.X, Y: n.Cell.Y, Cost: n.Cost}
	}
	return nil, out, nil
}

func (s *Service) SetDoors(ctx context.Context, req *mcp.CallToolRequest, args SetDoorsArgs) (*mcp.CallToolResult, SetDoorsResult, error) {
	s.engine.SetDoors(args.Open)
	return nil, SetDoorsResult{DoorsOpen: s.engine.DoorsOpen()}, nil
}

func (s *Service) ShowMap(ctx context.Context, req *mcp.CallToolRequest, args ShowMapArgs) (*mcp.CallToolResult, ShowMapResult, error) {
	path := make([]dungeon.Cell, len(args.Path))
	for i, p := range args.Path {
		path[i] = dungeon.Cell{X: p[0], Y: p[1]}
	}
	return nil, ShowMapResult{
		Map:       s.engine.Render(path),
		DoorsOpen: s.engine.DoorsOpen(),
	}, nil
}

func toPairs(path []dungeon.Cell) [][2]int {
	if path == nil {
		return nil
	}
	out := make([][2]int, len(path))
	for i, c := range path {
		out[i] = [2]int{c.X, c.Y}
	}
	return out
}
