package mcp

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorpath/pkg/engine"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

func NewMCPServer(eng *engine.Engine) *mcp.Server {
	service := NewService(eng)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "kektorpath",
		Version: Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "find_path",
		Description: "Find the cheapest walk between two cells of the dungeon map. Diagonal steps cost 1.41.",
	}, service.FindPath)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "near_cells",
		Description: "List every cell reachable from a cell within a movement budget, cheapest first.",
	}, service.NearCells)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "set_doors",
		Description: "Open or close every door on the map.",
	}, service.SetDoors)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "show_map",
		Description: "Render the dungeon map as text, optionally marking a path.",
	}, service.ShowMap)

	return s
}

// NewHTTPHandler serves the tools over the streamable HTTP transport.
func NewHTTPHandler(eng *engine.Engine) http.Handler {
	s := NewMCPServer(eng)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s }, nil)
}
