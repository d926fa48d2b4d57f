package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// boolArg extracts a boolean argument from a tool request, returning
// defaultVal if the key is missing or not a bool.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}
