package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/coverings.space/internal/mcp/domain"
)

func registerCoveringTools(mcpServer *mcp.Server, svc domain.Service) {
	mcp.AddTool(mcpServer, domain.CoveringComputeTool(), domain.CoveringComputeHandler(svc))
	mcp.AddTool(mcpServer, domain.IntermediateCoveringTool(), domain.IntermediateCoveringHandler(svc))
}

func registerClassTools(mcpServer *mcp.Server, svc domain.Service) {
	mcp.AddTool(mcpServer, domain.RationalClassTool(), domain.RationalClassHandler(svc))
	mcp.AddTool(mcpServer, domain.BranchValueTypesTool(), domain.BranchValueTypesHandler(svc))
}

func registerTowerTools(mcpServer *mcp.Server, svc domain.Service) {
	mcp.AddTool(mcpServer, domain.TowerListTool(), domain.TowerListHandler(svc))
	mcp.AddTool(mcpServer, domain.TowerRowsTool(), domain.TowerRowsHandler(svc))
}

// registerTowerResources registers readable tower MCP resources.
func registerTowerResources(mcpServer *mcp.Server, svc domain.Service) {
	mcpServer.AddResource(domain.TowerListResource(), domain.TowerListResourceHandler(svc))
}
