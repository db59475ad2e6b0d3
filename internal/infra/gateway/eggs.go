package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type eggsResult struct {
	Count int          `json:"count" jsonschema:"number of hatches returned"`
	Eggs  []domain.Egg `json:"eggs" jsonschema:"matching egg pool entries"`
}

type eggsByDistanceInput struct {
	Distance string `json:"distance" jsonschema:"egg distance to filter by, e.g. 2 km or 10 km"`
}

func (g *Gateway) registerEggTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_egg_pool",
		Description: "Get every Pokemon currently hatching from eggs",
	}, logged(g.logger, "get_egg_pool", g.handleGetEggPool))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_eggs_by_distance",
		Description: "Get the hatch pool for one egg distance",
	}, logged(g.logger, "get_eggs_by_distance", g.handleGetEggsByDistance))
}

func (g *Gateway) handleGetEggPool(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, eggsResult, error) {
	eggs, err := g.provider.Eggs(ctx)
	if err != nil {
		return nil, eggsResult{}, err
	}
	return nil, eggsResult{Count: len(eggs), Eggs: eggs}, nil
}

func (g *Gateway) handleGetEggsByDistance(ctx context.Context, _ *mcp.CallToolRequest, input eggsByDistanceInput) (*mcp.CallToolResult, eggsResult, error) {
	if input.Distance == "" {
		return nil, eggsResult{}, domain.E(domain.CodeInvalidArgument, "gateway.get_eggs_by_distance", "distance is required", nil)
	}

	eggs, err := g.provider.Eggs(ctx)
	if err != nil {
		return nil, eggsResult{}, err
	}

	matches := make([]domain.Egg, 0)
	for _, egg := range eggs {
		if matchesName(egg.EggType, input.Distance) {
			matches = append(matches, egg)
		}
	}
	return nil, eggsResult{Count: len(matches), Eggs: matches}, nil
}
