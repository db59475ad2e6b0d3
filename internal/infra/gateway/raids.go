package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type raidsResult struct {
	Count int               `json:"count" jsonschema:"number of raid bosses returned"`
	Raids []domain.RaidBoss `json:"raids" jsonschema:"matching raid bosses"`
}

type raidsByTierInput struct {
	Tier string `json:"tier,omitempty" jsonschema:"raid tier to filter by, e.g. 5 or mega"`
}

func (g *Gateway) registerRaidTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_raid_bosses",
		Description: "Get the current raid boss rotation across all tiers",
	}, logged(g.logger, "get_raid_bosses", g.handleGetRaidBosses))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_raids_by_tier",
		Description: "Get raid bosses of a specific tier",
	}, logged(g.logger, "get_raids_by_tier", g.handleGetRaidsByTier))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shiny_raids",
		Description: "Get raid bosses that can be shiny",
	}, logged(g.logger, "get_shiny_raids", g.handleGetShinyRaids))
}

func (g *Gateway) raidViews(ctx context.Context, keep func(domain.RaidBoss) bool) (raidsResult, error) {
	raids, err := g.provider.Raids(ctx)
	if err != nil {
		return raidsResult{}, err
	}

	out := make([]domain.RaidBoss, 0, len(raids))
	for _, raid := range raids {
		if keep != nil && !keep(raid) {
			continue
		}
		out = append(out, raid)
	}
	return raidsResult{Count: len(out), Raids: out}, nil
}

func (g *Gateway) handleGetRaidBosses(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, raidsResult, error) {
	result, err := g.raidViews(ctx, nil)
	return nil, result, err
}

func (g *Gateway) handleGetRaidsByTier(ctx context.Context, _ *mcp.CallToolRequest, input raidsByTierInput) (*mcp.CallToolResult, raidsResult, error) {
	if input.Tier == "" {
		return nil, raidsResult{}, domain.E(domain.CodeInvalidArgument, "gateway.get_raids_by_tier", "tier is required", nil)
	}
	result, err := g.raidViews(ctx, func(r domain.RaidBoss) bool { return matchesName(r.Tier, input.Tier) })
	return nil, result, err
}

func (g *Gateway) handleGetShinyRaids(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, raidsResult, error) {
	result, err := g.raidViews(ctx, func(r domain.RaidBoss) bool { return r.CanBeShiny })
	return nil, result, err
}
