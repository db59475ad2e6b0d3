package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"pogomcp/internal/domain"
)

type promosResult struct {
	Count int                `json:"count" jsonschema:"number of promo codes returned"`
	Codes []domain.PromoCode `json:"codes" jsonschema:"matching promo codes"`
}

func (g *Gateway) registerPromoTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_promo_codes",
		Description: "Get all known promo codes, expired ones included",
	}, logged(g.logger, "get_promo_codes", g.handleGetPromoCodes))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_active_promo_codes",
		Description: "Get promo codes that have not expired",
	}, logged(g.logger, "get_active_promo_codes", g.handleGetActivePromoCodes))
}

func (g *Gateway) handleGetPromoCodes(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, promosResult, error) {
	codes, err := g.provider.PromoCodes(ctx)
	if err != nil {
		return nil, promosResult{}, err
	}
	return nil, promosResult{Count: len(codes), Codes: codes}, nil
}

func (g *Gateway) handleGetActivePromoCodes(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, promosResult, error) {
	codes, err := g.provider.PromoCodes(ctx)
	if err != nil {
		return nil, promosResult{}, err
	}

	now := g.now()
	active := make([]domain.PromoCode, 0, len(codes))
	for _, code := range codes {
		if code.ExpiredAt(now) {
			continue
		}
		active = append(active, code)
	}
	return nil, promosResult{Count: len(active), Codes: active}, nil
}
