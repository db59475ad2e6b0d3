package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

const (
	serverName    = "pogomcp"
	serverVersion = "0.2.0"
)

// DataProvider is the facade surface the query tools read from. Accessors may
// serve stale data after a failed reload; only a category that never loaded
// returns an error.
type DataProvider interface {
	Events(ctx context.Context) ([]domain.Event, error)
	Raids(ctx context.Context) ([]domain.RaidBoss, error)
	Research(ctx context.Context) ([]domain.ResearchTask, error)
	Eggs(ctx context.Context) ([]domain.Egg, error)
	RocketLineups(ctx context.Context) ([]domain.RocketTrainer, error)
	PromoCodes(ctx context.Context) ([]domain.PromoCode, error)
	Status() []domain.CategoryStatus
	ClearCache(category string) error
}

// Gateway exposes the query tools over MCP.
type Gateway struct {
	provider DataProvider
	logger   *zap.Logger
	now      func() time.Time
}

func New(provider DataProvider, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		provider: provider,
		logger:   logger.Named("gateway"),
		now:      time.Now,
	}
}

// Run serves MCP over stdio until ctx ends.
func (g *Gateway) Run(ctx context.Context) error {
	return g.buildServer().Run(ctx, &mcp.StdioTransport{})
}

func (g *Gateway) buildServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	g.registerEventTools(server)
	g.registerRaidTools(server)
	g.registerResearchTools(server)
	g.registerEggTools(server)
	g.registerRocketTools(server)
	g.registerPromoTools(server)
	g.registerCrossCuttingTools(server)
	g.registerDiagnosticTools(server)
	return server
}

type noArgs struct{}

// logged wraps a tool handler with per-invocation logging.
func logged[I, O any](logger *zap.Logger, name string, handler mcp.ToolHandlerFor[I, O]) mcp.ToolHandlerFor[I, O] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input I) (*mcp.CallToolResult, O, error) {
		invocationID := uuid.NewString()
		start := time.Now()
		result, output, err := handler(ctx, req, input)

		fields := []zap.Field{
			zap.String("tool", name),
			zap.String("invocation", invocationID),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Warn("tool call failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("tool call", fields...)
		}
		return result, output, err
	}
}

// matchesName does the case-insensitive substring match every search tool
// uses.
func matchesName(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
