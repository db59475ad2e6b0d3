package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pogomcp/internal/domain"
)

// Store reads category snapshot files from the collector's output directory.
// The directory is read-only from this process; only the collector writes it.
type Store struct {
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:    dir,
		logger: logger.Named("snapshot_store"),
	}
}

// Dir returns the snapshot directory path.
func (s *Store) Dir() string {
	return s.dir
}

type decodeFunc func(data []byte) (items any, count int, err error)

func decodeInto[T any](data []byte) (any, int, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, err
	}
	return items, len(items), nil
}

// decoders is fixed alongside the category set. Each file must hold a JSON
// array of that category's records.
var decoders = map[domain.Category]decodeFunc{
	domain.CategoryEvents:        decodeInto[domain.Event],
	domain.CategoryRaids:         decodeInto[domain.RaidBoss],
	domain.CategoryResearch:      decodeInto[domain.ResearchTask],
	domain.CategoryEggs:          decodeInto[domain.Egg],
	domain.CategoryRocketLineups: decodeInto[domain.RocketTrainer],
	domain.CategoryPromoCodes:    decodeInto[domain.PromoCode],
}

// Load reads and decodes one category's snapshot file. Missing files map to
// CodeNotFound, undecodable contents to ErrMalformedSnapshot; the caller
// decides whether either is fatal.
func (s *Store) Load(ctx context.Context, category domain.Category) (domain.Snapshot, error) {
	decode, ok := decoders[category]
	if !ok {
		return domain.Snapshot{}, domain.E(domain.CodeInvalidArgument, "snapshot.load", "unknown category "+category.String(), domain.ErrInvalidCategory)
	}
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, domain.Wrap(domain.CodeCanceled, "snapshot.load", err)
	}

	path := filepath.Join(s.dir, category.Filename())
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Snapshot{}, domain.E(domain.CodeNotFound, "snapshot.load", "snapshot file missing: "+path, err)
		}
		return domain.Snapshot{}, domain.E(domain.CodeUnavailable, "snapshot.load", "read "+path, err)
	}

	items, count, err := decode(data)
	if err != nil {
		s.logger.Error("snapshot file does not decode",
			zap.String("category", category.String()),
			zap.String("file", path),
			zap.Error(err),
		)
		return domain.Snapshot{}, domain.E(domain.CodeInternal, "snapshot.load",
			fmt.Sprintf("decode %s: %v", path, err), domain.ErrMalformedSnapshot)
	}

	s.logger.Debug("snapshot file loaded",
		zap.String("category", category.String()),
		zap.Int("items", count),
	)
	return domain.Snapshot{Category: category, Items: items, Count: count}, nil
}
