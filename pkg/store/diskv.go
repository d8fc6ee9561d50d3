package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"

	"tableflip.dev/mistakes/pkg/ledger"
)

// StateKey is the diskv key, and file name, of the persisted ledger.
const StateKey = "data.json"

// Persistence defines the persistence contract for the ledger state.
type Persistence interface {
	Load(ctx context.Context) (*ledger.State, error)
	Save(ctx context.Context, s *ledger.State) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		TempDir:           filepath.Join(basePath, ".tmp"),
		// No cache: another process may rewrite the file while we watch it.
		CacheSizeMax: 0,
	}), basePath: basePath, today: ledger.Today}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	today    func() ledger.Day
}

// Load reads the ledger, defaulting missing fields. A missing file yields
// the default state.
func (p *persistence) Load(_ context.Context) (*ledger.State, error) {
	today := p.today()
	val, err := p.d.Read(StateKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", p.statePath()).Msg("no saved state, using defaults")
			return ledger.New(today), nil
		}
		return nil, fmt.Errorf("store: read state: %w", err)
	}

	s := &ledger.State{}
	if len(val) > 0 {
		if err := json.Unmarshal(val, s); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", p.statePath(), err)
		}
	}
	s.Normalize(today)
	log.Debug().Int("flags", s.Len()).Str("path", p.statePath()).Msg("loaded state")
	return s, nil
}

// Save writes the whole ledger.
func (p *persistence) Save(_ context.Context, s *ledger.State) error {
	if s == nil {
		return errors.New("store: nil state")
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, ".tmp"), 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	if err := p.d.Write(StateKey, data); err != nil {
		return fmt.Errorf("store: write state: %w", err)
	}
	log.Debug().Int("flags", s.Len()).Str("path", p.statePath()).Msg("saved state")
	return nil
}

func (p *persistence) statePath() string {
	return filepath.Join(p.basePath, StateKey)
}

// keyToPathTransform keeps every key at the top of the base path.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
