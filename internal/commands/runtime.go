package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fragmede/hackerterm/internal/api"
	"github.com/fragmede/hackerterm/internal/config"
	"github.com/fragmede/hackerterm/internal/history"
	"github.com/fragmede/hackerterm/internal/render"
	"github.com/fragmede/hackerterm/internal/thread"
)

// Setup loads the config and wires the API client, resolver and history
// store. The returned closer releases the history database.
func Setup(flags *Flags) (*Runtime, func(), error) {
	closer := func() {}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, closer, fmt.Errorf("load config: %w", err)
	}
	if flags.Limit > 0 {
		cfg.StoryLimit = flags.Limit
	}

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithMaxConcurrent(cfg.MaxConcurrent),
	)
	resolver := thread.NewResolver(client, cfg.MaxConcurrent,
		thread.WithSanitizer(render.Sanitizer{Anchors: render.ParseAnchorMode(cfg.AnchorMode)}),
	)

	rt := &Runtime{
		Config:   cfg,
		Client:   client,
		Resolver: resolver,
		History:  history.Disabled{},
	}

	if cfg.History.Enabled {
		db, err := openHistory(cfg.History)
		if err != nil {
			// Read marks are cosmetic; run without them.
			log.Warn().Err(err).Str("path", cfg.History.Path).Msg("history disabled")
		} else {
			rt.History = db
			closer = func() {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("closing history")
				}
			}
		}
	}

	log.Debug().
		Str("api", cfg.APIBaseURL).
		Int("limit", cfg.StoryLimit).
		Int("max_concurrent", cfg.MaxConcurrent).
		Str("anchor_mode", cfg.AnchorMode).
		Msg("runtime ready")

	return rt, closer, nil
}

func openHistory(hc config.HistoryConfig) (*history.DB, error) {
	if err := os.MkdirAll(filepath.Dir(hc.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := history.Open(hc.Path)
	if err != nil {
		return nil, err
	}

	pruned, err := db.Prune(time.Now().Add(-hc.Retention))
	if err != nil {
		log.Warn().Err(err).Msg("pruning history")
	} else if pruned > 0 {
		log.Debug().Int64("rows", pruned).Msg("pruned history")
	}
	return db, nil
}
