// Package bootstrap wires the browser's startup sequence: storage
// directory resolution, store warm-up, crash forensics, and the shared
// WebKit stack.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Zeal1001/casement/internal/filtering/cosmetic"
	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/infrastructure/persistence/jsonfile"
	"github.com/Zeal1001/casement/internal/logging"
	"github.com/Zeal1001/casement/internal/ui/theme"
)

// ParallelInitInput holds the input for RunParallelInit.
type ParallelInitInput struct {
	Ctx    context.Context
	Config *config.Config
}

// ParallelInitResult holds everything the parallel phase produced.
type ParallelInitResult struct {
	DataDir  string
	CacheDir string

	Theme     *theme.Manager
	Injector  *cosmetic.Injector
	History   *jsonfile.HistoryRepo
	Bookmarks *jsonfile.BookmarkRepo
	Sessions  *jsonfile.SessionRepo

	Duration time.Duration
}

// RunParallelInit resolves the storage directories, then warms the JSON
// stores, validates the ad-filter script, and builds the theme manager
// concurrently. Only directory resolution is fatal: the browser can run
// with an empty history, without bookmarks, and without filtering, so
// those tasks degrade with a warning instead of aborting startup.
func RunParallelInit(input ParallelInitInput) (*ParallelInitResult, error) {
	ctx := input.Ctx
	log := logging.FromContext(ctx)
	start := time.Now()

	dataDir, cacheDir, err := resolveStorageDirs()
	if err != nil {
		return nil, fmt.Errorf("resolve directories: %w", err)
	}

	result := &ParallelInitResult{
		DataDir:   dataDir,
		CacheDir:  cacheDir,
		Injector:  cosmetic.NewInjector(nil),
		History:   jsonfile.NewHistoryRepository(dataDir),
		Bookmarks: jsonfile.NewBookmarkRepository(dataDir),
		Sessions:  jsonfile.NewSessionRepository(dataDir),
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if warmErr := result.History.Warm(egCtx); warmErr != nil {
			log.Warn().Err(warmErr).Msg("history store unavailable, starting empty")
		}
		return nil
	})

	eg.Go(func() error {
		if warmErr := result.Bookmarks.Warm(egCtx); warmErr != nil {
			log.Warn().Err(warmErr).Msg("bookmark store unavailable, starting empty")
		}
		return nil
	})

	eg.Go(func() error {
		if valErr := result.Injector.Validate(); valErr != nil {
			log.Warn().Err(valErr).Msg("ad-filter script failed validation")
		}
		return nil
	})

	eg.Go(func() error {
		result.Theme = theme.NewManager(egCtx, input.Config)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// resolveStorageDirs resolves the data directory and creates the WebKit
// cache directory under the state dir. The data dir itself is created
// by config.EnsureDirectories during config load.
func resolveStorageDirs() (dataDir, cacheDir string, err error) {
	const cacheDirPerm = 0o755
	dataDir, err = config.GetDataDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve data directory: %w", err)
	}
	stateDir, err := config.GetStateDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve state directory: %w", err)
	}
	cacheDir = filepath.Join(stateDir, "webkit-cache")
	if mkErr := os.MkdirAll(cacheDir, cacheDirPerm); mkErr != nil {
		return "", "", fmt.Errorf("create cache directory %s: %w", cacheDir, mkErr)
	}
	return dataDir, cacheDir, nil
}
