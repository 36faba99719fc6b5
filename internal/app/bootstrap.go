package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"equity_go/internal/domain"
	"equity_go/internal/infra"
	"equity_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config      *infra.Config
	Storage     *storage.Storage
	Downloader  *infra.IconDownloader
	Instruments []domain.Instrument
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB, catalog)
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping Equity Go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB) and seed the instrument catalog
	store, err := storage.NewStorage(cfg.Storage.DataDir)
	if err != nil {
		return err
	}
	b.Storage = store
	if err := store.Seed(defaultCatalog); err != nil {
		return err
	}
	slog.Info("✅ Database initialized")

	instruments, err := store.GetAllInstruments()
	if err != nil {
		return err
	}
	b.Instruments = instruments
	slog.Info("✅ Instrument catalog loaded", slog.Int("instruments", len(instruments)))

	// 4. Initialize Icon Downloader (optional)
	if cfg.Assets.IconURLTemplate != "" {
		downloader, err := infra.NewIconDownloader(cfg.Storage.DataDir, cfg.Assets.IconURLTemplate, cfg.Assets.IconSize)
		if err != nil {
			return err
		}
		b.Downloader = downloader
		slog.Info("✅ Icon downloader ready")
	}

	return nil
}

// SyncAssets downloads missing instrument logos in the background and
// records their paths in the reference store.
func (b *Bootstrap) SyncAssets(ctx context.Context) {
	if b.Downloader == nil {
		return
	}
	slog.Info("🔄 Starting asset synchronization...")

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 5) // Limit concurrent downloads

	for _, inst := range b.Instruments {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}: // Acquire
			}
			defer func() { <-semaphore }() // Release

			path, err := b.Downloader.DownloadIcon(symbol)
			if err != nil {
				slog.Warn("Failed to download icon", slog.String("symbol", symbol), slog.Any("error", err))
				return
			}

			inst, err := b.Storage.GetInstrument(symbol)
			if err != nil || inst == nil {
				return
			}
			inst.IconPath = path
			inst.LastSyncedAt = time.Now()
			if err := b.Storage.UpsertInstrument(inst); err != nil {
				slog.Error("Failed to update instrument", slog.String("symbol", symbol), slog.Any("error", err))
			}
		}(inst.Symbol)
	}

	wg.Wait()
	slog.Info("✨ Asset synchronization completed")
}
