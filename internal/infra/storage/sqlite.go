package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"equity_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists instrument reference data. Trading state (orders,
// trades, holdings) is intentionally not persisted: a restart resets it.
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance. An empty dataDir
// falls back to the OS user config directory.
func NewStorage(dataDir string) (*Storage, error) {
	dbPath, err := getDBPath(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.Instrument{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath(dataDir string) (string, error) {
	if dataDir != "" {
		return filepath.Join(dataDir, "equity.db"), nil
	}

	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "EquityGo", "data", "equity.db"), nil
}

// Seed inserts catalog entries that are not present yet. Existing rows
// keep their user-driven metadata (favorites, icon paths).
func (s *Storage) Seed(instruments []domain.Instrument) error {
	for _, inst := range instruments {
		existing, err := s.GetInstrument(inst.Symbol)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.UpsertInstrument(&inst); err != nil {
			return err
		}
	}
	return nil
}

// UpsertInstrument creates or updates instrument reference data
func (s *Storage) UpsertInstrument(inst *domain.Instrument) error {
	return s.db.Save(inst).Error
}

// GetInstrument retrieves instrument reference data by symbol
func (s *Storage) GetInstrument(symbol string) (*domain.Instrument, error) {
	var inst domain.Instrument
	err := s.db.First(&inst, "symbol = ?", symbol).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	return &inst, err
}

// GetAllInstruments retrieves the full catalog
func (s *Storage) GetAllInstruments() ([]domain.Instrument, error) {
	var instruments []domain.Instrument
	err := s.db.Order("symbol").Find(&instruments).Error
	return instruments, err
}

// ToggleFavorite toggles the favorite status of an instrument
func (s *Storage) ToggleFavorite(symbol string) (bool, error) {
	var inst domain.Instrument
	if err := s.db.First(&inst, "symbol = ?", symbol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrInstrumentNotFound
		}
		return false, err
	}

	inst.IsFavorite = !inst.IsFavorite
	err := s.db.Save(&inst).Error
	return inst.IsFavorite, err
}
