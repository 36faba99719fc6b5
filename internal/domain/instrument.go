package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument represents reference data for a tradable security.
// The trading path never mutates it; only the asset sync touches the
// icon metadata and the favorite flag is user-driven.
type Instrument struct {
	Symbol          string          `gorm:"primaryKey" json:"symbol"`
	Exchange        string          `json:"exchange"`
	InstrumentType  string          `json:"instrumentType"`
	LastTradedPrice decimal.Decimal `gorm:"type:numeric" json:"lastTradedPrice"`
	IsActive        bool            `json:"is_active" gorm:"index"`
	IsFavorite      bool            `json:"is_favorite" gorm:"index"`
	IconPath        string          `json:"icon_path,omitempty"`
	LastSyncedAt    time.Time       `json:"last_synced_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
