package domain

// InstrumentStore defines how instrument reference data is persisted.
type InstrumentStore interface {
	UpsertInstrument(inst *Instrument) error
	GetInstrument(symbol string) (*Instrument, error)
	GetAllInstruments() ([]Instrument, error)
	ToggleFavorite(symbol string) (bool, error)
}

// TradeSink receives executed trades for fan-out (e.g. the websocket hub).
type TradeSink interface {
	Publish(trade Trade)
}
