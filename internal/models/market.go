package models

import "time"

// Product representa un instrumento listado por el exchange (p.ej. BTC-USD)
type Product struct {
	ID              string `json:"id"`
	BaseCurrency    string `json:"base_currency"`
	QuoteCurrency   string `json:"quote_currency"`
	Status          string `json:"status"`
	TradingDisabled bool   `json:"trading_disabled"`
}

// Ticker es la cotización de un instrumento en un momento dado.
// Los valores numéricos se guardan como strings decimales tal como los entrega el exchange.
type Ticker struct {
	Price     string `json:"price"`
	Volume24h string `json:"volume_24h"`
	Bid       string `json:"bid,omitempty"`
	Ask       string `json:"ask,omitempty"`
	Time      string `json:"time,omitempty"`
}

// Snapshot agrupa los tickers de todos los instrumentos capturados juntos
type Snapshot struct {
	CapturedAt time.Time         `json:"captured_at"`
	Data       map[string]Ticker `json:"data"`
}

// Len devuelve la cantidad de instrumentos del snapshot (0 si no existe)
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Data)
}

// CacheDocument es el estado completo que se persiste: los tres snapshots y la lista
// de productos cacheada. Un snapshot nil significa que el slot todavía no existe.
type CacheDocument struct {
	Latest             *Snapshot `json:"latest"`
	ThreeMinutesAgo    *Snapshot `json:"three_minutes_ago"`
	OneHourAgo         *Snapshot `json:"one_hour_ago"`
	Products           []string  `json:"products"`
	ProductsCapturedAt time.Time `json:"products_captured_at"`
}

// CapturedTime devuelve la fecha de captura, o el tiempo cero para snapshots ausentes
func (s *Snapshot) CapturedTime() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.CapturedAt
}

// SlotStatus resume un slot para el endpoint de estado
type SlotStatus struct {
	CapturedAt  *time.Time `json:"captured_at"`
	Instruments int        `json:"instruments"`
}

// CacheStatus resume el documento completo
type CacheStatus struct {
	Latest             SlotStatus `json:"latest"`
	ThreeMinutesAgo    SlotStatus `json:"three_minutes_ago"`
	OneHourAgo         SlotStatus `json:"one_hour_ago"`
	Products           int        `json:"products"`
	ProductsCapturedAt *time.Time `json:"products_captured_at"`
}

func slotStatus(s *Snapshot) SlotStatus {
	if s == nil {
		return SlotStatus{}
	}
	t := s.CapturedAt
	return SlotStatus{CapturedAt: &t, Instruments: len(s.Data)}
}

// Status construye el resumen del documento
func (d *CacheDocument) Status() CacheStatus {
	status := CacheStatus{
		Latest:          slotStatus(d.Latest),
		ThreeMinutesAgo: slotStatus(d.ThreeMinutesAgo),
		OneHourAgo:      slotStatus(d.OneHourAgo),
		Products:        len(d.Products),
	}
	if !d.ProductsCapturedAt.IsZero() {
		t := d.ProductsCapturedAt
		status.ProductsCapturedAt = &t
	}
	return status
}
