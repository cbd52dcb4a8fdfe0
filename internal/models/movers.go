package models

import "github.com/shopspring/decimal"

// ChangeRecord es el cambio porcentual de un instrumento entre latest y un snapshot histórico.
// Se calcula en cada lectura y nunca se persiste.
type ChangeRecord struct {
	ProductID     string
	Symbol        string
	PriceNow      decimal.Decimal
	PercentChange decimal.Decimal
	Volume24h     decimal.Decimal
}

// MoverRow es una fila de las tablas de gainers y losers
type MoverRow struct {
	Rank          int    `json:"rank"`
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`
	Tag           string `json:"tag"`
	PercentChange string `json:"percent_change"`
}

// BannerItem es un elemento de los banners de precio y volumen
type BannerItem struct {
	Symbol        string `json:"symbol"`
	PercentChange string `json:"percent_change"`
}

// MoversResponse contiene las cuatro vistas que se entregan al frontend
type MoversResponse struct {
	Gainers      []MoverRow   `json:"gainers"`
	Losers       []MoverRow   `json:"losers"`
	PriceBanner  []BannerItem `json:"price_banner"`
	VolumeBanner []BannerItem `json:"volume_banner"`
}

const (
	TagStrong   = "strong"
	TagModerate = "moderate"
)
