package services

import (
	"context"
	"log"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/config"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
)

// InstrumentLister decide qué instrumentos consultar en cada refresh
type InstrumentLister interface {
	ListInstruments(ctx context.Context, doc *models.CacheDocument, now time.Time) []string
}

// Fetcher descarga los tickers de un conjunto de instrumentos, con resultados parciales
type Fetcher interface {
	FetchTickers(ctx context.Context, productIDs []string) map[string]models.Ticker
}

// SnapshotRotator envejece latest hacia los slots históricos y lo reemplaza con datos nuevos
type SnapshotRotator struct {
	lister  InstrumentLister
	fetcher Fetcher
	cfg     config.Movers
}

func NewSnapshotRotator(lister InstrumentLister, fetcher Fetcher, cfg config.Movers) *SnapshotRotator {
	return &SnapshotRotator{lister: lister, fetcher: fetcher, cfg: cfg}
}

// Refresh devuelve el documento actualizado y si hubo cambios. Si latest es más nuevo
// que LatestTTL no hace nada y devuelve el mismo documento.
func (r *SnapshotRotator) Refresh(ctx context.Context, doc models.CacheDocument, now time.Time) (models.CacheDocument, bool) {
	if now.Sub(doc.Latest.CapturedTime()) <= r.cfg.LatestTTL {
		return doc, false
	}

	next := doc
	productIDs := r.lister.ListInstruments(ctx, &next, now)

	// Cada slot histórico avanza sólo cuando su propia ventana ya pasó.
	// Se copia el latest anterior, antes de descargar datos nuevos.
	if now.Sub(next.ThreeMinutesAgo.CapturedTime()) > r.cfg.ThreeMinuteWindow {
		next.ThreeMinutesAgo = next.Latest
	}
	if now.Sub(next.OneHourAgo.CapturedTime()) > r.cfg.OneHourWindow {
		next.OneHourAgo = next.Latest
	}

	tickers := r.fetcher.FetchTickers(ctx, productIDs)
	if len(tickers) > 0 {
		next.Latest = &models.Snapshot{CapturedAt: now, Data: tickers}
	} else {
		log.Printf("No se obtuvo ningún ticker, se conserva el snapshot anterior")
	}

	// Primera ejecución: los slots vacíos arrancan con latest para tener dos puntos comparables
	if next.ThreeMinutesAgo == nil {
		next.ThreeMinutesAgo = next.Latest
	}
	if next.OneHourAgo == nil {
		next.OneHourAgo = next.Latest
	}

	return next, true
}
