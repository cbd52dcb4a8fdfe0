package services

import (
	"context"
	"log"
	"sync"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
	"golang.org/x/sync/errgroup"
)

// TickerSource obtiene el ticker de un solo producto.
// Cada llamada aplica su propio timeout.
type TickerSource interface {
	GetTicker(ctx context.Context, productID string) (models.Ticker, error)
}

// TickerFetcher descarga tickers en paralelo con un máximo de requests simultáneos
type TickerFetcher struct {
	source      TickerSource
	concurrency int
}

func NewTickerFetcher(source TickerSource, concurrency int) *TickerFetcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TickerFetcher{source: source, concurrency: concurrency}
}

// FetchTickers pide un ticker por producto. Los que fallan se omiten sin reintentar
// y no afectan al resto del lote.
func (f *TickerFetcher) FetchTickers(ctx context.Context, productIDs []string) map[string]models.Ticker {
	tickers := make(map[string]models.Ticker, len(productIDs))
	if len(productIDs) == 0 {
		return tickers
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(f.concurrency)

	for _, id := range productIDs {
		id := id
		g.Go(func() error {
			ticker, err := f.source.GetTicker(ctx, id)
			if err != nil {
				return nil
			}

			mu.Lock()
			tickers[id] = ticker
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	log.Printf("Tickers obtenidos: %d/%d", len(tickers), len(productIDs))
	return tickers
}
