package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/config"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
)

// DocumentRepository es el almacenamiento del documento de caché
type DocumentRepository interface {
	ReadDocument(ctx context.Context) models.CacheDocument
	WriteDocument(ctx context.Context, doc models.CacheDocument) error
	Ping(ctx context.Context) string
}

// Rotator actualiza el documento cuando está vencido
type Rotator interface {
	Refresh(ctx context.Context, doc models.CacheDocument, now time.Time) (models.CacheDocument, bool)
}

// MoversService coordina lectura, refresh, escritura y el cálculo de las vistas
type MoversService struct {
	repo        DocumentRepository
	rotator     Rotator
	ranker      *Ranker
	quoteSuffix string
	now         func() time.Time

	// Serializa los refresh de este proceso sobre el mismo documento
	mutex sync.Mutex
}

// NewMoversService arma el servicio completo a partir del cliente del exchange
func NewMoversService(repo DocumentRepository, client *CoinbaseClient, quoteSuffix string, cfg config.Movers) *MoversService {
	lister := NewProductLister(client, quoteSuffix, cfg.InstrumentListTTL)
	fetcher := NewTickerFetcher(client, cfg.FetchConcurrencyCap)
	return NewMoversServiceWith(repo, NewSnapshotRotator(lister, fetcher, cfg), NewRanker(cfg), quoteSuffix, time.Now)
}

// NewMoversServiceWith permite inyectar el rotador y el reloj
func NewMoversServiceWith(repo DocumentRepository, rotator Rotator, ranker *Ranker, quoteSuffix string, now func() time.Time) *MoversService {
	return &MoversService{
		repo:        repo,
		rotator:     rotator,
		ranker:      ranker,
		quoteSuffix: quoteSuffix,
		now:         now,
	}
}

// Refresh actualiza los snapshots si latest está vencido. Devuelve true si hubo refresh.
// Los errores de escritura se registran y no se propagan.
func (s *MoversService) Refresh(ctx context.Context) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// El refresh es compartido: si el cliente corta la conexión, el refresh sigue.
	// Cada request al exchange ya tiene su propio timeout.
	ctx = context.WithoutCancel(ctx)

	doc := s.repo.ReadDocument(ctx)
	next, changed := s.rotator.Refresh(ctx, doc, s.now())
	if !changed {
		return false
	}

	if err := s.repo.WriteDocument(ctx, next); err != nil {
		log.Printf("Error al guardar caché: %v", err)
	}
	return true
}

// Movers refresca los datos si hace falta y calcula las cuatro vistas desde un mismo documento
func (s *MoversService) Movers(ctx context.Context) (models.MoversResponse, error) {
	s.Refresh(ctx)
	if err := ctx.Err(); err != nil {
		return models.MoversResponse{}, err
	}

	doc := s.repo.ReadDocument(ctx)
	return s.BuildResponse(doc), nil
}

// BuildResponse calcula las vistas: gainers y losers contra 3 minutos, banners contra 1 hora
func (s *MoversService) BuildResponse(doc models.CacheDocument) models.MoversResponse {
	threeMin := ComputeChanges(doc.Latest, doc.ThreeMinutesAgo, s.quoteSuffix)
	oneHour := ComputeChanges(doc.Latest, doc.OneHourAgo, s.quoteSuffix)

	return models.MoversResponse{
		Gainers:      s.ranker.Gainers(threeMin),
		Losers:       s.ranker.Losers(threeMin),
		PriceBanner:  s.ranker.PriceBanner(oneHour),
		VolumeBanner: s.ranker.VolumeBanner(oneHour),
	}
}

// Status resume el documento guardado sin refrescarlo
func (s *MoversService) Status(ctx context.Context) models.CacheStatus {
	doc := s.repo.ReadDocument(ctx)
	return doc.Status()
}

// Health informa el estado del almacenamiento
func (s *MoversService) Health(ctx context.Context) string {
	return s.repo.Ping(ctx)
}
