package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
)

// ProductSource es la parte del cliente del exchange que lista productos
type ProductSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ProductLister mantiene la lista de instrumentos cacheada dentro del documento
type ProductLister struct {
	source ProductSource
	suffix string
	ttl    time.Duration
}

func NewProductLister(source ProductSource, quoteSuffix string, ttl time.Duration) *ProductLister {
	return &ProductLister{source: source, suffix: quoteSuffix, ttl: ttl}
}

// ListInstruments devuelve los instrumentos a consultar. Si la lista cacheada venció,
// la vuelve a pedir al exchange y actualiza el documento. Si el exchange falla se sigue
// usando la lista anterior (vacía en la primera ejecución).
func (l *ProductLister) ListInstruments(ctx context.Context, doc *models.CacheDocument, now time.Time) []string {
	if now.Sub(doc.ProductsCapturedAt) <= l.ttl {
		return doc.Products
	}

	products, err := l.source.ListProducts(ctx)
	if err != nil {
		log.Printf("Error al obtener productos de Coinbase: %v", err)
		return doc.Products
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		if strings.HasSuffix(p.ID, l.suffix) && p.Status == "online" {
			ids = append(ids, p.ID)
		}
	}

	doc.Products = ids
	doc.ProductsCapturedAt = now
	log.Printf("Lista de productos actualizada: %d de %d productos", len(ids), len(products))

	return doc.Products
}
