package services

import (
	"sort"
	"strings"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/config"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeChanges calcula el cambio porcentual de precio de cada instrumento presente
// en latest y en historical. Los instrumentos sin historia, con precio anterior no
// positivo o con datos que no se pueden parsear se omiten.
// Los registros salen ordenados por ID de producto.
func ComputeChanges(latest, historical *models.Snapshot, quoteSuffix string) []models.ChangeRecord {
	if latest.Len() == 0 || historical.Len() == 0 {
		return []models.ChangeRecord{}
	}

	ids := make([]string, 0, len(latest.Data))
	for id := range latest.Data {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	changes := make([]models.ChangeRecord, 0, len(ids))
	for _, id := range ids {
		past, ok := historical.Data[id]
		if !ok {
			continue
		}
		current := latest.Data[id]

		priceNow, err := decimal.NewFromString(current.Price)
		if err != nil {
			continue
		}
		priceThen, err := decimal.NewFromString(past.Price)
		if err != nil || !priceThen.IsPositive() {
			continue
		}

		volume := decimal.Zero
		if current.Volume24h != "" {
			volume, err = decimal.NewFromString(current.Volume24h)
			if err != nil {
				continue
			}
		}

		changes = append(changes, models.ChangeRecord{
			ProductID:     id,
			Symbol:        strings.TrimSuffix(id, quoteSuffix),
			PriceNow:      priceNow,
			PercentChange: priceNow.Sub(priceThen).Div(priceThen).Mul(hundred),
			Volume24h:     volume,
		})
	}
	return changes
}

// Ranker ordena y recorta los cambios en las cuatro vistas.
// Los empates conservan el orden de entrada (sort estable).
type Ranker struct {
	tableCount  int
	bannerCount int
	strongMove  decimal.Decimal
}

func NewRanker(cfg config.Movers) *Ranker {
	return &Ranker{
		tableCount:  cfg.GainersLosersCount,
		bannerCount: cfg.BannerCount,
		strongMove:  decimal.NewFromFloat(cfg.StrongMoveThreshold),
	}
}

// Gainers devuelve los mayores cambios positivos
func (r *Ranker) Gainers(changes []models.ChangeRecord) []models.MoverRow {
	sorted := sortedBy(changes, func(a, b models.ChangeRecord) bool {
		return a.PercentChange.GreaterThan(b.PercentChange)
	})
	return r.moverRows(sorted)
}

// Losers devuelve los mayores cambios negativos
func (r *Ranker) Losers(changes []models.ChangeRecord) []models.MoverRow {
	sorted := sortedBy(changes, func(a, b models.ChangeRecord) bool {
		return a.PercentChange.LessThan(b.PercentChange)
	})
	return r.moverRows(sorted)
}

// PriceBanner ordena por cambio de precio descendente
func (r *Ranker) PriceBanner(changes []models.ChangeRecord) []models.BannerItem {
	sorted := sortedBy(changes, func(a, b models.ChangeRecord) bool {
		return a.PercentChange.GreaterThan(b.PercentChange)
	})
	return r.bannerItems(sorted)
}

// VolumeBanner ordena por volumen de 24h pero informa el cambio de precio
func (r *Ranker) VolumeBanner(changes []models.ChangeRecord) []models.BannerItem {
	sorted := sortedBy(changes, func(a, b models.ChangeRecord) bool {
		return a.Volume24h.GreaterThan(b.Volume24h)
	})
	return r.bannerItems(sorted)
}

// Tag clasifica el movimiento como fuerte o moderado
func (r *Ranker) Tag(percentChange decimal.Decimal) string {
	if percentChange.Abs().GreaterThan(r.strongMove) {
		return models.TagStrong
	}
	return models.TagModerate
}

func (r *Ranker) moverRows(sorted []models.ChangeRecord) []models.MoverRow {
	n := min(len(sorted), r.tableCount)
	rows := make([]models.MoverRow, 0, n)
	for i, c := range sorted[:n] {
		rows = append(rows, models.MoverRow{
			Rank:          i + 1,
			Symbol:        c.Symbol,
			Price:         c.PriceNow.StringFixed(4),
			Tag:           r.Tag(c.PercentChange),
			PercentChange: c.PercentChange.StringFixed(2),
		})
	}
	return rows
}

func (r *Ranker) bannerItems(sorted []models.ChangeRecord) []models.BannerItem {
	n := min(len(sorted), r.bannerCount)
	items := make([]models.BannerItem, 0, n)
	for _, c := range sorted[:n] {
		items = append(items, models.BannerItem{
			Symbol:        c.Symbol,
			PercentChange: c.PercentChange.StringFixed(2),
		})
	}
	return items
}

// sortedBy ordena una copia para no alterar el slice compartido entre vistas
func sortedBy(changes []models.ChangeRecord, less func(a, b models.ChangeRecord) bool) []models.ChangeRecord {
	sorted := make([]models.ChangeRecord, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
