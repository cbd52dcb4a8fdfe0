package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
)

// SnapshotRepository lee y escribe el documento de caché completo sobre un BlobStore
type SnapshotRepository struct {
	store BlobStore
}

func NewSnapshotRepository(store BlobStore) *SnapshotRepository {
	return &SnapshotRepository{store: store}
}

// ReadDocument devuelve el documento guardado. Si no existe, no se puede leer o está
// corrupto, devuelve un documento vacío: el siguiente refresh lo reconstruye.
func (r *SnapshotRepository) ReadDocument(ctx context.Context) models.CacheDocument {
	data, err := r.store.Load(ctx)
	if errors.Is(err, ErrCacheNotFound) {
		return models.CacheDocument{}
	}
	if err != nil {
		log.Printf("Error leyendo caché: %v. Se usa un documento vacío.", err)
		return models.CacheDocument{}
	}

	var doc models.CacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Caché corrupta: %v. Se usa un documento vacío.", err)
		return models.CacheDocument{}
	}
	return doc
}

// WriteDocument reemplaza el documento guardado completo
func (r *SnapshotRepository) WriteDocument(ctx context.Context, doc models.CacheDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error serializando caché: %w", err)
	}
	if err := r.store.Save(ctx, data); err != nil {
		return fmt.Errorf("error escribiendo caché: %w", err)
	}
	return nil
}

// Ping verifica que el almacenamiento responda
func (r *SnapshotRepository) Ping(ctx context.Context) string {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Sprintf("down: %v", err)
	}
	return "up"
}
