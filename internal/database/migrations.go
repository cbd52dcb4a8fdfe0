package database

import (
	"context"
	"database/sql"
	"log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	log.Printf("Ejecutando migraciones de la base de datos (%s)...", driver)

	// Migración para añadir updated_at a la tabla cache_documents
	addUpdatedAtColumnSQL := `ALTER TABLE cache_documents ADD COLUMN updated_at BIGINT NOT NULL DEFAULT 0;`

	_, err := db.ExecContext(ctx, addUpdatedAtColumnSQL)
	if err != nil {
		// No retornamos error porque la columna puede existir de una ejecución anterior
		log.Printf("Columna updated_at no añadida (probablemente ya existe): %v", err)
	} else {
		log.Println("Columna updated_at añadida correctamente")
	}

	return nil
}
