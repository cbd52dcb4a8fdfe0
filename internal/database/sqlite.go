package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"
)

// Nombres de driver para database/sql
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenSQLite abre (o crea) la base SQLite donde se guarda el documento de caché
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// Crear el directorio de la base si no existe
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("error abriendo sqlite: %w", err)
	}

	// Un solo escritor: SQLite serializa las escrituras de todos modos
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("error configurando sqlite: %w", err)
	}

	if err := InitDB(ctx, db, DriverSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres abre la conexión a PostgreSQL con el DSN indicado
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("error abriendo postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error conectando a postgres: %w", err)
	}

	if err := InitDB(ctx, db, DriverPostgres); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB crea la tabla de documentos si no existe y ejecuta las migraciones
func InitDB(ctx context.Context, db *sql.DB, driver string) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS cache_documents (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("error creando tabla cache_documents: %w", err)
	}

	return RunMigrations(ctx, db, driver)
}

// Rebind convierte los placeholders "?" al formato del driver ($1, $2... en postgres)
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
