package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Drivers soportados para guardar el documento de caché
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var ErrUnknownStoreDriver = errors.New("driver de almacenamiento desconocido")

// Config contiene toda la configuración de la API de movers
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	CoinbaseAPIURL  string        `envconfig:"COINBASE_API_URL" default:"https://api.exchange.coinbase.com"`
	QuoteSuffix     string        `envconfig:"QUOTE_SUFFIX" default:"-USD"`
	ProductsTimeout time.Duration `envconfig:"PRODUCTS_TIMEOUT" default:"10s"`

	Store Store

	Movers Movers

	// Intervalo del actualizador en segundo plano. 0 lo desactiva.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"45s"`
}

// Store configura dónde se guarda el documento de caché
type Store struct {
	Driver        string `envconfig:"STORE_DRIVER" default:"file"`
	CacheKey      string `envconfig:"CACHE_KEY" default:"coinbase_cache"`
	FilePath      string `envconfig:"CACHE_FILE_PATH" default:"/tmp/coinbase_cache.json"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"database/movers.db"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Movers agrupa las constantes de rotación, descarga y ranking
type Movers struct {
	LatestTTL           time.Duration `envconfig:"LATEST_TTL" default:"45s"`
	ThreeMinuteWindow   time.Duration `envconfig:"THREE_MINUTE_WINDOW" default:"180s"`
	OneHourWindow       time.Duration `envconfig:"ONE_HOUR_WINDOW" default:"3600s"`
	InstrumentListTTL   time.Duration `envconfig:"INSTRUMENT_LIST_TTL" default:"3600s"`
	FetchConcurrencyCap int           `envconfig:"FETCH_CONCURRENCY_CAP" default:"20"`
	FetchTimeout        time.Duration `envconfig:"FETCH_TIMEOUT" default:"2s"`
	GainersLosersCount  int           `envconfig:"GAINERS_LOSERS_COUNT" default:"6"`
	BannerCount         int           `envconfig:"BANNER_COUNT" default:"25"`
	StrongMoveThreshold float64       `envconfig:"STRONG_MOVE_THRESHOLD" default:"0.5"`
}

// DefaultMovers devuelve los valores por defecto sin leer el entorno
func DefaultMovers() Movers {
	return Movers{
		LatestTTL:           45 * time.Second,
		ThreeMinuteWindow:   180 * time.Second,
		OneHourWindow:       3600 * time.Second,
		InstrumentListTTL:   3600 * time.Second,
		FetchConcurrencyCap: 20,
		FetchTimeout:        2 * time.Second,
		GainersLosersCount:  6,
		BannerCount:         25,
		StrongMoveThreshold: 0.5,
	}
}

// Load lee el archivo .env (si existe) y mapea las variables de entorno a Config
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error leyendo configuración: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate revisa que los valores tengan sentido
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreFile, StoreSQLite, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.Store.Driver)
	}
	if c.Store.Driver == StorePostgres && c.Store.DatabaseURL == "" {
		return errors.New("DATABASE_URL es obligatorio con STORE_DRIVER=postgres")
	}
	if c.RefreshInterval < 0 {
		return errors.New("REFRESH_INTERVAL no puede ser negativo")
	}
	if c.ProductsTimeout <= 0 {
		return errors.New("PRODUCTS_TIMEOUT debe ser positivo")
	}
	return c.Movers.Validate()
}

// Validate revisa las constantes de movers
func (m Movers) Validate() error {
	switch {
	case m.LatestTTL <= 0, m.ThreeMinuteWindow <= 0, m.OneHourWindow <= 0, m.InstrumentListTTL <= 0:
		return errors.New("los TTL y ventanas deben ser positivos")
	case m.FetchConcurrencyCap < 1:
		return errors.New("FETCH_CONCURRENCY_CAP debe ser al menos 1")
	case m.FetchTimeout <= 0:
		return errors.New("FETCH_TIMEOUT debe ser positivo")
	case m.GainersLosersCount < 1, m.BannerCount < 1:
		return errors.New("GAINERS_LOSERS_COUNT y BANNER_COUNT deben ser al menos 1")
	case m.StrongMoveThreshold < 0:
		return errors.New("STRONG_MOVE_THRESHOLD no puede ser negativo")
	}
	return nil
}

// AllowedOrigins separa CORS_ORIGINS por comas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
