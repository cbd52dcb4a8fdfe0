package main

import (
	"context"
	"log"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/config"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/repository"
	routes "github.com/AgusMolinaCode/Movers_Api.git/internal/server"
	"github.com/AgusMolinaCode/Movers_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Cargar configuración (.env + variables de entorno)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error en la configuración: %v", err)
	}

	// Crear el router de Gin con recuperación que responde el error genérico
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(middleware.RecoveryHandler))

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	// Inicializar el almacenamiento del documento de caché
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, closeStore, err := openStore(ctx, cfg.Store)
	cancel()
	if err != nil {
		log.Fatalf("Error al inicializar el almacenamiento (%s): %v", cfg.Store.Driver, err)
	}
	defer closeStore()
	log.Printf("Documento de caché guardado con driver %s", cfg.Store.Driver)

	client := services.NewCoinbaseClient(cfg.CoinbaseAPIURL, cfg.ProductsTimeout, cfg.Movers.FetchTimeout)
	moversService := services.NewMoversService(repository.NewSnapshotRepository(store), client, cfg.QuoteSuffix, cfg.Movers)
	middleware.InitMovers(moversService)

	// Iniciar el actualizador de snapshots en segundo plano
	if cfg.RefreshInterval > 0 {
		updater := services.NewMoversUpdater(moversService, cfg.RefreshInterval)
		updater.Start()
		defer updater.Stop()

		// Hacer disponible el actualizador para el endpoint de estado
		middleware.SetMoversUpdater(updater)
	}

	// Configurar las rutas
	routes.RegisterRoutes(router)

	// Iniciar el servidor
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}
