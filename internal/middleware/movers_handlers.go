package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/models"
	"github.com/gin-gonic/gin"
)

// ErrorMessage es el mensaje genérico que recibe el frontend cuando algo falla
const ErrorMessage = "A critical error occurred while processing market data."

// MoversProvider es lo que los handlers necesitan del servicio de movers
type MoversProvider interface {
	Movers(ctx context.Context) (models.MoversResponse, error)
	Status(ctx context.Context) models.CacheStatus
	Health(ctx context.Context) string
}

var moversService MoversProvider

// InitMovers registra el servicio que usan los handlers
func InitMovers(service MoversProvider) {
	moversService = service
}

// loadMovers refresca y calcula las vistas; si falla responde 500 y devuelve false
func loadMovers(c *gin.Context) (models.MoversResponse, bool) {
	if moversService == nil {
		log.Printf("Servicio de movers no inicializado")
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorMessage})
		return models.MoversResponse{}, false
	}

	resp, err := moversService.Movers(c.Request.Context())
	if err != nil {
		log.Printf("FATAL ERROR al calcular movers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorMessage})
		return models.MoversResponse{}, false
	}
	return resp, true
}

// GetMovers devuelve las cuatro vistas juntas
func GetMovers(c *gin.Context) {
	resp, ok := loadMovers(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func GetGainers(c *gin.Context) {
	if resp, ok := loadMovers(c); ok {
		c.JSON(http.StatusOK, gin.H{"gainers": resp.Gainers})
	}
}

func GetLosers(c *gin.Context) {
	if resp, ok := loadMovers(c); ok {
		c.JSON(http.StatusOK, gin.H{"losers": resp.Losers})
	}
}

func GetPriceBanner(c *gin.Context) {
	if resp, ok := loadMovers(c); ok {
		c.JSON(http.StatusOK, gin.H{"price_banner": resp.PriceBanner})
	}
}

func GetVolumeBanner(c *gin.Context) {
	if resp, ok := loadMovers(c); ok {
		c.JSON(http.StatusOK, gin.H{"volume_banner": resp.VolumeBanner})
	}
}

// GetStatus muestra la antigüedad de cada snapshot y el estado del actualizador
func GetStatus(c *gin.Context) {
	if moversService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorMessage})
		return
	}

	updater := gin.H{"running": false, "last_updated": nil}
	if u := GetMoversUpdater(); u != nil {
		updater["running"] = u.IsRunning()
		if last := u.GetLastUpdated(); !last.IsZero() {
			updater["last_updated"] = last
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"cache":   moversService.Status(c.Request.Context()),
		"updater": updater,
	})
}

// GetHealth verifica el almacenamiento del documento de caché
func GetHealth(c *gin.Context) {
	if moversService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"store": "down: no inicializado"})
		return
	}

	store := moversService.Health(c.Request.Context())
	status := http.StatusOK
	if store != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"store": store})
}

// RecoveryHandler responde con el error genérico cuando un handler entra en pánico
func RecoveryHandler(c *gin.Context, recovered interface{}) {
	log.Printf("FATAL ERROR en handler: %v", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrorMessage})
}
