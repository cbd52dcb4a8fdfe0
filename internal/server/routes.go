package routes

import (
	"github.com/AgusMolinaCode/Movers_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	router.GET("/health", middleware.GetHealth)
	router.GET("/status", middleware.GetStatus)

	api := router.Group("/api")
	{
		api.GET("/movers", middleware.GetMovers)
		api.GET("/movers/gainers", middleware.GetGainers)
		api.GET("/movers/losers", middleware.GetLosers)
		api.GET("/movers/price-banner", middleware.GetPriceBanner)
		api.GET("/movers/volume-banner", middleware.GetVolumeBanner)
	}
}
