package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без API-ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))

	// Маршруты для управления геозонами (CRUD)
	geofences := protected.Group("/geofences")
	{
		geofences.POST("", h.createGeofence)
		geofences.GET("", h.listGeofences)
		geofences.GET("/stats", h.getStats)
		geofences.GET("/:id", h.getGeofence)
		geofences.PUT("/:id", h.updateGeofence)
		geofences.DELETE("/:id", h.deleteGeofence)
	}

	// Маршруты обработки позиции
	protected.POST("/location/update", h.updateLocation)
	protected.POST("/location/separation", h.checkSeparation)

	// Позиции участников группы и журнал оповещений
	protected.GET("/peers", h.listPeers)
	protected.GET("/alerts", h.listAlerts)
}
