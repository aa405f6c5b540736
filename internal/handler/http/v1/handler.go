package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/geo_tracking_system/internal/config"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	trackingService service.TrackingService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(trackingService service.TrackingService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		trackingService: trackingService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Register a new geofence
// @Description Register a circular geofence with alert configuration. Replaces an existing geofence with the same ID. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param geofence body CreateGeofenceRequest true "Geofence registration request"
// @Success 201 {object} GeofenceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences [post]
func (h *Handler) createGeofence(c *gin.Context) {
	var input CreateGeofenceRequest
	log := h.logger.WithField("method", "createGeofence")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToGeofenceModel(input)
	if err := h.trackingService.RegisterGeofence(c.Request.Context(), model); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			log.WithError(err).Warn("Geofence rejected")
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		log.WithError(err).Error("Failed to register geofence in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToGeofenceResponse(model))
}

// @Summary Get a list of geofences
// @Description Get all registered geofences in insertion order. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} GeofenceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences [get]
func (h *Handler) listGeofences(c *gin.Context) {
	log := h.logger.WithField("method", "listGeofences")

	fences, err := h.trackingService.ListGeofences(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list geofences from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToGeofenceResponses(fences))
}

// @Summary Get geofence by ID
// @Description Get a single geofence by its ID. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Geofence ID"
// @Success 200 {object} GeofenceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Geofence not found"
// @Router /geofences/{id} [get]
func (h *Handler) getGeofence(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getGeofence").WithField("id", id)

	fence, err := h.trackingService.GetGeofence(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get geofence from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToGeofenceResponse(fence))
}

// @Summary Update an existing geofence
// @Description Update an existing geofence by ID. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Geofence ID"
// @Param geofence body UpdateGeofenceRequest true "Geofence update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Geofence not found"
// @Router /geofences/{id} [put]
func (h *Handler) updateGeofence(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateGeofence").WithField("id", id)

	var input UpdateGeofenceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToGeofenceModel(input)
	model.ID = id

	if err := h.trackingService.UpdateGeofence(c.Request.Context(), model); err != nil {
		log.WithError(err).Warn("Failed to update geofence in service")
		c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToGeofenceResponse(model))
}

// @Summary Remove a geofence
// @Description Remove a geofence by its ID together with its occupancy state. Removing a missing geofence is not an error. Requires API key.
// @Tags Geofences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Geofence ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences/{id} [delete]
func (h *Handler) deleteGeofence(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteGeofence").WithField("id", id)

	if err := h.trackingService.RemoveGeofence(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("Failed to remove geofence in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove geofence"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Process a location update
// @Description Evaluate an entity position against all registered geofences, emitting enter/exit/dwell events. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body LocationUpdateRequest true "Location update request"
// @Success 200 {object} LocationUpdateResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/update [post]
func (h *Handler) updateLocation(c *gin.Context) {
	var input LocationUpdateRequest
	log := h.logger.WithField("method", "updateLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.trackingService.ProcessLocation(c.Request.Context(), input.EntityID, input.Latitude, input.Longitude)
	if err != nil {
		log.WithError(err).Error("Failed to process location in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelToLocationUpdateResponse(result))
}

// @Summary Check group separation
// @Description Compare an entity position with current peer positions and emit separation alerts for peers beyond the threshold. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param separation body SeparationCheckRequest true "Separation check request"
// @Success 200 {array} AlertEventResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/separation [post]
func (h *Handler) checkSeparation(c *gin.Context) {
	var input SeparationCheckRequest
	log := h.logger.WithField("method", "checkSeparation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alerts, err := h.trackingService.CheckSeparation(c.Request.Context(), input.EntityID, input.Latitude, input.Longitude, input.MaxDistanceMeters)
	if err != nil {
		log.WithError(err).Error("Failed to check separation in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	responses := make([]AlertEventResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = ModelToAlertEventResponse(alert)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get current peer positions
// @Description Get last known positions of all group members. Requires API key.
// @Tags Group
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} PeerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /peers [get]
func (h *Handler) listPeers(c *gin.Context) {
	log := h.logger.WithField("method", "listPeers")

	peers, err := h.trackingService.ListPeers(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list peers from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToPeerResponses(peers))
}

// @Summary Get alert history for an entity
// @Description Get recent alert events recorded for an entity. Requires API key.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_id query string true "Entity ID"
// @Param limit query int false "Number of events to return" default(20)
// @Success 200 {array} AlertEventResponse
// @Failure 400 {object} map[string]string "Missing entity_id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	entityID := c.Query("entity_id")
	if entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	events, err := h.trackingService.ListAlerts(c.Request.Context(), entityID, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	responses := make([]AlertEventResponse, len(events))
	for i, event := range events {
		responses[i] = ModelToAlertEventResponse(*event)
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get tracking statistics
// @Description Get the count of distinct tracked entities within the stats time window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /geofences/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	entityCount, err := h.trackingService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{EntityCount: entityCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
