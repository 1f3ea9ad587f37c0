package api

import (
	"net/http"                      // HTTP status codes
	"strconv"                       // String conversion
	"waste_tracker/internal/domain" // Importing domain models
	"waste_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// MarkerRequest represents a new pin
type MarkerRequest struct {
	Lat     *float64 `json:"lat" binding:"required"` // Latitude
	Lng     *float64 `json:"lng" binding:"required"` // Longitude
	Message string   `json:"message"`                // Popup text
}

// ListMarkersHandler returns every marker
func ListMarkersHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		markers := make([]domain.Marker, 0)
		found, err := cache.Get(ctx, utils.MarkersCacheKey, &markers)
		if err != nil {
			logrus.WithField("error", err.Error()).Warn("Marker cache read failed")
		}
		if err == nil && found {
			c.JSON(http.StatusOK, markers)
			return
		}
		if err := db.WithContext(ctx).Order("id_markers").Find(&markers).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch markers")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if err := cache.Set(ctx, utils.MarkersCacheKey, markers); err != nil {
			logrus.WithField("error", err.Error()).Warn("Marker cache write failed")
		}
		c.JSON(http.StatusOK, markers)
	}
}

// CreateMarkerHandler stores a new pin
func CreateMarkerHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MarkerRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		marker := domain.Marker{Lat: *req.Lat, Lng: *req.Lng, Message: req.Message}
		if err := db.WithContext(ctx).Create(&marker).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"lat":   marker.Lat,
				"lng":   marker.Lng,
				"error": err.Error(),
			}).Error("Failed to create marker")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"marker_id": marker.ID,
			"lat":       marker.Lat,
			"lng":       marker.Lng,
		}).Info("Marker created")
		invalidateMarkers(c, cache)
		c.JSON(http.StatusCreated, marker)
	}
}

// DeleteMarkerHandler removes a pin by id. A missing id is not an error.
func DeleteMarkerHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid marker id"})
			return
		}
		ctx := c.Request.Context()
		res := db.WithContext(ctx).Delete(&domain.Marker{}, id)
		if res.Error != nil {
			logrus.WithFields(logrus.Fields{
				"marker_id": id,
				"error":     res.Error.Error(),
			}).Error("Failed to delete marker")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"marker_id": id,
			"deleted":   res.RowsAffected,
		}).Info("Marker deleted")
		invalidateMarkers(c, cache)
		c.JSON(http.StatusOK, gin.H{"message": "Pin deleted successfully"})
	}
}

// invalidateMarkers drops the cached marker list after a write. A Redis
// failure does not fail the request; the key stays stale until the next read
// repopulates it.
func invalidateMarkers(c *gin.Context, cache *utils.Cache) {
	if err := cache.Invalidate(c.Request.Context(), utils.MarkersCacheKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   utils.MarkersCacheKey,
			"error": err.Error(),
		}).Error("Marker cache invalidation failed")
	}
}
