package api

import (
	"net/http"
	"waste_tracker/internal/domain"
	"waste_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// loadWasteData reads every waste record, in calendar order
func loadWasteData(c *gin.Context, db *gorm.DB) ([]domain.WasteData, error) {
	records := make([]domain.WasteData, 0)
	err := db.WithContext(c.Request.Context()).Order("year, week, day, id").Find(&records).Error
	return records, err
}

// ListWasteDataHandler returns the daily waste records
func ListWasteDataHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.WasteData
		found, err := cache.Get(ctx, utils.WasteDailyCacheKey, &cached)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   utils.WasteDailyCacheKey,
				"error": err.Error(),
			}).Warn("Waste cache read failed")
		}
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		records, err := loadWasteData(c, db)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch waste data")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		if err := cache.Set(ctx, utils.WasteDailyCacheKey, records); err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   utils.WasteDailyCacheKey,
				"error": err.Error(),
			}).Warn("Waste cache write failed")
		}
		c.JSON(http.StatusOK, records)
	}
}

// WeeklyWasteDataHandler returns the waste records summed per week
func WeeklyWasteDataHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.WeeklyWaste
		found, err := cache.Get(ctx, utils.WasteWeeklyCacheKey, &cached)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   utils.WasteWeeklyCacheKey,
				"error": err.Error(),
			}).Warn("Waste cache read failed")
		}
		if err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		records, err := loadWasteData(c, db)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch waste data")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		weeks := domain.AggregateWeekly(records)
		if err := cache.Set(ctx, utils.WasteWeeklyCacheKey, weeks); err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   utils.WasteWeeklyCacheKey,
				"error": err.Error(),
			}).Warn("Waste cache write failed")
		}
		c.JSON(http.StatusOK, weeks)
	}
}
