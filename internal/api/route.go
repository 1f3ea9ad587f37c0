package api

import (
	"bytes"                             // JSON compaction buffer
	"context"                           // Request context
	"database/sql"                      // Nullable geometry column
	"encoding/json"                     // Raw GeoJSON handling
	"net/http"                          // HTTP status codes
	"strconv"                           // String conversion
	"waste_tracker/internal/domain"     // Importing domain models
	"waste_tracker/internal/middleware" // Claims stored by the auth middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// RouteRequest represents a new route for a truck
type RouteRequest struct {
	TruckNum  int             `json:"trucknum" binding:"required,gt=0"` // Truck the route belongs to
	StartMRF  string          `json:"start_mrf"`                        // Starting facility
	DestPoint string          `json:"dest_point"`                       // Destination
	Geometry  json.RawMessage `json:"geometry" binding:"required"`      // GeoJSON geometry object
}

// routeRow is a route with its geometry already rendered as GeoJSON
type routeRow struct {
	ID        uint           `gorm:"column:id"`
	TruckNum  int            `gorm:"column:trucknum"`
	StartMRF  string         `gorm:"column:start_mrf"`
	DestPoint string         `gorm:"column:dest_point"`
	Geom      sql.NullString `gorm:"column:geom"`
}

// Geometry types a route may be stored as
var routeGeometryTypes = map[string]bool{
	"LineString":      true,
	"MultiLineString": true,
	"Polygon":         true,
	"MultiPolygon":    true,
}

// geoJSONColumn renders the geom column as GeoJSON text. PostGIS does the
// conversion; other dialects already hold GeoJSON.
func geoJSONColumn(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ST_AsGeoJSON(geom)"
	}
	return "geom"
}

// findRoutes loads every route of a truck as a FeatureCollection
func findRoutes(ctx context.Context, db *gorm.DB, truckNum int) (domain.FeatureCollection, error) {
	var rows []routeRow
	err := db.WithContext(ctx).
		Table(domain.Route{}.TableName()).
		Select("id, trucknum, start_mrf, dest_point, "+geoJSONColumn(db)+" AS geom").
		Where("trucknum = ?", truckNum).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return domain.FeatureCollection{}, err
	}
	features := make([]domain.Feature, 0, len(rows))
	for _, row := range rows {
		geometry := json.RawMessage("null")
		if row.Geom.Valid && json.Valid([]byte(row.Geom.String)) {
			geometry = json.RawMessage(row.Geom.String)
		}
		route := domain.Route{ID: row.ID, TruckNum: row.TruckNum, StartMRF: row.StartMRF, DestPoint: row.DestPoint}
		features = append(features, domain.NewFeature(route, geometry))
	}
	return domain.NewFeatureCollection(features), nil
}

// writeRoutes answers with the truck's routes, or 404 when it has none
func writeRoutes(c *gin.Context, db *gorm.DB, truckNum int) {
	fc, err := findRoutes(c.Request.Context(), db, truckNum)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"trucknum": truckNum,
			"error":    err.Error(),
		}).Error("Failed to fetch routes")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if len(fc.Features) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No routes found for this truck number."})
		return
	}
	c.JSON(http.StatusOK, fc)
}

// GetRoutesHandler returns the routes of the truck named in the path
func GetRoutesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		truckNum, err := strconv.Atoi(c.Param("truckNum"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck number."})
			return
		}
		writeRoutes(c, db, truckNum)
	}
}

// MyRoutesHandler returns the routes of the truck assigned to the caller
func MyRoutesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		if claims.TruckNum == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "No truck assigned."})
			return
		}
		writeRoutes(c, db, *claims.TruckNum)
	}
}

// validRouteGeometry checks that raw is a GeoJSON line or polygon geometry
func validRouteGeometry(raw json.RawMessage) bool {
	var g struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &g); err != nil {
		return false
	}
	return routeGeometryTypes[g.Type] && len(g.Coordinates) > 0 && string(g.Coordinates) != "null"
}

// CreateRouteHandler stores a route for a truck
func CreateRouteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RouteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		if !validRouteGeometry(req.Geometry) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Geometry must be a GeoJSON LineString, MultiLineString, Polygon or MultiPolygon"})
			return
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, req.Geometry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		route := domain.Route{
			TruckNum:  req.TruckNum,
			StartMRF:  req.StartMRF,
			DestPoint: req.DestPoint,
			Geom:      domain.GeoJSON(compact.String()),
		}
		if err := db.WithContext(c.Request.Context()).Create(&route).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"trucknum": req.TruckNum,
				"error":    err.Error(),
			}).Error("Failed to create route")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
			return
		}
		logrus.WithFields(logrus.Fields{
			"route_id": route.ID,
			"trucknum": route.TruckNum,
		}).Info("Route created")
		c.JSON(http.StatusCreated, domain.NewFeature(route, json.RawMessage(compact.Bytes())))
	}
}
