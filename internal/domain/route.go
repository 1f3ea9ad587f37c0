package domain

import (
	"context" // Context passed by GORM when building values

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // SQL expression builder
)

// Route Model, a truck's path stored as PostGIS geometry
type Route struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                  // Primary key
	TruckNum  int     `gorm:"column:trucknum;index" json:"trucknum"` // Truck the route belongs to
	StartMRF  string  `gorm:"column:start_mrf" json:"start_mrf"`     // Materials recovery facility the truck leaves from
	DestPoint string  `gorm:"column:dest_point" json:"dest_point"`   // Destination point
	Geom      GeoJSON `gorm:"column:geom;type:geometry" json:"-"`    // Geometry (line or polygon)
}

// TableName keeps the table name used by the existing database
func (Route) TableName() string { return "spatialtable" }

// GeoJSON is a geometry in its GeoJSON text form. On PostgreSQL it is
// converted to a PostGIS geometry (SRID 4326) when written; other dialects
// store the text unchanged.
type GeoJSON string

// GormValue builds the SQL used to write the geometry
func (g GeoJSON) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	if db.Dialector.Name() == "postgres" {
		return clause.Expr{SQL: "ST_SetSRID(ST_GeomFromGeoJSON(?), 4326)", Vars: []any{string(g)}}
	}
	return clause.Expr{SQL: "?", Vars: []any{string(g)}}
}
