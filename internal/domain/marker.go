package domain

// Marker Model, a pin placed on the map with a message
type Marker struct {
	ID      uint    `gorm:"column:id_markers;primaryKey" json:"id_markers"` // Primary key
	Lat     float64 `gorm:"not null" json:"lat"`                            // Latitude
	Lng     float64 `gorm:"not null" json:"lng"`                            // Longitude
	Message string  `json:"message"`                                        // Popup text
}
