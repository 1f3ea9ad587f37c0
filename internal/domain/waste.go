package domain

// WasteData Model, one day of collection statistics
type WasteData struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Day               int     `json:"day"`
	Week              int     `json:"week"`
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	WasteCollected    float64 `json:"waste_collected"`
	Recycled          float64 `json:"recycled"`
	SanitaryLandfills float64 `json:"sanitary_landfills"`
	Plastic           float64 `json:"plastic"`
	PET               float64 `gorm:"column:pet" json:"pet"`
	Metal             float64 `json:"metal"`
	Glass             float64 `json:"glass"`
	Paper             float64 `json:"paper"`
}

// TableName keeps the table name used by the existing database
func (WasteData) TableName() string { return "waste_data" }

// WeeklyWaste is the sum of every WasteData row sharing a week, month and year
type WeeklyWaste struct {
	Week              int     `json:"week"`
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	Days              int     `json:"days"`
	WasteCollected    float64 `json:"waste_collected"`
	Recycled          float64 `json:"recycled"`
	SanitaryLandfills float64 `json:"sanitary_landfills"`
	Plastic           float64 `json:"plastic"`
	PET               float64 `json:"pet"`
	Metal             float64 `json:"metal"`
	Glass             float64 `json:"glass"`
	Paper             float64 `json:"paper"`
}

type weekKey struct {
	week  int
	month string
	year  int
}

// AggregateWeekly groups daily records by (week, month, year) and sums every
// numeric field. Buckets come out in the order their key first appears.
func AggregateWeekly(records []WasteData) []WeeklyWaste {
	out := make([]WeeklyWaste, 0)
	index := make(map[weekKey]int)
	for _, r := range records {
		k := weekKey{week: r.Week, month: r.Month, year: r.Year}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, WeeklyWaste{Week: r.Week, Month: r.Month, Year: r.Year})
		}
		w := &out[i]
		w.Days++
		w.WasteCollected += r.WasteCollected
		w.Recycled += r.Recycled
		w.SanitaryLandfills += r.SanitaryLandfills
		w.Plastic += r.Plastic
		w.PET += r.PET
		w.Metal += r.Metal
		w.Glass += r.Glass
		w.Paper += r.Paper
	}
	return out
}
