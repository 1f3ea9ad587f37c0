package domain

// User Model
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`                     // Primary key
	Username   string `gorm:"uniqueIndex;not null" json:"username"`     // Unique username
	Password   string `gorm:"not null" json:"-"`                        // Hashed password, never serialized
	FirstName  string `gorm:"column:first_name" json:"first_name"`      // First name
	MiddleName string `gorm:"column:middle_name" json:"middle_name"`    // Middle name
	LastName   string `gorm:"column:last_name" json:"last_name"`        // Last name
	ExtName    string `gorm:"column:ext_name" json:"ext_name"`          // Name extension (Jr., III)
	Roles      Role   `gorm:"column:roles;default:viewer" json:"roles"` // Role: admin, collector or viewer
	TruckNum   *int   `gorm:"column:trucknum" json:"trucknum"`          // Assigned truck, collectors only
}
