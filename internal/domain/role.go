package domain

import "strings"

// Role is the closed set of roles a caller can hold
type Role string

const (
	RoleGuest     Role = "guest"     // Unauthenticated or unknown role
	RoleAdmin     Role = "admin"     // Manages markers and routes
	RoleCollector Role = "collector" // Drives a truck and follows its routes
	RoleViewer    Role = "viewer"    // Registered user with read access
)

// Permission is an action checked at the access-control boundary
type Permission int

const (
	PermViewMap Permission = iota
	PermManageMarkers
	PermViewOwnRoutes
	PermManageRoutes
)

// String returns the permission name used in logs
func (p Permission) String() string {
	switch p {
	case PermViewMap:
		return "view_map"
	case PermManageMarkers:
		return "manage_markers"
	case PermViewOwnRoutes:
		return "view_own_routes"
	case PermManageRoutes:
		return "manage_routes"
	}
	return "unknown"
}

// ParseRole maps a stored or claimed role string onto the closed set.
// Anything unrecognised becomes RoleGuest.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleCollector:
		return RoleCollector
	case RoleViewer:
		return RoleViewer
	default:
		return RoleGuest
	}
}

// Can reports whether the role grants the permission
func (r Role) Can(p Permission) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleCollector:
		return p == PermViewMap || p == PermViewOwnRoutes
	case RoleViewer, RoleGuest:
		return p == PermViewMap
	}
	return false
}
