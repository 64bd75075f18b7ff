package models

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Permission flags an admin account may carry. Super admins implicitly
// hold every permission.
const (
	PermManageProjects = "manage_projects"
	PermManageBlogs    = "manage_blogs"
	PermManageBookings = "manage_bookings"
	PermManageClients  = "manage_clients"
	PermManageChat     = "manage_chat"
	PermViewAnalytics  = "view_analytics"
)

type Admin struct {
	ID           string          `json:"id" bson:"id"`
	Username     string          `json:"username" bson:"username"`
	Email        string          `json:"email" bson:"email"`
	PasswordHash string          `json:"-" bson:"password_hash"`
	Role         string          `json:"role" bson:"role"`
	Permissions  map[string]bool `json:"permissions" bson:"permissions"`
	IsActive     bool            `json:"is_active" bson:"is_active"`
	CreatedAt    string          `json:"created_at" bson:"created_at"`
	LastLoginAt  string          `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
}
