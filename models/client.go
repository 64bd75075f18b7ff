package models

type Client struct {
	ID           string `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Company      string `json:"company,omitempty" bson:"company,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Notes        string `json:"notes,omitempty" bson:"notes,omitempty"`
	IsActive     bool   `json:"is_active" bson:"is_active"`
	CreatedAt    string `json:"created_at" bson:"created_at"`
	LastLoginAt  string `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
}

const (
	ClientProjectPlanning   = "planning"
	ClientProjectInProgress = "in_progress"
	ClientProjectReview     = "review"
	ClientProjectCompleted  = "completed"
	ClientProjectOnHold     = "on_hold"
)

type Milestone struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Completed   bool   `json:"completed" bson:"completed"`
	CompletedAt string `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// ProjectUpdate is one entry in a client project's update feed.
type ProjectUpdate struct {
	ID        string `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Message   string `json:"message" bson:"message"`
	Author    string `json:"author" bson:"author"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

// ProjectFile is a delivered artifact linked from the portal.
type ProjectFile struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	URL       string `json:"url" bson:"url"`
	UploadedAt string `json:"uploaded_at" bson:"uploaded_at"`
}

// ClientProject is a tracked engagement visible in the client portal.
type ClientProject struct {
	ID          string          `json:"id" bson:"id"`
	ClientID    string          `json:"client_id" bson:"client_id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Status      string          `json:"status" bson:"status"`
	Progress    int             `json:"progress" bson:"progress"` // 0-100, derived from milestones
	StartDate   string          `json:"start_date,omitempty" bson:"start_date,omitempty"`
	DueDate     string          `json:"due_date,omitempty" bson:"due_date,omitempty"`
	Milestones  []Milestone     `json:"milestones" bson:"milestones"`
	Updates     []ProjectUpdate `json:"updates" bson:"updates"`
	Files       []ProjectFile   `json:"files" bson:"files"`
	CreatedAt   string          `json:"created_at" bson:"created_at"`
	UpdatedAt   string          `json:"updated_at" bson:"updated_at"`
}

// Credential is a stored client-site login, super-admin only.
type Credential struct {
	ID        string `json:"id" bson:"id"`
	ClientID  string `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Label     string `json:"label" bson:"label"`
	SiteURL   string `json:"site_url,omitempty" bson:"site_url,omitempty"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"password" bson:"password"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt string `json:"created_at" bson:"created_at"`
	UpdatedAt string `json:"updated_at" bson:"updated_at"`
}
