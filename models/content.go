package models

type Project struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Slug        string   `json:"slug" bson:"slug"`
	Description string   `json:"description" bson:"description"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	Technologies []string `json:"technologies,omitempty" bson:"technologies,omitempty"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	LiveURL     string   `json:"live_url,omitempty" bson:"live_url,omitempty"`
	GithubURL   string   `json:"github_url,omitempty" bson:"github_url,omitempty"`
	IsPrivate   bool     `json:"is_private" bson:"is_private"`
	Featured    bool     `json:"featured" bson:"featured"`
	CreatedAt   string   `json:"created_at" bson:"created_at"`
	UpdatedAt   string   `json:"updated_at" bson:"updated_at"`
}

type Service struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Icon        string   `json:"icon,omitempty" bson:"icon,omitempty"`
	Features    []string `json:"features,omitempty" bson:"features,omitempty"`
	Order       int      `json:"order" bson:"order"`
	CreatedAt   string   `json:"created_at" bson:"created_at"`
	UpdatedAt   string   `json:"updated_at" bson:"updated_at"`
}

const (
	BlogDraft     = "draft"
	BlogPublished = "published"
)

type Blog struct {
	ID        string   `json:"id" bson:"id"`
	Title     string   `json:"title" bson:"title"`
	Slug      string   `json:"slug" bson:"slug"`
	Excerpt   string   `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Content   string   `json:"content" bson:"content"`
	CoverImage string  `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	Tags      []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Status    string   `json:"status" bson:"status"` // draft, published
	Author    string   `json:"author,omitempty" bson:"author,omitempty"`
	CreatedAt string   `json:"created_at" bson:"created_at"`
	UpdatedAt string   `json:"updated_at" bson:"updated_at"`
}

type Skill struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Icon      string `json:"icon,omitempty" bson:"icon,omitempty"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
	TestimonialRejected = "rejected"
)

type Testimonial struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Role        string `json:"role,omitempty" bson:"role,omitempty"`
	Company     string `json:"company,omitempty" bson:"company,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Message     string `json:"message" bson:"message"`
	Rating      int    `json:"rating" bson:"rating"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	Status      string `json:"status" bson:"status"` // pending, approved, rejected
	Source      string `json:"source" bson:"source"` // admin_created, public_submitted, client_submitted
	Verified    bool   `json:"verified" bson:"verified"`
	ClientID    string `json:"client_id,omitempty" bson:"client_id,omitempty"`
	ProjectID   string `json:"project_id,omitempty" bson:"project_id,omitempty"`
	ProjectName string `json:"project_name,omitempty" bson:"project_name,omitempty"`
	CreatedAt   string `json:"created_at" bson:"created_at"`
	UpdatedAt   string `json:"updated_at" bson:"updated_at"`
}

// Page is a keyed block of editable page content (home/about sections).
type Page struct {
	Key       string                 `json:"key" bson:"key"`
	Content   map[string]interface{} `json:"content" bson:"content"`
	UpdatedAt string                 `json:"updated_at" bson:"updated_at"`
}
