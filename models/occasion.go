package models

// Occasion services are packaged event mini-sites (birthday, proposal,
// anniversary). A customer request for one is fulfilled by generating a
// short-lived shareable link.

const (
	RequestPending    = "pending"
	RequestInProgress = "in_progress"
	RequestCompleted  = "completed"
	RequestCancelled  = "cancelled"
)

type OccasionService struct {
	ID            string   `json:"id" bson:"id"`
	Name          string   `json:"name" bson:"name"`
	EventType     string   `json:"event_type" bson:"event_type"`
	Description   string   `json:"description" bson:"description"`
	Features      []string `json:"features,omitempty" bson:"features,omitempty"`
	OriginalPrice float64  `json:"original_price" bson:"original_price"`
	OfferPrice    float64  `json:"offer_price" bson:"offer_price"`
	Currency      string   `json:"currency" bson:"currency"`
	Images        []string `json:"images,omitempty" bson:"images,omitempty"`
	IsActive      bool     `json:"is_active" bson:"is_active"`
	DisplayOrder  int      `json:"display_order" bson:"display_order"`
	CreatedAt     string   `json:"created_at" bson:"created_at"`
	UpdatedAt     string   `json:"updated_at" bson:"updated_at"`
	CreatedBy     string   `json:"created_by" bson:"created_by"`
}

type ServiceRequest struct {
	ID          string `json:"id" bson:"id"`
	ServiceID   string `json:"service_id" bson:"service_id"`
	ServiceName string `json:"service_name" bson:"service_name"`
	EventType   string `json:"event_type" bson:"event_type"`

	CustomerName     string `json:"customer_name" bson:"customer_name"`
	CustomerEmail    string `json:"customer_email" bson:"customer_email"`
	CustomerPhone    string `json:"customer_phone" bson:"customer_phone"`
	CustomerWhatsapp string `json:"customer_whatsapp,omitempty" bson:"customer_whatsapp,omitempty"`

	EventDate           string   `json:"event_date,omitempty" bson:"event_date,omitempty"`
	RecipientName       string   `json:"recipient_name,omitempty" bson:"recipient_name,omitempty"`
	Message             string   `json:"message,omitempty" bson:"message,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty" bson:"special_instructions,omitempty"`
	UploadedFiles       []string `json:"uploaded_files,omitempty" bson:"uploaded_files,omitempty"`

	Status     string `json:"status" bson:"status"`
	AdminNotes string `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`

	GeneratedLinkID string `json:"generated_link_id,omitempty" bson:"generated_link_id,omitempty"`

	CreatedAt string `json:"created_at" bson:"created_at"`
	UpdatedAt string `json:"updated_at" bson:"updated_at"`
}

type GeneratedLink struct {
	ID            string `json:"id" bson:"id"`
	RequestID     string `json:"request_id" bson:"request_id"`
	ServiceName   string `json:"service_name" bson:"service_name"`
	CustomerName  string `json:"customer_name" bson:"customer_name"`
	RecipientName string `json:"recipient_name,omitempty" bson:"recipient_name,omitempty"`

	LinkURL   string `json:"link_url" bson:"link_url"`
	ShortCode string `json:"short_code" bson:"short_code"`

	ExpiryHours int    `json:"expiry_hours" bson:"expiry_hours"`
	CreatedAt   string `json:"created_at" bson:"created_at"`
	ExpiresAt   string `json:"expires_at" bson:"expires_at"`

	IsActive     bool   `json:"is_active" bson:"is_active"`
	IsExpired    bool   `json:"is_expired" bson:"is_expired"`
	ViewsCount   int64  `json:"views_count" bson:"views_count"`
	LastViewedAt string `json:"last_viewed_at,omitempty" bson:"last_viewed_at,omitempty"`

	CreatedBy string `json:"created_by" bson:"created_by"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
}
