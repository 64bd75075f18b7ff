package models

type Contact struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject   string `json:"subject,omitempty" bson:"subject,omitempty"`
	Message   string `json:"message" bson:"message"`
	Read      bool   `json:"read" bson:"read"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

const (
	SubscriberActive       = "subscribed"
	SubscriberUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID        string `json:"id" bson:"id"`
	Email     string `json:"email" bson:"email"`
	Status    string `json:"status" bson:"status"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

// ChatMessage is one message inside a conversation. Sender is either
// "customer" or "admin".
type ChatMessage struct {
	ID        string `json:"id" bson:"id"`
	Sender    string `json:"sender" bson:"sender"`
	Message   string `json:"message" bson:"message"`
	Read      bool   `json:"read" bson:"read"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
}

// Conversation groups a customer's chat widget messages by email.
type Conversation struct {
	ID            string        `json:"id" bson:"id"`
	CustomerName  string        `json:"customer_name" bson:"customer_name"`
	CustomerEmail string        `json:"customer_email" bson:"customer_email"`
	CustomerPhone string        `json:"customer_phone,omitempty" bson:"customer_phone,omitempty"`
	Messages      []ChatMessage `json:"messages" bson:"messages"`
	UnreadCount   int           `json:"unread_count" bson:"unread_count"`
	CreatedAt     string        `json:"created_at" bson:"created_at"`
	LastMessageAt string        `json:"last_message_at" bson:"last_message_at"`
}

type Note struct {
	ID        string   `json:"id" bson:"id"`
	Name      string   `json:"name" bson:"name"`
	Content   string   `json:"content" bson:"content"`
	Tags      []string `json:"tags" bson:"tags"`
	CreatedBy string   `json:"created_by" bson:"created_by"`
	CreatedAt string   `json:"created_at" bson:"created_at"`
	UpdatedAt string   `json:"updated_at" bson:"updated_at"`
}

// StoredFile is an uploaded asset served from /static/uploads.
type StoredFile struct {
	ID         string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	Path       string `json:"path" bson:"path"`
	Thumb      string `json:"thumb,omitempty" bson:"thumb,omitempty"`
	MimeType   string `json:"mime_type" bson:"mime_type"`
	Size       int64  `json:"size" bson:"size"`
	UploadedBy string `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt  string `json:"created_at" bson:"created_at"`
}

// PageViews is the flushed analytics counter for one page.
type PageViews struct {
	Page      string `json:"page" bson:"page"`
	Views     int64  `json:"views" bson:"views"`
	UpdatedAt string `json:"updated_at" bson:"updated_at"`
}
