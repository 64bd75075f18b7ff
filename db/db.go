package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	AdminsCollection          *mongo.Collection
	ClientsCollection         *mongo.Collection
	BookingsCollection        *mongo.Collection
	BookingSettingsCollection *mongo.Collection
	SlotClaimsCollection      *mongo.Collection
	ProjectsCollection        *mongo.Collection
	ClientProjectsCollection  *mongo.Collection
	ServicesCollection        *mongo.Collection
	BlogsCollection           *mongo.Collection
	SkillsCollection          *mongo.Collection
	TestimonialsCollection    *mongo.Collection
	ContactsCollection        *mongo.Collection
	NewsletterCollection      *mongo.Collection
	ConversationsCollection   *mongo.Collection
	NotesCollection           *mongo.Collection
	PricingCollection         *mongo.Collection
	PagesCollection           *mongo.Collection
	CredentialsCollection     *mongo.Collection
	FilesCollection           *mongo.Collection
	AnalyticsCollection       *mongo.Collection
	OccasionsCollection       *mongo.Collection
	ServiceRequestsCollection *mongo.Collection
	GeneratedLinksCollection  *mongo.Collection
	Client                    *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("atelier")

	AdminsCollection = database.Collection("admins")
	ClientsCollection = database.Collection("clients")
	BookingsCollection = database.Collection("bookings")
	BookingSettingsCollection = database.Collection("booking_settings")
	SlotClaimsCollection = database.Collection("slot_claims")
	ProjectsCollection = database.Collection("projects")
	ClientProjectsCollection = database.Collection("client_projects")
	ServicesCollection = database.Collection("services")
	BlogsCollection = database.Collection("blogs")
	SkillsCollection = database.Collection("skills")
	TestimonialsCollection = database.Collection("testimonials")
	ContactsCollection = database.Collection("contacts")
	NewsletterCollection = database.Collection("newsletter")
	ConversationsCollection = database.Collection("conversations")
	NotesCollection = database.Collection("notes")
	PricingCollection = database.Collection("pricing")
	PagesCollection = database.Collection("pages")
	CredentialsCollection = database.Collection("credentials")
	FilesCollection = database.Collection("files")
	AnalyticsCollection = database.Collection("analytics")
	OccasionsCollection = database.Collection("occasion_services")
	ServiceRequestsCollection = database.Collection("service_requests")
	GeneratedLinksCollection = database.Collection("generated_links")
}
