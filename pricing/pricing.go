package pricing

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/rdx"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const cacheKey = "pricing:config"
const cacheTTL = 10 * time.Minute

// defaultPricing seeds the estimator when nothing is configured yet.
func defaultPricing() models.Pricing {
	return models.Pricing{
		ID: uuid.NewString(),
		WebsiteTypes: []models.WebsiteType{
			{Name: "Landing Page", Price: 15000},
			{Name: "Business Website", Price: 30000},
			{Name: "E-commerce", Price: 60000},
			{Name: "Web Application", Price: 100000},
		},
		Technologies: []models.Technology{
			{Name: "WordPress", Price: 0},
			{Name: "React", Price: 10000},
			{Name: "Custom Stack", Price: 20000},
		},
		Features: []models.Feature{
			{Name: "Blog", Price: 5000},
			{Name: "Payment Gateway", Price: 10000},
			{Name: "Admin Dashboard", Price: 15000},
			{Name: "SEO Setup", Price: 5000},
		},
		TimelineMultipliers: []models.TimelineMultiplier{
			{Range: "2-4 weeks", Multiplier: 1.5},
			{Range: "1-2 months", Multiplier: 1.0},
			{Range: "2+ months", Multiplier: 0.9},
		},
		Currency:       "INR",
		CurrencySymbol: "₹",
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
}

func load(ctx context.Context) (models.Pricing, error) {
	var cfg models.Pricing
	err := db.PricingCollection.FindOne(ctx, bson.M{}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		cfg = defaultPricing()
		if _, err := db.PricingCollection.InsertOne(ctx, cfg); err != nil {
			return models.Pricing{}, err
		}
		return cfg, nil
	}
	return cfg, err
}

// GET /api/pricing — public estimator config, cached in Redis.
func GetPricing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cfg, err := load(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if body, err := json.Marshal(cfg); err == nil {
		if err := rdx.RdxSetWithTTL(cacheKey, string(body), cacheTTL); err != nil {
			log.Printf("pricing cache write failed: %v", err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

type pricingRequest struct {
	WebsiteTypes        []models.WebsiteType        `json:"website_types"`
	Technologies        []models.Technology         `json:"technologies"`
	Features            []models.Feature            `json:"features"`
	TimelineMultipliers []models.TimelineMultiplier `json:"timeline_multipliers"`
	Currency            string                      `json:"currency"`
	CurrencySymbol      string                      `json:"currency_symbol"`
}

// PUT /api/admin/pricing — replaces the estimator configuration.
func UpdatePricing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input pricingRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.WebsiteTypes) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one website type is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	existing, err := load(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = existing.Currency
	}
	symbol := input.CurrencySymbol
	if symbol == "" {
		symbol = existing.CurrencySymbol
	}

	updated := models.Pricing{
		ID:                  existing.ID,
		WebsiteTypes:        input.WebsiteTypes,
		Technologies:        input.Technologies,
		Features:            input.Features,
		TimelineMultipliers: input.TimelineMultipliers,
		Currency:            currency,
		CurrencySymbol:      symbol,
		UpdatedAt:           time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.PricingCollection.UpdateOne(ctx, bson.M{"id": existing.ID},
		bson.M{"$set": updated}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update pricing")
		return
	}

	if _, err := rdx.RdxDel(cacheKey); err != nil {
		log.Printf("pricing cache invalidation failed: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
