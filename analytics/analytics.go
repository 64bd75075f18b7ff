package analytics

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

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type trackRequest struct {
	Page string `json:"page"`
}

// POST /api/analytics/track — increments a Redis counter; the flush
// worker folds counters into Mongo once a minute.
func TrackVisit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input trackRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Page == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Page is required")
		return
	}

	if _, err := rdx.RdxIncr("visit:count:" + input.Page); err != nil {
		// A missed counter isn't worth failing the page load over.
		log.Printf("visit counter incr failed: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// GET /api/admin/analytics — per-page views plus headline
// totals for the dashboard.
func GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cur, err := db.AnalyticsCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"views": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	pages := []models.PageViews{}
	if err := cur.All(ctx, &pages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode analytics")
		return
	}

	var totalViews int64
	for _, p := range pages {
		totalViews += p.Views
	}

	bookings, _ := db.BookingsCollection.CountDocuments(ctx, bson.M{})
	contacts, _ := db.ContactsCollection.CountDocuments(ctx, bson.M{})
	subscribers, _ := db.NewsletterCollection.CountDocuments(ctx,
		bson.M{"status": models.SubscriberActive})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"total_views": totalViews,
		"pages":       pages,
		"bookings":    bookings,
		"contacts":    contacts,
		"subscribers": subscribers,
	})
}
