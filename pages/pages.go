package pages

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

const cacheTTL = 5 * time.Minute

func cacheKey(key string) string { return "page:" + key }

// GET /api/pages/:key — editable page sections, cached briefly.
func GetPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := ps.ByName("key")

	if cached, err := rdx.RdxGet(cacheKey(key)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var page models.Page
	if err := db.PagesCollection.FindOne(ctx, bson.M{"key": key}).Decode(&page); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}

	if body, err := json.Marshal(page); err == nil {
		if err := rdx.RdxSetWithTTL(cacheKey(key), string(body), cacheTTL); err != nil {
			log.Printf("page cache write failed: %v", err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// GET /api/admin/pages
func GetAllPages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.PagesCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"key": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	list := []models.Page{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode pages")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type pageRequest struct {
	Content map[string]interface{} `json:"content"`
}

// PUT /api/admin/pages/:key — upsert; the cache entry is invalidated.
func UpsertPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input pageRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Content == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	key := ps.ByName("key")
	page := models.Page{
		Key:       key,
		Content:   input.Content,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err := db.PagesCollection.UpdateOne(ctx, bson.M{"key": key},
		bson.M{"$set": page}, options.Update().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save page")
		return
	}

	if _, err := rdx.RdxDel(cacheKey(key)); err != nil {
		log.Printf("page cache invalidation failed: %v", err)
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// DELETE /api/admin/pages/:key
func DeletePage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	key := ps.ByName("key")
	res, err := db.PagesCollection.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Page not found")
		return
	}
	rdx.RdxDel(cacheKey(key))
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Page deleted successfully"})
}
