package blogs

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"atelier/db"
	"atelier/models"
	"atelier/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/blogs — published posts only, optional ?tag= filter.
func GetBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"status": models.BlogPublished}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		filter["tags"] = tag
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BlogsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	posts := []models.Blog{}
	if err := cur.All(ctx, &posts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode blogs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, posts)
}

// GET /api/blogs/:slug — drafts are invisible publicly.
func GetBlogBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var post models.Blog
	err := db.BlogsCollection.FindOne(ctx,
		bson.M{"slug": ps.ByName("slug"), "status": models.BlogPublished}).Decode(&post)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, post)
}

// GET /api/admin/blogs — drafts included.
func GetAllBlogsAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.BlogsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	posts := []models.Blog{}
	if err := cur.All(ctx, &posts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode blogs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, posts)
}

type blogRequest struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	CoverImage string   `json:"cover_image"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
	Author     string   `json:"author"`
}

func uniqueSlug(ctx context.Context, title string) string {
	slug := utils.CreateSlug(title)
	if err := db.BlogsCollection.FindOne(ctx, bson.M{"slug": slug}).Err(); err != nil {
		return slug
	}
	return slug + "-" + utils.GenerateRandomString(6)
}

// POST /api/admin/blogs
func CreateBlog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input blogRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || input.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	status := input.Status
	if status == "" {
		status = models.BlogDraft
	}
	if status != models.BlogDraft && status != models.BlogPublished {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	post := models.Blog{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Slug:       uniqueSlug(ctx, input.Title),
		Excerpt:    input.Excerpt,
		Content:    input.Content,
		CoverImage: input.CoverImage,
		Tags:       input.Tags,
		Status:     status,
		Author:     input.Author,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.BlogsCollection.InsertOne(ctx, post); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create blog post")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, post)
}

type updateBlogRequest struct {
	Title      *string   `json:"title"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"cover_image"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status"`
	Author     *string   `json:"author"`
}

// PUT /api/admin/blogs/:id
func UpdateBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req updateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"updated_at": time.Now().UTC().Format(time.RFC3339)}
	if req.Title != nil && *req.Title != "" {
		update["title"] = *req.Title
		update["slug"] = uniqueSlug(ctx, *req.Title)
	}
	if req.Excerpt != nil {
		update["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		update["content"] = *req.Content
	}
	if req.CoverImage != nil {
		update["cover_image"] = *req.CoverImage
	}
	if req.Tags != nil {
		update["tags"] = *req.Tags
	}
	if req.Status != nil {
		if *req.Status != models.BlogDraft && *req.Status != models.BlogPublished {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		update["status"] = *req.Status
	}
	if req.Author != nil {
		update["author"] = *req.Author
	}

	res, err := db.BlogsCollection.UpdateOne(ctx, bson.M{"id": ps.ByName("id")}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update blog post")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Blog post not found")
		return
	}

	var updated models.Blog
	if err := db.BlogsCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/admin/blogs/:id
func DeleteBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.BlogsCollection.DeleteOne(ctx, bson.M{"id": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Blog post deleted successfully"})
}
