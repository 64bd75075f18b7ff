package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"atelier/db"
	"atelier/middleware"
	"atelier/models"
	"atelier/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const uploadDir = "static/uploads"
const thumbDir = "static/uploads/thumbs"
const maxUploadSize = 10 << 20

// POST /api/admin/storage/upload — multipart upload. Images get a
// 200px thumbnail alongside the original.
func UploadFile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		utils.RespondWithError(w, http.StatusBadRequest, "File exceeds 10MB limit")
		return
	}

	if err := utils.EnsureDir(uploadDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	safeName := utils.SanitizeFilename(header.Filename)
	storedName := fmt.Sprintf("%d_%s", time.Now().Unix(), safeName)
	path := filepath.Join(uploadDir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save file")
		return
	}
	dst.Close()

	mimeType := header.Header.Get("Content-Type")
	thumb := ""
	if strings.HasPrefix(mimeType, "image/") {
		if t, err := createThumbnail(path, storedName); err == nil {
			thumb = t
		} else {
			log.Printf("thumbnail generation failed for %s: %v", storedName, err)
		}
	}

	uploadedBy := middleware.UserIDFromContext(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stored := models.StoredFile{
		ID:         uuid.NewString(),
		Name:       header.Filename,
		Path:       "/" + filepath.ToSlash(path),
		Thumb:      thumb,
		MimeType:   mimeType,
		Size:       header.Size,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := db.FilesCollection.InsertOne(ctx, stored); err != nil {
		os.Remove(path)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record file")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, stored)
}

// createThumbnail writes a 200px-wide Lanczos resize next to the
// original and returns its public path.
func createThumbnail(srcPath, storedName string) (string, error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, 200, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, storedName)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(thumbPath), nil
}

// GET /api/admin/storage/files
func GetAllFiles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.FilesCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cur.Close(ctx)

	files := []models.StoredFile{}
	if err := cur.All(ctx, &files); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode files")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, files)
}

// DELETE /api/admin/storage/files/:id — removes the record and the
// files on disk.
func DeleteFile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var stored models.StoredFile
	if err := db.FilesCollection.FindOne(ctx, bson.M{"id": ps.ByName("id")}).Decode(&stored); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	if _, err := db.FilesCollection.DeleteOne(ctx, bson.M{"id": stored.ID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	for _, p := range []string{stored.Path, stored.Thumb} {
		if p == "" {
			continue
		}
		if err := os.Remove(strings.TrimPrefix(p, "/")); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove %s: %v", p, err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
