package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"amora/internal/config"
)

const maxUploadMemory = 32 << 20 // 32MB

// UploadHandler stores multipart photo uploads in S3 and hands the public
// URL back to the client. Each endpoint writes under its own key prefix so
// feed photos, store images and profile pictures stay separable in the
// bucket.
type UploadHandler struct {
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

func NewUploadHandler(s3Config *config.S3Config) *UploadHandler {
	return &UploadHandler{
		s3Client:      s3Config.Client,
		bucket:        s3Config.Bucket,
		publicBaseURL: s3Config.PublicBaseURL,
	}
}

func (h *UploadHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "photos")
}

func (h *UploadHandler) UploadPostPhoto(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "posts")
}

func (h *UploadHandler) UploadStoreImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "store-images")
}

func (h *UploadHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "profile-pics")
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request, prefix string) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "No file uploaded")
		return
	}
	defer file.Close()

	key := filepath.Join(prefix, uuid.NewString()+filepath.Ext(fileHeader.Filename))

	uploader := manager.NewUploader(h.s3Client)
	_, err = uploader.Upload(r.Context(), &s3.PutObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		log.Printf("Failed to upload file %s to S3: %v", fileHeader.Filename, err)
		writeJSONError(w, http.StatusInternalServerError, "upload_failed", "Failed to upload file")
		return
	}

	url := strings.TrimRight(h.publicBaseURL, "/") + "/" + key
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "File uploaded successfully",
		"file_url": url,
	})
}
