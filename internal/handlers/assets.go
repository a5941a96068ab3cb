// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"learnpress/internal/slug"
	"learnpress/internal/tree"
)

// allowedAssetTypes lists the image types an IMAGE block can point at.
var allowedAssetTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/avif",
}

// assetResponse is returned after a successful upload. URL goes into an
// IMAGE block's content.
type assetResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadLessonAsset handles POST /lessons/{lessonId}/assets. The multipart
// field "file" must hold an image; the type is sniffed from the bytes, not
// taken from the client.
func (a *API) UploadLessonAsset(w http.ResponseWriter, r *http.Request) {
	if a.assets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Message: "Asset storage is not configured"})
		return
	}
	lessonID, err := pathID(r, "lessonId", tree.EntityLesson)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if _, err := a.svc.FindLesson(r.Context(), lessonID); err != nil {
		a.writeError(w, r, err)
		return
	}

	// Leave room for the multipart envelope around the file.
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload+1024)
	if err := r.ParseMultipartForm(a.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Message: fmt.Sprintf("File too large. Maximum size is %d bytes", a.maxUpload),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, fieldErrors{"file": "is required"})
		return
	}
	defer file.Close()

	if header.Size > a.maxUpload {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
			Message: fmt.Sprintf("File too large. Maximum size is %d bytes", a.maxUpload),
		})
		return
	}

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		a.writeError(w, r, fmt.Errorf("sniff upload: %w", err))
		return
	}
	if !allowedAsset(mt) {
		writeJSON(w, http.StatusUnsupportedMediaType, errorBody{
			Message: fmt.Sprintf("File type %q is not allowed", mt.String()),
		})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		a.writeError(w, r, fmt.Errorf("rewind upload: %w", err))
		return
	}

	key := assetKey(lessonID, header.Filename, mt.Extension())
	contentType := baseType(mt)
	if err := a.assets.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		a.log.Error("asset upload failed", "key", key, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Message: "Failed to upload file"})
		return
	}

	a.log.Info("asset uploaded", "lesson_id", lessonID, "key", key, "size", header.Size)
	writeJSON(w, http.StatusCreated, assetResponse{
		URL:         a.assets.FileURL(key),
		Key:         key,
		ContentType: contentType,
		Size:        header.Size,
	})
}

func allowedAsset(mt *mimetype.MIME) bool {
	for _, t := range allowedAssetTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

// baseType returns the allowed type mt matched, dropping parameters such
// as "; charset=utf-8" that mimetype adds to SVG.
func baseType(mt *mimetype.MIME) string {
	for _, t := range allowedAssetTypes {
		if mt.Is(t) {
			return t
		}
	}
	return mt.String()
}

// assetKey builds lessons/{lessonID}/{uuid}-{name}{ext}. The name part is
// dropped when the original filename slugs to nothing.
func assetKey(lessonID uuid.UUID, filename, ext string) string {
	id := uuid.New().String()
	if name := slug.Filename(filename); name != "" {
		id += "-" + name
	}
	return fmt.Sprintf("lessons/%s/%s%s", lessonID, id, ext)
}
