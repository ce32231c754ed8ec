package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/leogic/blog-backend/internal/api/httpx"
	"github.com/leogic/blog-backend/internal/api/validate"
	"github.com/leogic/blog-backend/internal/metrics"
	repo "github.com/leogic/blog-backend/internal/repository"
	"github.com/leogic/blog-backend/internal/services"
	"github.com/leogic/blog-backend/internal/storage"
)

// respondError translates service and store errors into the response
// envelope. Anything unrecognized becomes a 500 with the raw error logged.
func respondError(w http.ResponseWriter, log *slog.Logger, err error, notFoundMsg string) {
	var dup *repo.DuplicateError
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, verrs.Error())
	case errors.As(err, &dup):
		httpx.WriteError(w, http.StatusBadRequest, dup.Error())
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		httpx.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, storage.ErrNotImage), errors.Is(err, storage.ErrTooLarge):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrUploadFailed):
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Error("unexpected error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// readImageFile pulls the optional `image` part out of a multipart form.
// Returns nil data when the part is absent.
func readImageFile(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}

// uploadIfPresent stores the form's image, if any, and returns its URL.
func uploadIfPresent(r *http.Request, images storage.ImageStore) (string, bool, error) {
	if images == nil || !isMultipart(r) {
		return "", false, nil
	}
	data, contentType, err := readImageFile(r)
	if err != nil {
		return "", false, err
	}
	if data == nil {
		return "", false, nil
	}
	url, err := images.Upload(r.Context(), data, contentType)
	if err != nil {
		status := "failed"
		if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrTooLarge) {
			status = "rejected"
		}
		metrics.ImageUploads.WithLabelValues(status).Inc()
		return "", false, err
	}
	metrics.ImageUploads.WithLabelValues("ok").Inc()
	return url, true, nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
