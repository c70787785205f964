package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yunanda/portfolio-backend/assets"
	"github.com/yunanda/portfolio-backend/errs"
)

const maxUploadMemory = 32 << 20

// isMultipart reports whether the request carries a multipart form,
// which is how the admin frontend submits entities with file uploads.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func decodeJSONBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewMalformedPayloadError("json", err)
	}
	return nil
}

// formValues collects repeated form fields, accepting both the bare
// key and the bracketed key variant.
func formValues(r *http.Request, key string) []string {
	values := append([]string{}, r.Form[key]...)
	values = append(values, r.Form[key+"[]"]...)
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// formFile returns the uploaded file under key, or nil when the field
// was not part of the form.
func formFile(r *http.Request, key string) (*assets.File, multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	file, header, err := r.FormFile(key)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errs.NewBadRequestError("invalid file upload for " + key)
	}
	return &assets.File{Name: header.Filename, Reader: file}, file, nil
}

// formFiles returns every uploaded file under key, used for gallery
// uploads with repeated file parts.
func formFiles(r *http.Request, key string) ([]assets.File, []multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	headers := r.MultipartForm.File[key]
	if len(headers) == 0 {
		headers = r.MultipartForm.File[key+"[]"]
	}

	files := make([]assets.File, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll(opened)
			return nil, nil, errs.NewBadRequestError("invalid file upload for " + key)
		}
		files = append(files, assets.File{Name: header.Filename, Reader: f})
		opened = append(opened, f)
	}
	return files, opened, nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}

func formBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func formInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// parseTimestamp accepts the timestamp formats the admin frontend
// sends for publish and completion dates.
func parseTimestamp(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, nil
		}
	}
	return nil, errs.NewInvalidFieldError("timestamp", "unrecognized format")
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
