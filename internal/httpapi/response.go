package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmynk/serralheria/internal/service"
)

// maxBodyBytes bounds request bodies; drafts and profiles carry base64 images.
const maxBodyBytes = 20 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string, details any) {
	writeJSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// writeError maps service errors to HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSONError(w, http.StatusUnprocessableEntity, "validation_failed", verr.Violations)
	case errors.Is(err, service.ErrQuoteNotFound):
		writeJSONError(w, http.StatusNotFound, "quote_not_found", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		writeJSONError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, service.ErrEmptyQuote):
		writeJSONError(w, http.StatusBadRequest, "empty_quote", err.Error())
	default:
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "body_too_large", nil)
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeDocument(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// contentDisposition names an attachment with an ASCII fallback for old clients
// and the exact UTF-8 name in the RFC 5987 filename* parameter.
func contentDisposition(filename string) string {
	var fallback, encoded strings.Builder
	for _, r := range filename {
		if r >= 0x20 && r < 0x7f && r != '"' && r != '\\' {
			fallback.WriteRune(r)
		} else {
			fallback.WriteByte('_')
		}
	}
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAttrChar(c) {
			encoded.WriteByte(c)
		} else {
			fmt.Fprintf(&encoded, "%%%02X", c)
		}
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback.String(), encoded.String())
}

// isAttrChar reports whether c may appear unescaped in an RFC 5987 value.
func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
