package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inventa-labs/inventa/internal/common"
)

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError translates domain errors to HTTP responses. A duplicate upload
// is a conflict that discloses the existing record's identity, so the caller
// can see who registered the content first.
func writeError(w http.ResponseWriter, err error) {

	var dup *common.DuplicateContentError
	if errors.As(err, &dup) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":                "content already registered",
			"existing_document_id": dup.ExistingID,
			"owner_id":             dup.OwnerID,
			"registered_at":        dup.RegisteredAt,
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
