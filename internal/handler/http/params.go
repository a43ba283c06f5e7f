package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pmjgroup/rental-hr-backend-go/internal/handler/http/response"
	"github.com/pmjgroup/rental-hr-backend-go/internal/pkg/validator"
)

// idParam reads a UUID path parameter and writes 400 when it is malformed.
func idParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid "+label+" ID", map[string]string{name: "must be a valid UUID"})
		return "", false
	}
	return id, true
}
