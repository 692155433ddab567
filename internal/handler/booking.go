package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ybfstudio/booking-api/internal/domain"
)

// CreateBooking handles POST /service-requests.
//
// The body is decoded as untyped JSON and narrowed by the service layer,
// which collects every field violation before rejecting. Client errors come
// back as 400 with the full violation list; infrastructure failures are
// logged in detail and surfaced as an opaque 500.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	// UseNumber keeps price_paid as its literal text so the normalizer can
	// distinguish numbers from numeric strings without precision loss.
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	var userID *string
	if s.sessions != nil {
		if id, ok := s.sessions.UserID(r); ok {
			userID = &id
		}
	}

	record, err := s.bookings.Create(r.Context(), raw, userID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		slog.ErrorContext(r.Context(), "booking creation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "service request submitted successfully",
		"request": record,
	})
}

// validationMessage extracts the joined violation list from a validation
// error, stripping the sentinel prefix the error chain adds.
func validationMessage(err error) string {
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) {
		return strings.Join(verrs.Violations, "; ")
	}
	return strings.TrimPrefix(err.Error(), "validation error: ")
}
