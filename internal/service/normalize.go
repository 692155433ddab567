package service

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ybfstudio/booking-api/internal/domain"
)

// The wire payload arrives as untrusted JSON of arbitrary shape. Narrowing
// happens in exactly one place — this file — so no any-typed access leaks
// into the pipeline.

var (
	// uuidPattern accepts UUID versions 1 through 5.
	uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// emailPattern is the deliberately loose check used at the intake
	// boundary: something, an @, something, a dot, something.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NormalizeBookingInput coerces a decoded JSON body into a BookingInput,
// collecting every rule violation instead of stopping at the first.
//
// Coercion rules: fields that are not strings collapse to ""; price_paid
// accepts a JSON number or a numeric string, anything else becomes NaN and
// fails the non-negative check. Free-text fields are trimmed and then
// silently truncated to their maximum lengths — truncation is never an error.
//
// Decode the body with json.Decoder.UseNumber so numbers arrive as
// json.Number rather than float64.
func NormalizeBookingInput(raw map[string]any) (domain.BookingInput, error) {
	serviceIDStr := coerceString(raw["service_id"])
	input := domain.BookingInput{
		CustomerName:        clip(coerceString(raw["customer_name"]), domain.MaxCustomerNameLen),
		CustomerEmail:       clip(coerceString(raw["customer_email"]), domain.MaxCustomerEmailLen),
		ProjectName:         clip(coerceString(raw["project_name"]), domain.MaxProjectNameLen),
		ProjectDescription:  clip(coerceString(raw["project_description"]), domain.MaxProjectDescriptionLen),
		SpecialInstructions: clip(coerceString(raw["special_instructions"]), domain.MaxSpecialInstructionsLen),
		PricePaid:           coercePrice(raw["price_paid"]),
	}

	var violations []string

	if serviceIDStr == "" || !uuidPattern.MatchString(serviceIDStr) {
		violations = append(violations, "service_id must be a valid UUID")
	} else {
		input.ServiceID = uuid.MustParse(serviceIDStr)
	}
	if len([]rune(input.CustomerName)) < 2 {
		violations = append(violations, "customer_name must be at least 2 characters")
	}
	if !emailPattern.MatchString(input.CustomerEmail) {
		violations = append(violations, "customer_email must be a valid email address")
	}
	if math.IsNaN(input.PricePaid) || math.IsInf(input.PricePaid, 0) || input.PricePaid < 0 {
		violations = append(violations, "price_paid must be a non-negative number")
	}

	if len(violations) > 0 {
		return domain.BookingInput{}, &domain.ValidationErrors{Violations: violations}
	}
	return input, nil
}

// coerceString narrows an untyped JSON value to a string.
// Numbers are rendered as their literal text; everything else collapses to "".
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// coercePrice narrows an untyped JSON value to a price. A JSON number or a
// numeric string parses normally; anything else is NaN.
func coercePrice(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// clip trims surrounding whitespace and truncates to max runes.
func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
