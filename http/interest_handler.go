package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"interest-calc/domain"
	"interest-calc/service"
)

const maxBodyBytes = 1 << 16

type InterestHandler struct {
	service *service.InterestService
	logger  *slog.Logger
}

func NewInterestHandler(service *service.InterestService, logger *slog.Logger) *InterestHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InterestHandler{service: service, logger: logger}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// CalculateCompound handles POST /api/interest/compound. The body is decoded
// loosely so a string where a number belongs is reported as a type error
// rather than a malformed request.
func (h *InterestHandler) CalculateCompound(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSON(w, r) {
		return
	}

	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		h.logger.Debug("decoding compound request failed", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.CompoundValues(r.Context(),
		body["principal"],
		body["rate"],
		body["time"],
		body["compounding_frequency"],
	)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// CalculateSimple handles POST /api/interest/simple.
func (h *InterestHandler) CalculateSimple(w http.ResponseWriter, r *http.Request) {
	if !h.requireJSON(w, r) {
		return
	}

	var input domain.SimpleInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			h.writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
				Kind:    service.KindType.String(),
				Field:   typeErr.Field,
				Message: "Value must be numeric.",
			}})
			return
		}
		h.logger.Debug("decoding simple request failed", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Simple(input)
	if err != nil {
		h.writeCalcError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Health reports liveness.
func (h *InterestHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *InterestHandler) requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

func (h *InterestHandler) writeCalcError(w http.ResponseWriter, err error) {
	var ce *service.CalcError
	if !errors.As(err, &ce) {
		h.logger.Error("calculation failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusUnprocessableEntity
	if ce.Kind == service.KindType {
		status = http.StatusBadRequest
	}
	h.writeJSON(w, status, errorBody{Error: errorDetail{
		Kind:    ce.Kind.String(),
		Field:   ce.Field,
		Message: ce.Message,
	}})
}

func (h *InterestHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	// encode first so a failure does not leave a half-written 200
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("encoding response failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("writing response failed", "error", err)
	}
}
