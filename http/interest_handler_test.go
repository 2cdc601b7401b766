package http

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interest-calc/repository"
	"interest-calc/service"
)

func newTestRouter(t *testing.T, capacity int) http.Handler {
	t.Helper()
	svc := service.NewInterestService(repository.NewMemoryCache(), time.Minute, nil)
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)
	return NewRouter(NewInterestHandler(svc, nil), limiter, []string{"http://localhost:5173"})
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Error
}

func TestCalculateCompoundHandler_OK(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/compound", `{
		"principal": 1000,
		"rate": 0.05,
		"time": 3,
		"compounding_frequency": 12
	}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		FutureValue float64 `json:"future_value"`
		Interest    float64 `json:"interest"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if math.Abs(result.FutureValue-1161.472274864486) > 1e-9 {
		t.Errorf("unexpected future value %v", result.FutureValue)
	}
}

func TestCalculateCompoundHandler_TypeError(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/compound",
		`{"principal": "1000", "rate": 0.05, "time": 3, "compounding_frequency": 1}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	detail := decodeError(t, w)
	if detail.Kind != "type" || detail.Field != service.FieldPrincipal {
		t.Errorf("unexpected error %+v", detail)
	}
}

func TestCalculateCompoundHandler_FractionalFrequency(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/compound",
		`{"principal": 1000, "rate": 0.05, "time": 3, "compounding_frequency": 1.5}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Field != service.FieldFrequency {
		t.Errorf("unexpected error %+v", detail)
	}
}

func TestCalculateCompoundHandler_ValueError(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/compound",
		`{"principal": 1000, "rate": -0.02, "time": 2, "compounding_frequency": 4}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	detail := decodeError(t, w)
	if detail.Kind != "value" || detail.Message != "Interest rate must be a positive value." {
		t.Errorf("unexpected error %+v", detail)
	}
}

func TestCalculateCompoundHandler_Overflow(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/compound",
		`{"principal": 1e300, "rate": 1, "time": 1000, "compounding_frequency": 1}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	detail := decodeError(t, w)
	if detail.Kind != "value" || detail.Field != service.FieldFutureValue {
		t.Errorf("unexpected error %+v", detail)
	}
	if detail.Message != "Result is not representable." {
		t.Errorf("unexpected message %q", detail.Message)
	}
}

func TestCalculateCompoundHandler_BadRequest(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/compound", `{invalid-json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateCompoundHandler_MethodNotAllowed(t *testing.T) {

	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/interest/compound", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateCompoundHandler_UnsupportedMediaType(t *testing.T) {

	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/api/interest/compound", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestCalculateSimpleHandler_OK(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/simple", `{"principal": 1000, "rate": 0.05, "time": 2}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result struct {
		Interest    float64 `json:"interest"`
		TotalAmount float64 `json:"total_amount"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if math.Abs(result.Interest-100) > 1e-9 || math.Abs(result.TotalAmount-1100) > 1e-9 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestCalculateSimpleHandler_RateOutOfRange(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/simple", `{"principal": 1000, "rate": 1.5, "time": 2}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if detail := decodeError(t, w); detail.Field != service.FieldRate {
		t.Errorf("unexpected error %+v", detail)
	}
}

func TestCalculateSimpleHandler_Overflow(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/simple", `{"principal": 1e308, "rate": 1, "time": 10}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if detail := decodeError(t, w); detail.Kind != "value" || detail.Field != service.FieldTotalAmount {
		t.Errorf("unexpected error %+v", detail)
	}
}

func TestCalculateSimpleHandler_TypeError(t *testing.T) {

	router := newTestRouter(t, 100)

	w := postJSON(router, "/api/interest/simple", `{"principal": 1000, "rate": "high", "time": 2}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	detail := decodeError(t, w)
	if detail.Kind != "type" || detail.Field != "rate" {
		t.Errorf("unexpected error %+v", detail)
	}
}

func TestRouter_RateLimited(t *testing.T) {

	router := newTestRouter(t, 2)
	body := `{"principal": 1000, "rate": 0.05, "time": 2}`

	for i := 0; i < 2; i++ {
		if w := postJSON(router, "/api/interest/simple", body); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := postJSON(router, "/api/interest/simple", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Errorf("expected Retry-After header")
	}
}

func TestHealth(t *testing.T) {

	router := newTestRouter(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
