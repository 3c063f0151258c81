package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayodeji-m/kobowallet/internal/adapter/http/middleware"
	"github.com/ayodeji-m/kobowallet/internal/usecase/mocks"
)

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := middleware.NewIdempotencyMiddleware(store, 0)

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"transfer_id":"t-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
	if rec.Body.String() != `{"transfer_id":"t-1"}` {
		t.Fatalf("unexpected first response: %s", rec.Body.String())
	}

	// Same key again: the handler must not run a second time
	req = httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if calls != 1 {
		t.Errorf("expected cached replay, handler ran %d times", calls)
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay header on cached response")
	}
	if rec.Body.String() != `{"transfer_id":"t-1"}` {
		t.Errorf("unexpected replayed response: %s", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_DistinctKeysRunSeparately(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := middleware.NewIdempotencyMiddleware(store, 0)

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("ok"))
	}))

	for _, key := range []string{"key-1", "key-2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
		req.Header.Set(middleware.IdempotencyKeyHeader, key)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected 2 handler calls, got %d", calls)
	}
}

func TestIdempotencyMiddleware_NoKeyPassesThrough(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := middleware.NewIdempotencyMiddleware(store, 0)

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 3 {
		t.Errorf("expected 3 handler calls without keys, got %d", calls)
	}
}

func TestIdempotencyMiddleware_ErrorResponsesNotCached(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := middleware.NewIdempotencyMiddleware(store, 0)

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"insufficient funds"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	// A failed request stores no replayable body and releases the
	// reservation, so the retry reaches the handler again.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("X-Idempotency-Replay") == "true" {
		t.Error("error response must not be replayed")
	}
	if calls != 2 {
		t.Errorf("expected retry after failure to run the handler, got %d calls", calls)
	}
}

func TestIdempotencyMiddleware_InFlightDuplicateRejected(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := middleware.NewIdempotencyMiddleware(store, 0)

	// Reserve the key as if the original request is still running.
	store.CheckAndSet(context.Background(), "key-1", nil, 0)

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"transfer_id":"t-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if calls != 0 {
		t.Fatalf("in-flight duplicate must not reach the handler, got %d calls", calls)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected %d for in-flight duplicate, got %d", http.StatusConflict, rec.Code)
	}
	if rec.Header().Get("X-Idempotency-Replay") == "true" {
		t.Error("in-flight duplicate must not carry a replay header")
	}

	// Once the original records its response, the same key replays it.
	store.Update(context.Background(), "key-1", []byte(`{"transfer_id":"t-1"}`), 0)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/transfers", nil)
	req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
	h.ServeHTTP(rec, req)

	if calls != 0 {
		t.Fatalf("replay must not reach the handler, got %d calls", calls)
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay header once the response is recorded")
	}
}

func TestIdempotencyMiddleware_GetRequestsBypass(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := middleware.NewIdempotencyMiddleware(store, 0)

	calls := 0
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
		req.Header.Set(middleware.IdempotencyKeyHeader, "key-1")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected GET requests to bypass idempotency, got %d calls", calls)
	}
}
