package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS(inner)

	t.Run("wildcard without origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin: got %q, want %q", got, "*")
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
			t.Errorf("Allow-Credentials: got %q, want empty", got)
		}
		want := "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS"
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != want {
			t.Errorf("Allow-Methods: got %q, want %q", got, want)
		}
		if w.Code != http.StatusOK {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("reflects origin with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/rephrase", nil)
		req.Header.Set("Origin", "https://mail.example.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://mail.example.com" {
			t.Errorf("Allow-Origin: got %q, want %q", got, "https://mail.example.com")
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Allow-Credentials: got %q, want %q", got, "true")
		}
		if got := w.Header().Get("Vary"); got != "Origin" {
			t.Errorf("Vary: got %q, want %q", got, "Origin")
		}
	})

	t.Run("OPTIONS preflight returns 204", func(t *testing.T) {
		called := false
		h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/rephrase", nil)
		req.Header.Set("Origin", "chrome-extension://abcdef")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type, x-api-key")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusNoContent)
		}
		if called {
			t.Error("preflight reached the inner handler")
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "content-type, x-api-key" {
			t.Errorf("Allow-Headers: got %q, want requested headers echoed", got)
		}
	})

	t.Run("preflight permits any requested method", func(t *testing.T) {
		for _, method := range []string{"HEAD", "DELETE", "PROPFIND"} {
			req := httptest.NewRequest(http.MethodOptions, "/rephrase", nil)
			req.Header.Set("Origin", "https://anything.example.org")
			req.Header.Set("Access-Control-Request-Method", method)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			got := strings.Split(w.Header().Get("Access-Control-Allow-Methods"), ", ")
			if !slices.Contains(got, method) {
				t.Errorf("Allow-Methods for %s: got %v, want it listed", method, got)
			}
		}
	})

	t.Run("allows any header when none requested", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "*" {
			t.Errorf("Allow-Headers: got %q, want %q", got, "*")
		}
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("sets X-Request-ID header", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := RequestID(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		if id == "" {
			t.Error("X-Request-ID header not set")
		}
		if len(id) != 32 {
			t.Errorf("X-Request-ID length: got %d, want 32", len(id))
		}
	})

	t.Run("reuses well-formed client ID", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		handler := RequestID(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "3F2504E0-4F89-11D3-9A0C-0305E82C3301")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got, want := w.Header().Get("X-Request-ID"), "3f2504e04f8911d39a0c0305e82c3301"; got != want {
			t.Errorf("X-Request-ID: got %q, want %q", got, want)
		}
	})

	t.Run("replaces malformed client ID", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

		handler := RequestID(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "<script>")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		id := w.Header().Get("X-Request-ID")
		if id == "<script>" || len(id) != 32 {
			t.Errorf("X-Request-ID: got %q, want fresh 32-char id", id)
		}
	})

	t.Run("stores request ID in context", func(t *testing.T) {
		var gotID string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = RequestIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := RequestID(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if gotID == "" {
			t.Error("request ID not stored in context")
		}
		headerID := w.Header().Get("X-Request-ID")
		if gotID != headerID {
			t.Errorf("context ID %q != header ID %q", gotID, headerID)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	handler := RequestID(Logging(zap.New(core))(inner))

	req := httptest.NewRequest(http.MethodPost, "/rephrase", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusCreated)
	}

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusCreated) {
		t.Errorf("status field: got %v, want %d", fields["status"], http.StatusCreated)
	}
	if fields["path"] != "/rephrase" {
		t.Errorf("path field: got %v, want %q", fields["path"], "/rephrase")
	}
	if fields["request_id"] != w.Header().Get("X-Request-ID") {
		t.Errorf("request_id field: got %v, want %q", fields["request_id"], w.Header().Get("X-Request-ID"))
	}
}

func TestStatusWriterCapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	sw.WriteHeader(http.StatusNotFound)

	if sw.status != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", sw.status, http.StatusNotFound)
	}
}

func TestMaxBytesMiddleware(t *testing.T) {
	t.Run("allows small body", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		handler := MaxBytes(1024)(inner)
		body := strings.NewReader("small body")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		handler := MaxBytes(10)(inner)
		body := strings.NewReader(strings.Repeat("x", 100))
		req := httptest.NewRequest(http.MethodPost, "/", body)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
		}
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("expired request gets JSON 503", func(t *testing.T) {
		slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		handler := Timeout(20 * time.Millisecond)(slow)
		req := httptest.NewRequest(http.MethodPost, "/rephrase", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
		if got := w.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type: got %q, want %q", got, "application/json")
		}
		if got := w.Body.String(); got != `{"error":"request timeout"}` {
			t.Errorf("body: got %q", got)
		}
	})

	t.Run("handler content type is kept", func(t *testing.T) {
		fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; version=0.0.4")
			w.Write([]byte("ok"))
		})

		handler := Timeout(time.Second)(fast)
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Content-Type"); got != "text/plain; version=0.0.4" {
			t.Errorf("Content-Type: got %q, want handler's own", got)
		}
	})
}
