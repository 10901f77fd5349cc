package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientRephrase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rephrase" {
			t.Errorf("path: got %q, want /rephrase", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "k" {
			t.Errorf("X-API-Key: got %q, want %q", got, "k")
		}
		var req rephraseRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(rephraseResponse{Original: req.Message, Tone: "neutral", Rephrased: "Hello there."})
	}))
	defer srv.Close()

	c := &client{http: srv.Client(), baseURL: srv.URL, apiKey: "k"}
	r := c.benchmark(Sample{Name: "tiny", Text: "hi"}, 1)
	if r.Error != "" {
		t.Fatalf("error: %s", r.Error)
	}
	if r.Tone != "neutral" || r.OutChars != len("Hello there.") {
		t.Errorf("result: got %+v", r)
	}
}

func TestClientRephraseHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"rephrase failed"}`))
	}))
	defer srv.Close()

	c := &client{http: srv.Client(), baseURL: srv.URL}
	r := c.benchmark(Sample{Name: "tiny", Text: "hi"}, 1)
	if !strings.Contains(r.Error, "HTTP 500") {
		t.Errorf("error: got %q, want HTTP 500", r.Error)
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []result{
		{Sample: "tiny", Chars: 11, Run: 1, Tone: "neutral", WallMs: 420, OutChars: 33},
		{Sample: "short", Chars: 70, Run: 1, Error: "HTTP 500"},
	})

	out := buf.String()
	for _, want := range []string{"Sample", "tiny", "neutral", "420", "3.00", "FAIL"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
