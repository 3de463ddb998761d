package hibp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRangeClient_Lookup(t *testing.T) {
	var gotPath, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("user-agent")
		_, _ = w.Write([]byte(
			"003D68EB55068C33ACE09247EE4C639306B:3\r\n" +
				"1E4C9B93F3F0682250B6CF8331B7EE68FD8:3730330\r\n" +
				"\r\n" +
				"011053FD0102E94D6AE2F8B83D76FAF94F6:873\r\n",
		))
	}))
	defer server.Close()

	client := NewRangeClient(server.URL, "fortify-test", time.Second)
	entries, err := client.Lookup(context.Background(), "5BAA6")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if gotPath != "/range/5BAA6" {
		t.Errorf("expected path /range/5BAA6, got %s", gotPath)
	}
	if gotUserAgent != "fortify-test" {
		t.Errorf("expected user-agent fortify-test, got %s", gotUserAgent)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Suffix != "1E4C9B93F3F0682250B6CF8331B7EE68FD8" || entries[1].Count != 3730330 {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
}

func TestRangeClient_MalformedLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("NOT A VALID LINE\n"))
	}))
	defer server.Close()

	client := NewRangeClient(server.URL, "fortify-test", time.Second)
	if _, err := client.Lookup(context.Background(), "5BAA6"); err == nil {
		t.Fatal("expected an error for a malformed body")
	}
}

func TestRangeClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRangeClient(server.URL, "fortify-test", time.Second)
	if _, err := client.Lookup(context.Background(), "5BAA6"); err == nil {
		t.Fatal("expected an error for a non-200 status")
	}
}

func TestRangeClient_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	client := NewRangeClient(server.URL, "fortify-test", time.Second)
	entries, err := client.Lookup(context.Background(), "5BAA6")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
