package mock

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// HibpServer emulates the Have I Been Pwned range and breach endpoints.
// Scenarios seed it with plaintext passwords and breach records, and can
// force failures to exercise upstream-error paths.
type HibpServer struct {
	server *httptest.Server

	mu       sync.Mutex
	suffixes map[string]map[string]int64 // prefix -> suffix -> count
	breaches map[string][]HibpBreach     // email -> records
	failing  bool
}

type HibpBreach struct {
	Name        string   `json:"Name"`
	Title       string   `json:"Title"`
	Domain      string   `json:"Domain"`
	BreachDate  string   `json:"BreachDate"`
	PwnCount    int64    `json:"PwnCount"`
	Description string   `json:"Description"`
	DataClasses []string `json:"DataClasses"`
	IsVerified  bool     `json:"IsVerified"`
	IsSensitive bool     `json:"IsSensitive"`
}

func NewHibpServer() *HibpServer {
	h := &HibpServer{
		suffixes: make(map[string]map[string]int64),
		breaches: make(map[string][]HibpBreach),
	}
	h.server = httptest.NewServer(http.HandlerFunc(h.handle))
	return h
}

func (h *HibpServer) URL() string {
	return h.server.URL
}

func (h *HibpServer) Close() {
	h.server.Close()
}

// SeedPassword registers a plaintext password with the count of times it
// appears in the corpus.
func (h *HibpServer) SeedPassword(password string, count int64) {
	digest := fmt.Sprintf("%X", sha1.Sum([]byte(password)))
	prefix, suffix := digest[:5], digest[5:]

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.suffixes[prefix] == nil {
		h.suffixes[prefix] = make(map[string]int64)
	}
	h.suffixes[prefix][suffix] = count
}

// SeedBreach registers a breach record for an email address.
func (h *HibpServer) SeedBreach(email string, breach HibpBreach) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.breaches[strings.ToLower(email)] = append(h.breaches[strings.ToLower(email)], breach)
}

// SetFailing makes every endpoint answer 503 until cleared.
func (h *HibpServer) SetFailing(failing bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failing = failing
}

// Reset drops all seeded data and clears the failure toggle.
func (h *HibpServer) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.suffixes = make(map[string]map[string]int64)
	h.breaches = make(map[string][]HibpBreach)
	h.failing = false
}

func (h *HibpServer) handle(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.failing {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/range/"):
		prefix := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/range/"))
		var lines []string
		for suffix, count := range h.suffixes[prefix] {
			lines = append(lines, fmt.Sprintf("%s:%d", suffix, count))
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, strings.Join(lines, "\r\n"))
	case strings.HasPrefix(r.URL.Path, "/breachedaccount/"):
		email := strings.ToLower(strings.TrimPrefix(r.URL.Path, "/breachedaccount/"))
		records, ok := h.breaches[email]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	default:
		http.NotFound(w, r)
	}
}
