package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/finstmt/analyzer/internal/analysis"
	"github.com/finstmt/analyzer/internal/snapshot"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, snapshots *snapshot.Service, analyzer *analysis.Service, adminAPIKey string) *http.Server {
	handler := NewHandler(snapshots, analyzer)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/ratios/{ticker}", handler.GetRatios)
	mux.HandleFunc("GET /api/v1/ratios/{ticker}/{date}", handler.GetRatiosByDate)
	mux.HandleFunc("GET /api/v1/snapshots/{ticker}", handler.ListSnapshots)

	refreshHandler := http.HandlerFunc(handler.RefreshSnapshot)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/snapshots/{ticker}/refresh", requireAuth(adminAPIKey, refreshHandler))
	} else {
		mux.Handle("POST /api/v1/snapshots/{ticker}/refresh", refreshHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
