// Package httpapi serves the MCP endpoint over HTTP together with health,
// protected-resource metadata and a structure viewer.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wagnerlima/glyco-studio/internal/models"
	"github.com/wagnerlima/glyco-studio/internal/storage"
)

// Config controls authentication and throttling of the HTTP surface.
type Config struct {
	// BearerToken gates /mcp and the viewer. Empty disables authentication.
	BearerToken string
	// ResourceURL is this server's public URL, advertised in resource metadata.
	ResourceURL string
	// AuthServerURL is the authorization server that issues BearerToken.
	AuthServerURL string
	// RateLimit is the sustained requests per second on /mcp. Zero disables it.
	RateLimit float64
	RateBurst int
}

// Server routes HTTP requests.
type Server struct {
	config  Config
	meta    *storage.MetaStore
	mcp     http.Handler
	limiter *rate.Limiter
	mux     *http.ServeMux
}

// NewServer wires mcpHandler and the viewer behind the configured middleware.
func NewServer(config Config, meta *storage.MetaStore, mcpHandler http.Handler) *Server {
	s := &Server{
		config: config,
		meta:   meta,
		mcp:    mcpHandler,
		mux:    http.NewServeMux(),
	}
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}
	s.registerRoutes()
	return s
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /.well-known/oauth-protected-resource", s.handleProtectedResource)
	s.mux.Handle("/mcp", s.requireBearer(s.throttle(s.mcp)))
	s.mux.Handle("GET /campaigns/{campaign}/designs/{id}/viewer", s.requireBearer(http.HandlerFunc(s.handleViewer)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleProtectedResource(w http.ResponseWriter, r *http.Request) {
	servers := []string{}
	if s.config.AuthServerURL != "" {
		servers = append(servers, s.config.AuthServerURL)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"resource":                 s.config.ResourceURL,
		"authorization_servers":    servers,
		"bearer_methods_supported": []string{"header", "query"},
	})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	campaign, id := r.PathValue("campaign"), r.PathValue("id")

	c, err := s.meta.GetCampaign(r.Context(), campaign)
	if err != nil {
		writeError(w, err)
		return
	}
	ds, err := storage.OpenDesigns(s.meta.CampaignDBPath(c))
	if err != nil {
		writeError(w, err)
		return
	}
	defer ds.Close()

	d, err := ds.GetDesign(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !hasStructure(d) {
		http.Error(w, "design has no structure", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ViewerPage(c.Name, d).Render(r.Context(), w); err != nil {
		slog.Error("render viewer", "campaign", c.Name, "design", d.ID, "err", err)
		http.Error(w, "templ: failed to render template", http.StatusInternalServerError)
	}
}

func hasStructure(d *models.Design) bool {
	return d.Format == "pdb" || d.Format == "cif"
}

// requireBearer rejects requests without the configured token. The token is
// read from the Authorization header or the access_token query parameter.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	if s.config.BearerToken == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("access_token")
		if h := r.Header.Get("Authorization"); h != "" {
			token, _ = strings.CutPrefix(h, "Bearer ")
		}
		if token != s.config.BearerToken {
			w.Header().Set("WWW-Authenticate", `Bearer resource_metadata="`+strings.TrimSuffix(s.config.ResourceURL, "/")+`/.well-known/oauth-protected-resource"`)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) throttle(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate_limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	slog.Error("viewer lookup", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}
