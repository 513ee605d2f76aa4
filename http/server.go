// Package http serves the annotated-document viewer over HTTP.
package http

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/nerview"
	"github.com/fwojciec/nerview/extract"
	"github.com/fwojciec/nerview/leaflet"
	"github.com/fwojciec/nerview/prometheus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ShutdownTimeout is the time given for outstanding requests to finish.
const ShutdownTimeout = 5 * time.Second

// RequestTimeout bounds a single request, including its lookups.
const RequestTimeout = 60 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the file index, document views, maps and JSON endpoints.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *chi.Mux
	tmpl   *template.Template

	// Addr is the bind address. Set before calling Open().
	Addr string

	Documents nerview.DocumentSource
	Extractor *extract.Extractor
	Resolver  nerview.Resolver
	Converter nerview.Converter
	Renderer  *leaflet.Renderer

	// CorsOrigins lists origins allowed to call /api. "*" allows any.
	CorsOrigins []string

	// Metrics is optional; /metrics is served only when set.
	Metrics *prometheus.Metrics

	Logger *slog.Logger
}

// NewServer returns a new Server with routes registered.
func NewServer() *Server {
	s := &Server{
		server:   &http.Server{},
		router:   chi.NewRouter(),
		tmpl:     template.Must(template.ParseFS(templateFS, "templates/*.html")),
		Renderer: leaflet.NewRenderer(),
		Logger:   slog.Default(),
	}
	s.server.Handler = s.router

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(RequestTimeout))
	s.router.Use(s.logRequests)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/view", s.handleView)
	s.router.Get("/doc", s.handleDocument)
	s.router.Get("/map", s.handleMap)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/metrics", s.handleMetrics)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowOriginFunc: s.allowOrigin,
			AllowedMethods:  []string{"GET", "OPTIONS"},
			AllowedHeaders:  []string{"Accept", "Content-Type"},
			MaxAge:          300,
		}))
		r.Get("/entities", s.handleEntities)
		r.Get("/stats", s.handleStats)
		r.Get("/ping", s.handlePing)
	})

	return s
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open binds to Addr and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	go func() { _ = s.server.Serve(s.ln) }()

	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) allowOrigin(_ *http.Request, origin string) bool {
	for _, o := range s.CorsOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(begin),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
