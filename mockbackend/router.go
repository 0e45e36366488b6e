// Package mockbackend is an in-memory imitation of the Wood Knots Detection
// API. It serves the same routes and response shapes as the Flask backend so
// the client, CLI and MCP server can be developed and tested without Python
// or OpenCV.
package mockbackend

import (
	"net/http"

	"github.com/gorilla/mux"
)

// MaxUploadBytes mirrors the backend's MAX_CONTENT_LENGTH.
const MaxUploadBytes = 16 << 20

// Server holds uploaded images and their processing results.
type Server struct {
	store    *store
	pipeline Pipeline
	demo     *sample
}

// Option configures a Server.
type Option func(*Server)

// WithPipeline overrides the detection parameters.
func WithPipeline(p Pipeline) Option {
	return func(s *Server) { s.pipeline = p }
}

// WithoutDemo makes /api/demo fail, as a backend without a sample image does.
func WithoutDemo() Option {
	return func(s *Server) { s.demo = nil }
}

// New returns a Server with the default pipeline and the built-in demo board.
func New(opts ...Option) *Server {
	s := &Server{
		store:    newStore(),
		pipeline: DefaultPipeline(),
		demo:     &sample{name: "demo_board.png", ext: "png", data: DemoBoardPNG()},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router creates the router with all API routes.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recoveryMiddleware)
	router.Use(loggingMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	api.HandleFunc("/process/{imageId}", s.handleProcess).Methods(http.MethodPost)
	api.HandleFunc("/classify/{imageId}", s.handleClassify).Methods(http.MethodPost)
	api.HandleFunc("/results/{imageId}", s.handleResults).Methods(http.MethodGet)
	api.HandleFunc("/demo", s.handleDemo).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not Found"})
	})
	return router
}
