// Package server wires the HTTP surface: Huma REST routes, Datastar SSE
// dashboard routes, and the static map page.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/wright-research/nghs-portfolio/internal/api"
	"github.com/wright-research/nghs-portfolio/internal/api/dashboard"
	"github.com/wright-research/nghs-portfolio/internal/db"
	"github.com/wright-research/nghs-portfolio/internal/portfolio"
	"github.com/wright-research/nghs-portfolio/internal/templates"
)

// Config holds the server configuration.
type Config struct {
	Host    string
	Port    string
	DataDir string
	WebDir  string // Path to web/ directory for static files and templates
}

// Server is the portfolio dashboard HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	areas    []portfolio.Area
	state    *portfolio.FilterState
	data     *portfolio.Dataset
	bus      *portfolio.EventBus
	renderer *templates.Renderer
}

// New creates a new dashboard server. The datasets are loaded once here;
// the filter engine only ever sees resolved collections.
func New(cfg Config) (*Server, error) {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("NGHS Portfolio API", "1.0.0")
	humaConfig.Info.Description = "Filter and aggregation API for the NGHS real-estate portfolio map dashboard."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer())

	humaAPI := humago.New(mux, humaConfig)

	areas, err := portfolio.LoadAreas(filepath.Join(cfg.DataDir, "areas.yaml"))
	if err != nil {
		return nil, err
	}

	data, err := portfolio.LoadDataset(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading datasets: %w", err)
	}

	bus := portfolio.NewEventBus()
	state := portfolio.NewFilterState(portfolio.AreaNames(areas), bus)

	var renderer *templates.Renderer
	if cfg.WebDir != "" {
		fragmentsDir := filepath.Join(cfg.WebDir, "templates", "fragments")
		if r, err := templates.New(fragmentsDir); err == nil {
			renderer = r
			slog.Info("loaded fragment templates", "dir", fragmentsDir)
		} else {
			slog.Warn("fragment templates unavailable, dashboard SSE disabled", "err", err)
		}
	}

	s := &Server{
		config:   cfg,
		mux:      mux,
		humaAPI:  humaAPI,
		areas:    areas,
		state:    state,
		data:     data,
		bus:      bus,
		renderer: renderer,
	}

	conn, err := db.Get(db.Config{DataDir: cfg.DataDir, DBName: "portfolio"})
	if err != nil {
		slog.Warn("duckdb unavailable, analytics endpoints disabled", "err", err)
	} else {
		s.db = conn
		if err := db.LoadPortfolio(conn, data.Portfolio()); err != nil {
			slog.Warn("portfolio ingest failed", "err", err)
		}
	}

	s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close closes server resources.
func (s *Server) Close() error {
	return db.Close()
}

// OpenAPI returns the API description for the spec export subcommand.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

func (s *Server) routes() {
	// REST API routes (OpenAPI-documented JSON endpoints)
	api.NewHandler(s.state, s.data, s.areas).RegisterRoutes(s.humaAPI)
	api.NewInfoHandler(s.config.DataDir, s.db != nil).RegisterRoutes(s.humaAPI)
	api.NewDBHandler(s.db).RegisterRoutes(s.humaAPI)

	// Dashboard SSE routes (Datastar)
	if s.renderer != nil {
		dashboard.NewHandler(s.state, s.data, s.areas, s.bus, s.renderer).RegisterRoutes(s.humaAPI)
	}

	// Filtered GeoJSON stays a plain mux handler: the collection marshals
	// itself and needs no OpenAPI schema.
	s.mux.HandleFunc("/api/v1/features", s.handleFeatures)

	// Raw datasets for the map's sources (boundaries, parcels)
	s.mux.Handle("/data/", http.StripPrefix("/data/", s.handleData(s.config.DataDir)))

	// Static files and the dashboard page
	if s.config.WebDir != "" {
		staticDir := filepath.Join(s.config.WebDir, "static")
		s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	s.mux.HandleFunc("/dashboard", s.handleDashboard)
	s.mux.HandleFunc("/", s.handleRoot)
}

// handleFeatures serves the materialized filtered portfolio collection for
// consumers that need real data subsetting (e.g. point clustering).
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	filtered := s.data.Filtered(s.state.Filter())

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(filtered); err != nil {
		slog.Error("encoding filtered features", "err", err)
	}
}

// handleData serves the raw GeoJSON datasets with the CORS headers the
// browser map needs.
func (s *Server) handleData(dataDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		http.FileServer(http.Dir(dataDir)).ServeHTTP(w, r)
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(s.config.WebDir, "templates", "dashboard.html")
	http.ServeFile(w, r, templatePath)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "nghs-portfolio",
		"status":  "running",
	})
}
