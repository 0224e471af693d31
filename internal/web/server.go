// Package web serves a read-only JSON view of a source tree's breakpoints.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gubed/internal/model"
	"gubed/internal/scan"
	"gubed/internal/session"
)

type scanResponse struct {
	Root        string         `json:"root"`
	Version     string         `json:"version"`
	Breakpoints []model.Record `json:"breakpoints"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// Server answers queries against one scan root. Every request rescans, so
// results always reflect the disk.
type Server struct {
	root   string
	config scan.Config
}

// NewServer creates a Server for root.
func NewServer(root string, config scan.Config) (*Server, error) {
	s, err := scan.NewScanner(root, config)
	if err != nil {
		return nil, err
	}
	return &Server{root: s.Root(), config: config}, nil
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/breakpoints", s.handleBreakpoints)
		r.Get("/context", s.handleContext)
		r.Get("/help", handleHelp)
	})
	return r
}

// StartServer serves the API on addr until the listener fails.
func StartServer(addr string, s *Server) error {
	fmt.Printf("Starting gubed web server at http://%s\n", addr)
	fmt.Printf("Breakpoints: http://%s/api/breakpoints\n", addr)
	return http.ListenAndServe(addr, s.Router())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

func (s *Server) handleBreakpoints(w http.ResponseWriter, r *http.Request) {
	var warnings []string
	scanner, err := scan.NewScanner(s.root, s.config, scan.WithWarnFunc(func(path string, err error) {
		warnings = append(warnings, fmt.Sprintf("Could not scan %s: %v", path, err))
	}))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := scanResponse{
		Root:        s.root,
		Version:     model.Version,
		Breakpoints: model.Records(scanner.Scan()),
	}
	resp.Warnings = warnings
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	lineStr := r.URL.Query().Get("line")
	if file == "" || lineStr == "" {
		http.Error(w, "file and line are required", http.StatusBadRequest)
		return
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		http.Error(w, "invalid line number", http.StatusBadRequest)
		return
	}

	// Only files below the root are served.
	path := filepath.Join(s.root, filepath.FromSlash(file))
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(file) {
		http.Error(w, "file must be inside the scan root", http.StatusForbidden)
		return
	}

	ctx := model.GetLineContext(path, line, model.ContextBefore, model.ContextAfter)
	ctx.File = filepath.ToSlash(rel)
	status := http.StatusOK
	if ctx.ErrorMsg != "" {
		status = http.StatusNotFound
	}
	writeJSON(w, status, ctx)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Commands []session.HelpEntry `json:"commands"`
		Legend   string              `json:"legend"`
		Version  string              `json:"version"`
	}{
		Commands: session.Legend,
		Legend:   session.LegendFooter,
		Version:  model.Version,
	})
}
