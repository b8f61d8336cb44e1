// Package server exposes the blocker check over HTTP.
//
// A single POST endpoint accepts the same inputs the CLI reads from
// flags and files and answers with the rendered report plus the raw
// chains, so CI jobs can gate on Python 3 readiness without running the
// tool locally. The server keeps no state between requests; every check
// queries the index fresh.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/matzehuels/py3ready/pkg/check"
	"github.com/matzehuels/py3ready/pkg/extract"
	"github.com/matzehuels/py3ready/pkg/httputil"
	"github.com/matzehuels/py3ready/pkg/report"
)

// Server answers blocker-check requests against a single oracle.
type Server struct {
	oracle check.Oracle
	logger *log.Logger
	opts   check.Options
}

// New returns a Server resolving blockers through oracle. Resolution
// progress is forwarded to logger at debug level unless opts carries its
// own callback.
func New(oracle check.Oracle, logger *log.Logger, opts check.Options) *Server {
	if opts.Logger == nil {
		opts.Logger = func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}
	}
	return &Server{oracle: oracle, logger: logger, opts: opts}
}

// Router builds the routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/check", s.handleCheck)
	return r
}

type checkRequest struct {
	Projects     []string `json:"projects,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Metadata     string   `json:"metadata,omitempty"`
	Pyproject    string   `json:"pyproject,omitempty"`
}

type checkResponse struct {
	ID       string        `json:"id"`
	Blocked  bool          `json:"blocked"`
	Seeds    int           `json:"seeds"`
	Messages []string      `json:"messages"`
	Chains   []check.Chain `json:"chains"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteErrorMessage(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	seeds, err := seedsFrom(req)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err)
		return
	}
	if len(seeds) == 0 {
		httputil.WriteErrorMessage(w, http.StatusBadRequest,
			"missing 'requirements', 'metadata', 'projects', or 'pyproject'")
		return
	}

	chains, err := check.Blockers(r.Context(), s.oracle, seeds, s.opts)
	if err != nil {
		// The run aborts on the first oracle failure; the error names
		// the project whose lookup failed.
		httputil.WriteError(w, http.StatusBadGateway, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, checkResponse{
		ID:       requestID(r.Context()),
		Blocked:  len(chains) > 0,
		Seeds:    len(seeds),
		Messages: report.Render(chains),
		Chains:   chains,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// seedsFrom assembles the seed set from every input the request carries,
// mirroring how the CLI merges its flags.
func seedsFrom(req checkRequest) ([]string, error) {
	var sets [][]string
	if len(req.Projects) > 0 {
		named := make([]string, 0, len(req.Projects))
		for _, p := range req.Projects {
			named = append(named, extract.Normalize(p))
		}
		sets = append(sets, named)
	}
	if req.Requirements != "" {
		sets = append(sets, extract.FromRequirements(req.Requirements))
	}
	if req.Metadata != "" {
		sets = append(sets, extract.FromMetadata(req.Metadata))
	}
	if req.Pyproject != "" {
		names, err := extract.FromPyProject([]byte(req.Pyproject))
		if err != nil {
			return nil, err
		}
		sets = append(sets, names)
	}
	return extract.Union(sets...), nil
}

type ctxKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(withRequestID(r.Context(), id)))

		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
