package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/finova-data/finova-client/pkg/client"
	"github.com/finova-data/finova-client/pkg/models/api"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Surface is the slice of the gateway the dashboard forwards to.
// *client.Client satisfies it.
type Surface interface {
	Session(ctx context.Context) (*api.SessionPayload, error)
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, username, password, email string) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	Analyze(ctx context.Context, filename string, file io.Reader, includeExplanation bool) (*api.AnalysisResult, error)
	History(ctx context.Context) ([]api.HistoryEntry, error)
	HistoryDetail(ctx context.Context, id int) (*api.HistoryDetail, error)
	Trend(ctx context.Context) (*api.TrendReport, error)
	Health(ctx context.Context) (*api.HealthStatus, error)
	Chat(ctx context.Context, message string, contextBundle map[string]interface{}) (*api.ChatResponse, error)
}

type Handler struct {
	surface Surface
}

func NewHandler(surface Surface) *Handler {
	return &Handler{surface: surface}
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	payload, err := h.surface.Session(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, payload)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "request body must be valid JSON"})
		return
	}

	resp, err := h.surface.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "request body must be valid JSON"})
		return
	}

	resp, err := h.surface.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.surface.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "CSV file must be uploaded with form field 'file'"})
		return
	}
	defer file.Close()

	explain := r.URL.Query().Get("explain") != "0"
	result, err := h.surface.Analyze(r.Context(), header.Filename, file, explain)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.surface.History(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, entries)
}

func (h *Handler) HistoryDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "analysis id must be an integer"})
		return
	}

	detail, err := h.surface.HistoryDetail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	report, err := h.surface.Trend(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.surface.Health(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"gateway":         "ok",
		"status":          status.Status,
		"ontology_loaded": status.OntologyLoaded,
	})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "request body must be valid JSON"})
		return
	}

	resp, err := h.surface.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps an upstream APIError through verbatim, status included;
// transport-level failures surface as 502.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, r, apiErr.StatusCode, map[string]string{"error": apiErr.Message})
		return
	}

	zerolog.Ctx(r.Context()).Warn().Err(err).Msg("upstream request failed")
	writeJSON(w, r, http.StatusBadGateway, map[string]string{"error": "upstream engine unavailable"})
}
