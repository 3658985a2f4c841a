package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tmorrell/whisk/internal/auth"
	"github.com/tmorrell/whisk/internal/domain"
	"github.com/tmorrell/whisk/internal/mapping"
	"github.com/tmorrell/whisk/internal/repository"
)

// Handler exposes the import pipeline as HTTP endpoints, one per entity type.
type Handler struct {
	service        *Service
	logs           repository.ImportLogRepository
	defaultActorID int64
}

// NewHTTPHandler wraps the service with the import endpoints. defaultActorID
// is the boundary-level fallback used when a request carries no X-Actor-ID
// header; the pipeline itself never defaults the actor.
func NewHTTPHandler(service *Service, logs repository.ImportLogRepository, defaultActorID int64) *Handler {
	return &Handler{
		service:        service,
		logs:           logs,
		defaultActorID: defaultActorID,
	}
}

// Routes registers the import endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/import/{entityType}", h.handleImport)
	r.Get("/api/import/{entityType}/log", h.handleLog)
}

type importRequest struct {
	Items []domain.RawRow `json:"items"`
}

type importResponse struct {
	Success        bool                `json:"success"`
	Inserted       int                 `json:"inserted"`
	Errors         int                 `json:"errors"`
	ErrorDetails   []domain.RowError   `json:"errorDetails"`
	SuccessDetails []domain.RowSuccess `json:"successDetails"`
	Message        string              `json:"message"`
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")

	actorID, err := h.resolveActor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.readRows(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := auth.ContextWithActorID(r.Context(), actorID)
	result, err := h.service.Import(ctx, entityType, rows, actorID)
	if err != nil {
		if errors.Is(err, mapping.ErrUnknownEntity) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Infrastructure failure: log the cause, show a generic message.
		slog.ErrorContext(ctx, "import batch failed",
			"entity_type", entityType,
			"actor_id", actorID,
			"error", err,
		)
		http.Error(w, "import failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success:        true,
		Inserted:       result.Inserted,
		Errors:         result.ErrorCount,
		ErrorDetails:   result.Errors,
		SuccessDetails: result.Succeeded,
		Message:        result.Message,
	})
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")

	actorID, err := h.resolveActor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.logs.List(r.Context(), actorID, entityType, limit, offset)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list import logs", "error", err)
		http.Error(w, "failed to list import logs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// resolveActor reads the actor identity from the X-Actor-ID header, falling
// back to the configured boundary default when the header is absent.
func (h *Handler) resolveActor(r *http.Request) (int64, error) {
	header := strings.TrimSpace(r.Header.Get("X-Actor-ID"))
	if header == "" {
		if h.defaultActorID > 0 {
			return h.defaultActorID, nil
		}
		return 0, errors.New("X-Actor-ID header is required")
	}

	actorID, err := strconv.ParseInt(header, 10, 64)
	if err != nil || actorID <= 0 {
		return 0, fmt.Errorf("invalid X-Actor-ID header: %q", header)
	}
	return actorID, nil
}

// readRows extracts the raw rows from either a JSON body or an uploaded
// .csv/.xlsx file.
func (h *Handler) readRows(r *http.Request) ([]domain.RawRow, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.readUpload(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %v", err)
	}

	var req importRequest
	if err := json.Unmarshal(sanitizeBody(body), &req); err != nil {
		return nil, fmt.Errorf("invalid request body: %v", err)
	}
	if req.Items == nil {
		return nil, errors.New("items is required")
	}
	return req.Items, nil
}

func (h *Handler) readUpload(r *http.Request) ([]domain.RawRow, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("invalid form data: %v", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file required: %v", err)
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	rows, err := ParseTabular(header.Filename, payload)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// sanitizeBody strips the transport artifacts some upstreams wrap around the
// payload: stray markup before or after the JSON document and double-escaped
// quotes introduced when CSV-sourced JSON is re-serialized.
func sanitizeBody(body []byte) []byte {
	start := bytes.IndexAny(body, "{[")
	if start > 0 {
		body = body[start:]
	}
	end := bytes.LastIndexAny(body, "}]")
	if end >= 0 && end < len(body)-1 {
		body = body[:end+1]
	}
	return bytes.ReplaceAll(body, []byte(`\\"`), []byte(`\"`))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
