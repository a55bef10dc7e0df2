package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// SnapshotResponse is the search read model plus derived view state
// @Description Search pipeline snapshot
type SnapshotResponse struct {
	domain.Snapshot
	State           domain.SearchState `json:"state" example:"settled"`
	DetailAvailable bool               `json:"detail_available"`
	ShowDetail      bool               `json:"show_detail"`
	Detail          *ResultDetail      `json:"detail,omitempty"`
}

// ResultDetail holds display strings for the detail panel
// @Description Formatted metadata of the selected result
type ResultDetail struct {
	Icon     string `json:"icon" example:"doc.text.fill"`
	Size     string `json:"size" example:"8.2 kB"`
	Modified string `json:"modified" example:"4 hours ago"`
	Created  string `json:"created" example:"Jan 10, 2026 at 9:30 AM"`
}

// SetQueryRequest replaces the query text
type SetQueryRequest struct {
	Query string `json:"query" example:"notes"`
}

// ResultResponse carries the result a command acted on
type ResultResponse struct {
	Result *domain.SearchResult `json:"result"`
}

// DetailResponse reports the detail panel state after a toggle
type DetailResponse struct {
	DetailEnabled   bool `json:"detail_enabled"`
	DetailAvailable bool `json:"detail_available"`
	ShowDetail      bool `json:"show_detail"`
}

// AddPathRequest adds an indexed root
type AddPathRequest struct {
	Path string `json:"path" example:"/Users/me/Documents"`
}

// AddPathResponse reports the entry and whether it was newly added
type AddPathResponse struct {
	Path  domain.IndexedPath `json:"path"`
	Added bool               `json:"added"`
}

// ProviderInfo describes one registered search provider
type ProviderInfo struct {
	Key  string `json:"key" example:"filesystem"`
	Name string `json:"name" example:"Files"`
}

// ProvidersResponse lists providers and the active key
type ProvidersResponse struct {
	Active    string         `json:"active" example:"stub"`
	Providers []ProviderInfo `json:"providers"`
}

// SetProviderRequest switches the active provider
type SetProviderRequest struct {
	Key string `json:"key" example:"filesystem"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the storage backend)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Storage unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			s.logger.Warn("storage not ready", "error", err)
			writeError(w, http.StatusServiceUnavailable, "storage unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// handleSwagger serves the registered OpenAPI document
func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Search endpoints

// handleGetSnapshot godoc
// @Summary      Current search state
// @Description  Returns the query, published results, selection and detail state
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SnapshotResponse
// @Router       /search [get]
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newSnapshotResponse(s.searchController.Snapshot(), time.Now()))
}

// handleSearchEvents godoc
// @Summary      Stream search state
// @Description  Server-sent events; each event carries the latest snapshot. Intermediate states may be skipped.
// @Tags         Search
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {object}  SnapshotResponse
// @Router       /search/events [get]
func (s *Server) handleSearchEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Streams outlive the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	updates, unsubscribe := s.searchController.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			data, err := json.Marshal(newSnapshotResponse(snap, time.Now()))
			if err != nil {
				s.logger.Error("failed to encode snapshot", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// handleSetQuery godoc
// @Summary      Set query
// @Description  Replaces the query text. A blank query clears results immediately; otherwise a search starts in the background.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      SetQueryRequest  true  "Query text"
// @Success      200      {object}  SnapshotResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /search/query [put]
func (s *Server) handleSetQuery(w http.ResponseWriter, r *http.Request) {
	var req SetQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.searchController.SetQuery(req.Query)
	writeJSON(w, http.StatusOK, newSnapshotResponse(s.searchController.Snapshot(), time.Now()))
}

// handleNext godoc
// @Summary      Select next result
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SnapshotResponse
// @Router       /search/next [post]
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.searchController.Next()
	writeJSON(w, http.StatusOK, newSnapshotResponse(s.searchController.Snapshot(), time.Now()))
}

// handlePrevious godoc
// @Summary      Select previous result
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SnapshotResponse
// @Router       /search/previous [post]
func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.searchController.Previous()
	writeJSON(w, http.StatusOK, newSnapshotResponse(s.searchController.Snapshot(), time.Now()))
}

// handleConfirm godoc
// @Summary      Open selected result
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ResultResponse
// @Failure      409  {object}  ErrorResponse  "No result selected"
// @Failure      500  {object}  ErrorResponse  "Open failed"
// @Router       /search/confirm [post]
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	result, err := s.searchController.Confirm(r.Context())
	s.writeCommandResult(w, result, err)
}

// handlePreview godoc
// @Summary      Quick-look selected result
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ResultResponse
// @Failure      409  {object}  ErrorResponse  "No result selected"
// @Router       /search/preview [post]
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	result, err := s.searchController.Preview(r.Context())
	s.writeCommandResult(w, result, err)
}

// handleReveal godoc
// @Summary      Reveal selected result in its folder
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ResultResponse
// @Failure      409  {object}  ErrorResponse  "No result selected"
// @Router       /search/reveal [post]
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	result, err := s.searchController.Reveal(r.Context())
	s.writeCommandResult(w, result, err)
}

// handleToggleDetail godoc
// @Summary      Toggle detail panel
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DetailResponse
// @Router       /search/detail [post]
func (s *Server) handleToggleDetail(w http.ResponseWriter, r *http.Request) {
	enabled := s.searchController.ToggleDetail()
	writeJSON(w, http.StatusOK, DetailResponse{
		DetailEnabled:   enabled,
		DetailAvailable: s.searchController.DetailAvailable(),
		ShowDetail:      s.searchController.ShowDetail(),
	})
}

func (s *Server) writeCommandResult(w http.ResponseWriter, result *domain.SearchResult, err error) {
	if err != nil {
		if result != nil {
			s.logger.Error("result command failed", "path", result.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "command failed")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Result: result})
}

// Indexed path endpoints

// handleListPaths godoc
// @Summary      List indexed paths
// @Tags         Paths
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.IndexedPath
// @Router       /paths [get]
func (s *Server) handleListPaths(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.indexingService.Paths())
}

// handleAddPath godoc
// @Summary      Add indexed path
// @Description  Adds an enabled root. Adding an existing path returns it with added=false.
// @Tags         Paths
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      AddPathRequest  true  "Path"
// @Success      200      {object}  AddPathResponse  "Already present"
// @Success      201      {object}  AddPathResponse  "Added"
// @Failure      400      {object}  ErrorResponse
// @Router       /paths [post]
func (s *Server) handleAddPath(w http.ResponseWriter, r *http.Request) {
	var req AddPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, added, err := s.indexingService.AddPath(r.Context(), req.Path)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, AddPathResponse{Path: entry, Added: added})
}

// handleRemovePath godoc
// @Summary      Remove indexed path
// @Tags         Paths
// @Security     BearerAuth
// @Param        id   path  string  true  "Path ID"
// @Success      204
// @Router       /paths/{id} [delete]
func (s *Server) handleRemovePath(w http.ResponseWriter, r *http.Request) {
	if err := s.indexingService.RemovePath(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTogglePath godoc
// @Summary      Enable or disable indexed path
// @Tags         Paths
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Path ID"
// @Success      200  {object}  domain.IndexedPath
// @Failure      404  {object}  ErrorResponse
// @Router       /paths/{id}/toggle [post]
func (s *Server) handleTogglePath(w http.ResponseWriter, r *http.Request) {
	entry, err := s.indexingService.TogglePath(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Provider endpoints

// handleListProviders godoc
// @Summary      List search providers
// @Tags         Providers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProvidersResponse
// @Router       /providers [get]
func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	if s.providers == nil {
		writeJSON(w, http.StatusOK, ProvidersResponse{Providers: []ProviderInfo{}})
		return
	}

	active, _ := s.providers.Active()
	resp := ProvidersResponse{Active: active, Providers: []ProviderInfo{}}
	for _, key := range s.providers.Keys() {
		info := ProviderInfo{Key: key}
		if provider, ok := s.providers.Lookup(key); ok && provider != nil {
			info.Name = provider.Name()
		}
		resp.Providers = append(resp.Providers, info)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSetActiveProvider godoc
// @Summary      Switch active provider
// @Description  Switches the provider used by searches. The in-flight search is cancelled and the current query re-runs on the new provider.
// @Tags         Providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      SetProviderRequest  true  "Provider key"
// @Success      200      {object}  ProvidersResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "Unknown provider"
// @Router       /providers/active [put]
func (s *Server) handleSetActiveProvider(w http.ResponseWriter, r *http.Request) {
	if s.providers == nil {
		writeError(w, http.StatusNotFound, "no providers registered")
		return
	}

	var req SetProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := s.providers.SetActive(req.Key); err != nil {
		writeDomainError(w, err)
		return
	}
	s.logger.Info("active provider changed", "provider", req.Key)
	if s.searchController != nil {
		s.searchController.Refresh()
	}

	s.handleListProviders(w, r)
}

// Helper functions

func newSnapshotResponse(snap domain.Snapshot, now time.Time) SnapshotResponse {
	resp := SnapshotResponse{
		Snapshot: snap,
		State:    snap.State(),
	}

	if selected, ok := snap.Selected(); ok && selected.Type.SupportsDetail() {
		resp.DetailAvailable = true
		resp.ShowDetail = snap.DetailEnabled
		if resp.ShowDetail {
			resp.Detail = &ResultDetail{
				Icon:     selected.Type.Icon(),
				Size:     selected.FormattedSize(),
				Modified: selected.FormattedModified(now),
				Created:  selected.FormattedCreated(),
			}
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps domain errors to status codes
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoSelection):
		writeError(w, http.StatusConflict, "no result selected")
	case errors.Is(err, domain.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "search controller closed")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
