package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/scriptmentor/scriptparse/internal/pipeline"
	"github.com/scriptmentor/scriptparse/internal/report"
	"github.com/scriptmentor/scriptparse/internal/scriptstore"
)

// handleIngest queues a script for asynchronous parsing, storage, and
// (optionally) feedback delivery.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	userID := r.FormValue("user_id")
	if userID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	scriptID := r.FormValue("script_id")
	if scriptID == "" {
		scriptID = pipeline.ContentHashHex(data)[:16]
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:         pipeline.NewJobID(),
		ScriptID:   scriptID,
		UserID:     userID,
		Status:     pipeline.StatusQueued,
		Phase:      "queued",
		Filename:   sanitizeFilename(header.Filename),
		Title:      r.FormValue("title"),
		FormatHint: r.FormValue("format"),
		Force:      r.FormValue("force") == "true",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    job.ID,
		"script_id": job.ScriptID,
		"status":    job.Status,
		"poll_url":  fmt.Sprintf("/api/scripts/%s/status", job.ID),
	})
}

func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    snap.ID,
		"script_id": snap.ScriptID,
		"status":    snap.Status,
		"phase":     snap.Phase,
		"progress":  snap.Progress,
	})
}

// handleListScripts lists stored scripts for a user.
func (s *Server) handleListScripts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	scripts, err := s.orchestrator.StoreClient().ListScripts(r.Context(), userID, 200)
	if err != nil {
		jsonError(w, "failed to list scripts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"scripts": scripts})
}

// handleGetScript returns a stored script record: canonical model plus all
// derived views.
func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupScript(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// handleExportFountain serves the stored Fountain re-export as plain text.
func (s *Server) handleExportFountain(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupScript(w, r)
	if !ok {
		return
	}
	filename := strings.TrimSuffix(rec.Filename, filepath.Ext(rec.Filename))
	if filename == "" {
		filename = rec.ScriptID
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".fountain"))
	io.WriteString(w, rec.Fountain)
}

// handleReport renders the coverage report for a stored script as HTML.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupScript(w, r)
	if !ok {
		return
	}
	md := report.Markdown(rec.Screenplay, rec.Analysis)
	html, err := report.HTML(md)
	if err != nil {
		jsonError(w, "failed to render report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

// handleDeleteScript removes a stored script.
func (s *Server) handleDeleteScript(w http.ResponseWriter, r *http.Request) {
	scriptID := chi.URLParam(r, "scriptID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	if err := s.orchestrator.StoreClient().DeleteScript(r.Context(), userID, scriptID); err != nil {
		jsonError(w, "failed to delete script: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": scriptID})
}

func (s *Server) lookupScript(w http.ResponseWriter, r *http.Request) (*scriptstore.Record, bool) {
	scriptID := chi.URLParam(r, "scriptID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return nil, false
	}

	record, err := s.orchestrator.StoreClient().GetScript(r.Context(), userID, scriptID)
	if err != nil {
		jsonError(w, "failed to fetch script: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if record == nil {
		jsonError(w, "script not found", http.StatusNotFound)
		return nil, false
	}
	return record, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
