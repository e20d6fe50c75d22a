package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexrelay/lexrelay/apimodels"
	"github.com/lexrelay/lexrelay/internal/dispatch"
	"github.com/lexrelay/lexrelay/internal/staging"
)

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req apimodels.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest,
			apimodels.NewErrorEnvelope(fmt.Sprintf("Invalid request: %v", err)))
		return
	}
	defer r.Body.Close()

	slog.Debug("Received action request", "action", req.Action)

	result, err := s.dispatcher.Do(r.Context(), dispatch.Action(req.Action), req.Params)
	if err != nil {
		slog.Error("Action dispatch failed", "action", req.Action, "error", err)
		writeEnvelope(w, http.StatusInternalServerError, apimodels.NewErrorEnvelope(err.Error()))
		return
	}

	env := apimodels.NewEnvelope(result.Data)
	if s.cfg.ExposeDegraded {
		env.Degraded = &result.Degraded
	}
	writeEnvelope(w, http.StatusOK, env)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result, err := s.dispatcher.Do(r.Context(), dispatch.ActionHealthCheck, nil)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, apimodels.NewErrorEnvelope(err.Error()))
		return
	}
	writeEnvelope(w, http.StatusOK, apimodels.NewEnvelope(result.Data))
}

func (s *Server) handleStageFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest,
			apimodels.NewErrorEnvelope(fmt.Sprintf("Invalid upload: %v", err)))
		return
	}
	defer file.Close()

	staged, err := s.staging.Add(header.Filename, header.Size, file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, staging.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeEnvelope(w, status, apimodels.NewErrorEnvelope(err.Error()))
		return
	}

	writeEnvelope(w, http.StatusOK, apimodels.NewEnvelope(toStagedFile(staged)))
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files := s.staging.List()
	out := make([]apimodels.StagedFile, len(files))
	for i, f := range files {
		out[i] = toStagedFile(f)
	}
	writeEnvelope(w, http.StatusOK, apimodels.NewEnvelope(out))
}

func (s *Server) handleRemoveFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.staging.Remove(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, staging.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeEnvelope(w, status, apimodels.NewErrorEnvelope(err.Error()))
		return
	}
	writeEnvelope(w, http.StatusOK, apimodels.NewEnvelope(map[string]string{"removed": id}))
}

func toStagedFile(f *staging.File) apimodels.StagedFile {
	return apimodels.StagedFile{
		ID:       f.ID,
		Name:     f.Name,
		Size:     f.Size,
		StagedAt: f.StagedAt,
	}
}

func writeEnvelope(w http.ResponseWriter, status int, env apimodels.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response envelope", "error", err)
	}
}
