package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sopforge/sopforge/internal/pipeline"
	"github.com/sopforge/sopforge/internal/render"
)

// handleCreateJob queues an asynchronous render job.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "markdown"
	}
	if !render.SupportedFormats[strings.ToLower(format)] {
		jsonError(w, http.StatusBadRequest, "unsupported output format: "+format)
		return
	}

	job := pipeline.NewJob(filename, format, data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	s.log.Info("job queued", "job_id", job.ID, "filename", filename, "format", format,
		"queue_depth", s.orchestrator.QueueDepth())
	writeJSON(w, http.StatusAccepted, job.Snapshot())
}

// handleJobStatus reports the state of a queued or finished job.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(id)
	if job == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
