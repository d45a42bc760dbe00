package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/loader"
	"github.com/sopforge/sopforge/internal/render"
	"github.com/sopforge/sopforge/internal/tree"
)

// handleRender renders an uploaded YAML document synchronously and streams
// the artifact back in the response body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	format := r.FormValue("format")
	if format == "" {
		format = "markdown"
	}
	if !render.SupportedFormats[strings.ToLower(format)] {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("unsupported output format: %s", format))
		return
	}

	root, err := loader.Parse(data)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	canonical := tree.Normalizer{Rule: s.dec.Rule, Log: s.log}.Apply(root)

	doc, err := document.FromTree(canonical)
	if err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := doc.Validate(); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rend, err := render.ForFormat(format, s.dec, render.Options{Template: s.template})
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := rend.Render(&buf, doc); err != nil {
		s.log.Error("render failed", "filename", filename, "format", format, "error", err)
		jsonError(w, http.StatusInternalServerError, "render failed")
		return
	}

	outName := sanitizeFilename(document.Slugify(doc.Title)) + render.Extension(format)
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outName))
	w.Write(buf.Bytes())
}

// handleFormats lists supported output formats and import extensions.
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, len(render.SupportedFormats))
	for f := range render.SupportedFormats {
		formats = append(formats, f)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"output_formats": formats,
	})
}

// readUpload pulls the "file" part out of a multipart form, enforcing the
// configured upload cap. Writes the error response itself on failure.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "missing file field")
		return nil, "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return nil, "", false
	}
	return data, header.Filename, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sanitizeFilename strips path separators and dots that could escape the
// attachment name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		name = "document"
	}
	return name
}
