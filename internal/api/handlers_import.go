package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/sopforge/sopforge/internal/importer"
)

// handleImport converts an uploaded legacy document into a YAML skeleton.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	if !importer.IsSupportedExtension(filename) {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s", filename))
		return
	}

	imp, err := s.importerFor(filename)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	draft, err := imp.Import(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("import failed", "filename", filename, "error", err)
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	yamlOut, err := importer.MarshalSkeleton(draft)
	if err != nil {
		s.log.Error("skeleton marshal failed", "filename", filename, "error", err)
		jsonError(w, http.StatusInternalServerError, "skeleton generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Write(yamlOut)
}

// importerFor picks the importer for a filename with server settings
// applied, so the HTTP path honors the same knobs as the CLI.
func (s *Server) importerFor(filename string) (importer.Importer, error) {
	imp, err := importer.ForFile(filename)
	if err != nil {
		return nil, err
	}
	if p, ok := imp.(*importer.PDFImporter); ok {
		p.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	return imp, nil
}
