package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sopforge/sopforge/internal/document"
	"github.com/sopforge/sopforge/internal/loader"
	"github.com/sopforge/sopforge/internal/outline"
	"github.com/sopforge/sopforge/internal/render"
	"github.com/sopforge/sopforge/internal/tree"
)

// Worker renders a single document job.
type Worker struct {
	dec       outline.Decomposer
	log       *slog.Logger
	outputDir string
	template  string
}

func NewWorker(dec outline.Decomposer, log *slog.Logger, outputDir, template string) *Worker {
	return &Worker{
		dec:       dec,
		log:       log,
		outputDir: outputDir,
		template:  template,
	}
}

// Process runs the full render pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Load and decode.
	job.SetStatus(StatusLoading, "loading")
	root, err := loader.Parse(job.YAMLData())
	if err != nil {
		log.Error("load failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}

	canonical := tree.Normalizer{Rule: w.dec.Rule, Log: w.log}.Apply(root)

	doc, err := document.FromTree(canonical)
	if err != nil {
		log.Error("decode failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}
	if err := doc.Validate(); err != nil {
		log.Error("validation failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}

	// Phase 2: Render.
	job.SetStatus(StatusRendering, "rendering")
	r, err := render.ForFormat(job.Format, w.dec, render.Options{Template: w.template})
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		log.Error("render failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	outPath := filepath.Join(w.outputDir, w.outputName(job, doc))
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		log.Error("write failed", "path", outPath, "error", err)
		job.AddError(fmt.Sprintf("write %s: %s", outPath, err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	job.SetOutput(outPath)
	job.SetStatus(StatusCompleted, "done")
	log.Info("render complete", "output", outPath)
}

func (w *Worker) outputName(job *Job, doc *document.Document) string {
	base := document.Slugify(doc.Title)
	if base == "" {
		base = strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	}
	if base == "" {
		base = job.ID
	}
	return base + render.Extension(job.Format)
}
