package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/printworks/photomatrix/pkg/buildinfo"
	"github.com/printworks/photomatrix/pkg/errors"
	"github.com/printworks/photomatrix/pkg/grid"
	"github.com/printworks/photomatrix/pkg/pipeline"
)

// healthResponse is the /healthz payload.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Jobs    int    `json:"jobs"`
}

// createJobResponse is returned from POST /api/v1/jobs.
type createJobResponse struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Jobs:    s.jobs.Len(),
	})
}

// handleCreateJob accepts a multipart upload of photos plus render
// options and starts a pipeline run in the background.
//
// Form fields:
//
//	photos     - one or more image files (required)
//	layout     - square | landscape | portrait (optional, default auto)
//	enhance    - "true" to sharpen and boost saturation
//	fill_empty - "true" to pad unused slots with dominant-color tiles
//	dpi        - output pixel density (optional, default 200)
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request", errors.ErrCodeInvalidInput)
		return
	}
	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no photos uploaded", errors.ErrCodeEmptyInput)
		return
	}

	opts := pipeline.Options{
		Layout:    r.FormValue("layout"),
		Enhance:   r.FormValue("enhance") == "true",
		FillEmpty: r.FormValue("fill_empty") == "true",
		Logger:    s.logger,
	}
	if opts.Layout != "" {
		if _, ok := grid.Specs()[opts.Layout]; !ok {
			writeError(w, http.StatusBadRequest, "invalid layout", errors.ErrCodeInvalidLayout)
			return
		}
	}
	if v := r.FormValue("dpi"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil || dpi < 0 {
			writeError(w, http.StatusBadRequest, "invalid dpi", errors.ErrCodeInvalidInput)
			return
		}
		opts.DPI = dpi
	}

	// Spool the upload to a scratch directory so the pipeline can scan
	// it like any input directory.
	inputDir, err := spoolUpload(files)
	if err != nil {
		s.logger.Error("spool upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store upload", errors.ErrCodeInternal)
		return
	}
	opts.InputDir = inputDir

	job := s.jobs.Create()
	s.logger.Info("job created", "id", job.ID, "photos", len(files))

	go s.runJob(job.ID, opts)

	writeJSON(w, http.StatusAccepted, createJobResponse{ID: job.ID, Status: job.Status})
}

// runJob executes the pipeline for one job and records the outcome.
// Composites are kept in memory; the scratch input dir is removed when
// the run finishes.
func (s *Server) runJob(id string, opts pipeline.Options) {
	defer os.RemoveAll(opts.InputDir)

	s.jobs.Update(id, func(j *Job) { j.Status = StatusRunning })

	result, err := s.runner.Execute(context.Background(), opts)
	if err != nil {
		s.logger.Error("job failed", "id", id, "error", err)
		s.jobs.Update(id, func(j *Job) {
			j.Status = StatusFailed
			j.Error = errors.UserMessage(err)
		})
		return
	}

	s.logger.Info("job complete", "id", id,
		"composites", len(result.Composites),
		"duration", result.Stats.RenderTime)
	s.jobs.Update(id, func(j *Job) {
		j.Status = StatusComplete
		j.Result = result
		j.Composites = summarize(result.Composites)
	})
}

// summarize strips PNG bytes from the composite list for JSON status
// responses; clients download bytes via the composites endpoint.
func summarize(composites []pipeline.Composite) []pipeline.Composite {
	out := make([]pipeline.Composite, len(composites))
	for i, c := range composites {
		c.Data = nil
		out[i] = c
	}
	return out
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Snapshot(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found", errors.ErrCodeJobNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleGetComposite(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Snapshot(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found", errors.ErrCodeJobNotFound)
		return
	}
	if job.Status != StatusComplete || job.Result == nil {
		writeError(w, http.StatusConflict, "job is not complete", errors.ErrCodeInvalidInput)
		return
	}

	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > len(job.Result.Composites) {
		writeError(w, http.StatusNotFound, "composite not found", errors.ErrCodeNotFound)
		return
	}

	c := job.Result.Composites[n-1]
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(pipelineName(n))+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(c.Data)
}

// pipelineName returns the canonical filename for a composite index.
func pipelineName(n int) string {
	var o pipeline.Options
	return o.OutputName(n)
}

// spoolUpload writes multipart files into a fresh scratch directory,
// preserving upload order via a numeric prefix so batch order matches
// the order the client sent.
func spoolUpload(files []*multipart.FileHeader) (string, error) {
	dir, err := os.MkdirTemp("", "photomatrix-upload-")
	if err != nil {
		return "", err
	}
	for i, fh := range files {
		if err := spoolFile(dir, i, fh); err != nil {
			os.RemoveAll(dir)
			return "", err
		}
	}
	return dir, nil
}

func spoolFile(dir string, i int, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	name := filepath.Base(fh.Filename)
	ext := filepath.Ext(name)
	dst, err := os.Create(filepath.Join(dir, paddedName(i, ext)))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// paddedName builds an upload filename whose lexicographic order
// matches the upload order.
func paddedName(i int, ext string) string {
	return fmt.Sprintf("upload_%06d%s", i, ext)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string, code errors.Code) {
	writeJSON(w, status, errorResponse{Error: msg, Code: string(code)})
}
