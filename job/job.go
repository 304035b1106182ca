// Package job orchestrates watermark removal over whole documents: a probe
// that decides whether normalized content reads are safe, a fixed per-page
// pipeline of artifact stripping, image block stripping and text redaction,
// and a worker pool that fans a batch of files out over concurrent jobs
// while streaming progress events.
package job

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wudi/pdfwash/contentstream"
	"github.com/wudi/pdfwash/contentstream/strip"
	"github.com/wudi/pdfwash/document"
	"github.com/wudi/pdfwash/document/unidoc"
	"github.com/wudi/pdfwash/export/docx"
	"github.com/wudi/pdfwash/observability"
	"github.com/wudi/pdfwash/render"
)

// Spec describes what to remove from a document.
type Spec struct {
	// TextTargets are literals whose occurrences are redacted on every page.
	TextTargets []string
	// ImageTargets are image identifiers whose placement blocks are stripped.
	ImageTargets []string
	// ToDoc additionally converts the stripped output to a .docx file.
	ToDoc bool
}

// Config carries the collaborators a Runner needs.
type Config struct {
	// Opener opens documents for editing. Required.
	Opener document.Opener
	// Render provides text extraction for word-processor conversion. Required
	// only when a job's Spec.ToDoc is set.
	Render render.Source
	// Strip configures image placement detection.
	Strip strip.Options
	// Logger defaults to a no-op logger.
	Logger observability.Logger
	// ExtractionAllowed gates word-processor conversion. Nil means the
	// container permission check.
	ExtractionAllowed func(path string) (bool, error)
	// PageDelay inserts a pause after each processed page, for hosts that
	// throttle the pipeline. Zero means no pause.
	PageDelay time.Duration
}

// Request is one file to process.
type Request struct {
	Input  string
	Output string
	Spec   Spec
}

// PageError records a page whose pipeline failed. The job continues with the
// remaining pages.
type PageError struct {
	Page int // one-based
	Err  error
}

// Result summarizes a finished job.
type Result struct {
	Output          string
	Pages           int
	ArtifactRegions int
	ImageBlocks     int
	SkippedBlocks   int
	Redactions      int
	// Sanitized reports whether page content was read through the
	// container's normalization pass.
	Sanitized  bool
	PageErrors []PageError
	// DocOutput and DocErr report the optional word-processor conversion.
	// DocErr does not invalidate Output.
	DocOutput string
	DocErr    error
}

// Runner executes jobs. A Runner is safe for concurrent use.
type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	if cfg.ExtractionAllowed == nil {
		cfg.ExtractionAllowed = unidoc.ExtractionAllowed
	}
	return &Runner{cfg: cfg}
}

// DocFilename maps a PDF output path to its word-processor sibling.
func DocFilename(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".docx"
}

// Process runs one job to completion. emit, when non-nil, receives the job's
// event stream; Process itself never emits DoneEvent, that is the pool's
// contract. Cancellation is observed at page boundaries only, so an
// interrupted job never leaves a half-rewritten page.
func (r *Runner) Process(ctx context.Context, req Request, emit func(Event)) (Result, error) {
	if emit == nil {
		emit = func(Event) {}
	}
	start := time.Now()
	log := r.cfg.Logger.With(observability.String("job", req.Input))

	sanitized := r.sanitizeProbe(req.Input, log)
	if !sanitized {
		msg := "content normalization degraded, using raw page streams"
		log.Warn(msg)
		emit(DiagnosticEvent{Input: req.Input, Message: msg})
	}

	doc, err := r.cfg.Opener.Open(req.Input)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	res := Result{
		Output:    req.Output,
		Pages:     doc.PageCount(),
		Sanitized: sanitized,
	}
	for i := 0; i < res.Pages; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		page, err := doc.Page(i)
		if err != nil {
			r.pageFailed(&res, emit, req.Input, i, err, log)
			continue
		}
		st, err := r.processPage(page, req.Spec, sanitized, log)
		res.ArtifactRegions += st.regions
		res.ImageBlocks += st.blocks
		res.Redactions += st.redactions
		res.SkippedBlocks += len(st.skipped)
		for _, be := range st.skipped {
			be := be
			emit(DiagnosticEvent{Input: req.Input, Page: i + 1, Message: be.Error()})
			log.Warn("image placement block skipped",
				observability.Int("page", i+1),
				observability.Error("cause", &be))
		}
		if err != nil {
			r.pageFailed(&res, emit, req.Input, i, err, log)
		}
		emit(ProgressEvent{Input: req.Input, Page: i + 1, Total: res.Pages, Phase: PhaseStrip})
		if r.cfg.PageDelay > 0 {
			select {
			case <-time.After(r.cfg.PageDelay):
			case <-ctx.Done():
				return res, ctx.Err()
			}
		}
	}

	if err := doc.Save(req.Output); err != nil {
		return res, err
	}
	log.Info("document written",
		observability.String("output", req.Output),
		observability.Int("pages", res.Pages),
		observability.Int(observability.MetricRegionsRemoved, res.ArtifactRegions),
		observability.Int(observability.MetricBlocksRemoved, res.ImageBlocks),
		observability.Int(observability.MetricRedactions, res.Redactions),
		observability.Int(observability.MetricJobTime, int(time.Since(start)/time.Millisecond)))

	if req.Spec.ToDoc {
		emit(PhaseResetEvent{Input: req.Input, Phase: PhaseDoc, Total: res.Pages})
		res.DocOutput, res.DocErr = r.convertDoc(req.Input, req.Output, emit)
		if res.DocErr != nil {
			log.Error("word-processor conversion failed",
				observability.Error("cause", res.DocErr))
			emit(DiagnosticEvent{Input: req.Input, Message: res.DocErr.Error()})
		}
	}
	return res, nil
}

func (r *Runner) pageFailed(res *Result, emit func(Event), input string, index int, err error, log observability.Logger) {
	res.PageErrors = append(res.PageErrors, PageError{Page: index + 1, Err: err})
	log.Error("page pipeline failed",
		observability.Int("page", index+1),
		observability.Error("cause", err))
	emit(DiagnosticEvent{Input: input, Page: index + 1, Message: err.Error()})
}

// sanitizeProbe decides whether the whole job may use normalized content
// reads. It opens a throwaway copy of the document and normalizes page one:
// any warning or failure there means the container struggles with this
// file's streams, and every later read falls back to the raw bytes. Probe
// open errors keep normalization on; the processing open reports them
// properly.
func (r *Runner) sanitizeProbe(path string, log observability.Logger) bool {
	start := time.Now()
	doc, err := r.cfg.Opener.Open(path)
	if err != nil {
		return true
	}
	defer doc.Close()
	if doc.PageCount() == 0 {
		return true
	}
	page, err := doc.Page(0)
	if err != nil {
		return true
	}
	_, warnings, err := page.NormalizedContent()
	log.Debug("sanitize probe finished",
		observability.Int("warnings", len(warnings)),
		observability.Int(observability.MetricSanitizeProbeTime, int(time.Since(start)/time.Millisecond)))
	if err != nil || len(warnings) > 0 {
		return false
	}
	return true
}

type pageStats struct {
	regions    int
	blocks     int
	redactions int
	skipped    []strip.BoundsError
}

// processPage runs the fixed pipeline on one page: artifact regions first,
// then image placement blocks, then text redactions. The page is reloaded
// after every committed rewrite because the content object may move inside
// the container.
func (r *Runner) processPage(page document.Page, spec Spec, sanitized bool, log observability.Logger) (pageStats, error) {
	var st pageStats
	read := func() ([]byte, error) {
		if !sanitized {
			return page.RawContent()
		}
		b, warnings, err := page.NormalizedContent()
		for _, w := range warnings {
			log.Warn("content normalization", observability.String("detail", w))
		}
		return b, err
	}

	content, err := read()
	if err != nil {
		return st, fmt.Errorf("read content: %w", err)
	}
	art := strip.Artifacts(contentstream.Split(content))
	st.regions = art.Regions
	if art.Removed > 0 {
		if err := page.ReplaceContent(art.Stream.Bytes()); err != nil {
			return st, fmt.Errorf("commit artifact strip: %w", err)
		}
		if err := page.Reload(); err != nil {
			return st, fmt.Errorf("reload after artifact strip: %w", err)
		}
	}

	if len(spec.ImageTargets) > 0 {
		content, err := read()
		if err != nil {
			return st, fmt.Errorf("read content: %w", err)
		}
		img := strip.Images(contentstream.Split(content), spec.ImageTargets, r.cfg.Strip)
		st.blocks = img.Blocks
		st.skipped = img.Skipped
		if img.Removed > 0 {
			if err := page.ReplaceContent(img.Stream.Bytes()); err != nil {
				return st, fmt.Errorf("commit image strip: %w", err)
			}
			if err := page.Reload(); err != nil {
				return st, fmt.Errorf("reload after image strip: %w", err)
			}
		}
	}

	if len(spec.TextTargets) > 0 {
		pending := 0
		for _, literal := range spec.TextTargets {
			regions, err := page.SearchText(literal)
			if err != nil {
				return st, fmt.Errorf("search %q: %w", literal, err)
			}
			for _, region := range regions {
				page.AddRedaction(region, document.White)
				pending++
			}
		}
		if pending > 0 {
			if err := page.ApplyRedactions(); err != nil {
				return st, fmt.Errorf("apply redactions: %w", err)
			}
			st.redactions = pending
		}
	}
	return st, nil
}

// convertDoc converts the already-saved PDF output to a .docx next to it.
// Conversion is gated on the container's text extraction permission; a
// denial is the one expected failure and leaves the PDF output valid.
func (r *Runner) convertDoc(input, pdfPath string, emit func(Event)) (string, error) {
	ok, err := r.cfg.ExtractionAllowed(pdfPath)
	if err != nil {
		return "", fmt.Errorf("check extraction permission: %w", err)
	}
	if !ok {
		return "", &document.ExtractionPermissionError{Path: pdfPath}
	}
	if r.cfg.Render == nil {
		return "", fmt.Errorf("no render source configured for conversion")
	}
	out := DocFilename(pdfPath)
	progress := func(current, total int) {
		emit(ProgressEvent{Input: input, Page: current, Total: total, Phase: PhaseDoc})
	}
	if err := docx.Convert(r.cfg.Render, pdfPath, out, progress); err != nil {
		return "", err
	}
	return out, nil
}
