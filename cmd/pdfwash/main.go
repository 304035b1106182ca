// Command pdfwash removes watermarks from PDF files: artifact-tagged
// regions, repeated image placements and text overlays. It can also guess
// likely watermark candidates and convert stripped output to .docx.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/wudi/pdfwash/contentstream/strip"
	"github.com/wudi/pdfwash/document/unidoc"
	"github.com/wudi/pdfwash/guess"
	"github.com/wudi/pdfwash/job"
	"github.com/wudi/pdfwash/observability"
	"github.com/wudi/pdfwash/ocr"
	"github.com/wudi/pdfwash/ocr/tesseract"
	"github.com/wudi/pdfwash/render/mupdf"
)

type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

type options struct {
	inputs   []string
	outDir   string
	texts    []string
	images   []string
	guess    bool
	toDoc    bool
	workers  int
	strategy strip.Strategy
	bound    int
	ocrLangs []string
	verbose  bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfwash: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdfwash: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdfwash [flags] <pdf>...\n")
		flag.PrintDefaults()
	}
	var texts, images multiFlag
	flag.Var(&texts, "text", "Text literal to redact (repeatable)")
	flag.Var(&images, "image", "Image identifier whose placements are stripped, e.g. 7 for /Im7 (repeatable)")
	outDir := flag.String("out", "washed", "Directory for stripped output files")
	guessMode := flag.Bool("guess", false, "Print watermark candidates instead of processing")
	toDoc := flag.Bool("docx", false, "Also convert each output to .docx")
	workers := flag.Int("workers", 4, "Concurrent jobs")
	strategy := flag.String("strategy", "block", "Image block detection: block or line-scan")
	bound := flag.Int("bound", strip.DefaultMaxBlockLines, "Line bound for the line-scan strategy")
	ocrLangs := flag.String("ocr", "", "Comma-separated OCR languages for guessing scanned pages, empty disables OCR")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("no input files")
	}
	opts.inputs = flag.Args()
	opts.outDir = *outDir
	opts.texts = texts
	opts.images = images
	opts.guess = *guessMode
	opts.toDoc = *toDoc
	opts.workers = *workers
	opts.bound = *bound
	opts.verbose = *verbose
	if *ocrLangs != "" {
		opts.ocrLangs = strings.Split(*ocrLangs, ",")
	}
	switch *strategy {
	case "block":
		opts.strategy = strip.StrategyBlock
	case "line-scan":
		opts.strategy = strip.StrategyLineScan
	default:
		return options{}, fmt.Errorf("unknown strategy %q", *strategy)
	}
	return opts, nil
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := observability.LevelInfo
	if opts.verbose {
		level = observability.LevelDebug
	}
	log := observability.NewWriterLogger(os.Stderr, level)

	if opts.guess {
		return runGuess(ctx, opts)
	}

	if len(opts.texts) == 0 && len(opts.images) == 0 {
		return fmt.Errorf("nothing to remove: pass -text and/or -image, or -guess")
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	runner := job.NewRunner(job.Config{
		Opener: unidoc.Opener{},
		Render: mupdf.Source{},
		Strip:  strip.Options{Strategy: opts.strategy, MaxBlockLines: opts.bound},
		Logger: log,
	})
	pool := job.NewPool(runner, opts.workers)

	reqs := make([]job.Request, 0, len(opts.inputs))
	for _, input := range opts.inputs {
		reqs = append(reqs, job.Request{
			Input:  input,
			Output: filepath.Join(opts.outDir, filepath.Base(input)),
			Spec: job.Spec{
				TextTargets:  opts.texts,
				ImageTargets: opts.images,
				ToDoc:        opts.toDoc,
			},
		})
	}

	failed := 0
	for ev := range pool.Run(ctx, reqs) {
		switch ev := ev.(type) {
		case job.ProgressEvent:
			if opts.verbose {
				fmt.Fprintf(os.Stderr, "%s: %s %d/%d\n", ev.Input, ev.Phase, ev.Page, ev.Total)
			}
		case job.DiagnosticEvent:
			fmt.Fprintf(os.Stderr, "%s: %s\n", ev.Input, ev.Message)
		case job.DoneEvent:
			if ev.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: failed: %v\n", ev.Input, ev.Err)
				continue
			}
			fmt.Printf("%s -> %s (%d artifact regions, %d image blocks, %d redactions)\n",
				ev.Input, ev.Result.Output,
				ev.Result.ArtifactRegions, ev.Result.ImageBlocks, ev.Result.Redactions)
			if ev.Result.DocErr != nil {
				fmt.Fprintf(os.Stderr, "%s: docx conversion failed: %v\n", ev.Input, ev.Result.DocErr)
			} else if ev.Result.DocOutput != "" {
				fmt.Printf("%s -> %s\n", ev.Input, ev.Result.DocOutput)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(reqs))
	}
	return nil
}

func runGuess(ctx context.Context, opts options) error {
	var engine ocr.Engine
	if len(opts.ocrLangs) > 0 {
		engine = tesseract.New()
	}
	source := mupdf.Source{}
	opener := unidoc.Opener{}

	for _, input := range opts.inputs {
		fmt.Printf("%s\n", input)

		texts, err := guess.Texts(ctx, source, input, guess.Options{
			OCR:          engine,
			OCRLanguages: opts.ocrLangs,
		})
		if err != nil {
			return fmt.Errorf("guess text in %s: %w", input, err)
		}
		fmt.Println("  text candidates:")
		for _, c := range texts {
			fmt.Printf("    %4dx  %s\n", c.Count, c.Value)
		}

		doc, err := opener.Open(input)
		if err != nil {
			return err
		}
		imgs, refs, err := guess.Images(ctx, doc, guess.Options{})
		doc.Close()
		if err != nil {
			return fmt.Errorf("guess images in %s: %w", input, err)
		}
		fmt.Println("  image candidates:")
		for _, c := range imgs {
			fmt.Printf("    %4dx  %s (-image %s)\n", c.Count, c.Value, refs[c.Value])
		}
	}
	return nil
}
