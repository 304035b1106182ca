package strip

import "github.com/wudi/pdfwash/contentstream"

// ImageResult reports one image stripping pass.
type ImageResult struct {
	Stream  *contentstream.Stream
	Blocks  int // placement blocks removed
	Removed int // lines dropped
	Skipped []BoundsError
}

// span is a half-open line range [start, end). The state-restore line that
// closes a placement block is never part of the range: the preceding
// state-save survives too, so the pair degenerates to a balanced no-op
// instead of leaving a dangling push.
type span struct{ start, end int }

// Images removes the placement blocks of every image whose identifier is in
// targets. Lines outside the removed blocks are preserved exactly, including
// paints of non-target images; a block shared between a target and a
// non-target paint is left whole.
func Images(in *contentstream.Stream, targets []string, opts Options) ImageResult {
	res := ImageResult{Stream: in}
	if len(targets) == 0 {
		return res
	}
	want := make(map[string]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}

	var spans []span
	switch opts.Strategy {
	case StrategyLineScan:
		spans, res.Skipped = lineScanSpans(in.Lines, want, opts.maxBlockLines())
	default:
		spans = blockSpans(in.Lines, want)
	}
	if len(spans) == 0 {
		return res
	}
	res.Blocks = len(spans)

	drop := make([]bool, len(in.Lines))
	for _, sp := range spans {
		for i := sp.start; i < sp.end && i < len(in.Lines); i++ {
			drop[i] = true
		}
	}
	out := &contentstream.Stream{Lines: make([]contentstream.Line, 0, len(in.Lines))}
	for i, ln := range in.Lines {
		if drop[i] {
			res.Removed++
			continue
		}
		out.Lines = append(out.Lines, ln)
	}
	res.Stream = out
	return res
}

// blockSpans implements the primary strategy as a single forward scan with an
// explicit anchor instead of a backtracking pattern. The anchor is the most
// recent coordinate transform; a state restore closes whatever block the
// anchor belonged to, so a paint found after a restore without a fresh
// transform has no block and is left alone. A non-target paint inside an
// open block disqualifies it: deleting the block would take that paint
// along, and non-target paints must survive bit-exact.
func blockSpans(lines []contentstream.Line, want map[string]bool) []span {
	var spans []span
	anchor := -1
	for i := 0; i < len(lines); i++ {
		text := lines[i].Text
		switch {
		case contentstream.IsTransform(text):
			anchor = i
		case contentstream.IsRestore(text):
			anchor = -1
		default:
			ref := contentstream.ImagePaintRef(text)
			if ref == "" {
				continue
			}
			if !want[ref] {
				anchor = -1
				continue
			}
			if anchor < 0 {
				continue
			}
			end := i
			shared := false
			for end < len(lines) && !contentstream.IsRestore(lines[end].Text) {
				if r := contentstream.ImagePaintRef(lines[end].Text); r != "" && !want[r] {
					shared = true
					break
				}
				end++
			}
			if shared {
				anchor = -1
				continue
			}
			spans = append(spans, span{start: anchor, end: end})
			i = end
			anchor = -1
		}
	}
	return spans
}

// lineScanSpans implements the fallback strategy: for each target paint,
// scan backward to the nearest transform and forward to the nearest bare
// restore. Blocks wider than bound are reported and skipped; blocks holding
// a non-target paint are skipped too, those paints must survive bit-exact.
func lineScanSpans(lines []contentstream.Line, want map[string]bool, bound int) ([]span, []BoundsError) {
	var spans []span
	var skipped []BoundsError
	for i, ln := range lines {
		ref := contentstream.ImagePaintRef(ln.Text)
		if ref == "" || !want[ref] {
			continue
		}
		start := i
		for start > 0 && !contentstream.IsTransform(lines[start].Text) {
			start--
		}
		end := i
		for end < len(lines) && !contentstream.IsRestore(lines[end].Text) {
			end++
		}
		if end-start > bound {
			skipped = append(skipped, BoundsError{Ref: ref, Line: i, Span: end - start, Bound: bound})
			continue
		}
		if sharesForeignPaint(lines[start:end], want) {
			continue
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans, skipped
}

func sharesForeignPaint(lines []contentstream.Line, want map[string]bool) bool {
	for _, ln := range lines {
		if r := contentstream.ImagePaintRef(ln.Text); r != "" && !want[r] {
			return true
		}
	}
	return false
}
