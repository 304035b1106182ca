// Package strip deletes watermark drawing operations from a page content
// stream: artifact-tagged marked-content regions and image placement blocks.
// All retained lines keep their relative order and exact bytes.
package strip

import "fmt"

// Strategy selects how image placement blocks are located.
type Strategy int

const (
	// StrategyBlock scans the whole stream once, anchoring each target paint
	// on the most recent coordinate transform not yet closed by a state
	// restore. This is the primary strategy.
	StrategyBlock Strategy = iota
	// StrategyLineScan scans outward from each target paint line: backward
	// to the nearest coordinate transform, forward to the nearest bare state
	// restore, guarded by Options.MaxBlockLines.
	StrategyLineScan
)

// DefaultMaxBlockLines bounds the line-scan strategy. A placement block
// spanning more lines than this is treated as a detection failure and left
// in place.
const DefaultMaxBlockLines = 10

// Options configures image placement stripping.
type Options struct {
	Strategy Strategy
	// MaxBlockLines guards StrategyLineScan; zero means
	// DefaultMaxBlockLines.
	MaxBlockLines int
}

func (o Options) maxBlockLines() int {
	if o.MaxBlockLines <= 0 {
		return DefaultMaxBlockLines
	}
	return o.MaxBlockLines
}

// BoundsError records an image placement block whose scan exceeded the
// configured bound. The occurrence is skipped, not deleted.
type BoundsError struct {
	Ref   string // image identifier at the anchor line
	Line  int    // index of the paint line in the input stream
	Span  int    // lines between block start and state restore
	Bound int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("image /Im%s placement block at line %d spans %d lines, bound %d",
		e.Ref, e.Line, e.Span, e.Bound)
}
