package strip

import "github.com/wudi/pdfwash/contentstream"

// ArtifactResult reports one artifact stripping pass.
type ArtifactResult struct {
	Stream  *contentstream.Stream
	Regions int // watermark artifact regions removed
	Removed int // lines dropped, markers included
}

// Artifacts removes every marked-content region that begins with an artifact
// operator tagged /Watermark, up to and including its closing EMC. Regions of
// this kind do not nest. A region left open at end of input drops all
// remaining lines rather than risking a partial block.
func Artifacts(in *contentstream.Stream) ArtifactResult {
	res := ArtifactResult{Stream: &contentstream.Stream{Lines: make([]contentstream.Line, 0, in.Len())}}
	inside := false
	for _, ln := range in.Lines {
		switch {
		case !inside && contentstream.BeginsWatermarkArtifact(ln.Text):
			inside = true
			res.Regions++
			res.Removed++
		case inside && contentstream.IsEndMarkedContent(ln.Text):
			inside = false
			res.Removed++
		case inside:
			res.Removed++
		default:
			res.Stream.Lines = append(res.Stream.Lines, ln)
		}
	}
	return res
}
