package contentstream

import (
	"regexp"
	"strconv"
	"strings"
)

// Image paint references tolerate producers that drop letters from the
// "Image" resource prefix: /Im7, /Ima7, /Img7, /Image7 all name image 7.
var imagePaintRe = regexp.MustCompile(`^/Ima?g?e?(\d+)\s+Do(\s|$)`)

// ImagePaintRef returns the numeric identifier of the image painted by the
// line, or "" when the line is not an image paint operation.
func ImagePaintRef(line string) string {
	m := imagePaintRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	return m[1]
}

// IsRestore reports whether the line is a bare state-restore operator.
func IsRestore(line string) bool { return strings.TrimSpace(line) == "Q" }

// IsSave reports whether the line is a bare state-save operator.
func IsSave(line string) bool { return strings.TrimSpace(line) == "q" }

// IsTransform reports whether the line is a coordinate-transform operation:
// six numeric operands followed by the cm operator.
func IsTransform(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 7 || fields[6] != "cm" {
		return false
	}
	for _, f := range fields[:6] {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

// BeginsWatermarkArtifact reports whether the line opens a marked-content
// artifact region tagged with subtype Watermark.
func BeginsWatermarkArtifact(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "/Artifact") && strings.Contains(t, "/Watermark")
}

// IsEndMarkedContent reports whether the line is the EMC operator closing a
// marked-content region.
func IsEndMarkedContent(line string) bool { return strings.TrimSpace(line) == "EMC" }
