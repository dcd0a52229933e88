// Fichier: formatter/output.go

package formatter

import (
	"fmt"
	"strings"

	"project/target-expander/dns"
)

// Output modes accepted by Format.
const (
	ModePlain    = "plain"
	ModeSegments = "segments"
	ModePTR      = "ptr"
)

// DefaultSegmentLength keeps segments within a single DNS TXT string.
const DefaultSegmentLength = 255

const separator = ","

// Modes lists the valid output modes.
var Modes = []string{ModePlain, ModeSegments, ModePTR}

// Format renders targets as output lines for the given mode. For ModePTR the
// targets without a reverse name are returned as skipped.
func Format(mode string, targets []string, maxLen int) (lines []string, skipped []string, err error) {
	switch mode {
	case "", ModePlain:
		return FormatLines(targets), nil, nil
	case ModeSegments:
		return FormatSegments(targets, maxLen), nil, nil
	case ModePTR:
		lines, skipped = FormatPTR(targets)
		return lines, skipped, nil
	default:
		return nil, nil, fmt.Errorf("unknown output format %q (want one of %s)", mode, strings.Join(Modes, ", "))
	}
}

// FormatLines returns one target per line.
func FormatLines(targets []string) []string {
	return append([]string(nil), targets...)
}

// FormatSegments joins targets into comma separated segments no longer than
// maxLen, except segments holding a single target. Each segment is itself a
// valid comma list expression.
func FormatSegments(targets []string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultSegmentLength
	}

	var segments []string
	var currentSegment []string
	currentLength := 0

	for _, t := range targets {
		nextLength := currentLength + len(t)
		if len(currentSegment) > 0 {
			nextLength += len(separator)
		}

		if len(currentSegment) > 0 && nextLength > maxLen {
			segments = append(segments, closeSegment(currentSegment))

			currentSegment = []string{t}
			currentLength = len(t)
		} else {
			currentSegment = append(currentSegment, t)
			currentLength = nextLength
		}
	}

	if len(currentSegment) > 0 {
		segments = append(segments, closeSegment(currentSegment))
	}

	return segments
}

// closeSegment joins a segment. A lone target gets a trailing separator so the
// line still parses as a comma list rather than as a range or CIDR.
func closeSegment(segment []string) string {
	s := strings.Join(segment, separator)
	if len(segment) == 1 {
		s += separator
	}
	return s
}

// FormatPTR returns the reverse DNS owner name of each IP target. Hostnames
// have none and are returned in skipped.
func FormatPTR(targets []string) (names []string, skipped []string) {
	for _, t := range targets {
		name, err := dns.ReverseName(t)
		if err != nil {
			skipped = append(skipped, t)
			continue
		}
		names = append(names, name)
	}
	return names, skipped
}
