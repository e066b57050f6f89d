package respond

import (
	"strconv"
	"strings"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. A missing subtype becomes "*",
// and a malformed or out-of-range q parameter counts as 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok {
			subtype = "*"
		}
		mr := mediaRange{typ: typ, subtype: subtype, q: 1.0}
		for _, p := range params[1:] {
			k, v, found := strings.Cut(strings.TrimSpace(p), "=")
			if !found || strings.ToLower(strings.TrimSpace(k)) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && q >= 0 && q <= 1 {
				mr.q = q
			}
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// quality returns the q and rank of the most specific range matching application/<format>
// or its problem+<format> variant. A q of -1 means no range matched.
func quality(ranges []mediaRange, format string) (float64, int) {
	best, bestRank := -1.0, -1
	for _, mr := range ranges {
		rank := matchRank(mr, format)
		if rank < 0 {
			continue
		}
		if rank > bestRank || (rank == bestRank && mr.q > best) {
			best, bestRank = mr.q, rank
		}
	}
	return best, bestRank
}

// matchRank orders ranges by specificity: */* < application/* < application/*+fmt <
// application/fmt < application/problem+fmt. -1 means no match.
func matchRank(mr mediaRange, format string) int {
	switch {
	case mr.typ == "*" && mr.subtype == "*":
		return 0
	case mr.typ != "application":
		return -1
	case mr.subtype == "*":
		return 1
	case mr.subtype == "*+"+format:
		return 2
	case mr.subtype == format:
		return 3
	case mr.subtype == "problem+"+format:
		return 4
	default:
		return -1
	}
}

// selectFormat reports whether CBOR should be used for a response to the given Accept
// header. Higher q wins, equal q falls to the more specific range, and JSON is the
// default otherwise.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborQ, cborRank := quality(ranges, "cbor")
	jsonQ, jsonRank := quality(ranges, "json")
	if cborQ <= 0 {
		return false
	}
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborRank > jsonRank
}
