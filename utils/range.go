package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrRangeNotSatisfiable is returned for a well-formed single range that
// cannot be served against the object size.
var ErrRangeNotSatisfiable = errors.New("range not satisfiable")

var singleRangeRe = regexp.MustCompile(`^bytes=(-?\d*)-(\d*)$`)

// ByteRange is an inclusive byte interval.
type ByteRange struct {
	Start int64
	End   int64
}

func (r ByteRange) Length() int64 { return r.End - r.Start + 1 }

// ParseByteRange recognises only the single "bytes=start-end" form (end may
// be omitted). ok is false when the header should be ignored and the whole
// object served: empty, multi-range, or any other syntax. An end past the
// object is clamped to size-1; start>end, start>=size and negative or
// suffix ranges yield ErrRangeNotSatisfiable.
func ParseByteRange(header string, size int64) (r ByteRange, ok bool, err error) {
	header = strings.TrimSpace(header)
	if header == "" || strings.Contains(header, ",") {
		return ByteRange{}, false, nil
	}
	m := singleRangeRe.FindStringSubmatch(header)
	if m == nil {
		return ByteRange{}, false, nil
	}
	if m[1] == "" || strings.HasPrefix(m[1], "-") {
		return ByteRange{}, true, ErrRangeNotSatisfiable
	}

	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return ByteRange{}, true, ErrRangeNotSatisfiable
	}
	end := size - 1
	if m[2] != "" {
		end, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return ByteRange{}, true, ErrRangeNotSatisfiable
		}
	}
	if start > end || start >= size {
		return ByteRange{}, true, ErrRangeNotSatisfiable
	}
	if end >= size {
		end = size - 1
	}
	return ByteRange{Start: start, End: end}, true, nil
}
