package subtitles

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pubkit/pubkit/internal/types"
)

var timestampRE = regexp.MustCompile(`^(-)?(\d+):(\d+):(\d+)(?:[,.](\d{3}))?$`)

var errOverflow = errors.New("timestamp out of range")

// ParseTimestamp parses H:M:S, H:M:S,mmm or H:M:S.mmm. A leading '-' yields a
// negative duration, which only makes sense for offsets.
func ParseTimestamp(s string) (time.Duration, error) {
	m := timestampRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedTimestamp, s)
	}
	d, err := fromParts(m[2], m[3], m[4], m[5])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", types.ErrMalformedTimestamp, s, err)
	}
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}

// FormatTimestamp renders d as HH:MM:SS,mmm. Negative values clamp to zero and
// hours grow past two digits instead of wrapping.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func fromParts(h, m, s, ms string) (time.Duration, error) {
	var total time.Duration
	parts := []struct {
		digits string
		unit   time.Duration
	}{
		{h, time.Hour},
		{m, time.Minute},
		{s, time.Second},
		{ms, time.Millisecond},
	}
	for _, p := range parts {
		if p.digits == "" {
			continue
		}
		n, err := strconv.ParseInt(p.digits, 10, 64)
		if err != nil {
			return 0, errOverflow
		}
		if n > int64(math.MaxInt64/p.unit) {
			return 0, errOverflow
		}
		v := time.Duration(n) * p.unit
		if total > math.MaxInt64-v {
			return 0, errOverflow
		}
		total += v
	}
	return total, nil
}
