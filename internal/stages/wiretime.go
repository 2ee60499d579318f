package stages

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WireTimeLayout is the fixed timestamp pattern exchanged at the stage
// boundary: minute precision, no timezone, no seconds. This is a hard wire
// contract; every stage timestamp round-trips persistence through it.
const WireTimeLayout = "2006-01-02 15:04"

// WireTime is a minute-precision timestamp serialized as "YYYY-MM-DD HH:MM".
type WireTime struct {
	t time.Time
}

// NewWireTime truncates the supplied time to minute precision.
func NewWireTime(t time.Time) WireTime {
	return WireTime{t: t.Truncate(time.Minute)}
}

// ParseWireTime parses a wire-format timestamp string.
func ParseWireTime(value string) (WireTime, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return WireTime{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(WireTimeLayout, trimmed)
	if err != nil {
		return WireTime{}, fmt.Errorf("parse timestamp %q: expected %q format", value, WireTimeLayout)
	}
	return WireTime{t: t}, nil
}

// Time returns the underlying time value.
func (w WireTime) Time() time.Time {
	return w.t
}

// IsZero reports whether the timestamp is unset.
func (w WireTime) IsZero() bool {
	return w.t.IsZero()
}

// Equal compares two wire timestamps at minute precision.
func (w WireTime) Equal(other WireTime) bool {
	return w.t.Truncate(time.Minute).Equal(other.t.Truncate(time.Minute))
}

// String formats the timestamp in the wire layout.
func (w WireTime) String() string {
	if w.t.IsZero() {
		return ""
	}
	return w.t.Format(WireTimeLayout)
}

// MarshalJSON encodes the timestamp as a wire-format JSON string.
func (w WireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON decodes a wire-format JSON string. An empty string yields a
// zero timestamp so partially filled records stay loadable.
func (w *WireTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*w = WireTime{}
		return nil
	}
	parsed, err := ParseWireTime(raw)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
