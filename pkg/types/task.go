// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// TimestampLayout is the zone-less text form used wherever a Timestamp is
// serialized: JSON, YAML, and the task store.
const TimestampLayout = "2006-01-02T15:04:05"

// dateLayout is accepted by ParseTimestamp as a shorthand for midnight.
const dateLayout = "2006-01-02"

// Timestamp is a naive date-time with no zone attached. The wrapped time is
// always UTC so that comparisons and formatting never shift the wall clock.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, keeping its wall clock and discarding its location.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParseTimestamp accepts either TimestampLayout or a bare YYYY-MM-DD date.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return Timestamp{t}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: want YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS", s)
	}
	return Timestamp{t}, nil
}

// String formats the timestamp in TimestampLayout.
func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTimestamp(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Task is one checklist item extracted from a markdown document.
type Task struct {
	// Text is the item's display string with recognized deadline and
	// completion annotations removed.
	Text string `json:"text" yaml:"text"`

	// Done is the checked state of the source checklist item.
	Done bool `json:"done" yaml:"done"`

	// Deadline is set only when a 📅 annotation was found in the text.
	Deadline *Timestamp `json:"deadline" yaml:"deadline"`

	// CompletedAt is set only when a ✅ annotation was found in the text.
	CompletedAt *Timestamp `json:"completed_at" yaml:"completed_at"`
}

// HasDeadline reports whether a deadline annotation was found.
func (t Task) HasDeadline() bool {
	return t.Deadline != nil
}

// HasCompletion reports whether a completion annotation was found.
func (t Task) HasCompletion() bool {
	return t.CompletedAt != nil
}
