package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyNotification = errors.New("notification has no message")
	// ErrBadTimestamp accompanies a usable notification whose timestamp could
	// not be read.
	ErrBadTimestamp = errors.New("notification timestamp not recognized")
)

// localDateTime is an ISO-8601 date-time without an offset, read as UTC.
const localDateTime = "2006-01-02T15:04:05.999999999"

// Notification is one server-pushed message.
type Notification struct {
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ParseNotification decodes an event payload. A payload without a message is
// rejected. The timestamp is optional and may be RFC 3339, a date-time
// without offset, epoch milliseconds or a [y, m, d, h, min, s, ns] array.
// When it is present but unreadable, the notification is still returned,
// with a nil Timestamp, together with an error wrapping ErrBadTimestamp.
func ParseNotification(data []byte) (Notification, error) {
	var raw struct {
		Message   *string         `json:"message"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	if raw.Message == nil || strings.TrimSpace(*raw.Message) == "" {
		return Notification{}, ErrEmptyNotification
	}

	n := Notification{Message: *raw.Message}
	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return n, fmt.Errorf("%w: %s: %v", ErrBadTimestamp, raw.Timestamp, err)
	}
	n.Timestamp = ts
	return n, nil
}

func parseTimestamp(raw json.RawMessage) (*time.Time, error) {
	v := strings.TrimSpace(string(raw))
	switch {
	case v == "" || v == "null":
		return nil, nil

	case strings.HasPrefix(v, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return &t, nil
		}
		t, err := time.ParseInLocation(localDateTime, s, time.UTC)
		if err != nil {
			return nil, err
		}
		return &t, nil

	case strings.HasPrefix(v, "["):
		var parts []int
		if err := json.Unmarshal(raw, &parts); err != nil {
			return nil, err
		}
		if len(parts) < 3 || len(parts) > 7 {
			return nil, fmt.Errorf("want 3 to 7 date-time fields, got %d", len(parts))
		}
		f := make([]int, 7)
		copy(f, parts)
		t := time.Date(f[0], time.Month(f[1]), f[2], f[3], f[4], f[5], f[6], time.UTC)
		return &t, nil

	default:
		var ms int64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return nil, err
		}
		t := time.UnixMilli(ms).UTC()
		return &t, nil
	}
}
