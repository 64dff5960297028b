// Package sse decodes a text/event-stream body into discrete events.
//
// Field handling follows the event-stream format: "data" lines accumulate
// (joined with '\n'), "event" sets the type, "id" sets the last event ID,
// lines starting with ':' are comments. A blank line dispatches the pending
// event; events with no data are skipped.
package sse

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// DefaultEventType is used when an event carries no "event" field.
const DefaultEventType = "message"

type Event struct {
	ID    string
	Type  string
	Data  []byte
	Retry time.Duration
}

type Decoder struct {
	r      *bufio.Reader
	lastID string
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// LastEventID is the most recent "id" seen on the stream.
func (d *Decoder) LastEventID() string { return d.lastID }

// Next blocks until the next event is complete. It returns io.EOF when the
// stream ends; a partially received event at EOF is dropped.
func (d *Decoder) Next() (Event, error) {
	var (
		data    strings.Builder
		hasData bool
		ev      Event
	)

	for {
		line, err := d.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return Event{}, err
		}
		eof := err == io.EOF
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if eof {
				return Event{}, io.EOF
			}
			if !hasData {
				ev = Event{}
				continue
			}
			ev.Data = []byte(data.String())
			ev.ID = d.lastID
			if ev.Type == "" {
				ev.Type = DefaultEventType
			}
			return ev, nil
		}

		if !eof {
			d.field(line, &ev, &data, &hasData)
			continue
		}
		// last line without terminator never dispatches
		return Event{}, io.EOF
	}
}

func (d *Decoder) field(line string, ev *Event, data *strings.Builder, hasData *bool) {
	if strings.HasPrefix(line, ":") {
		return
	}
	name, value, _ := strings.Cut(line, ":")
	value = strings.TrimPrefix(value, " ")

	switch name {
	case "data":
		if *hasData {
			data.WriteByte('\n')
		}
		data.WriteString(value)
		*hasData = true
	case "event":
		ev.Type = value
	case "id":
		if !strings.ContainsRune(value, 0) {
			d.lastID = value
		}
	case "retry":
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			ev.Retry = time.Duration(ms) * time.Millisecond
		}
	}
}
