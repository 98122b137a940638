package logging

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/go-logfmt/logfmt"

	"ward/internal/resource"
)

// writer is a slog TextHandler writer that both retains log records in a table
// and emits them as events.
type writer struct {
	table *resource.Table[Message]

	mu     sync.Mutex
	serial uint
}

func (w *writer) Write(p []byte) (int, error) {
	d := logfmt.NewDecoder(bytes.NewReader(p))
	for d.ScanRecord() {
		w.mu.Lock()
		msg := Message{
			ID:     resource.NewID(resource.Log),
			Serial: w.serial,
		}
		w.serial++
		w.mu.Unlock()

		for d.ScanKeyval() {
			switch string(d.Key()) {
			case "time":
				parsed, err := time.Parse(time.RFC3339, string(d.Value()))
				if err != nil {
					return 0, fmt.Errorf("parsing time: %w", err)
				}
				msg.Time = parsed
			case "level":
				msg.Level = string(d.Value())
			case "msg":
				msg.Message = string(d.Value())
			default:
				msg.Attributes = append(msg.Attributes, Attr{
					Key:   string(d.Key()),
					Value: string(d.Value()),
				})
			}
		}
		// Adding to the table also publishes the message as an event.
		w.table.Add(msg.ID, msg)
	}
	if d.Err() != nil {
		return 0, d.Err()
	}
	return len(p), nil
}
