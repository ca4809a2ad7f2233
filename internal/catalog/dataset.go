package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/events.json
var embeddedEvents []byte

var (
	defaultOnce    sync.Once
	defaultEvents  []EventRecord
	defaultLoadErr error
)

// DefaultEvents returns the bundled storefront catalog. The slice is shared;
// callers must not modify it.
func DefaultEvents() ([]EventRecord, error) {
	defaultOnce.Do(func() {
		defaultEvents, defaultLoadErr = ParseEvents(embeddedEvents)
	})
	return defaultEvents, defaultLoadErr
}

// ParseEvents decodes a JSON array of event records and validates each one.
func ParseEvents(data []byte) ([]EventRecord, error) {
	var events []EventRecord
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := ValidateEvents(events); err != nil {
		return nil, err
	}
	return events, nil
}

// ValidateEvents validates each record and rejects duplicate ids.
func ValidateEvents(events []EventRecord) error {
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidRecord, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
