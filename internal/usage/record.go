package usage

import (
	"encoding/json"
	"fmt"
)

// persisted shape; pointers tell a missing key apart from a zero value
type storedRecord struct {
	Count *int    `json:"count"`
	Date  *string `json:"date"`
}

// decodes a persisted record. anything malformed or incomplete yields nil,
// which callers treat the same as an absent record.
func parseRecord(raw []byte) *Record {
	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil
	}

	if stored.Count == nil || stored.Date == nil || *stored.Date == "" || *stored.Count < 0 {
		return nil
	}

	return &Record{Count: *stored.Count, Date: *stored.Date}
}

func encodeRecord(record Record) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal usage record: %w", err)
	}

	return data, nil
}

// applies an increment to an in-memory record, resetting it on a new day
func applyIncrement(current *Record, today string, limit int) (Record, bool) {
	next := Record{Count: 0, Date: today}
	if current != nil && current.Date == today {
		next.Count = current.Count
	}

	if limit >= 0 && next.Count >= limit {
		return next, false
	}

	next.Count++
	return next, true
}
