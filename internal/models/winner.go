package models

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// WinRecord is one entry of the winner ledger. Records are never edited.
type WinRecord struct {
	ID            string    `bson:"id" json:"id"`
	ParticipantID string    `bson:"userId" json:"userId"`
	PrizeTierID   string    `bson:"prizeId" json:"prizeId"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
}

// UnmarshalJSON accepts the timestamp as an RFC 3339 string or as Unix milliseconds
func (r *WinRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID            string          `json:"id"`
		ParticipantID string          `json:"userId"`
		PrizeTierID   string          `json:"prizeId"`
		Timestamp     json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ts, err := parseTimestamp(aux.Timestamp)
	if err != nil {
		return fmt.Errorf("win record %q: %w", aux.ID, err)
	}
	*r = WinRecord{
		ID:            aux.ID,
		ParticipantID: aux.ParticipantID,
		PrizeTierID:   aux.PrizeTierID,
		Timestamp:     ts,
	}
	return nil
}

func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := t.UnmarshalJSON(raw); err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		return t, nil
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// HistoryRow is a ledger entry enriched for display and export
type HistoryRow struct {
	RecordID   string    `json:"recordId"`
	Timestamp  time.Time `json:"timestamp"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	PrizeName  string    `json:"prizeName"`
}
