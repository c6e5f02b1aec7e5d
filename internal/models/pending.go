package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingRecord is a submission the backend did not accept, minus the file bytes.
type PendingRecord struct {
	ID   string   `json:"id"`
	Kind FormKind `json:"kind"`
	// Base is the backend the submission was meant for. Replays go there.
	Base      string     `json:"base,omitempty"`
	Endpoint  string     `json:"endpoint"`
	Fields    []Field    `json:"fields"`
	Files     []FileMeta `json:"files"`
	Timestamp string     `json:"timestamp"`
}

// Value returns the first field named name, or "".
func (p PendingRecord) Value(name string) string {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// PendingFrom captures the whole logical record of a submission addressed to base.
func PendingFrom(sub *FormSubmission, base string) PendingRecord {
	fields := make([]Field, len(sub.Fields))
	copy(fields, sub.Fields)
	return PendingRecord{
		ID:        uuid.New().String(),
		Kind:      sub.Kind,
		Base:      base,
		Endpoint:  sub.Endpoint,
		Fields:    fields,
		Files:     sub.FileMetas(),
		Timestamp: sub.CreatedAt.UTC().Format(time.RFC3339),
	}
}
