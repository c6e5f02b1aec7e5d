package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/models"
)

// Envelope is the backend's JSON reply. Every field is optional.
type Envelope struct {
	Success     *bool           `json:"success,omitempty"`
	Message     string          `json:"message,omitempty"`
	AccessToken string          `json:"access_token,omitempty"`
	User        json.RawMessage `json:"user,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Total       *int            `json:"total,omitempty"`
}

// Succeeded reports an explicit {success:true}.
func (e *Envelope) Succeeded() bool {
	return e != nil && e.Success != nil && *e.Success
}

// Refused reports an explicit {success:false}.
func (e *Envelope) Refused() bool {
	return e != nil && e.Success != nil && !*e.Success
}

// decodeEnvelope tolerates empty and non-JSON bodies.
func decodeEnvelope(body []byte) *Envelope {
	env := &Envelope{}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return env
	}
	_ = json.Unmarshal(body, env)
	return env
}

// decodeList accepts {data:[...]}, {total, data:[...]} or a bare array.
func decodeList(body []byte) ([]models.ListItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []models.ListItem{}, nil
	}
	raw := body
	if body[0] == '{' {
		var env Envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		raw = bytes.TrimSpace(env.Data)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return []models.ListItem{}, nil
		}
	}
	var items []models.ListItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if items == nil {
		items = []models.ListItem{}
	}
	return items, nil
}
