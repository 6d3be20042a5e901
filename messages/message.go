package messages

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Role identifies the party a message belongs to.
type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case System, User, Assistant:
		return true
	default:
		return false
	}
}

// Message is a single lifecycle message. See the package documentation for
// field semantics.
type Message struct {
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Sender    string          `json:"sender,omitempty"`
	RunID     uuid.UUID       `json:"run_id,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

// MarshalJSON implements custom JSON marshaling for Message
func (m Message) MarshalJSON() ([]byte, error) {
	result := []byte(`{}`)

	var err error
	result, err = sjson.SetBytes(result, "role", string(m.Role))
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "content", m.Content)
	if err != nil {
		return nil, err
	}

	if m.Sender != "" {
		result, err = sjson.SetBytes(result, "sender", m.Sender)
		if err != nil {
			return nil, err
		}
	}

	if m.RunID != uuid.Nil {
		result, err = sjson.SetBytes(result, "run_id", m.RunID.String())
		if err != nil {
			return nil, err
		}
	}

	if !m.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", m.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Message
func (m *Message) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	role := gjson.GetBytes(data, "role")
	if !role.Exists() {
		return fmt.Errorf("missing required field 'role'")
	}
	m.Role = Role(role.String())
	if !m.Role.Valid() {
		return fmt.Errorf("unknown role: %q", role.String())
	}

	content := gjson.GetBytes(data, "content")
	if !content.Exists() {
		return fmt.Errorf("missing required field 'content'")
	}
	m.Content = content.String()

	if sender := gjson.GetBytes(data, "sender"); sender.Exists() {
		m.Sender = sender.String()
	}

	if runID := gjson.GetBytes(data, "run_id"); runID.Exists() {
		if err := m.RunID.UnmarshalText([]byte(runID.String())); err != nil {
			return fmt.Errorf("invalid run_id: %w", err)
		}
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := m.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	return nil
}
