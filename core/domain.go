package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmployeeIDMissing = errors.New("core: employee id not found in the request")
	ErrEmployeeIDInvalid = errors.New("core: employee id must be numeric")
)

// AttributeType is the closed set of wire tags the store produces. Unknown
// tags decode to their raw payload string.
type AttributeType string

const (
	AttributeTypeNumber AttributeType = "N"
	AttributeTypeString AttributeType = "S"
	AttributeTypeBool   AttributeType = "BOOL"
)

// Attribute is one tagged value as read from the store: a wire tag plus the
// value's string-serialized payload.
type Attribute struct {
	Type  AttributeType `json:"type"`
	Value string        `json:"value"`
}

func NumberAttribute(value string) Attribute {
	return Attribute{Type: AttributeTypeNumber, Value: value}
}

func StringAttribute(value string) Attribute {
	return Attribute{Type: AttributeTypeString, Value: value}
}

func BoolAttribute(value bool) Attribute {
	if value {
		return Attribute{Type: AttributeTypeBool, Value: "true"}
	}
	return Attribute{Type: AttributeTypeBool, Value: "false"}
}

// Record is a stored item: field name to tagged value. Immutable once read.
type Record map[string]Attribute

// DecodedRecord maps the same field names to native scalars.
type DecodedRecord map[string]any

// ValidateEmployeeID confirms the identifier satisfies the store key format:
// non-empty, decimal digits only, no sign, no separators.
func ValidateEmployeeID(id string) error {
	if id == "" {
		return ErrEmployeeIDMissing
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrEmployeeIDInvalid, id)
		}
	}
	return nil
}

// LookupRequest carries a resolved identifier into the lookup pipeline.
type LookupRequest struct {
	EmployeeID string
}

func (r LookupRequest) Validate() error {
	return ValidateEmployeeID(strings.TrimSpace(r.EmployeeID))
}
