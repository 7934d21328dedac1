package core

import (
	"strconv"
	"strings"
)

// DecodeRecord converts a stored record into native scalar values, one field
// at a time, independent of field order. Number payloads with no fractional
// separator decode to int64; with one, to float64. Any payload that fails to
// parse keeps its original string literal unchanged.
func DecodeRecord(record Record) DecodedRecord {
	if len(record) == 0 {
		return DecodedRecord{}
	}
	decoded := make(DecodedRecord, len(record))
	for field, attr := range record {
		decoded[field] = decodeAttribute(attr)
	}
	return decoded
}

func decodeAttribute(attr Attribute) any {
	switch attr.Type {
	case AttributeTypeNumber:
		return decodeNumber(attr.Value)
	case AttributeTypeBool:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(attr.Value)); err == nil {
			return parsed
		}
		return attr.Value
	default:
		return attr.Value
	}
}

func decodeNumber(literal string) any {
	if !strings.Contains(literal, ".") {
		if parsed, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return parsed
		}
		return literal
	}
	if parsed, err := strconv.ParseFloat(literal, 64); err == nil {
		return parsed
	}
	return literal
}
