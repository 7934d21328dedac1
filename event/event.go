package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-leave-lookup/core"
)

// Event is one invocation document. No shape is guaranteed; accessors treat
// missing or mistyped fields as absent.
type Event map[string]any

// Parse decodes a raw invocation payload.
func Parse(raw []byte) (Event, error) {
	if len(raw) == 0 {
		return Event{}, nil
	}
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return nil, eventBadInput("event: invalid invocation payload", map[string]any{
			"cause": err.Error(),
		})
	}
	if evt == nil {
		evt = Event{}
	}
	return evt, nil
}

// IsAgentInvocation reports whether the caller is an orchestrating agent.
// Both markers must be present; the agent action envelope is used only then.
func (e Event) IsAgentInvocation() bool {
	if e == nil {
		return false
	}
	_, hasAgent := e["agent"]
	_, hasActionGroup := e["actionGroup"]
	return hasAgent && hasActionGroup
}

func (e Event) ActionGroup() string {
	return e.stringField("actionGroup")
}

func (e Event) APIPath() string {
	return e.stringField("apiPath")
}

func (e Event) HTTPMethod() string {
	return e.stringField("httpMethod")
}

func (e Event) SessionAttributes() map[string]string {
	return e.stringMapField("sessionAttributes")
}

func (e Event) PromptSessionAttributes() map[string]string {
	return e.stringMapField("promptSessionAttributes")
}

func (e Event) stringField(name string) string {
	if e == nil {
		return ""
	}
	if value, ok := e[name].(string); ok {
		return value
	}
	return ""
}

func (e Event) stringMapField(name string) map[string]string {
	out := map[string]string{}
	if e == nil {
		return out
	}
	raw, ok := e[name].(map[string]any)
	if !ok {
		return out
	}
	for key, value := range raw {
		out[key] = stringifyScalar(value)
	}
	return out
}

// EnvelopeRequest builds the formatting input for this event, copying the
// action-group fields verbatim.
func (e Event) EnvelopeRequest(statusCode int, payload any) core.EnvelopeRequest {
	return core.EnvelopeRequest{
		ActionGroup:             e.ActionGroup(),
		APIPath:                 e.APIPath(),
		HTTPMethod:              e.HTTPMethod(),
		SessionAttributes:       e.SessionAttributes(),
		PromptSessionAttributes: e.PromptSessionAttributes(),
		StatusCode:              statusCode,
		Payload:                 payload,
	}
}

// Extractor attempts to produce an identifier from one known event layout.
type Extractor interface {
	Name() string
	Extract(evt Event) (string, bool)
}

// ResolveEmployeeID tries each extraction strategy in priority order and
// returns the first identifier found along with the name of the strategy
// that produced it. Later strategies are not attempted once a value is
// found.
func ResolveEmployeeID(evt Event) (string, string, error) {
	for _, extractor := range defaultExtractors() {
		if value, ok := extractor.Extract(evt); ok {
			return value, extractor.Name(), nil
		}
	}
	return "", "", eventBadInput("Employee ID not found in the request", nil)
}

func defaultExtractors() []Extractor {
	return []Extractor{
		actionGroupExtractor{},
		httpBodyExtractor{},
		topLevelExtractor{},
	}
}

// actionGroupExtractor reads the first property value out of an agent
// action-group request body.
type actionGroupExtractor struct{}

func (actionGroupExtractor) Name() string { return "action_group" }

func (actionGroupExtractor) Extract(evt Event) (string, bool) {
	if evt == nil {
		return "", false
	}
	requestBody, ok := evt["requestBody"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := requestBody["content"].(map[string]any)
	if !ok {
		return "", false
	}
	jsonContent, ok := content["application/json"].(map[string]any)
	if !ok {
		return "", false
	}
	properties, ok := jsonContent["properties"].([]any)
	if !ok || len(properties) == 0 {
		return "", false
	}
	first, ok := properties[0].(map[string]any)
	if !ok {
		return "", false
	}
	value, present := first["value"]
	if !present {
		return "", false
	}
	return extractedScalar(value)
}

// httpBodyExtractor reads empID from an HTTP proxy body, parsing the body
// as JSON when it arrives as a string.
type httpBodyExtractor struct{}

func (httpBodyExtractor) Name() string { return "http_body" }

func (httpBodyExtractor) Extract(evt Event) (string, bool) {
	if evt == nil {
		return "", false
	}
	raw, present := evt["body"]
	if !present {
		return "", false
	}
	var body map[string]any
	switch typed := raw.(type) {
	case string:
		if err := json.Unmarshal([]byte(typed), &body); err != nil {
			return "", false
		}
	case map[string]any:
		body = typed
	default:
		return "", false
	}
	value, present := body["empID"]
	if !present {
		return "", false
	}
	return extractedScalar(value)
}

// topLevelExtractor reads a bare empID field off the event itself.
type topLevelExtractor struct{}

func (topLevelExtractor) Name() string { return "top_level" }

func (topLevelExtractor) Extract(evt Event) (string, bool) {
	if evt == nil {
		return "", false
	}
	value, present := evt["empID"]
	if !present {
		return "", false
	}
	return extractedScalar(value)
}

func extractedScalar(value any) (string, bool) {
	text := strings.TrimSpace(stringifyScalar(value))
	if text == "" {
		return "", false
	}
	return text, true
}

func stringifyScalar(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprint(typed)
	}
}
