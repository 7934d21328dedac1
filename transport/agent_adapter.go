package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-leave-lookup/core"
)

const KindAgent = "agent"

const (
	messageVersion  = "1.0"
	contentTypeJSON = "application/json"
)

// AgentContent nests the JSON-encoded payload one level under the fixed
// content-type key, as the agent runtime expects.
type AgentContent struct {
	Body string `json:"body"`
}

type AgentAction struct {
	ActionGroup    string                  `json:"actionGroup"`
	APIPath        string                  `json:"apiPath"`
	HTTPMethod     string                  `json:"httpMethod"`
	HTTPStatusCode int                     `json:"httpStatusCode"`
	ResponseBody   map[string]AgentContent `json:"responseBody"`
}

// AgentEnvelope is the action response shape an orchestrating agent expects.
type AgentEnvelope struct {
	MessageVersion          string            `json:"messageVersion"`
	Response                AgentAction       `json:"response"`
	SessionAttributes       map[string]string `json:"sessionAttributes"`
	PromptSessionAttributes map[string]string `json:"promptSessionAttributes"`
}

// AgentActionAdapter formats responses for agent action-group invocations.
type AgentActionAdapter struct{}

func NewAgentActionAdapter() *AgentActionAdapter {
	return &AgentActionAdapter{}
}

func (*AgentActionAdapter) Kind() string {
	return KindAgent
}

func (a *AgentActionAdapter) Format(_ context.Context, req core.EnvelopeRequest) (any, error) {
	if a == nil {
		return nil, transportError(
			"transport: agent adapter is nil",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindAgent},
		)
	}

	body, err := encodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	method := strings.TrimSpace(req.HTTPMethod)
	if method == "" {
		method = http.MethodGet
	}

	sessionAttributes := req.SessionAttributes
	if sessionAttributes == nil {
		sessionAttributes = map[string]string{}
	}
	promptSessionAttributes := req.PromptSessionAttributes
	if promptSessionAttributes == nil {
		promptSessionAttributes = map[string]string{}
	}

	return AgentEnvelope{
		MessageVersion: messageVersion,
		Response: AgentAction{
			ActionGroup:    req.ActionGroup,
			APIPath:        req.APIPath,
			HTTPMethod:     method,
			HTTPStatusCode: req.StatusCode,
			ResponseBody: map[string]AgentContent{
				contentTypeJSON: {Body: body},
			},
		},
		SessionAttributes:       sessionAttributes,
		PromptSessionAttributes: promptSessionAttributes,
	}, nil
}

func encodePayload(payload any) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", transportWrapError(
			err,
			goerrors.CategoryInternal,
			"transport: encode response payload",
			http.StatusInternalServerError,
			nil,
		)
	}
	return string(encoded), nil
}
