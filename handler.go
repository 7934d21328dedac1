package leavelookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"

	"github.com/goliatone/go-leave-lookup/core"
	"github.com/goliatone/go-leave-lookup/event"
	"github.com/goliatone/go-leave-lookup/query"
	"github.com/goliatone/go-leave-lookup/transport"
)

const internalErrorMessage = "An unexpected error occurred while processing the leave balance data"

// Handler drives a full lookup round trip: event shape resolution,
// the balance read, and envelope formatting. Every invocation yields a
// well formed envelope; failures become error payloads, never escaped
// panics.
type Handler struct {
	facade   *Facade
	registry *transport.Registry
	logger   core.Logger
}

type HandlerOption func(*Handler)

func WithHandlerLogger(logger core.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithHandlerRegistry(registry *transport.Registry) HandlerOption {
	return func(h *Handler) {
		if registry != nil {
			h.registry = registry
		}
	}
}

func NewHandler(facade *Facade, opts ...HandlerOption) (*Handler, error) {
	if facade == nil {
		return nil, fmt.Errorf("leavelookup: facade is required")
	}
	_, logger := glog.Resolve("leave-lookup", nil, nil)
	handler := &Handler{
		facade:   facade,
		registry: transport.NewDefaultRegistry(),
		logger:   logger,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(handler)
	}
	return handler, nil
}

// NewHandlerFromStore wires the full pipeline over a record store, using
// the default service configuration.
func NewHandlerFromStore(store core.RecordStore, serviceOpts []core.Option, opts ...HandlerOption) (*Handler, error) {
	serviceOpts = append([]core.Option{core.WithRecordStore(store)}, serviceOpts...)
	service, err := core.NewService(core.Config{}, serviceOpts...)
	if err != nil {
		return nil, err
	}
	facade, err := NewFacade(service)
	if err != nil {
		return nil, err
	}
	return NewHandler(facade, opts...)
}

// Handle processes one raw invocation event. The returned value is
// always an envelope; the error return exists for runtime signatures
// and is always nil.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (response any, err error) {
	evt := event.Event{}
	invocationID := uuid.NewString()

	defer func() {
		if recovered := recover(); recovered != nil {
			if h != nil && h.logger != nil {
				h.logger.Error("lookup handler recovered from panic", "invocation_id", invocationID, "panic", recovered)
			}
			response = h.respond(ctx, evt, http.StatusInternalServerError, errorPayload(internalErrorMessage))
			err = nil
		}
	}()

	if h == nil || h.facade == nil {
		return h.respond(ctx, evt, http.StatusInternalServerError, errorPayload(internalErrorMessage)), nil
	}

	parsed, parseErr := event.Parse(raw)
	if parseErr != nil {
		h.logger.Error("failed to parse invocation event", "invocation_id", invocationID, "error", parseErr)
		return h.respond(ctx, evt, http.StatusBadRequest, errorPayload("Employee ID not found in the request")), nil
	}
	evt = parsed
	h.logger.Info("processing lookup invocation",
		"invocation_id", invocationID,
		"agent", evt.IsAgentInvocation(),
	)

	employeeID, strategy, resolveErr := event.ResolveEmployeeID(evt)
	if resolveErr != nil {
		return h.respond(ctx, evt, core.ErrorStatus(resolveErr), errorPayload(core.ErrorMessage(resolveErr))), nil
	}
	h.logger.Info("resolved employee identifier",
		"invocation_id", invocationID,
		"strategy", strategy,
	)

	decoded, lookupErr := h.facade.Queries().GetLeaveBalance.Query(ctx, query.GetLeaveBalanceMessage{
		EmployeeID: employeeID,
	})
	if lookupErr != nil {
		return h.respond(ctx, evt, core.ErrorStatus(lookupErr), errorPayload(core.ErrorMessage(lookupErr))), nil
	}

	return h.respond(ctx, evt, http.StatusOK, decoded), nil
}

func (h *Handler) respond(ctx context.Context, evt event.Event, statusCode int, payload any) any {
	var registry *transport.Registry
	var logger core.Logger
	if h != nil {
		registry = h.registry
		logger = h.logger
	}
	if registry == nil {
		registry = transport.NewDefaultRegistry()
	}

	kind := transport.ResolveKind(evt.IsAgentInvocation())
	adapter, ok := registry.Get(kind)
	if ok {
		envelope, formatErr := adapter.Format(ctx, evt.EnvelopeRequest(statusCode, payload))
		if formatErr == nil {
			return envelope
		}
		if logger != nil {
			logger.Error("envelope formatting failed", "kind", kind, "error", formatErr)
		}
	} else if logger != nil {
		logger.Error("no envelope adapter registered", "kind", kind)
	}

	return fallbackEnvelope()
}

// fallbackEnvelope is the response of last resort when even the
// formatter misbehaves. It is a bare gateway shape so callers on either
// surface get parseable JSON.
func fallbackEnvelope() events.APIGatewayProxyResponse {
	body, _ := json.Marshal(errorPayload(internalErrorMessage))
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusInternalServerError,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}
}

func errorPayload(message string) map[string]any {
	return map[string]any{"error": message}
}
