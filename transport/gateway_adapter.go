package transport

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-leave-lookup/core"
)

const KindGateway = "gateway"

const (
	headerContentType = "Content-Type"
	headerCORS        = "Access-Control-Allow-Origin"
)

// GatewayAdapter formats standard HTTP proxy responses for direct
// invocations. Cross-origin access is allowed unconditionally.
type GatewayAdapter struct{}

func NewGatewayAdapter() *GatewayAdapter {
	return &GatewayAdapter{}
}

func (*GatewayAdapter) Kind() string {
	return KindGateway
}

func (a *GatewayAdapter) Format(_ context.Context, req core.EnvelopeRequest) (any, error) {
	if a == nil {
		return nil, transportError(
			"transport: gateway adapter is nil",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindGateway},
		)
	}

	body, err := encodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: req.StatusCode,
		Headers: map[string]string{
			headerContentType: contentTypeJSON,
			headerCORS:        "*",
		},
		Body: body,
	}, nil
}
