package transport

import "github.com/goliatone/go-leave-lookup/core"

var (
	_ core.EnvelopeAdapter = (*AgentActionAdapter)(nil)
	_ core.EnvelopeAdapter = (*GatewayAdapter)(nil)
)
