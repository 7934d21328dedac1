package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// RecordStore performs a point read keyed by a validated employee id.
// Implementations classify their failures into the lookup error taxonomy;
// a missing key is an error, not an empty record.
type RecordStore interface {
	GetRecord(ctx context.Context, employeeID string) (Record, error)
}

// TableProber exposes the diagnostic pre-read calls a store may support.
// Probe failures are logged and swallowed; they never affect the outcome of
// the authoritative read.
type TableProber interface {
	ProbeTable(ctx context.Context, sampleLimit int) error
}

// EnvelopeRequest carries everything an envelope adapter needs to wrap a
// payload for one caller surface.
type EnvelopeRequest struct {
	ActionGroup             string
	APIPath                 string
	HTTPMethod              string
	SessionAttributes       map[string]string
	PromptSessionAttributes map[string]string
	StatusCode              int
	Payload                 any
}

// EnvelopeAdapter formats one caller-specific response shape. The returned
// value marshals directly to the invocation response.
type EnvelopeAdapter interface {
	Kind() string
	Format(ctx context.Context, req EnvelopeRequest) (any, error)
}

// LookupReader is the read surface the query layer consumes.
type LookupReader interface {
	Lookup(ctx context.Context, req LookupRequest) (DecodedRecord, error)
}
