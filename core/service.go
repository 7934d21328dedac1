package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Service runs the validated lookup pipeline: identifier check, best-effort
// table probe, authoritative point read, tagged-value decode. Every failure
// leaves as a categorized error envelope.
type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	store           RecordStore
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("leave-lookup", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("leave-lookup"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Service{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		store:           builder.store,
	}, nil
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Logger() Logger {
	if s == nil {
		return glog.Nop()
	}
	return s.logger
}

// Lookup resolves one employee record. The identifier must already be
// extracted; validation, probing, reading, and decoding happen here.
func (s *Service) Lookup(ctx context.Context, req LookupRequest) (DecodedRecord, error) {
	if s == nil {
		return nil, newLookupError("core: service is nil", goerrors.CategoryInternal, LookupErrorInternal)
	}
	startedAt := time.Now()
	employeeID := strings.TrimSpace(req.EmployeeID)
	fields := map[string]any{"employee_id": employeeID}

	if err := ValidateEmployeeID(employeeID); err != nil {
		mapped := invalidIdentifierError(employeeID, err)
		s.observeOperation(ctx, startedAt, "validate", mapped, fields)
		return nil, mapped
	}

	if !s.config.Probe.Disabled {
		s.probeStore(ctx, fields)
	}

	if s.store == nil {
		mapped := newLookupError("core: record store is required", goerrors.CategoryInternal, LookupErrorInternal)
		s.observeOperation(ctx, startedAt, "get_record", mapped, fields)
		return nil, mapped
	}

	record, err := s.store.GetRecord(ctx, employeeID)
	if err != nil {
		mapped := s.mapError(err)
		s.observeOperation(ctx, startedAt, "get_record", mapped, fields)
		return nil, mapped
	}

	decoded := DecodeRecord(record)
	if len(decoded) == 0 {
		mapped := newLookupError(
			"An unexpected error occurred while processing the leave balance data",
			goerrors.CategoryInternal,
			LookupErrorInternal,
		)
		s.observeOperation(ctx, startedAt, "decode", mapped, fields)
		return nil, mapped
	}

	s.observeOperation(ctx, startedAt, "lookup", nil, fields)
	return decoded, nil
}

// probeStore runs the diagnostic describe/sample calls when the store
// supports them. Failures are logged and swallowed.
func (s *Service) probeStore(ctx context.Context, fields map[string]any) {
	prober, ok := s.store.(TableProber)
	if !ok {
		return
	}
	limit := s.config.Probe.SampleLimit
	if limit <= 0 {
		limit = 5
	}
	if err := prober.ProbeTable(ctx, limit); err != nil {
		probeFields := cloneFields(fields)
		probeFields["error"] = err.Error()
		s.logInfo(ctx, "table probe failed (informational only)", probeFields)
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	mapper := s.errorMapper
	if mapper == nil {
		mapper = defaultErrorMapper
	}
	if mapped := mapper(err); mapped != nil {
		return mapped
	}
	return err
}

func invalidIdentifierError(employeeID string, cause error) error {
	if employeeID == "" {
		return goerrors.Wrap(cause, goerrors.CategoryBadInput, "Employee ID not found in the request").
			WithCode(http.StatusBadRequest).
			WithTextCode(LookupErrorBadInput)
	}
	message := fmt.Sprintf("Invalid employee ID format: %s. Employee ID must be numeric.", employeeID)
	return goerrors.Wrap(cause, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(LookupErrorBadInput).
		WithMetadata(map[string]any{"employee_id": employeeID})
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper != nil {
		if mapped := mapper(err); mapped != nil {
			return mapped
		}
	}
	return err
}
