// Package leavelookup adapts loosely structured invocation events into
// leave balance lookups and formats the result for the surface that
// asked: Bedrock agent action groups or an API gateway style caller.
package leavelookup

import (
	"fmt"

	commandadapter "github.com/goliatone/go-leave-lookup/adapters/gocommand"
	"github.com/goliatone/go-leave-lookup/core"
	"github.com/goliatone/go-leave-lookup/query"
)

type Queries struct {
	GetLeaveBalance *query.GetLeaveBalanceQuery
}

type Facade struct {
	reader   core.LookupReader
	queries  Queries
	registry *commandadapter.RegistryAdapter
}

func NewFacade(reader core.LookupReader) (*Facade, error) {
	if reader == nil {
		return nil, fmt.Errorf("leavelookup: lookup reader is required")
	}
	facade := &Facade{
		reader:   reader,
		registry: commandadapter.NewRegistryAdapter(nil),
	}
	facade.queries = Queries{
		GetLeaveBalance: query.NewGetLeaveBalanceQuery(reader),
	}
	if err := facade.registry.RegisterQuery(facade.queries.GetLeaveBalance); err != nil {
		return nil, fmt.Errorf("leavelookup: register balance query: %w", err)
	}
	return facade, nil
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Reader() core.LookupReader {
	if f == nil {
		return nil
	}
	return f.reader
}

// CommandRegistry exposes the go-command registry holding the balance
// query, for hosts that compose through message dispatch.
func (f *Facade) CommandRegistry() *commandadapter.RegistryAdapter {
	if f == nil {
		return nil
	}
	return f.registry
}
