package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/goliatone/go-leave-lookup/core"
)

var (
	_ gocmd.Querier[GetLeaveBalanceMessage, core.DecodedRecord] = (*GetLeaveBalanceQuery)(nil)
)
