package sdramchip

import (
	"fmt"

	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
)

// Rule names a device requirement that a command can break.
type Rule string

// The rules checked by the chip.
const (
	RuleCKE             Rule = "clock enable"
	RuleStartDelay      Rule = "start delay"
	RuleInit            Rule = "initialization"
	RuleMode            Rule = "mode register"
	RuleTRCD            Rule = "tRCD"
	RuleTRP             Rule = "tRP"
	RuleTRFC            Rule = "tRFC"
	RuleTMRD            Rule = "tMRD"
	RuleRefreshInterval Rule = "refresh interval"
	RuleRowState        Rule = "row state"
	RuleDataBus         Rule = "data bus"
)

// A Violation is a command that the device cannot accept at the cycle it
// was issued.
type Violation struct {
	Cycle   uint64
	Command signal.Command
	Bank    int
	Rule    Rule
	Detail  string
}

func (v Violation) Error() string {
	return fmt.Sprintf("cycle %d: %s on bank %d breaks %s: %s",
		v.Cycle, v.Command, v.Bank, v.Rule, v.Detail)
}

// Timing is the minimum spacing of commands, in cycles, that the chip
// enforces.
type Timing struct {
	TRCD int
	TRP  int
	TRFC int
	TMRD int

	// StartDelay is the number of cycles that the clock must be enabled
	// before the first command.
	StartDelay int

	// MaxRefreshGap is the longest allowed time between two REFRESH
	// commands once the device is initialized. Zero disables the check.
	MaxRefreshGap int
}
