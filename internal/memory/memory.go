// Package memory provides the calculator's single memory register.
package memory

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Memory operation codes accepted by Apply.
const (
	OpAdd      = "M+"
	OpSubtract = "M-"
	OpClear    = "MC"
	OpRecall   = "MR"
)

// Register is a decimal accumulator safe for concurrent use. The zero value
// holds zero and is ready to use.
type Register struct {
	mu  sync.Mutex
	val decimal.Decimal
}

// New creates a register holding zero.
func New() *Register {
	return &Register{val: decimal.Zero}
}

// Add adds v to the register and returns the new value.
func (r *Register) Add(v decimal.Decimal) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = r.val.Add(v)
	return r.val
}

// Subtract subtracts v from the register and returns the new value.
func (r *Register) Subtract(v decimal.Decimal) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = r.val.Sub(v)
	return r.val
}

// Clear resets the register to zero.
func (r *Register) Clear() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = decimal.Zero
	return r.val
}

// Recall returns the register's value.
func (r *Register) Recall() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.val
}

// Apply performs the operation named by op, case-insensitively, and returns
// the register's value afterward. An operand that does not parse as a decimal
// counts as zero. Unknown operations leave the register unchanged.
func (r *Register) Apply(op, operand string) decimal.Decimal {
	switch strings.ToUpper(strings.TrimSpace(op)) {
	case OpAdd:
		return r.Add(parse(operand))
	case OpSubtract:
		return r.Subtract(parse(operand))
	case OpClear:
		return r.Clear()
	default:
		return r.Recall()
	}
}

func parse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
