package analysis

import (
	"fmt"

	"github.com/speakeasy-api/sinkflow"
	"github.com/speakeasy-api/sinkflow/sat"
)

// Result orders.
const (
	OrderDiscovery = "discovery" // first surviving assignment of each value in source order
	OrderAscending = "ascending"
)

// Options configures an analysis run. The yaml tags name the keys accepted
// by LoadOptions.
type Options struct {
	// Solver backend: "dpll" (default), "exhaustive" or "gophersat". Ignored when Solver is set.
	Backend string     `yaml:"backend"`
	Solver  sat.Solver `yaml:"-"`

	// Order of Result.Values: OrderDiscovery (default) or OrderAscending.
	Order string `yaml:"order"`

	// QualifiedAtoms names the atom of a[3] "a[3]" instead of "3". Off by
	// default: conditions that share an index alias each other.
	QualifiedAtoms bool `yaml:"qualifiedAtoms"`

	// StrictLex fails on the first character the lexer cannot classify.
	// Otherwise such characters are dropped and reported as warnings.
	StrictLex bool `yaml:"strictLex"`

	SimplifyFormulas bool `yaml:"simplifyFormulas"` // run sat.Simplify before solving (default: true)
	EnableMemo       bool `yaml:"enableMemo"`       // reuse outcomes of identical formulas (default: true)
	Workers          int  `yaml:"workers"`          // concurrent value queries (default: 1)
	VerifyVisits     bool `yaml:"verifyVisits"`     // fail if the walk reaches a node twice (default: true)

	// Logging configuration
	LogLevel      string `yaml:"logLevel"`      // "error", "warn", "info", "debug" (default: "warn")
	LogTimeFormat string `yaml:"logTimeFormat"` // strftime layout; empty omits timestamps
	LogMaxValues  int    `yaml:"logMaxValues"`  // values previewed per log line (default: 8)
	Logger        Logger `yaml:"-"`             // overrides LogLevel when set
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Backend:          "dpll",
		Order:            OrderDiscovery,
		QualifiedAtoms:   false,
		StrictLex:        false,
		SimplifyFormulas: true,
		EnableMemo:       true,
		Workers:          1,
		VerifyVisits:     true,
		LogLevel:         "warn",
		LogTimeFormat:    "%Y-%m-%dT%H:%M:%S%z",
		LogMaxValues:     8,
	}
}

// Validate reports option values that cannot be honored.
func (o Options) Validate() error {
	switch o.Order {
	case "", OrderDiscovery, OrderAscending:
	default:
		return fmt.Errorf("invalid order %q (valid: %s, %s)", o.Order, OrderDiscovery, OrderAscending)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	if o.Solver == nil {
		if _, err := sat.Lookup(o.Backend); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) solver() sat.Solver {
	if o.Solver != nil {
		return o.Solver
	}
	s, err := sat.Lookup(o.Backend)
	if err != nil {
		return sat.DPLL{}
	}
	return s
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return NewLogger(ParseLogLevel(o.LogLevel), nil, o.LogTimeFormat)
}

// Result holds the outcome of one analysis run.
type Result struct {
	Values   []int64           // possible sink values
	Warnings []string          // dropped characters and other non-fatal findings
	Program  *sinkflow.Program // the simplified program that was analyzed
	Paths    *Paths
}

// String returns a compact representation for debugging.
func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	warnings := ""
	if len(r.Warnings) > 0 {
		warnings = fmt.Sprintf(" (warnings: %d)", len(r.Warnings))
	}
	return fmt.Sprintf("Result{Values: %v%s}", r.Values, warnings)
}
