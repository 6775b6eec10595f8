package analysis

import (
	"context"
	"fmt"

	"github.com/speakeasy-api/sinkflow"
)

// Analyze parses src and runs the analysis on it.
//
// Example:
//
//	res, err := analysis.Analyze(ctx, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Values)
func Analyze(ctx context.Context, src string, opts ...Options) (*Result, error) {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	parse := sinkflow.Parse
	if opt.StrictLex {
		parse = sinkflow.ParseStrict
	}
	prog, err := parse(src)
	if err != nil {
		return nil, err
	}
	return Run(ctx, prog, opt)
}

// Run simplifies prog, builds its path constraints and queries every
// assigned value. prog itself is not modified.
func Run(ctx context.Context, prog *sinkflow.Program, opts Options) (*Result, error) {
	if prog == nil {
		return nil, fmt.Errorf("program cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	log := opts.logger()
	opts.Logger = log

	res := &Result{}
	for _, gap := range prog.Gaps {
		log.Warnf("%s", gap)
		res.Warnings = append(res.Warnings, gap.Error())
	}

	log.Debugf("parsed:\n%s", prog)
	res.Program = sinkflow.Simplify(prog)
	log.Debugf("simplified:\n%s", res.Program)

	paths, err := BuildPaths(res.Program, opts)
	if err != nil {
		return nil, err
	}
	res.Paths = paths

	values, err := paths.PossibleValues(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("query possible values: %w", err)
	}
	res.Values = values
	log.Infof("possible values %s", previewValues(values, opts.LogMaxValues))
	return res, nil
}
