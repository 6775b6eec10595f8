//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/speakeasy-api/sinkflow/analysis"
	"github.com/speakeasy-api/sinkflow/pkg/playground"
	"github.com/speakeasy-api/sinkflow/pkg/srcfmt"
)

// playgroundOptions are the browser-facing knobs, passed as a JSON object.
type playgroundOptions struct {
	Format         string `json:"format"`
	Order          string `json:"order"`
	Backend        string `json:"backend"`
	QualifiedAtoms bool   `json:"qualifiedAtoms"`
	StrictLex      bool   `json:"strictLex"`
}

// AnalyzeSource runs the analyzer on src. Errors are returned as the
// formatted, user-facing message.
func AnalyzeSource(src, optsJSON string) (string, error) {
	var po playgroundOptions
	if optsJSON != "" {
		if err := json.Unmarshal([]byte(optsJSON), &po); err != nil {
			return "", fmt.Errorf("failed to parse options: %w", err)
		}
	}
	format, err := playground.ParseFormat(po.Format)
	if err != nil {
		return "", err
	}

	opts := analysis.DefaultOptions()
	opts.Logger = analysis.NopLogger()
	opts.QualifiedAtoms = po.QualifiedAtoms
	opts.StrictLex = po.StrictLex
	if po.Order != "" {
		opts.Order = po.Order
	}
	if po.Backend != "" {
		opts.Backend = po.Backend
	}

	res, err := analysis.Analyze(context.Background(), src, opts)
	if err != nil {
		return "", fmt.Errorf("%s", playground.FormatAnalysisError(err, src))
	}
	out, err := playground.Render(res, format)
	if err != nil {
		return "", err
	}
	return out + "\n" + playground.FormatWarnings(res.Warnings), nil
}

// FormatSource prints src in the canonical layout.
func FormatSource(src string) (string, error) {
	formatted, err := srcfmt.Format(src, srcfmt.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to format source: %w", err)
	}
	return formatted, nil
}

// promisify wraps a Go function to return a JavaScript Promise
func promisify(fn func(args []js.Value) (string, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		handler := js.FuncOf(func(this js.Value, promiseArgs []js.Value) any {
			resolve := promiseArgs[0]
			reject := promiseArgs[1]

			go func() {
				result, err := fn(args)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New(err.Error()))
					return
				}
				resolve.Invoke(result)
			}()

			return nil
		})

		return js.Global().Get("Promise").New(handler)
	})
}

func main() {
	js.Global().Set("AnalyzeSource", promisify(func(args []js.Value) (string, error) {
		if len(args) < 1 || len(args) > 2 {
			return "", fmt.Errorf("AnalyzeSource: expected 1 or 2 args (source, optionsJSON), got %v", len(args))
		}
		optsJSON := ""
		if len(args) == 2 {
			optsJSON = args[1].String()
		}
		return AnalyzeSource(args[0].String(), optsJSON)
	}))

	js.Global().Set("FormatSource", promisify(func(args []js.Value) (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("FormatSource: expected 1 arg (source), got %v", len(args))
		}
		return FormatSource(args[0].String())
	}))

	// Keep the program running
	<-make(chan bool)
}
