// Command inspect-constraints dumps the simplified tree, the path
// constraints and the per-value formulas of a program as YAML.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/sinkflow"
	"github.com/speakeasy-api/sinkflow/analysis"
	"github.com/speakeasy-api/sinkflow/sat"
)

type site struct {
	Node        uint32   `yaml:"node"`
	Line        int      `yaml:"line"`
	Constraints []string `yaml:"constraints,flow"`
}

type value struct {
	Value    int64  `yaml:"value"`
	Sites    []site `yaml:"sites"`
	Formula  string `yaml:"formula"`
	Possible bool   `yaml:"possible"`
}

type dump struct {
	Simplified string  `yaml:"simplified"`
	Values     []value `yaml:"values"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect-constraints <file>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	opts := analysis.DefaultOptions()
	res, err := analysis.Analyze(context.Background(), string(data), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", sinkflow.WrapErrorWithSource(err, string(data)))
		os.Exit(3)
	}

	possible := map[int64]bool{}
	for _, v := range res.Values {
		possible[v] = true
	}

	out := dump{Simplified: res.Program.String()}
	for _, v := range res.Paths.Values() {
		entry := value{Value: v, Possible: possible[v]}
		for _, id := range res.Paths.Sites(v) {
			entry.Sites = append(entry.Sites, site{
				Node:        uint32(id),
				Line:        res.Program.Node(id).Pos.Line,
				Constraints: res.Paths.Constraints(id).Strings(),
			})
		}
		entry.Formula = sat.Simplify(res.Paths.Formula(sat.NewProblem(), v)).String()
		out.Values = append(out.Values, entry)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(5)
	}
	_ = enc.Close()
	fmt.Println("# values: " + strconv.Itoa(len(res.Values)) + " possible")
}
