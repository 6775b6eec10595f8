// Command inspect-tokens prints the raw and preprocessed token streams of
// each file (or of a built-in sample when no file is given).
package main

import (
	"fmt"
	"os"

	"github.com/speakeasy-api/sinkflow"
)

const sample = `class Main {
  public static void main(String[] args) {
    int x;
    x = 12;
    if (flag[3]) { x = 4; }
    System.out.println(x);
  }
}`

func main() {
	sources := map[string]string{}
	names := os.Args[1:]
	if len(names) == 0 {
		names = []string{"<sample>"}
		sources["<sample>"] = sample
	}

	for _, name := range names {
		src, ok := sources[name]
		if !ok {
			data, err := os.ReadFile(name)
			if err != nil {
				fmt.Printf("Read error: %v\n", err)
				continue
			}
			src = string(data)
		}

		fmt.Printf("\n=== %s ===\n", name)
		l := sinkflow.NewLexer(src)
		raw := l.Scan()
		for i, tok := range raw {
			if tok.Kind == sinkflow.Whitespace {
				continue
			}
			fmt.Printf("%3d: %4d:%-3d %-13s %q\n", i, tok.Line, tok.Col, tok.Kind, tok.Text)
		}
		for _, gap := range l.Gaps() {
			fmt.Printf("gap: %v\n", gap)
		}

		fmt.Println("--- preprocessed ---")
		for i, tok := range sinkflow.Preprocess(raw) {
			fmt.Printf("%3d: %-13s %q\n", i, tok.Kind, tok.Text)
		}
	}
}
