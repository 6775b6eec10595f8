// Package srcfmt prints programs in a canonical layout: one statement per
// line, blocks indented, noise tokens restored.
package srcfmt

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/sinkflow"
)

// Config controls the layout.
type Config struct {
	Indent int    // spaces per level; ignored with Tabs (default 4)
	Tabs   bool   // indent with tabs
	Class  string // name of the wrapper class (default "Main")
	Method string // name of the entry method (default "main")
}

// DefaultConfig returns the layout Format uses for a zero Config.
func DefaultConfig() Config {
	return Config{Indent: 4, Class: "Main", Method: "main"}
}

// ValidateConfig fills unset fields and rejects names the lexer would not
// read back as a single identifier.
func ValidateConfig(cfg Config) (Config, error) {
	def := DefaultConfig()
	if cfg.Indent == 0 {
		cfg.Indent = def.Indent
	}
	if cfg.Indent < 0 || cfg.Indent > 16 {
		return cfg, fmt.Errorf("invalid indent %d; valid range: 1-16", cfg.Indent)
	}
	if cfg.Class == "" {
		cfg.Class = def.Class
	}
	if cfg.Method == "" {
		cfg.Method = def.Method
	}
	for _, name := range []string{cfg.Class, cfg.Method} {
		if !isName(name) {
			return cfg, fmt.Errorf("invalid name %q; names are a letter or _ followed by letters, digits or _", name)
		}
	}
	return cfg, nil
}

func isName(s string) bool {
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return s != "" && s != "if" && s != "int"
}

// Format parses src and prints it canonically. Characters the lexer cannot
// classify are dropped.
func Format(src string, cfg Config) (string, error) {
	cfg, err := ValidateConfig(cfg)
	if err != nil {
		return "", err
	}
	prog, err := sinkflow.Parse(src)
	if err != nil {
		return "", fmt.Errorf("could not parse source: %w", err)
	}
	return FormatProgram(prog, cfg), nil
}

// FormatProgram prints prog inside the class and method wrapper. cfg is
// expected to be validated.
func FormatProgram(prog *sinkflow.Program, cfg Config) string {
	p := &printer{prog: prog, unit: strings.Repeat(" ", cfg.Indent)}
	if cfg.Tabs {
		p.unit = "\t"
	}
	p.line(0, "class "+cfg.Class+" {")
	p.line(1, "public static void "+cfg.Method+"(String[] args) {")
	if root := prog.Node(prog.Root); root != nil {
		p.statements(root, 2)
	}
	p.line(1, "}")
	p.line(0, "}")
	return p.b.String()
}

type printer struct {
	prog *sinkflow.Program
	unit string
	b    strings.Builder
}

func (p *printer) line(depth int, text string) {
	p.b.WriteString(strings.Repeat(p.unit, depth))
	p.b.WriteString(text)
	p.b.WriteByte('\n')
}

func (p *printer) statements(block *sinkflow.Node, depth int) {
	for _, id := range block.Children {
		n := p.prog.Node(id)
		switch n.Kind {
		case sinkflow.KindDeclaration:
			p.line(depth, "int "+p.name(n)+";")
		case sinkflow.KindAssignment:
			p.line(depth, p.name(n)+" = "+p.prog.Literal(id).Text+";")
		case sinkflow.KindSink:
			p.line(depth, sinkflow.SinkName+"("+p.name(n)+");")
		case sinkflow.KindIf:
			p.line(depth, "if ("+p.condition(id)+") {")
			p.statements(p.prog.Body(id), depth+1)
			p.line(depth, "}")
		}
	}
}

func (p *printer) name(n *sinkflow.Node) string {
	return p.prog.Node(n.Children[0]).Text
}

func (p *printer) condition(ifID sinkflow.NodeID) string {
	cond := p.prog.Condition(ifID)
	if cond.Kind == sinkflow.KindLookup {
		return p.name(cond) + "[" + p.prog.Literal(cond.ID).Text + "]"
	}
	return cond.Text
}
