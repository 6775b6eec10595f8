package analysis

import (
	"fmt"
	"strconv"

	"github.com/speakeasy-api/openapi/jsonschema/oas3"
	"gopkg.in/yaml.v3"
)

// SinkSchema describes the printed value as an integer schema whose enum
// lists values. It returns nil (Bottom: nothing can be printed) when values
// is empty.
func SinkSchema(values []int64) *oas3.Schema {
	if len(values) == 0 {
		return nil
	}
	enum := make([]*yaml.Node, len(values))
	for i, v := range values {
		enum[i] = &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatInt(v, 10),
			Tag:   "!!int",
		}
	}
	return &oas3.Schema{
		Type: oas3.NewTypeFromString(oas3.SchemaTypeInteger),
		Enum: enum,
	}
}

// SchemaValues recovers the enum of a schema built by SinkSchema.
func SchemaValues(s *oas3.Schema) ([]int64, error) {
	if s == nil {
		return nil, nil
	}
	if types := s.GetType(); len(types) != 1 || types[0] != oas3.SchemaTypeInteger {
		return nil, fmt.Errorf("sink schema has type %v, want integer", types)
	}
	out := make([]int64, 0, len(s.Enum))
	for _, n := range s.Enum {
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("enum value %q: %w", n.Value, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// MarshalSchemaYAML renders s as a YAML document. Bottom renders as
// "not: {}", the schema no value satisfies.
func MarshalSchemaYAML(s *oas3.Schema) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	if s == nil {
		doc.Content = append(doc.Content,
			scalar("not", "!!str"),
			&yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle},
		)
		return yaml.Marshal(doc)
	}
	for _, t := range s.GetType() {
		doc.Content = append(doc.Content, scalar("type", "!!str"), scalar(string(t), "!!str"))
	}
	if len(s.Enum) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: s.Enum}
		doc.Content = append(doc.Content, scalar("enum", "!!str"), seq)
	}
	return yaml.Marshal(doc)
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: tag}
}
