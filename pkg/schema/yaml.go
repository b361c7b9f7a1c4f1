package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/fieldql/pkg/core"
)

// fileSchema is the on-disk YAML layout:
//
//	collections:
//	  articles:
//	    primary: id
//	    fields:
//	      id: integer
//	      title: string
//	relations:
//	  - collection: articles
//	    field: author
//	    related_collection: authors
type fileSchema struct {
	Collections orderedCollections `yaml:"collections"`
	Relations   []RelationDef      `yaml:"relations"`
}

type fileCollection struct {
	Primary string        `yaml:"primary"`
	Fields  orderedFields `yaml:"fields"`
}

// orderedCollections keeps mapping order, which a Go map would lose.
type orderedCollections []Collection

func (o *orderedCollections) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: collections must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var fc fileCollection
		if err := node.Content[i+1].Decode(&fc); err != nil {
			return err
		}
		*o = append(*o, Collection{
			Name:    node.Content[i].Value,
			Primary: fc.Primary,
			Fields:  fc.Fields,
		})
	}
	return nil
}

type orderedFields []Field

func (o *orderedFields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping of name to type", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		*o = append(*o, Field{
			Name: node.Content[i].Value,
			Type: core.Type(node.Content[i+1].Value),
		})
	}
	return nil
}

// Parse decodes a YAML schema document.
func Parse(data []byte) (*Snapshot, error) {
	var fs fileSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return New(fs.Collections, fs.Relations)
}

// Load reads and decodes a YAML schema file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Marshal encodes the snapshot back into the YAML layout.
func (s *Snapshot) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	collections := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.order {
		c := s.collections[name]
		fields := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range c.Fields {
			fields.Content = append(fields.Content, scalar(f.Name), scalar(string(f.Type)))
		}
		body := &yaml.Node{Kind: yaml.MappingNode}
		if c.Primary != "" {
			body.Content = append(body.Content, scalar("primary"), scalar(c.Primary))
		}
		body.Content = append(body.Content, scalar("fields"), fields)
		collections.Content = append(collections.Content, scalar(name), body)
	}
	root.Content = append(root.Content, scalar("collections"), collections)

	if len(s.relations) > 0 {
		var rels yaml.Node
		if err := rels.Encode(s.relations); err != nil {
			return nil, err
		}
		root.Content = append(root.Content, scalar("relations"), &rels)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
