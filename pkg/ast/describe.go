package ast

// Description is a serializable view of a node, used for JSON output and
// golden tests.
type Description struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	FieldKey   string `json:"field_key,omitempty"`
	Function   string `json:"function,omitempty"`
	JSONPath   string `json:"json_path,omitempty"`
	Type       string `json:"type,omitempty"`
	Temporary  bool   `json:"temporary,omitempty"`
	Collection string `json:"collection,omitempty"`

	ParentKey     string            `json:"parent_key,omitempty"`
	RelatedKey    string            `json:"related_key,omitempty"`
	RelatedKeys   map[string]string `json:"related_keys,omitempty"`
	Discriminator string            `json:"discriminator,omitempty"`

	Children    []Description            `json:"children,omitempty"`
	Collections map[string][]Description `json:"collections,omitempty"`
}

// Describe converts n and its descendants into a Description.
func Describe(n Node) Description {
	d := Description{Kind: n.Kind().String(), Name: n.Name()}
	if c, ok := n.(Child); ok {
		d.FieldKey = c.FieldKey()
	}

	switch t := n.(type) {
	case *Root:
		d.Children = describeAll(t.children)
	case *ManyToOne:
		d.ParentKey, d.RelatedKey = t.parentKey, t.relatedKey
		d.Children = describeAll(t.children)
	case *OneToMany:
		d.ParentKey, d.RelatedKey = t.parentKey, t.relatedKey
		d.Children = describeAll(t.children)
	case *AnyToMany:
		d.ParentKey = t.parentKey
		d.Discriminator = t.relation.Discriminator
		d.RelatedKeys = make(map[string]string, len(t.relatedKey))
		d.Collections = make(map[string][]Description, len(t.names))
		for _, name := range t.names {
			d.RelatedKeys[name] = t.relatedKey[name]
			d.Collections[name] = describeAll(t.children[name])
		}
	case *FunctionField:
		d.Function = string(t.descriptor.Function)
		if t.descriptor.HasPath {
			d.JSONPath = t.descriptor.Path()
		}
		d.Type = string(t.typ)
		d.Temporary = t.temporary
		d.Collection = t.relatedCollection
	}
	return d
}

func describeAll(children []Child) []Description {
	if len(children) == 0 {
		return nil
	}
	out := make([]Description, len(children))
	for i, c := range children {
		out[i] = Describe(c)
	}
	return out
}
