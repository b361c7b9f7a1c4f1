package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldql/internal/cli/output"
	"github.com/leapstack-labs/fieldql/pkg/ast"
	"github.com/leapstack-labs/fieldql/pkg/core"
	"github.com/leapstack-labs/fieldql/pkg/selection"
)

type planOutput struct {
	Collection string                  `json:"collection"`
	Tree       ast.Description         `json:"tree"`
	Response   []selection.FieldSchema `json:"response"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand() *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "plan <collection> [field]...",
		Short: "Show the query tree for a field selection",
		Long: `Resolve a field selection against the schema and print the query tree.

The tree shows plain fields, function fields with their aliases and output
types, temporary fields added for filters, and nested relations. JSON
output also includes the response schema.`,
		Example: `  fieldql plan articles '*' 'author.name' 'year(created_at)'
  fieldql plan pages 'item:articles.title' 'item:authors.name'
  fieldql plan articles --query '{"fields":"id","filter":{"count(comments)":{"_gt":0}}}' -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.parse(args[1:])
			if err != nil {
				return err
			}
			return runPlan(cmd, args[0], q)
		},
	}

	qf.register(cmd)
	return cmd
}

func runPlan(cmd *cobra.Command, collection string, q core.Query) error {
	cmdCtx := NewCommandContext(cmd)
	root, snap, err := cmdCtx.buildTree(collection, q)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(planOutput{
			Collection: collection,
			Tree:       ast.Describe(root),
			Response:   selection.ResponseSchema(root, snap),
		})
	}

	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)
	appendChildren(l, root.Children())

	r.Header(1, "Query plan: "+collection)
	r.Println("")
	if mode == output.ModeMarkdown {
		r.Println(l.RenderMarkdown())
	} else {
		r.Println(l.Render())
	}
	return nil
}

func appendChildren(l list.Writer, children []ast.Child) {
	for _, c := range children {
		l.AppendItem(describeChild(c))
		switch t := c.(type) {
		case ast.Parent:
			if nested := t.Children(); len(nested) > 0 {
				l.Indent()
				appendChildren(l, nested)
				l.UnIndent()
			}
		case *ast.AnyToMany:
			l.Indent()
			for _, name := range t.Names() {
				l.AppendItem(name)
				nested, _ := t.ChildrenFor(name)
				l.Indent()
				appendChildren(l, nested)
				l.UnIndent()
			}
			l.UnIndent()
		}
	}
}

func describeChild(c ast.Child) string {
	switch t := c.(type) {
	case *ast.Field:
		if t.FieldKey() != t.Name() {
			return fmt.Sprintf("%s = %s", t.FieldKey(), t.Name())
		}
		return t.Name()
	case *ast.FunctionField:
		s := fmt.Sprintf("%s = %s (%s)", t.FieldKey(), t.Descriptor(), t.Type())
		if t.Temporary() {
			s += " [temporary]"
		}
		return s
	case *ast.AnyToMany:
		return fmt.Sprintf("%s (a2o on %s)", t.FieldKey(), t.Discriminator())
	default:
		return fmt.Sprintf("%s (%s %s)", c.FieldKey(), c.Kind(), c.Name())
	}
}
