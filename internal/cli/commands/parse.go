package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldql/internal/cli/output"
)

// tokenInfo is the parsed form of one field token.
type tokenInfo struct {
	Token    string `json:"token"`
	Kind     string `json:"kind"` // field or function
	Field    string `json:"field"`
	Function string `json:"function,omitempty"`
	Path     string `json:"path,omitempty"`
	Alias    string `json:"alias"`
	Type     string `json:"type,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <token>...",
		Short: "Parse field tokens and show their aliases and output types",
		Long: `Parse field selection tokens without a schema.

Function tokens such as year(created_at) or json(data$.meta.rating) are
validated and shown with the column alias they are exposed under and the
type of the value they produce. Plain field names are echoed back.`,
		Example: `  fieldql parse 'year(created_at)' 'json(data$.meta.rating)' title
  fieldql parse 'count(comments)' --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args)
		},
	}
}

func runParse(cmd *cobra.Command, tokens []string) error {
	cmdCtx := NewCommandContext(cmd)
	synth, err := cmdCtx.Synthesizer()
	if err != nil {
		return err
	}

	infos := make([]tokenInfo, 0, len(tokens))
	for _, token := range tokens {
		res, ok, err := synth.Resolve(token)
		if err != nil {
			return err
		}
		if !ok {
			infos = append(infos, tokenInfo{Token: token, Kind: "field", Field: token, Alias: token})
			continue
		}
		info := tokenInfo{
			Token:    token,
			Kind:     "function",
			Field:    res.Descriptor.Field,
			Function: string(res.Descriptor.Function),
			Alias:    res.Alias,
			Type:     string(res.Type),
		}
		if res.Descriptor.HasPath {
			info.Path = res.Descriptor.Path()
		}
		infos = append(infos, info)
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	r.Header(1, "Field tokens")
	r.Println("")
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Token, info.Kind, info.Field, info.Function, info.Path, info.Alias, info.Type}
	}
	r.Table([]string{"token", "kind", "field", "function", "path", "alias", "type"}, rows)
	return nil
}
