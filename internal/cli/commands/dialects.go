package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldql/internal/cli/output"
	"github.com/leapstack-labs/fieldql/pkg/dialect"
)

type dialectInfo struct {
	Name          string   `json:"name"`
	Placeholder   string   `json:"placeholder"`
	Quote         string   `json:"quote"`
	DefaultSchema string   `json:"default_schema,omitempty"`
	Capabilities  []string `json:"capabilities"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List SQL dialects and the field functions they support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	var infos []dialectInfo
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		info := dialectInfo{
			Name:          name,
			Placeholder:   d.FormatPlaceholder(1),
			Quote:         d.QuoteIdentifier("name"),
			DefaultSchema: d.DefaultSchema,
		}
		for _, c := range d.Capabilities() {
			info.Capabilities = append(info.Capabilities, string(c))
		}
		infos = append(infos, info)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	headers := []string{"dialect", "placeholder"}
	for _, c := range dialect.AllCapabilities {
		headers = append(headers, string(c))
	}
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		d, _ := dialect.Get(info.Name)
		row := []string{info.Name, info.Placeholder}
		for _, c := range dialect.AllCapabilities {
			if d.Supports(c) {
				row = append(row, "yes")
			} else {
				row = append(row, "no")
			}
		}
		rows = append(rows, row)
	}

	r.Header(1, "Dialects")
	r.Println("")
	r.Table(headers, rows)
	return nil
}
