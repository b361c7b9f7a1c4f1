package config

// Config file names, searched in order.
const (
	FileName    = "fieldql.yaml"
	FileNameAlt = "fieldql.yml"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FIELDQL_"

// Default configuration values.
const (
	DefaultSchemaPath     = "schema.yaml"
	DefaultAliasSanitizer = "strict"
	DefaultOutput         = "auto" // TTY=text, otherwise markdown
)

// Output modes.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

// OutputModes lists the accepted values of Config.Output.
var OutputModes = []string{OutputAuto, OutputText, OutputJSON, OutputMarkdown}

func defaults() map[string]any {
	return map[string]any{
		"schema":          DefaultSchemaPath,
		"alias_sanitizer": DefaultAliasSanitizer,
		"output":          DefaultOutput,
		"verbose":         false,
		"max_depth":       0,
	}
}
