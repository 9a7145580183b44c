package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type Globals struct {
	LogLevel       string `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"SALESDASH_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
	LogFormat      string `name:"log-format" default:"console" enum:"console,json" env:"SALESDASH_LOG_FORMAT" help:"Log output format (console, json)."`
	DatasetFile    string `name:"dataset-file" type:"path" env:"SALESDASH_DATASET" help:"YAML/JSON dataset served instead of the built-in sample data."`
	BackendURL     string `name:"backend-url" env:"SALESDASH_BACKEND_URL" help:"Base URL of a remote sales service. Uses the in-memory backend when empty."`
	BackendKey     string `name:"backend-key" env:"SALESDASH_BACKEND_KEY" help:"Bearer token sent to the remote sales service."`
	PrefersDark    bool   `name:"prefers-dark" default:"true" negatable:"" env:"SALESDASH_PREFERS_DARK" help:"Start new sessions in dark mode."`
	UnifiedRefresh bool   `name:"unified-refresh" env:"SALESDASH_UNIFIED_REFRESH" help:"Clear the refresh loading flag together with the completion notification."`
	Activity       bool   `name:"activity" env:"SALESDASH_ACTIVITY" help:"Log dashboard actions as go-users activity records."`
}

type cli struct {
	Globals

	Serve   serveCmd   `cmd:"" default:"1" help:"Serve the dashboard over HTTP."`
	TUI     tuiCmd     `cmd:"" name:"tui" help:"Run the dashboard in the terminal."`
	Dataset datasetCmd `cmd:"" help:"Inspect dataset files."`
}

func main() {
	_ = godotenv.Load()

	var root cli
	ctx := kong.Parse(&root,
		kong.Name("salesdash"),
		kong.Description("Sales analytics dashboard served over HTTP or in the terminal."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&root.Globals)
	ctx.FatalIfErrorf(err)
}
