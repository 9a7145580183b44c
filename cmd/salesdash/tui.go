package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
	"github.com/goliatone/go-sales-dashboard/components/salesdash/tui"
)

type tuiCmd struct {
	AltScreen bool   `name:"alt-screen" default:"true" negatable:"" help:"Use the terminal's alternate screen."`
	LogFile   string `name:"log-file" default:"salesdash-tui.log" type:"path" help:"Debug log file."`
}

func (cmd *tuiCmd) Run(g *Globals) error {
	// The terminal owns the screen, so logs go to a file when debugging.
	var logOut io.Writer = io.Discard
	if g.LogLevel == "debug" {
		f, err := tea.LogToFile(cmd.LogFile, "salesdash")
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	a, err := newApp(g, logOut, "salesdash://local", salesdash.SystemScheduler(), 0)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prefersDark := g.PrefersDark
	session := a.sessions.Create(ctx, salesdash.SessionOptions{PrefersDark: &prefersDark})
	model := tui.New(tui.Options{Session: session, Context: ctx, Logger: &a.logger})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cmd.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err = tea.NewProgram(model, opts...).Run()
	return err
}
