package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lepinkainen/videonormalizer/config"
	"github.com/lepinkainen/videonormalizer/history"
	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/ui"
)

// HistoryCmd shows recorded runs, the files of one run, or the last outcome of one file
type HistoryCmd struct {
	Limit     int    `help:"Number of runs to list" default:"20"`
	RunID     string `name:"run" help:"Show the files of this run (ID prefix is enough)"`
	File      string `help:"Show the latest recorded outcome of this file" type:"path"`
	HistoryDB string `name:"history-db" help:"History database location" type:"path"`
}

func (cmd *HistoryCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	path := cmd.HistoryDB
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(out, ui.MutedStyle.Render("No history recorded yet."))
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case cmd.File != "":
		entry, ok, err := store.LastOutcome(ctx, cmd.File)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(out, "%s has no recorded outcome\n", cmd.File)
			return nil
		}
		fmt.Fprintln(out, ui.RenderEntries([]history.Entry{entry}))

	case cmd.RunID != "":
		entries, err := store.Entries(ctx, cmd.RunID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no files recorded for run %q", cmd.RunID)
		}
		fmt.Fprintln(out, ui.RenderEntries(entries))

	default:
		runs, err := store.RecentRuns(ctx, cmd.Limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, ui.MutedStyle.Render("No runs recorded yet."))
			return nil
		}
		fmt.Fprintln(out, ui.RenderRuns(runs))
	}
	return nil
}
