package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lepinkainen/videonormalizer/history"
	"github.com/lepinkainen/videonormalizer/video"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// RenderSummary renders the run totals followed by every file that failed
func RenderSummary(summary video.RunSummary, records []FileRecord) string {
	out := renderTable(
		[]string{"Scanned", "Converted", "Skipped", "Failed", "Duration"},
		[][]string{{
			fmt.Sprint(summary.Scanned),
			fmt.Sprint(summary.Converted),
			fmt.Sprint(summary.Skipped),
			fmt.Sprint(summary.Failed),
			summary.Duration.Round(time.Second).String(),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
	)

	var failures [][]string
	for _, r := range records {
		if r.Outcome.IsFailure() {
			failures = append(failures, []string{filepath.Base(r.Path), r.Outcome.String(), r.Detail})
		}
	}
	if len(failures) > 0 {
		out += "\n" + renderTable([]string{"File", "Outcome", "Detail"}, failures, nil)
	}
	return out
}

// RenderRuns renders stored runs, newest first
func RenderRuns(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		finished := "unfinished"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		mode := r.Backend
		if r.DryRun {
			mode += " (dry)"
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			finished,
			mode,
			fmt.Sprint(r.Converted),
			fmt.Sprint(r.Skipped),
			fmt.Sprint(r.Failed),
			r.Root,
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Took", "Backend", "Conv", "Skip", "Fail", "Root"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

// RenderEntries renders per-file history rows
func RenderEntries(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		size := "-"
		if e.OutputBytes > 0 {
			size = fmt.Sprintf("%s → %s", humanize.IBytes(uint64(e.InputBytes)), humanize.IBytes(uint64(e.OutputBytes)))
		}
		rows = append(rows, []string{
			shortID(e.RunID),
			e.FinishedAt.Local().Format("2006-01-02 15:04"),
			e.Outcome,
			size,
			e.Path,
			e.Detail,
		})
	}
	return renderTable(
		[]string{"Run", "Finished", "Outcome", "Size", "Path", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
