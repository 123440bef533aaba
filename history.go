package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tabata/internal/preset"
	"github.com/llehouerou/tabata/internal/state"
	"github.com/llehouerou/tabata/internal/ui/render"
)

const historyLimit = 20

func printHistory(out io.Writer, h state.Interface, limit int) error {
	sessions, err := h.RecentSessions(limit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No workouts yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range sessions {
		name := s.Preset
		if name == "" {
			name = "custom"
		}
		status := "done"
		if !s.Completed {
			status = "stopped"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d rounds\t%s work\t%s\n",
			humanize.Time(s.StartedAt), name, s.RoundsDone, s.Workout.Rounds,
			render.Duration(s.WorkTime()), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t, err := h.Totals()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	fmt.Fprintf(out, "\n%s sessions, %s completed, %s of work\n",
		humanize.Comma(int64(t.Sessions)), humanize.Comma(int64(t.Completed)), render.Duration(t.WorkTime))
	return nil
}

func listPresets(out io.Writer, presets *preset.Set) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range presets.Names() {
		w, err := presets.Lookup(name)
		if err != nil {
			return err
		}
		rest := render.Duration(w.Rest) + " rest"
		if !w.HasRest() {
			rest = "no rest"
		}
		fmt.Fprintf(tw, "%s\t%d × %s\t%s\t%s total\n",
			name, w.Rounds, render.Duration(w.Round), rest, render.Duration(w.TotalDuration()))
	}
	return tw.Flush()
}
