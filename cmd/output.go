package main

import (
	"fmt"
	"io"

	"github.com/okian/dkcron/internal/domain/model"
	"github.com/okian/dkcron/internal/domain/schedule"
	"github.com/okian/dkcron/internal/domain/selector"
)

// printStats writes the per-date breakdown of the listing.
func printStats(w io.Writer, stats selector.Stats) {
	if len(stats) == 0 {
		return
	}
	fmt.Fprintln(w, "Breakdown per date:")
	for _, date := range stats.Dates() {
		ds := stats[date]
		fmt.Fprintf(w, "    %s - %d total contests:\n", date, ds.Count)
		for _, fc := range ds.Fees() {
			fmt.Fprintf(w, "        $%s: %d contest(s)\n", fc.Fee.String(), fc.Count)
		}
	}
}

func printContests(w io.Writer, contests []model.Contest) {
	for _, c := range contests {
		fmt.Fprintf(w, "%s %s [%s] entries=%d fee=$%s start=%s\n",
			c.ID, c.Name, c.DraftGroup, c.Entries, c.EntryFee.String(), c.StartDt.Format("2006-01-02 15:04"))
	}
}

// printJobs writes the selected contest followed by the two crontab lines.
func printJobs(w io.Writer, c model.Contest, jobs schedule.Jobs) {
	fmt.Fprintf(w, "%s %s [%s] entries=%d start=%s\n",
		c.ID, c.Name, c.DraftGroup, c.Entries, c.StartDt.Format("2006-01-02 15:04"))
	fmt.Fprintln(w, jobs.Download)
	fmt.Fprintln(w, jobs.Results)
}
