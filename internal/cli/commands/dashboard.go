package commands

import (
	"StudyHub/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Per-subject progress and overall totals" }
func (dashboardCmd) Usage() string       { return "dashboard" }

func (dashboardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var d dashboardDTO
	if err := call(ctx, http.MethodGet, endpoint(cfg, "dashboard"), nil, &d); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tROLE\tPROGRESS")
	for _, s := range d.Subjects {
		var progress string
		switch {
		case s.Flashcards != nil:
			progress = fmt.Sprintf("%d attempts, %d%% accuracy, %d sessions",
				s.Flashcards.TotalAttempts, s.Flashcards.Accuracy, s.SessionCount)
		case s.Checklist != nil:
			last := "never"
			if s.Checklist.LastPracticedAt != nil {
				last = s.Checklist.LastPracticedAt.Local().Format("2006-01-02 15:04")
			}
			progress = fmt.Sprintf("%d practices, last %s", s.Checklist.TotalPractices, last)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Title, strings.ToLower(s.Role), progress)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	t := d.Totals
	fmt.Fprintf(Out, "\nTotal: %d sessions, %d correct, %d incorrect, %d min\n",
		t.Sessions, t.Correct, t.Incorrect, t.DurationMin)
	return nil
}

func init() { RegisterCmd(dashboardCmd{}) }
