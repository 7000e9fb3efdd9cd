package commands

import (
	"StudyHub/internal/config"
	"context"
	"fmt"
	"net/http"
	"strings"
)

type analyticsCmd struct{}

func (analyticsCmd) Name() string        { return "analytics" }
func (analyticsCmd) Description() string { return "12-month practice mix, histogram and highlights" }
func (analyticsCmd) Usage() string       { return "analytics" }

func (analyticsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var o overviewDTO
	if err := call(ctx, http.MethodGet, endpoint(cfg, "analytics"), nil, &o); err != nil {
		return err
	}

	fmt.Fprintln(Out, "Practice mix:")
	if !o.HasMixData {
		fmt.Fprintln(Out, "  no practice in the last 12 months")
	}
	var total int64
	for _, m := range o.PracticeMix {
		total += m.Value
	}
	for _, m := range o.PracticeMix {
		if m.Value == 0 {
			continue
		}
		fmt.Fprintf(Out, "  %-30s %5d  %3d%%\n", m.Label, m.Value, m.Value*100/total)
	}

	if o.HasHistogramData {
		fmt.Fprintf(Out, "\nMonthly activity (%s):\n", strings.Join(o.Months, " "))
		for _, h := range o.Histogram {
			cells := make([]string, len(h.Data))
			for i, v := range h.Data {
				cells[i] = fmt.Sprintf("%3d", v)
			}
			fmt.Fprintf(Out, "  %-30s %s\n", h.Label, strings.Join(cells, " "))
		}
	}

	for _, c := range o.ChecklistHighlights {
		fmt.Fprintf(Out, "\n%s (%d items)\n", c.SubjectTitle, c.TotalItems)
		if c.MostFrequent != nil {
			fmt.Fprintf(Out, "  most practiced:  %s (%d)\n", c.MostFrequent.Title, c.MostFrequent.Count)
		}
		if c.LeastFrequent != nil {
			fmt.Fprintf(Out, "  least practiced: %s (%d)\n", c.LeastFrequent.Title, c.LeastFrequent.Count)
		}
	}

	if !o.CardStatsAvailable {
		fmt.Fprintln(Out, "\nPer-card statistics are not available on this server")
		return nil
	}
	for _, f := range o.FlashcardHighlights {
		fmt.Fprintf(Out, "\n%s: most missed\n", f.SubjectTitle)
		for _, c := range f.Cards {
			fmt.Fprintf(Out, "  %-40s ✗%d ✓%d\n", c.Prompt, c.Incorrect, c.Correct)
		}
	}
	return nil
}

func init() { RegisterCmd(analyticsCmd{}) }
