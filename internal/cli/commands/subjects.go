package commands

import (
	"StudyHub/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

type subjectsCmd struct{}

func (subjectsCmd) Name() string        { return "subjects" }
func (subjectsCmd) Description() string { return "List your own and shared subjects" }
func (subjectsCmd) Usage() string       { return "subjects" }

func (subjectsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var list []subjectDTO
	if err := call(ctx, http.MethodGet, endpoint(cfg, "subjects"), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет предметов")
		return nil
	}
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tROLE\tSIZE")
	for _, s := range list {
		size := s.CardCount
		if s.Type == "CHECKLIST" {
			size = s.ItemCount
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.Type, s.Title, s.Role, size)
	}
	return tw.Flush()
}

type subjectCmd struct{}

func (subjectCmd) Name() string        { return "subject" }
func (subjectCmd) Description() string { return "Show a subject with your recent activity" }
func (subjectCmd) Usage() string       { return "subject [subject-id]" }

func (subjectCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	subjectID, rest, err := subjectArg(args)
	if err != nil || len(rest) != 0 {
		return ErrUsage
	}
	var d subjectDetailDTO
	if err := call(ctx, http.MethodGet, endpoint(cfg, "subjects", subjectID), nil, &d); err != nil {
		return err
	}
	rememberSubject(subjectID)

	s := d.Subject
	fmt.Fprintf(Out, "%s (%s, %s)\n", s.Title, s.Type, d.Role)
	if s.Description != nil && *s.Description != "" {
		fmt.Fprintln(Out, *s.Description)
	}
	if s.Type == "FLASHCARDS" {
		fmt.Fprintf(Out, "Cards: %d, goal: %d\n", len(s.Cards), s.StudyGoal)
		for _, c := range s.Cards {
			fmt.Fprintf(Out, "  - %s\n", c.Prompt)
		}
		for _, ss := range d.Sessions {
			fmt.Fprintf(Out, "  %s  +%d -%d  %d min\n", ss.StudiedAt.Local().Format("2006-01-02 15:04"), ss.Correct, ss.Incorrect, ss.DurationMin)
		}
		return nil
	}
	fmt.Fprintf(Out, "Items: %d\n", len(s.Items))
	for i, it := range s.Items {
		fmt.Fprintf(Out, "  %d. %s  (%s)\n", i+1, it.Title, it.ID)
	}
	fmt.Fprintf(Out, "Recent practice entries: %d\n", len(d.Entries))
	return nil
}

type createCmd struct{}

func (createCmd) Name() string        { return "create" }
func (createCmd) Description() string { return "Create a subject from a JSON file" }
func (createCmd) Usage() string       { return "create <file.json>" }

// Run читает JSON вида {"title","type","cards":[{"prompt","answer"}]} или {"items":[{"title"}]}.
func (createCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var payload json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	var created subjectDTO
	if err := call(ctx, http.MethodPost, endpoint(cfg, "subjects"), payload, &created); err != nil {
		return err
	}
	rememberSubject(created.ID)
	fmt.Fprintf(Out, "Created %s %q: %s\n", created.Type, created.Title, created.ID)
	return nil
}

func init() {
	RegisterCmd(subjectsCmd{})
	RegisterCmd(subjectCmd{})
	RegisterCmd(createCmd{})
}
