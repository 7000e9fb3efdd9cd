package commands

import (
	"StudyHub/internal/config"
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type practiceCmd struct{}

func (practiceCmd) Name() string        { return "practice" }
func (practiceCmd) Description() string { return "Log checklist items practiced (asks when no ids given)" }
func (practiceCmd) Usage() string       { return "practice [subject-id|-] [item-id...]" }

func (practiceCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	subjectID, itemIDs, err := subjectArg(args)
	if err != nil {
		return ErrUsage
	}
	if len(itemIDs) == 0 {
		itemIDs, err = pickItems(ctx, cfg, subjectID)
		if err != nil {
			return err
		}
		if len(itemIDs) == 0 {
			fmt.Fprintln(Out, "Nothing selected")
			return nil
		}
	}

	var resp struct {
		Logged int `json:"logged"`
	}
	payload := map[string][]string{"item_ids": itemIDs}
	if err := call(ctx, http.MethodPost, endpoint(cfg, "subjects", subjectID, "checklist"), payload, &resp); err != nil {
		return err
	}
	rememberSubject(subjectID)
	fmt.Fprintf(Out, "Logged %d of %d items\n", resp.Logged, len(itemIDs))
	return nil
}

// pickItems показывает пункты чек-листа и читает номера через пробел.
func pickItems(ctx context.Context, cfg *config.Config, subjectID string) ([]string, error) {
	var d subjectDetailDTO
	if err := call(ctx, http.MethodGet, endpoint(cfg, "subjects", subjectID), nil, &d); err != nil {
		return nil, err
	}
	if d.Subject.Type != "CHECKLIST" {
		return nil, fmt.Errorf("%q is not a checklist", d.Subject.Title)
	}
	for i, it := range d.Subject.Items {
		fmt.Fprintf(Out, "  %d. %s\n", i+1, it.Title)
	}
	fmt.Fprint(Out, "Practiced items (numbers): ")

	in := bufio.NewScanner(In)
	if !in.Scan() {
		return nil, nil
	}
	var ids []string
	for _, f := range strings.Fields(strings.ReplaceAll(in.Text(), ",", " ")) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(d.Subject.Items) {
			return nil, fmt.Errorf("bad item number %q", f)
		}
		ids = append(ids, d.Subject.Items[n-1].ID)
	}
	return ids, nil
}

func init() { RegisterCmd(practiceCmd{}) }
