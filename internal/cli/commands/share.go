package commands

import (
	"StudyHub/internal/config"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type shareCmd struct{}

func (shareCmd) Name() string        { return "share" }
func (shareCmd) Description() string { return "Share a subject (VIEWER by default)" }
func (shareCmd) Usage() string       { return "share <subject-id> <username> [VIEWER|EDITOR]" }

func (shareCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	payload := map[string]string{"username": args[1]}
	if len(args) == 3 {
		payload["role"] = strings.ToUpper(args[2])
	}
	var share struct {
		Role string `json:"role"`
	}
	if err := call(ctx, http.MethodPost, endpoint(cfg, "subjects", args[0], "share"), payload, &share); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Shared with %s as %s\n", args[1], share.Role)
	return nil
}

type unshareCmd struct{}

func (unshareCmd) Name() string        { return "unshare" }
func (unshareCmd) Description() string { return "Revoke a collaborator's access" }
func (unshareCmd) Usage() string       { return "unshare <subject-id> <username>" }

func (unshareCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	u := endpoint(cfg, "subjects", args[0], "share") + "?username=" + url.QueryEscape(args[1])
	if err := call(ctx, http.MethodDelete, u, nil, nil); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Access for %s revoked\n", args[1])
	return nil
}

func init() {
	RegisterCmd(shareCmd{})
	RegisterCmd(unshareCmd{})
}
