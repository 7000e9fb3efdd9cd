package commands

import (
	"StudyHub/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"StudyHub/internal/cli/api"
)

type dataResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show who the server thinks you are" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, _ := session.Load()
	resp, body, err := api.PostJSON(ctx, endpoint(cfg, "user", "test"), struct{}{}, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.DecodeError(resp, body)
	}
	var dr dataResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	login, _ := session.LoadLogin()
	fmt.Fprintln(Out, "Status:", dr.Result)
	if login != "" {
		fmt.Fprintln(Out, "Last login:", login)
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
