package commands

import (
	"StudyHub/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"

	"StudyHub/internal/cli/api"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and log in" }
func (registerCmd) Usage() string       { return "register <username> <password> [name]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	req := RegisterRequest{Username: args[0], Password: args[1]}
	if len(args) == 3 {
		req.Name = &args[2]
	}
	resp, body, err := api.PostJSON(ctx, endpoint(cfg, "user", "register"), req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return errors.New("username already in use")
	}
	if resp.StatusCode != http.StatusOK {
		return api.DecodeError(resp, body)
	}
	if err := api.PersistAuthFromResponse(resp); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := session.SaveLogin(req.Username); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	fmt.Fprintf(Out, "Registered as %s\n", req.Username)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
