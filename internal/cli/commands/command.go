package commands

import (
	"StudyHub/internal/cli/api"
	"StudyHub/internal/cli/repo"
	fsrepo "StudyHub/internal/cli/repo/fs"
	"StudyHub/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// ErrNotLoggedIn — нет сохранённого токена.
var ErrNotLoggedIn = errors.New("not logged in: run `shcli login <username> <password>` first")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <username> <password>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// In — ввод для интерактивных команд (study, practice).
var In io.Reader = os.Stdin

// session хранит токен и последний логин.
var session repo.Session = fsrepo.AuthFSStore{}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands.
func FormatGlobalUsage() string {
	lines := []string{
		"StudyHub CLI",
		"",
		"Usage:",
		"  shcli [--base-url <host:port>] [--repeat] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-36s %s", c.Usage(), c.Description()))
	}

	short := make([]string, 0, len(aliases))
	for a, full := range aliases {
		short = append(short, a+"="+full)
	}
	sort.Strings(short)
	lines = append(lines, "", "Aliases: "+strings.Join(short, ", "))
	return strings.Join(lines, "\n") + "\n"
}

// endpoint склеивает адрес сервера и путь; сегменты экранируются.
func endpoint(cfg *config.Config, segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.TrimRight(cfg.ServerURL, "/") + "/api/" + strings.Join(parts, "/")
}

// call выполняет запрос от имени сохранённого пользователя и раскладывает ответ в out.
func call(ctx context.Context, method, url string, payload, out any) error {
	token, err := session.Load()
	if err != nil {
		return ErrNotLoggedIn
	}
	resp, body, err := api.Do(ctx, method, url, payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return api.DecodeError(resp, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// subjectArg берёт id предмета из первого аргумента или последний использованный.
func subjectArg(args []string) (string, []string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], args[1:], nil
	}
	rest := args
	if len(args) > 0 {
		rest = args[1:]
	}
	login, err := session.LoadLogin()
	if err != nil {
		return "", nil, ErrUsage
	}
	id, err := fsrepo.LoadLastSubject(login)
	if err != nil {
		return "", nil, ErrUsage
	}
	return id, rest, nil
}

// rememberSubject запоминает предмет для следующих команд; ошибки не критичны.
func rememberSubject(subjectID string) {
	if login, err := session.LoadLogin(); err == nil {
		_ = fsrepo.SaveLastSubject(login, subjectID)
	}
}
