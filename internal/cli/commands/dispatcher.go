package commands

import (
	"StudyHub/internal/cli/api"
	"StudyHub/internal/config"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Коды выхода shcli.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitAuth        = 3
	ExitInterrupted = 130
)

// aliases — короткие имена частых команд.
var aliases = map[string]string{
	"ls":    "subjects",
	"show":  "subject",
	"s":     "study",
	"p":     "practice",
	"stats": "analytics",
}

// resolve находит команду по имени или алиасу.
func resolve(name string) (Command, bool) {
	name = strings.ToLower(name)
	if full, ok := aliases[name]; ok {
		name = full
	}
	return Get(name)
}

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	if strings.ToLower(args[0]) == "help" { // shcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return ExitOK
		}
		if c, ok := resolve(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n  %s\n", c.Usage(), c.Description())
			return ExitOK
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	c, ok := resolve(args[0])
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(Out, "interrupted")
		return ExitInterrupted
	case errors.Is(err, ErrNotLoggedIn):
		fmt.Fprintln(Out, err)
		return ExitAuth
	case api.IsKind(err, "UNAUTHENTICATED"):
		fmt.Fprintln(Out, "session expired: run `shcli login <username> <password>` again")
		return ExitAuth
	default:
		fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(Out, hint)
		}
		return ExitFailure
	}
}

// hintFor подсказывает следующий шаг по типу ошибки сервера.
func hintFor(err error) string {
	switch {
	case api.IsKind(err, "NOT_FOUND"):
		return "hint: `shcli subjects` lists the subjects you can open"
	case api.IsKind(err, "FORBIDDEN"):
		return "hint: ask the subject owner to share it with you as EDITOR"
	default:
		return ""
	}
}
