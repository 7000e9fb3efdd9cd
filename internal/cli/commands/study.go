package commands

import (
	"StudyHub/internal/config"
	"StudyHub/internal/study"
	"bufio"
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// rng — источник случайности для очереди; nil означает math/rand/v2.
var rng study.Rand

// now подменяется в тестах.
var now = time.Now

type studyCmd struct{}

func (studyCmd) Name() string        { return "study" }
func (studyCmd) Description() string { return "Run a flashcard session and record the result" }
func (studyCmd) Usage() string       { return "study [subject-id|-] [size]" }

func (studyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	subjectID, rest, err := subjectArg(args)
	if err != nil || len(rest) > 1 {
		return ErrUsage
	}
	size := float64(study.DefaultRunSize)
	if len(rest) == 1 {
		v, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return ErrUsage
		}
		size = v
	}

	var deck studyDeckDTO
	if err := call(ctx, http.MethodGet, endpoint(cfg, "subjects", subjectID, "study"), nil, &deck); err != nil {
		return err
	}
	rememberSubject(subjectID)

	queue := study.BuildQueue(deck.Cards, size, rng)
	if len(queue) == 0 {
		fmt.Fprintln(Out, "No cards to study")
		return nil
	}
	fmt.Fprintf(Out, "%s: %d of %d cards\n", deck.Title, len(queue), len(deck.Cards))

	run := study.NewRun(queue, cfg.RepeatIncorrect)
	started := now()
	if err := drive(ctx, run); err != nil {
		return err
	}

	result := run.Result(now().Sub(started))
	if result.CardCount == 0 {
		fmt.Fprintln(Out, "Nothing answered, session not recorded")
		return nil
	}
	if err := call(ctx, http.MethodPost, endpoint(cfg, "subjects", subjectID, "sessions"), result, nil); err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	total := result.Correct + result.Incorrect
	accuracy := int(math.Round(float64(result.Correct) / float64(total) * 100))
	fmt.Fprintf(Out, "\nCorrect: %d, incorrect: %d, accuracy: %d%%, %d min\n",
		result.Correct, result.Incorrect, accuracy, result.DurationMin)
	return nil
}

// drive проводит пользователя по очереди: Enter показывает ответ, y/n — оценка, q — выход.
// После q уже данные ответы всё равно записываются.
func drive(ctx context.Context, run *study.Run) error {
	in := bufio.NewScanner(In)
	for {
		card, ok := run.Current()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(Out, "\n[%d left] Q: %s\n(Enter to reveal) ", run.Remaining(), card.Prompt)
		if !in.Scan() {
			return nil
		}
		fmt.Fprintf(Out, "A: %s\n", card.Answer)

		for {
			fmt.Fprint(Out, "Correct? [y/n/q]: ")
			if !in.Scan() {
				return nil
			}
			switch strings.ToLower(strings.TrimSpace(in.Text())) {
			case "y", "yes", "д":
				_ = run.Answer(true)
			case "n", "no", "н":
				_ = run.Answer(false)
			case "q", "quit":
				return nil
			default:
				continue
			}
			break
		}
	}
}

func init() { RegisterCmd(studyCmd{}) }
