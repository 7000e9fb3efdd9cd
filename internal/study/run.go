package study

import (
	"errors"
	"math"
	"time"
)

// ErrRunFinished — ответ после окончания прохода.
var ErrRunFinished = errors.New("study run is finished")

const maxDurationMin = 1440

// CardResult — итог по одной карточке за проход.
type CardResult struct {
	CardID    string `json:"card_id"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// Result — итог прохода в том виде, в каком его принимает запись сессии.
type Result struct {
	Correct     int          `json:"correct"`
	Incorrect   int          `json:"incorrect"`
	DurationMin int          `json:"duration_min"`
	CardCount   int          `json:"card_count"`
	Breakdown   []CardResult `json:"cards"`
}

// Run — состояние одного прохода по очереди карточек.
// С repeatIncorrect неверно отвеченная карточка возвращается в конец очереди,
// и проход заканчивается, только когда на каждую карточку ответили верно.
type Run struct {
	queue           []Card
	repeatIncorrect bool

	order   []string
	tallies map[string]*CardResult
}

func NewRun(queue []Card, repeatIncorrect bool) *Run {
	q := make([]Card, len(queue))
	copy(q, queue)
	return &Run{
		queue:           q,
		repeatIncorrect: repeatIncorrect,
		tallies:         make(map[string]*CardResult, len(queue)),
	}
}

// Current возвращает карточку, на которую ждём ответ.
func (r *Run) Current() (Card, bool) {
	if len(r.queue) == 0 {
		return Card{}, false
	}
	return r.queue[0], true
}

// Answer фиксирует ответ на текущую карточку.
func (r *Run) Answer(correct bool) error {
	if len(r.queue) == 0 {
		return ErrRunFinished
	}
	card := r.queue[0]
	r.queue = r.queue[1:]

	t, ok := r.tallies[card.ID]
	if !ok {
		t = &CardResult{CardID: card.ID}
		r.tallies[card.ID] = t
		r.order = append(r.order, card.ID)
	}
	if correct {
		t.Correct++
		return nil
	}
	t.Incorrect++
	if r.repeatIncorrect {
		r.queue = append(r.queue, card)
	}
	return nil
}

func (r *Run) Done() bool { return len(r.queue) == 0 }

// Remaining — сколько ответов ещё ожидается (без учёта будущих повторов).
func (r *Run) Remaining() int { return len(r.queue) }

// Result собирает итог: суммы по карточкам всегда совпадают с общими суммами.
// Длительность округляется до минут, не меньше одной.
func (r *Run) Result(elapsed time.Duration) Result {
	res := Result{
		DurationMin: durationMinutes(elapsed),
		CardCount:   len(r.order),
		Breakdown:   make([]CardResult, 0, len(r.order)),
	}
	for _, id := range r.order {
		t := r.tallies[id]
		res.Correct += t.Correct
		res.Incorrect += t.Incorrect
		res.Breakdown = append(res.Breakdown, *t)
	}
	return res
}

func durationMinutes(d time.Duration) int {
	m := int(math.Round(d.Minutes()))
	if m < 1 {
		return 1
	}
	if m > maxDurationMin {
		return maxDurationMin
	}
	return m
}
