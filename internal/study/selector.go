// Package study собирает очередь карточек для прохода и ведёт сам проход.
// Пакет не делает I/O: случайность приходит снаружи через Rand.
package study

import (
	"math"
	"math/rand/v2"
)

// DefaultRunSize — размер прохода, если пользователь его не задал.
const DefaultRunSize = 10

// minWeight — нижняя граница веса, чтобы выученные карточки тоже иногда выпадали.
const minWeight = 0.1

// Card — карточка колоды с историей ответов текущего пользователя.
type Card struct {
	ID        string `json:"id"`
	Prompt    string `json:"prompt"`
	Answer    string `json:"answer"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// Rand — источник случайности. *rand.Rand из math/rand/v2 ему удовлетворяет.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Weight — вес карточки при выборе: (incorrect+1)/(correct+1), не меньше 0.1.
// Без истории вес равен 1.
func Weight(correct, incorrect int) float64 {
	w := float64(incorrect+1) / float64(correct+1)
	return math.Max(minWeight, w)
}

// NormalizeSize приводит желаемый размер прохода к [1, total].
// NaN, бесконечность и значения <= 0 означают «все карточки».
func NormalizeSize(desired float64, total int) int {
	if total <= 0 {
		return 0
	}
	if math.IsNaN(desired) || math.IsInf(desired, 0) || desired <= 0 {
		return total
	}
	n := math.Floor(desired)
	if n < 1 {
		return 1
	}
	if n >= float64(total) {
		return total
	}
	return int(n)
}

// BuildQueue выбирает карточки без повторов, с вероятностью пропорциональной весу
// (рулетка). Карточки с большим числом ошибок попадают в начало чаще.
func BuildQueue(cards []Card, desired float64, rng Rand) []Card {
	size := NormalizeSize(desired, len(cards))
	if size == 0 {
		return []Card{}
	}
	if rng == nil {
		rng = globalRand{}
	}

	pool := make([]Card, len(cards))
	copy(pool, cards)
	weights := make([]float64, len(pool))
	var total float64
	for i, c := range pool {
		weights[i] = Weight(c.Correct, c.Incorrect)
		total += weights[i]
	}

	queue := make([]Card, 0, size)
	for len(queue) < size {
		target := rng.Float64() * total
		idx := len(pool) - 1
		var acc float64
		for i, w := range weights {
			acc += w
			if target < acc {
				idx = i
				break
			}
		}
		queue = append(queue, pool[idx])
		total -= weights[idx]

		pool = append(pool[:idx], pool[idx+1:]...)
		weights = append(weights[:idx], weights[idx+1:]...)
	}
	return queue
}
