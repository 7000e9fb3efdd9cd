package repo

import "errors"

var (
	// ErrInvalidCardRefs — в разбивке сессии есть карточка не из этого предмета.
	ErrInvalidCardRefs = errors.New("card does not belong to subject")
	// ErrNoValidItems — ни один из переданных пунктов не принадлежит чек-листу.
	ErrNoValidItems = errors.New("no valid checklist items")
)
