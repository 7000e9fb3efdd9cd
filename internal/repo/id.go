package repo

import "github.com/google/uuid"

// ValidID — id в каноническом виде xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
// Колонки id имеют тип uuid, и в Postgres сравнение с произвольной строкой
// падает с ошибкой 22P02, а не находит ноль строк.
func ValidID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}

// validIDs оставляет только id в формате UUID, сохраняя порядок.
func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if ValidID(id) {
			out = append(out, id)
		}
	}
	return out
}
