package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const appDir = "StudyHub"

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
type AuthFSStore struct{}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, appDir)
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func tokenPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth_token"), nil
}

func lastLoginPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last_login"), nil
}

func lastSubjectPath(login string) (string, error) {
	if login == "" {
		return "", errors.New("empty login for last_subject")
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	// Храним per-user, чтобы поддерживать несколько аккаунтов
	return filepath.Join(dir, "last_subject_"+filepath.Base(login)), nil
}

// readTrimmed читает файл и обрезает завершающие переводы строк/пробелы.
func readTrimmed(p, emptyMsg string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	s := strings.TrimRight(string(b), " \t\r\n")
	if s == "" {
		return "", errors.New(emptyMsg)
	}
	return s, nil
}

// Save сохраняет auth‑токен в файл.
func (AuthFSStore) Save(token string) error {
	p, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// Load читает auth‑токен из файла.
func (AuthFSStore) Load() (string, error) {
	p, err := tokenPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "empty token file")
}

// Clear удаляет токен (logout). Отсутствие файла — не ошибка.
func (AuthFSStore) Clear() error {
	p, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveLogin сохраняет логин пользователя в файл.
func (AuthFSStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := lastLoginPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(login), 0o600)
}

// LoadLogin читает логин пользователя из файла.
func (AuthFSStore) LoadLogin() (string, error) {
	p, err := lastLoginPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "no stored login")
}

// SaveLastSubject запоминает последний предмет, с которым работал пользователь.
func SaveLastSubject(login, subjectID string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := lastSubjectPath(login)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(subjectID), 0o600)
}

// LoadLastSubject читает последний предмет пользователя.
func LoadLastSubject(login string) (string, error) {
	p, err := lastSubjectPath(login)
	if err != nil {
		return "", err
	}
	return readTrimmed(p, "no stored subject")
}
