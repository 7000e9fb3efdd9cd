package commands

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	fsrepo "StudyHub/internal/cli/repo/fs"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы артефакты (токен/логин) создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// loggedIn сохраняет токен и логин, как после успешного login.
func loggedIn(t *testing.T, username string) {
	t.Helper()
	withTempConfig(t)
	st := fsrepo.AuthFSStore{}
	if err := st.Save("tok-" + username); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if err := st.SaveLogin(username); err != nil {
		t.Fatalf("save login: %v", err)
	}
}

// withIO подменяет In/Out на время теста и возвращает буфер вывода.
func withIO(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	oldIn, oldOut := In, Out
	var buf bytes.Buffer
	In = strings.NewReader(input)
	Out = &buf
	t.Cleanup(func() { In, Out = oldIn, oldOut })
	return &buf
}

