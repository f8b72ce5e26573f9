package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, env := range []string{"SQLITE_PATH", "REDIS_ADDR", "KAFKA_BROKERS", "ROW_LIMIT", "LOG_LEVEL"} {
		t.Setenv(env, "")
	}
	chdirTest(t, t.TempDir())
}

func TestListNeedsNoDatabase(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "never.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath, "--list"}, &out)

	assert.Equal(t, exitOK, code)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "1. Movies with large budget and specific director: SELECT * FROM movies WHERE budget > 30000000 AND director_id = 5417", lines[0])
	assert.Equal(t, "10. Ten movies starting from row 100: SELECT * FROM movies LIMIT 10 OFFSET 100", lines[9])
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunOneInvalidIndex(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "movies.db")

	for _, idx := range []string{"0", "11"} {
		var out bytes.Buffer
		code := execute([]string{"--db", dbPath, "--run", idx}, &out)
		assert.Equal(t, exitOK, code)
		assert.Equal(t, "Invalid query index. Use --list to see available queries.\n", out.String())
	}
}

func TestInvalidIndexSkipsInit(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "data", "movies.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath, "--init", "--run", "0"}, &out)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Invalid query index. Use --list to see available queries.\n", out.String())
	_, err := os.Stat(filepath.Dir(dbPath))
	assert.True(t, os.IsNotExist(err))
}

func TestRunOneAfterInit(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "movies.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath, "--init", "--run", "3"}, &out)
	require.Equal(t, exitOK, code, out.String())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Running [3] Movies with non-zero budget...\nSQL: SELECT * FROM movies WHERE budget != 0\n\n"))
	assert.Contains(t, text, "id\ttitle\tdirector_id\trelease_date\tbudget\ttagline\tvote_average\n")
	assert.Contains(t, text, "1\tAlpha\t1\t2020-05-01\t1000000\tNULL\tNULL\n")
}

func TestRunOneQueryErrorWithoutSchema(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath, "--run", "1"}, &out)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out.String(), "SQL error: ")
	assert.Contains(t, out.String(), "movies")
}

func TestRunAllAfterInit(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "movies.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath, "--init"}, &out)
	require.Equal(t, exitOK, code)

	text := out.String()
	assert.Equal(t, 10, strings.Count(text, strings.Repeat("=", 80)+"\n"))
	assert.Contains(t, text, "5. Titles starting with 'Harry Potter'\n(no rows)\n")
	assert.NotContains(t, text, "SQL error")
}

func TestRunAllContinuesPastErrors(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath}, &out)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, 10, strings.Count(out.String(), "SQL error: "))
}

func TestOpenFailureExitsNonZero(t *testing.T) {
	isolate(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	dbPath := filepath.Join(blocker, "movies.db")

	var out bytes.Buffer
	code := execute([]string{"--db", dbPath}, &out)
	assert.Equal(t, exitFailure, code)
	assert.True(t, strings.HasPrefix(out.String(), "Could not open database '"+dbPath+"': "))
}

func TestListAndRunAreExclusive(t *testing.T) {
	isolate(t)
	var out bytes.Buffer
	code := execute([]string{"--list", "--run", "1"}, &out)
	assert.Equal(t, exitFailure, code)
}
