package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetFlags restores the shared flag variables between executions; pflag
// only applies defaults at registration time.
func resetFlags() {
	fieldSecond, fieldMinute, fieldHour = "*", "*", "*"
	fieldDay, fieldMonth, fieldWeekday, fieldYear = "*", "*", "*", "*"
	timezone, scheduleFile, scheduleName = "", "", ""
	nextFrom, nextCount = "", 1
	matchAt, ignoreSecond = "", false
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestNextCommand(t *testing.T) {
	out, err := executeCommand(t,
		"next",
		"--second", "0",
		"--minute", "0",
		"--hour", "9",
		"--day", "*",
		"--month", "*",
		"--weekday", "*",
		"--year", "*",
		"--from", "2026-05-12T08:59:30Z",
		"--count", "3",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{
		"2026-05-12T09:00:00Z",
		"2026-05-13T09:00:00Z",
		"2026-05-14T09:00:00Z",
	}, lines)
}

func TestNextCommand_LastDay(t *testing.T) {
	out, err := executeCommand(t,
		"next",
		"--second", "0",
		"--minute", "0",
		"--hour", "0",
		"--day", "L",
		"--month", "*",
		"--weekday", "*",
		"--year", "*",
		"--from", "2026-02-10T00:00:00Z",
		"--count", "2",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{
		"2026-02-28T00:00:00Z",
		"2026-03-31T00:00:00Z",
	}, lines)
}

func TestNextCommand_NoFutureOccurrence(t *testing.T) {
	_, err := executeCommand(t,
		"next",
		"--second", "0",
		"--minute", "0",
		"--hour", "0",
		"--day", "*",
		"--month", "*",
		"--weekday", "*",
		"--year", "2020",
		"--from", "2026-01-01T00:00:00Z",
		"--count", "1",
	)
	require.Error(t, err)
}

func TestNextCommand_ScheduleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schedules:
  - name: leap-day
    second: "0"
    minute: "0"
    hour: "0"
    day: "29"
    month: "2"
`), 0o644))

	out, err := executeCommand(t,
		"next",
		"--file", path,
		"--schedule", "leap-day",
		"--from", "2025-01-15T00:00:00Z",
		"--count", "1",
	)
	require.NoError(t, err)
	require.Equal(t, "2028-02-29T00:00:00Z", strings.TrimSpace(out))
}

func TestNextCommand_ScheduleFileRequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedules: []\n"), 0o644))

	_, err := executeCommand(t, "next", "--file", path, "--from", "2026-01-01T00:00:00Z")
	require.Error(t, err)
}

func TestMatchCommand(t *testing.T) {
	out, err := executeCommand(t,
		"match",
		"--second", "*",
		"--minute", "*",
		"--hour", "*",
		"--day", "*",
		"--month", "*",
		"--weekday", "1",
		"--year", "*",
		"--at", "2026-09-07T09:00:00Z", // a Monday
	)
	require.NoError(t, err)
	require.Equal(t, "match", strings.TrimSpace(out))

	out, err = executeCommand(t,
		"match",
		"--second", "*",
		"--minute", "*",
		"--hour", "*",
		"--day", "*",
		"--month", "*",
		"--weekday", "1",
		"--year", "*",
		"--at", "2026-09-08T09:00:00Z", // a Tuesday
	)
	require.Error(t, err)
	require.Equal(t, "no match", strings.TrimSpace(out))
}
