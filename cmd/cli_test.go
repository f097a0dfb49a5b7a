package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/refocus-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRequiresDuration(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "start", "--site", "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	assert.Contains(t, err.Error(), "select a duration")
}

func TestStartRejectsOutOfRangeDurations(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative minutes", args: []string{"--minutes", "-5"}},
		{name: "negative hours", args: []string{"--hours", "-1"}},
		{name: "hours overflow", args: []string{"--hours", "5124096"}},
		{name: "minutes overflow", args: []string{"--minutes", "153722868"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			args := append([]string{"start", "--site", "example.com"}, tt.args...)

			_, _, err := executeCLI(t, home, args...)
			require.ErrorIs(t, err, domain.ErrInvalidDuration)

			stdout, _, err := executeCLI(t, home, "status")
			require.NoError(t, err)
			assert.Contains(t, stdout, "Status: Inactive")
		})
	}
}

func TestResolveDurationLargestValues(t *testing.T) {
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)

	got, err := resolveDuration(0, 2562047, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, 2562047*time.Hour, got)

	got, err = resolveDuration(153722867, 0, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, 153722867*time.Minute, got)
}

func TestStartRequiresSites(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "start", "--minutes", "30")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSites)
	assert.Contains(t, err.Error(), "add sites first")
}

func TestStartRejectsInvertedTimeRange(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "start", "--from", "10:00", "--to", "09:00", "--site", "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestStartUsesStoredSitesAndStrictStopIsDenied(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "site", "add", "youtube.com", "reddit.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added youtube.com")

	stdout, _, err = executeCLI(t, home, "start", "--minutes", "30")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Blocking 2 sites until")
	assert.Contains(t, stdout, "(strict)")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Status: Locked (strict mode)")
	assert.Contains(t, stdout, "blocked until")
	assert.Contains(t, stdout, "- youtube.com")

	_, _, err = executeCLI(t, home, "stop")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStopDenied)

	_, _, err = executeCLI(t, home, "start", "--minutes", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionActive)

	stdout, _, err = executeCLI(t, home, "stop", "--force")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Blocking stopped")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Status: Inactive")
}

func TestNonStrictSessionStopsWithoutForce(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "start", "--hours", "1", "--strict=false", "--site", "news.ycombinator.com")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Status: Active")

	stdout, _, err = executeCLI(t, home, "stop")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Blocking stopped")

	stdout, _, err = executeCLI(t, home, "stop")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No blocking session is active")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "start", "--minutes", "45", "--site", "example.com")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var out statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.True(t, out.Active)
	assert.True(t, out.Strict)
	require.NotNil(t, out.Until)
	assert.InDelta(t, 45*60, out.RemainingSeconds, 5)
	assert.Equal(t, []string{"example.com"}, out.Sites)
	assert.Equal(t, []string{"example.com"}, out.BlockedSites)
	assert.Equal(t, filepath.Join(home, ".refocus", "user_data.json"), out.DataFile)
}

func TestSiteRemoveAndList(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "site", "add", "a.com", "b.com", "a.com")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "site", "remove", "a.com", "missing.com")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "site", "list")
	require.NoError(t, err)
	assert.Equal(t, "b.com\n", stdout)

	_, _, err = executeCLI(t, home, "site", "add", "  ")
	require.Error(t, err)
}

func TestSiteListStripsControlCharacters(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "site", "add", "evil.com\x1b[2J")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "site", "list")
	require.NoError(t, err)
	assert.Equal(t, "evil.com[2J\n", stdout)
}

func TestUserSetAndShow(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "user", "set", "--username", "Ada", "--phone", "555-0100")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "user", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "username: Ada")
	assert.Contains(t, stdout, "email: user@example.com")
	assert.Contains(t, stdout, "phone: 555-0100")

	_, _, err = executeCLI(t, home, "user", "set", "--email", "", "--phone", "")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "user", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "email: user@example.com")
	assert.Contains(t, stdout, "phone: \n")
}

func TestExpiredSessionHealsOnStartup(t *testing.T) {
	home := t.TempDir()
	until := time.Now().Add(-time.Second).Format(time.RFC3339Nano)
	require.NoError(t, writeDataFixture(home, until))

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Status: Inactive")

	raw, err := os.ReadFile(filepath.Join(home, ".refocus", "user_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"blocking_active": false`)
	assert.Contains(t, string(raw), `"block_until": null`)
}

func TestMetricsTextfileIsWritten(t *testing.T) {
	home := t.TempDir()
	metricsPath := filepath.Join(home, "refocus.prom")
	t.Setenv("REFOCUS_METRICS_TEXTFILE", metricsPath)

	_, _, err := executeCLI(t, home, "start", "--minutes", "10", "--site", "example.com")
	require.NoError(t, err)

	raw, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "refocus_session_active 1")
	assert.Contains(t, string(raw), `refocus_session_transitions_total{transition="start"} 1`)
	assert.Contains(t, string(raw), "refocus_blocked_sites 1")
}

func TestConfigFileSelectsTOMLStore(t *testing.T) {
	home := t.TempDir()
	dataPath := filepath.Join(home, "data", "refocus.toml")
	configDir := filepath.Join(home, ".refocus")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	config := fmt.Sprintf("[store]\npath = %q\n", dataPath)
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600))

	_, _, err := executeCLI(t, home, "site", "add", "example.com")
	require.NoError(t, err)

	raw, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "blocked_sites")
	assert.Contains(t, string(raw), "example.com")
	assert.False(t, json.Valid(raw))
	assert.NoFileExists(t, filepath.Join(configDir, "user_data.json"))
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDataFixture(home, blockUntil string) error {
	dataDir := filepath.Join(home, ".refocus")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	data := fmt.Sprintf(`{
    "user": {"username": "User", "email": "user@example.com", "phone": "", "profile_pic": "default.png"},
    "blocked_sites": ["youtube.com"],
    "settings": {"blocking_active": true, "block_until": %q, "strict_mode": true}
}
`, blockUntil)

	return os.WriteFile(filepath.Join(dataDir, "user_data.json"), []byte(data), 0o600)
}
