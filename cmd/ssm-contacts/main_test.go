package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/memohai/ssmcontacts/internal/boot"
	"github.com/memohai/ssmcontacts/internal/config"
	"github.com/memohai/ssmcontacts/internal/contacts"
	"github.com/memohai/ssmcontacts/internal/seed"
)

const testSeed = `
account_id: "111122223333"
contacts:
  - alias: tuser
    type: PERSONAL
    channels:
      - {name: email, type: EMAIL, address: "a@b.com"}
    plan:
      - duration_in_minutes: 5
        targets: [{channel: email}]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv blanks the overrides boot.ApplyEnv reads so the host
// environment cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		boot.EnvHTTPAddr, boot.EnvRateLimit, boot.EnvAccountID, boot.EnvSeedFile,
		boot.EnvRegion, boot.EnvDefaultRegion, boot.EnvLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ssm-contacts ")
}

func TestSeedCheck(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", "")
	seedPath := writeFile(t, "seed.yaml", testSeed)

	out, err := run(t, "--config", cfgPath, "seed", "check", seedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (1 contacts, 1 channels, 111122223333/us-east-1)")
}

func TestSeedCheck_InvalidFixture(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", "")
	seedPath := writeFile(t, "seed.yaml", "contacts:\n  - {alias: 'Bad Alias', type: PERSONAL}\n")

	_, err := run(t, "--config", cfgPath, "seed", "check", seedPath)
	assert.ErrorIs(t, err, contacts.ErrValidation)
}

func TestSeedScope(t *testing.T) {
	t.Parallel()
	cfg := config.Default()

	account, region := seedScope(cfg, seed.File{})
	assert.Equal(t, config.DefaultAccountID, account)
	assert.Equal(t, config.DefaultRegion, region)

	account, region = seedScope(cfg, seed.File{AccountID: "999999999999", Region: "eu-west-1"})
	assert.Equal(t, "999999999999", account)
	assert.Equal(t, "eu-west-1", region)
}

func TestNewApp_SeedsRegistry(t *testing.T) {
	seedPath := writeFile(t, "seed.yaml", testSeed)
	cfgPath := writeFile(t, "config.toml", "[log]\nlevel = \"error\"\n\n[emulator]\nseed_file = \""+filepath.ToSlash(seedPath)+"\"\n")

	clearEnv(t)
	var registry *contacts.Registry
	app := newApp(configFile(cfgPath), fx.Populate(&registry))
	require.NoError(t, app.Err())

	b := registry.Backend("111122223333", config.DefaultRegion)
	page, err := b.ListContacts(contacts.ListContactsInput{})
	require.NoError(t, err)
	require.Len(t, page.Contacts, 1)
	assert.Equal(t, "tuser", page.Contacts[0].Alias)
}

func TestNewApp_BadConfig(t *testing.T) {
	clearEnv(t)
	cfgPath := writeFile(t, "config.toml", "[server]\nrate_limit = -1\n")
	app := newApp(configFile(cfgPath))
	assert.Error(t, app.Err())
}
