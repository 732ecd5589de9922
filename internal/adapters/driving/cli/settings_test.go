package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inquire-cli/internal/config"
)

func TestSettingsCmd_ShowDisplaysSections(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[Ollama]")
	assert.Contains(t, out, "[OpenAI]")
	assert.Contains(t, out, "[Index]")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "Backend: sqlite (local)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_SetStoresTypedValues(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "set", "index.chunk_size", "500"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Set index.chunk_size = 500")

	store := configStore.(*mockConfigStore)
	assert.Equal(t, int64(500), store.values["index.chunk_size"])
}

func TestSettingsCmd_SetRequiresKeyAndValue(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "set", "only-key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingsCmd_PathPrintsConfigPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "config.toml")
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, false, parseValue("false"))
	assert.Equal(t, int64(42), parseValue("42"))
	assert.Equal(t, int64(1), parseValue("1"), "1 should stay numeric, not bool")
	assert.InDelta(t, 0.5, parseValue("0.5"), 1e-9)
	assert.Equal(t, "hello", parseValue("hello"))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}

func TestConfigKeyConstantsMatchStoreKeys(t *testing.T) {
	// The set-key command must write the key Resolve reads back.
	assert.Equal(t, "openai.api_key", config.KeyOpenAIAPIKey)
}
