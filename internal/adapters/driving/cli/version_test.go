package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "clipsight version test-version-1.0.0")
}

func TestSetVersion_OverridesDefault(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("0.2.0")
	assert.Equal(t, "0.2.0", version)

	// Empty strings are ignored
	SetVersion("")
	assert.Equal(t, "0.2.0", version)
}
