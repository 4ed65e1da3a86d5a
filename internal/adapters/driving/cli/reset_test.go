package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetCmd_Use(t *testing.T) {
	assert.Equal(t, "reset", resetCmd.Use)
}

func TestResetCmd_Long(t *testing.T) {
	assert.Contains(t, resetCmd.Long, "transcript cache is never touched")
}

func TestResetCmd_HasFlags(t *testing.T) {
	require.NotNil(t, resetCmd.Flags().Lookup("channel"))
	require.NotNil(t, resetCmd.Flags().Lookup("skip-cache-check"))

	yes := resetCmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "y", yes.Shorthand)
}

func TestResetCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { resetYes = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset", "--yes"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Database reset complete.")
	assert.Contains(t, buf.String(), "transcripts preserved")
	assert.Contains(t, buf.String(), "State:             ready")
}

func TestResetCmd_PassesResolvedPaths(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { resetYes = false }()

	mock := resetService.(*mockResetService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset", "-y"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, databasePath, mock.lastOpts.DatabasePath)
	assert.Equal(t, cacheDir, mock.lastOpts.CacheDir)
	assert.True(t, mock.lastOpts.CheckCache)
}

func TestResetCmd_SkipCacheCheck(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		resetYes = false
		resetSkipCacheCheck = false
	}()

	mock := resetService.(*mockResetService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset", "-y", "--skip-cache-check"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.False(t, mock.lastOpts.CheckCache)
	assert.Contains(t, buf.String(), "not checked")
}

func TestResetCmd_AbortsWithoutConfirmation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(bytes.NewBufferString("n\n"))
	rootCmd.SetArgs([]string{"reset"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Aborted.")
}

func TestResetCmd_ChannelScoped(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		resetYes = false
		resetChannelID = ""
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"reset", "-y", "--channel", "UC123"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Channel UC123 reset.")
	assert.Contains(t, buf.String(), "Videos removed:      3")
}

func TestResetCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { resetYes = false }()

	resetService.(*mockResetService).err = errors.New("database file is locked")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"reset", "-y"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reset failed")
	assert.Contains(t, err.Error(), "database file is locked")
}

func TestResetCmd_ServiceNotConfigured(t *testing.T) {
	oldReset := resetService
	resetService = nil
	defer func() {
		resetService = oldReset
		resetYes = false
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"reset", "-y"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reset service not configured")
}
