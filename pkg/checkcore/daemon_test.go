package checkcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaemonChecks(t *testing.T) {
	section := &ConfigSection{
		"check1":   "check_table table=sensors.tsv column=temperature levels=60,70",
		"check2":   "check_netrate device=eth0",
		"interval": "30s",
	}

	checks, err := daemonChecks(section)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "check_table", checks[0].name)
	assert.Equal(t, []string{"table=sensors.tsv", "column=temperature", "levels=60,70"}, checks[0].args)
	assert.Equal(t, "check_netrate", checks[1].name)
}

func TestDaemonChecksBroken(t *testing.T) {
	section := &ConfigSection{"check1": ""}

	_, err := daemonChecks(section)
	require.Error(t, err)
}

func TestRunDaemonNoChecks(t *testing.T) {
	core := StartTestCore(t)

	err := RunDaemon(core)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checks configured")
}
