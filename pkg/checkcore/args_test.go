package checkcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args := ParseArgs([]string{
		"table=sensors.tsv",
		"levels='60,70'",
		`item="core 0"`,
		"rate",
		"levels=75,85",
	})

	assert.Equal(t, "sensors.tsv", args["table"])
	assert.Equal(t, "core 0", args["item"], "quotes around values are removed")
	assert.Equal(t, "", args["rate"], "bare keys get an empty value")
	assert.Equal(t, "75,85", args["levels"], "repeated keys keep the last value")
}

func TestParseCommand(t *testing.T) {
	name, args, err := ParseCommand(`check_table table=sensors.tsv levels="60,70"`)
	require.NoError(t, err)
	assert.Equal(t, "check_table", name)
	assert.Equal(t, []string{"table=sensors.tsv", "levels=60,70"}, args)

	_, _, err = ParseCommand("")
	require.Error(t, err)

	_, _, err = ParseCommand(`check_table arg="unbalanced`)
	require.Error(t, err)
}
