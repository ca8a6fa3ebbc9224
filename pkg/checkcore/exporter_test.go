package checkcore

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter(t *testing.T) {
	exporter := NewExporter()
	exporter.Update("check_table", &CheckResult{
		State:   CheckExitWarning,
		Metrics: []*CheckMetric{{Name: "core_0 temperature", Value: 62}},
	})

	server := httptest.NewServer(exporter.Router())
	defer server.Close()

	res, err := server.Client().Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Contains(t, string(body), `checkcore_check_state{check="check_table"} 1`)
	assert.Contains(t, string(body), `checkcore_metric_value{check="check_table",metric="core_0 temperature"} 62`)
	assert.Contains(t, string(body), "checkcore_info")
}
