package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("METRICS_DSN", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGoalsCmd(t *testing.T) {
	out, err := run(t, "", "goals", "--revenue", "3000000", "--period", "30days")
	require.NoError(t, err)
	assert.Equal(t, "daily ; 110.000 ₫\nweekly ; 770.000 ₫\nmonthly ; 3.300.000 ₫\n", out)
}

func TestGoalsCmd_NoHistory(t *testing.T) {
	out, err := run(t, "", "goals")
	require.NoError(t, err)
	assert.Contains(t, out, "daily ; 1.000.000 ₫")
}

func TestDecodeCmd(t *testing.T) {
	payload := `{
	  "period": "30days",
	  "revenue": {"totalRevenue": 3000000, "totalOrders": 4},
	  "ordersByStatus": [{"_id": "completed", "count": 3}, {"_id": "pending", "count": 1}],
	  "conversionFunnel": {"a": {"conversionRate": 10}, "b": {"conversionRate": 20}}
	}`
	out, err := run(t, payload, "decode", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"fulfillmentRate": 75`)
	assert.Contains(t, out, `"funnelEfficiency": 15`)
	assert.Contains(t, out, `"period": "30days"`)
}

func TestDecodeCmd_InvalidPayload(t *testing.T) {
	_, err := run(t, "{oops", "decode")
	assert.Error(t, err)
}

func TestReportCmd_RequiresDSN(t *testing.T) {
	_, err := run(t, "", "report")
	assert.ErrorContains(t, err, "METRICS_DSN")
}

func TestReportCmd_BadPeriod(t *testing.T) {
	_, err := run(t, "", "report", "--dsn", "mariadb://u:p@localhost:3306/shop", "--periods", "14days")
	assert.ErrorContains(t, err, "14days")
}

func TestTrackCmd_LogSink(t *testing.T) {
	out, err := run(t, "", "track", "--event", "product_viewed", "--session", "sess-9", "--prop", "productId=p1")
	require.NoError(t, err)
	assert.Contains(t, out, "; product_viewed ; session=sess-9")
}

func TestTrackCmd_UnknownEvent(t *testing.T) {
	_, err := run(t, "", "track", "--event", "wishlist_added")
	assert.Error(t, err)
}
