package metrics

import (
	"fmt"
	"strings"
)

// Render produces the Prometheus-style text exposition served by the
// metrics endpoint. The swapped and waiting gauges are permanently
// zero; only the running gauge carries a live value. The "0.0" sample
// literals match the real service's exposition and are part of the
// compatibility contract.
func Render(modelName string, running int64) string {
	var b strings.Builder
	writeGauge(&b, "num_requests_running",
		"Number of requests currently running on GPU.",
		modelName, fmt.Sprintf("%d", running))
	writeGauge(&b, "num_requests_swapped",
		"Number of requests swapped to CPU.",
		modelName, "0.0")
	writeGauge(&b, "num_requests_waiting",
		"Number of requests waiting to be processed.",
		modelName, "0.0")
	return b.String()
}

func writeGauge(b *strings.Builder, name, help, modelName, value string) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s gauge\n", name)
	fmt.Fprintf(b, "%s{model_name=%q} %s\n", name, modelName, value)
}
