/*
Package observability exposes orchestrator activity as Prometheus metrics.

Metrics are fed by runtime hooks, so the orchestrator itself never imports
Prometheus:

	m := observability.NewMetrics("canvasdoc", prometheus.DefaultRegisterer)
	conv := canvasdoc.New(canvasdoc.WithHooks(m.Hooks()))
*/
package observability
