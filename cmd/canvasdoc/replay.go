package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/canvasdoc"
	"github.com/aretw0/canvasdoc/internal/presentation/tui"
	"github.com/aretw0/canvasdoc/pkg/host/memhost"
	"github.com/aretw0/canvasdoc/pkg/observability"
)

var replayCmd = &cobra.Command{
	Use:   "replay <in> [out]",
	Short: "Rebuild a document on an in-memory canvas and serialize it again",
	Long: `Runs the full pipeline: every component is created, deserialized,
inserted and post-placed, wires are reconnected, then the canvas is serialized
back to a document. Per-component failures are reported and skipped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		showMetrics, _ := cmd.Flags().GetBool("metrics")

		doc, err := readDocument(cmd.InOrStdin(), args[0], from)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(cfg.Metrics.Namespace, reg)
		opts := append(canvasdoc.ConfigOptions(cfg),
			canvasdoc.WithLogger(logger),
			canvasdoc.WithHooks(canvasdoc.ChainHooks(observability.LogHooks(logger), metrics.Hooks())),
		)
		conv := canvasdoc.New(opts...)

		status := tui.NewStatus(cmd.ErrOrStderr())
		canvas := memhost.NewCanvas()
		rep, err := conv.DeserializeDocument(doc, canvas)
		if err != nil {
			status.Warn("deserialize: %v", err)
		}
		for id, warnings := range rep.Warnings {
			for _, w := range warnings {
				status.Warn("%s: %s", id, w)
			}
		}

		out, err := conv.SerializeCanvas(canvas)
		if err != nil {
			status.Warn("serialize: %v", err)
		}
		status.OK("replayed %d of %d components, %d wires", len(out.Components), len(doc.Components), rep.Wires)

		if showMetrics {
			if err := dumpCounters(cmd.ErrOrStderr(), reg); err != nil {
				return err
			}
		}

		target := ""
		if len(args) == 2 {
			target = args[1]
		}
		return writeDocument(cmd.OutOrStdout(), target, to, out)
	},
}

// dumpCounters prints every counter sample in reg as "name{k=v,...} value".
func dumpCounters(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.Counter == nil {
				continue
			}
			labels := ""
			for i, l := range m.GetLabel() {
				if i > 0 {
					labels += ","
				}
				labels += l.GetName() + "=" + l.GetValue()
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().String("from", "", "Input format (json, yaml)")
	replayCmd.Flags().String("to", "", "Output format (json, yaml)")
	replayCmd.Flags().Bool("metrics", false, "Print handler counters to stderr")
}
