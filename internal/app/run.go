package app

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vk/varexport/internal/ctxlog"
	"github.com/vk/varexport/promexport"
	"github.com/vk/varexport/varexport"
)

// Run renders the configured namespace to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "namespace", a.config.Namespace, "format", a.config.Format)

	ns := a.registry.ForNamespace(a.config.Namespace)
	if len(ns.Variables()) == 0 {
		logger.Warn("Namespace has no variables.", "namespace", ns.Name())
	}

	var err error
	switch a.config.Format {
	case FormatJSON:
		if err = ns.DumpJSON(a.outW); err == nil {
			_, err = io.WriteString(a.outW, "\n")
		}
	case FormatPrometheus:
		err = writePrometheus(a.outW, ns)
	default:
		err = ns.Dump(a.outW, a.config.Docs)
	}
	if err != nil {
		return fmt.Errorf("failed to render namespace %s: %w", ns.Name(), err)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// writePrometheus renders the numeric variables of ns in the Prometheus text
// exposition format.
func writePrometheus(w io.Writer, ns *varexport.Namespace) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(promexport.NewCollector(ns)); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
