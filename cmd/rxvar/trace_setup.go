package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rxvar/internal/config"
	"rxvar/internal/trace"
)

// tracing is the per-command tracer handle.
type tracing struct {
	tracer trace.Tracer
	cmd    *cobra.Command
}

// setupTracing builds the tracer from the resolved configuration and the
// trace-mode flags, and attaches it to the command context.
func setupTracing(cmd *cobra.Command, cfg config.Config) (*tracing, error) {
	root := cmd.Root()

	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Trace.Level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return &tracing{tracer: trace.Nop, cmd: cmd}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      cfg.Trace.Level,
		Mode:       mode,
		OutputPath: cfg.Trace.Output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cmd.SetContext(trace.WithTracer(ctx, tracer))
	return &tracing{tracer: tracer, cmd: cmd}, nil
}

// ring returns the ring buffer behind the tracer, if any.
func (t *tracing) ring() (*trace.RingTracer, bool) {
	switch tr := t.tracer.(type) {
	case *trace.RingTracer:
		return tr, true
	case *trace.MultiTracer:
		return tr.Ring()
	}
	return nil, false
}

// close flushes the tracer. When the command failed, buffered ring events
// are dumped to stderr first.
func (t *tracing) close(failed bool) {
	out := t.cmd.ErrOrStderr()
	if failed {
		if ring, ok := t.ring(); ok {
			fmt.Fprintln(out, "trace: dumping buffered events")
			if err := ring.Dump(out, trace.FormatText); err != nil {
				fmt.Fprintf(out, "trace: dump error: %v\n", err)
			}
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(out, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(out, "trace: close error: %v\n", err)
	}
}
