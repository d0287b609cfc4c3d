package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rxvar/internal/config"
	"rxvar/internal/diag"
	"rxvar/internal/manifest"
	"rxvar/internal/observ"
	"rxvar/internal/render"
	"rxvar/internal/trace"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <manifest.toml>",
	Short: "Render an expression manifest into a script module",
	Long: `Render lifts every entry of an expression manifest, renders the results
concurrently and writes them as one script module (or JSON artifacts).`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("format", "module", "output format (module|json)")
	renderCmd.Flags().StringP("output", "o", "-", "output file (- for stdout)")
	renderCmd.Flags().Int("jobs", 0, "max parallel render workers (0=auto)")
	renderCmd.Flags().Bool("cache", false, "reuse rendered artifacts from the disk cache")
	renderCmd.Flags().String("cache-dir", "", "cache directory (default: user cache dir)")
	renderCmd.Flags().Bool("clear-cache", false, "drop cached artifacts before rendering")
}

type renderOptions struct {
	format     string
	output     string
	jobs       int
	cache      bool
	cacheDir   string
	clearCache bool
	timings    bool
	maxDiag    int
}

func readRenderOptions(cmd *cobra.Command) (renderOptions, error) {
	var opts renderOptions
	var err error
	if opts.format, err = cmd.Flags().GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case "module", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be module or json)", opts.format)
	}
	if opts.output, err = cmd.Flags().GetString("output"); err != nil {
		return opts, fmt.Errorf("failed to get output flag: %w", err)
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if opts.cacheDir, err = cmd.Flags().GetString("cache-dir"); err != nil {
		return opts, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if opts.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
		return opts, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return opts, nil
}

// runRender executes "render": load, build, render, write. Entries that fail
// to build are reported as diagnostics and skipped; the command still fails
// when any diagnostic is an error.
func runRender(cmd *cobra.Command, args []string) (err error) {
	opts, err := readRenderOptions(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, config.Overrides{})
	if err != nil {
		return err
	}
	tr, err := setupTracing(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { tr.close(err != nil) }()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	ctx, span := trace.Start(cmd.Context(), trace.ScopeCommand, "render")
	defer span.End("")

	timer := observ.NewTimer()
	bag := diag.NewBag(opts.maxDiag)
	path := args[0]

	done := timer.Track("load")
	m, err := manifest.Load(path)
	done(path)
	if err != nil {
		bag.AddError(path, err)
		printDiagnostics(cmd.ErrOrStderr(), bag)
		return fmt.Errorf("failed to load manifest")
	}

	done = timer.Track("build")
	named := manifest.Build(ctx, m, bag)
	done(strconv.Itoa(len(named)) + " entries")

	cache, err := openCache(opts)
	if err != nil {
		return err
	}

	done = timer.Track("render")
	arts, st, err := render.RenderAll(ctx, named, render.Options{Jobs: opts.jobs, Cache: cache})
	done(fmt.Sprintf("%d hits, %d misses", st.Hits, st.Misses))
	if err != nil {
		return err
	}

	bag.Dedup()
	bag.Sort()

	done = timer.Track("write")
	err = writeOutput(cmd, opts, arts, bag)
	done("")
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), bag)
	if opts.timings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if bag.HasErrors() {
		return fmt.Errorf("%d of %d entries failed", len(m.Entries)-len(named), len(m.Entries))
	}
	return nil
}

func openCache(opts renderOptions) (*render.ArtifactCache, error) {
	if !opts.cache && !opts.clearCache {
		return nil, nil
	}
	dir := opts.cacheDir
	if dir == "" {
		var err error
		if dir, err = render.DefaultCacheDir("rxvar"); err != nil {
			return nil, err
		}
	}
	cache, err := render.OpenCache(dir)
	if err != nil {
		return nil, err
	}
	if opts.clearCache {
		if err := cache.Clear(); err != nil {
			return nil, err
		}
	}
	if !opts.cache {
		return nil, nil
	}
	return cache, nil
}

func writeOutput(cmd *cobra.Command, opts renderOptions, arts []render.Artifact, bag *diag.Bag) (err error) {
	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "-" {
		var f *os.File
		f, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	if opts.format == "json" {
		return renderJSON(out, arts, bag)
	}
	_, err = io.WriteString(out, render.Module(arts))
	return err
}

// diagnosticJSON is the JSON form of one diagnostic.
type diagnosticJSON struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Subject  string   `json:"subject,omitempty"`
	Message  string   `json:"message"`
	Notes    []string `json:"notes,omitempty"`
}

type renderPayload struct {
	Artifacts   []render.Artifact `json:"artifacts"`
	Diagnostics []diagnosticJSON  `json:"diagnostics"`
}

func renderJSON(out io.Writer, arts []render.Artifact, bag *diag.Bag) error {
	payload := renderPayload{
		Artifacts:   arts,
		Diagnostics: make([]diagnosticJSON, 0, bag.Len()),
	}
	if payload.Artifacts == nil {
		payload.Artifacts = []render.Artifact{}
	}
	for _, d := range bag.Items() {
		payload.Diagnostics = append(payload.Diagnostics, diagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Subject:  d.Subject,
			Message:  d.Message,
			Notes:    d.Notes,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
