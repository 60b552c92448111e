package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/ministry-roster/internal/aggregate"
	"github.com/insightdelivered/ministry-roster/internal/api"
	"github.com/insightdelivered/ministry-roster/internal/extractor"
	"github.com/insightdelivered/ministry-roster/internal/filter"
	"github.com/insightdelivered/ministry-roster/internal/models"
	"github.com/insightdelivered/ministry-roster/internal/writer"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve roster statistics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r, st, err := openResolver(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			addr := cfg.Server.Listen
			if listen != "" {
				addr = listen
			}

			app := api.NewApp(&api.Handler{
				Resolver:    r,
				DefaultYear: cfg.DefaultYear,
				Version:     version,
				Logger:      logger,
			})

			errc := make(chan error, 1)
			go func() { errc <- app.Listen(addr) }()
			logger.Info("serving roster API", zap.String("addr", addr))

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			return app.ShutdownWithTimeout(shutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		year    string
		view    string
		format  string
		records bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print role counts for a year",
		Example: `  roster stats
  roster stats --year 2024 --view preaching
  roster stats --year all --format csv > counts.csv
  roster stats --format csv --records > services.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selection(year, view)
			if err != nil {
				return err
			}

			r, st, err := openResolver(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			ds := r.Resolve(cmd.Context())
			if year == "" {
				sel.Year = latestYear(ds.Records, sel.Year)
			}
			rep := aggregate.BuildView(ds.Records, sel)
			if rep.Empty {
				logger.Info("no data for year",
					zap.String("year", sel.Year), zap.Strings("available", rep.AvailableYears))
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "table":
				fmt.Fprint(out, renderReport(string(ds.Origin), rep))
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Source string `json:"source"`
					aggregate.Report
				}{string(ds.Origin), rep})
			case "csv":
				w := &writer.CSVWriter{IncludeHeader: true}
				if records {
					return w.WriteRecords(out, rep)
				}
				return w.WriteCounts(out, rep)
			}
			return fmt.Errorf("unknown format %q. Supported: table, json, csv", format)
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "year to report, or \"all\" (default from config)")
	cmd.Flags().StringVar(&view, "view", "media", "media or preaching")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json, csv")
	cmd.Flags().BoolVar(&records, "records", false, "with --format csv, write the filtered services instead of counts")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		year   string
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the analysis export file",
		Long: `Writes the statistics and raw services of a year to a file. The export
always stops at the last completed Sunday, even for --year all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if year != "" && !filter.ValidYear(year) {
				return fmt.Errorf("year must be YYYY or %q, got %q", filter.AllYears, year)
			}

			r, st, err := openResolver(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			now := time.Now()
			ds := r.Resolve(cmd.Context())
			if year == "" {
				year = latestYear(ds.Records, cfg.DefaultYear)
			}

			switch strings.ToLower(format) {
			case "json":
				if output == "" {
					output = writer.ExportFileName(now)
				}
				if err := writeExportFile(output, writer.BuildExport(ds.Records, year, string(ds.Origin), now)); err != nil {
					return err
				}
			case "csv":
				if output == "" {
					output = strings.TrimSuffix(writer.ExportFileName(now), ".json") + ".csv"
				}
				export := writer.BuildExport(ds.Records, year, string(ds.Origin), now)
				rep := aggregate.Report{
					Year:    year,
					View:    aggregate.ViewMedia,
					Cutoff:  export.Summary.CutoffDate,
					Records: export.RawData,
				}
				w := &writer.CSVWriter{IncludeHeader: true}
				if err := w.WriteToFile(output, rep); err != nil {
					return fmt.Errorf("CSV write failed: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q. Supported: json, csv", format)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "year to export, or \"all\" (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default media-ministry-analysis-YYYY-MM-DD.json)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, or csv for the services only")
	return cmd
}

func writeExportFile(path string, e writer.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return writer.WriteExport(f, e)
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Store a roster export (.csv, .xlsx or .json) as the imported data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			res, err := extractor.ExtractFile(path)
			if err != nil {
				return err
			}
			if len(res.Unparsed) > 0 {
				logger.Warn("dates kept verbatim", zap.Strings("dates", res.Unparsed))
			}

			r, st, err := openResolver(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := r.Import(cmd.Context(), res.Records); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d service(s) from %s\n", len(res.Records), path)
			if res.Discarded > 0 {
				fmt.Fprintf(out, "  Skipped %d row(s) without a date\n", res.Discarded)
			}
			return nil
		},
	}
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Drop the cached sheet copy and fetch again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, st, err := openResolver(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := r.Refresh(cmd.Context()); err != nil {
				return err
			}
			ds := r.Resolve(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d service(s) from %s\n", len(ds.Records), ds.Origin)
			return nil
		},
	}
}

func newVolunteersCmd() *cobra.Command {
	var (
		year        string
		granularity string
		weeks       int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "volunteers",
		Short: "Print recent volunteer activity and team turnover",
		Example: `  roster volunteers
  roster volunteers --weeks 8 --granularity quarter
  roster volunteers --year 2025 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !filter.ValidYear(year) {
				return fmt.Errorf("year must be YYYY or %q, got %q", filter.AllYears, year)
			}
			g, err := aggregate.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			if weeks <= 0 {
				return fmt.Errorf("weeks must be positive, got %d", weeks)
			}

			r, st, err := openResolver(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			ds := r.Resolve(cmd.Context())
			rep := aggregate.BuildTeam(ds.Records, aggregate.Selection{Year: year, Now: time.Now()}, g, weeks)

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "table":
				fmt.Fprint(out, renderTeam(string(ds.Origin), rep))
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return fmt.Errorf("unknown format %q. Supported: table, json", format)
		},
	}

	cmd.Flags().StringVar(&year, "year", filter.AllYears, "year of the per-period counts, or \"all\"")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", "month", "period size: year, quarter or month")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "recent-activity window in weeks")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}

// latestYear swaps a configured year without data for the newest year
// that has some.
func latestYear(records []models.ServiceRecord, year string) string {
	got := filter.YearOrLatest(records, year)
	if got != year {
		logger.Info("configured year has no data, using the newest year",
			zap.String("configured", year), zap.String("year", got))
	}
	return got
}

// selection validates the stats flags, filling the year from config.
func selection(year, view string) (aggregate.Selection, error) {
	if year == "" {
		year = cfg.DefaultYear
	}
	if !filter.ValidYear(year) {
		return aggregate.Selection{}, fmt.Errorf("year must be YYYY or %q, got %q", filter.AllYears, year)
	}
	v, err := aggregate.ParseView(view)
	if err != nil {
		return aggregate.Selection{}, err
	}
	return aggregate.Selection{Year: year, View: v, Now: time.Now()}, nil
}
