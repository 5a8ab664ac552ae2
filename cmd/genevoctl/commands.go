package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"genevo/internal/logging"
	"genevo/internal/storage"
	"genevo/pkg/genevo"
)

const (
	defaultArtifactsDir = "runs"
	defaultExportsDir   = "exports"
	defaultDBPath       = "genevo.db"
	defaultStoreKind    = storage.KindSQLite
)

type globalOptions struct {
	storeKind    string
	dbPath       string
	artifactsDir string
	logLevel     string
	logFormat    string

	logger *slog.Logger
}

func (g *globalOptions) client() (*genevo.Client, error) {
	return genevo.New(genevo.Options{
		StoreKind:    g.storeKind,
		DBPath:       g.dbPath,
		ArtifactsDir: g.artifactsDir,
		ExportsDir:   defaultExportsDir,
		Logger:       g.logger,
	})
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	root := &cobra.Command{
		Use:           "genevoctl",
		Short:         "Run and inspect target-string evolution experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: g.logLevel, Format: g.logFormat})
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.storeKind, "store", defaultStoreKind, "store backend: memory|sqlite|badger")
	flags.StringVar(&g.dbPath, "db-path", defaultDBPath, "sqlite database file or badger directory")
	flags.StringVar(&g.artifactsDir, "artifacts-dir", defaultArtifactsDir, "directory receiving per-run artifacts")
	flags.StringVar(&g.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flags.StringVar(&g.logFormat, "log-format", logging.FormatAuto, "log format: auto|text|json")

	root.AddCommand(
		newInitCmd(g),
		newResetCmd(g),
		newRunCmd(g),
		newRunsCmd(g),
		newFitnessCmd(g),
		newExportCmd(g),
	)
	return root
}

func newInitCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the run store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			if err := client.Init(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized store=%s\n", g.storeKind)
			return nil
		},
	}
}

func newResetCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every recorded run from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			if err := client.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset store=%s\n", g.storeKind)
			return nil
		},
	}
}

func newRunCmd(g *globalOptions) *cobra.Command {
	var (
		configPath  string
		metricsAddr string
		cfg         runConfig
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a population towards a target string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			merged := runConfig{}
			if configPath != "" {
				loaded, err := loadRunConfig(configPath)
				if err != nil {
					return err
				}
				merged = loaded
			}
			merged = merged.override(cfg, cmd.Flags().Changed)
			if err := merged.validate(); err != nil {
				return err
			}
			req := merged.request()
			if g.storeKind == storage.KindMemory {
				g.logger.Warn("memory store keeps this run only until the process exits", "store", g.storeKind)
			}

			if metricsAddr != "" {
				reg := prometheus.NewRegistry()
				stop, err := serveMetrics(metricsAddr, reg, g.logger)
				if err != nil {
					return err
				}
				defer stop()
				req.Registerer = reg
			}

			client, err := g.client()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			summary, err := client.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run_id=%s seed=%d generation=%s best_fitness=%.6f avg_fitness=%.6f best=%q artifacts=%s\n",
				summary.RunID,
				summary.Seed,
				humanize.Comma(int64(summary.FinalGeneration)),
				summary.BestFitness,
				summary.AvgFitness,
				summary.BestGenome,
				summary.ArtifactsDir,
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "run config file (.json, .yaml or .yml)")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while the run is active")
	flags.StringVar(&cfg.Target, "target", genevo.DefaultTarget, "target string")
	flags.StringVar(&cfg.Alphabet, "alphabet", genevo.DefaultAlphabet, "gene alphabet")
	flags.IntVar(&cfg.Population, "population", genevo.DefaultRunPopulation, "population size")
	flags.Float64Var(&cfg.rate, "mutation-rate", genevo.DefaultRunRate, "per-gene mutation probability")
	flags.IntVar(&cfg.Generations, "generations", genevo.DefaultGenerations, "generation count before finishing")
	flags.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 seeds from the clock)")
	flags.IntVar(&cfg.Workers, "workers", 0, "concurrent fitness workers (<=1 evaluates sequentially)")
	flags.StringVar(&cfg.Selection, "selection", genevo.SelectionProportionate, "mating pool strategy: proportionate|tournament")
	flags.DurationVar(&cfg.logInterval, "log-interval", time.Second, "minimum spacing between generation log lines")
	return cmd
}

func newRunsCmd(g *globalOptions) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return errors.New("limit must be > 0")
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			runs, err := client.Runs(cmd.Context(), genevo.RunsRequest{Limit: limit})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs found")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "run_id=%s created=%s target=%q selection=%s seed=%d pop=%s gens=%s best_fitness=%.6f best=%q\n",
					r.RunID,
					createdDisplay(r.CreatedAtUTC),
					r.Target,
					r.Selection,
					r.Seed,
					humanize.Comma(int64(r.Population)),
					humanize.Comma(int64(r.Generations)),
					r.BestFitness,
					r.BestGenome,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "max runs to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit runs list as JSON")
	return cmd
}

func newFitnessCmd(g *globalOptions) *cobra.Command {
	var (
		runID   string
		latest  bool
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "fitness",
		Short: "Show the per-generation fitness history of a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if runID != "" && latest {
				return errors.New("use either --run-id or --latest, not both")
			}
			if runID == "" && !latest {
				return errors.New("fitness requires --run-id or --latest")
			}
			client, err := g.client()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			history, err := client.FitnessHistory(cmd.Context(), genevo.FitnessHistoryRequest{
				RunID:  runID,
				Latest: latest,
				Limit:  limit,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, history)
			}
			if len(history) == 0 {
				fmt.Fprintln(out, "no fitness history")
				return nil
			}
			for _, rec := range history {
				fmt.Fprintf(out, "generation=%d best_fitness=%.6f mean_fitness=%.6f min_fitness=%.6f stddev=%.6f fittest=%q\n",
					rec.Generation,
					rec.BestFitness,
					rec.MeanFitness,
					rec.MinFitness,
					rec.StdDevFitness,
					rec.Fittest,
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run-id", "", "run id")
	cmd.Flags().BoolVar(&latest, "latest", false, "use the most recent run")
	cmd.Flags().IntVar(&limit, "limit", 0, "max generations to print (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit fitness history as JSON")
	return cmd
}

func newExportCmd(g *globalOptions) *cobra.Command {
	var (
		runID  string
		latest bool
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy a run's artifacts to an export directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			exported, err := client.Export(cmd.Context(), genevo.ExportRequest{
				RunID:  runID,
				Latest: latest,
				OutDir: outDir,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported run_id=%s dir=%s\n", exported.RunID, exported.Directory)
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run-id", "", "run id")
	cmd.Flags().BoolVar(&latest, "latest", false, "export the most recent run")
	cmd.Flags().StringVar(&outDir, "out", defaultExportsDir, "export output directory")
	return cmd
}

func createdDisplay(createdAtUTC string) string {
	t, err := time.Parse(time.RFC3339Nano, createdAtUTC)
	if err != nil {
		return createdAtUTC
	}
	return humanize.Time(t)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
