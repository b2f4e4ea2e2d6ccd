// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/percolate/config"
	"github.com/katalvlaran/percolate/datasets"
	"github.com/katalvlaran/percolate/dynamics"
	"github.com/katalvlaran/percolate/logging"
	"github.com/katalvlaran/percolate/stats"
	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	dataDir    string
	backend    string
	logLevel   string
	seed       int64
	workers    int
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		a     *app
	)
	root := &cobra.Command{
		Use:           "percolate",
		Short:         "Percolation datasets and quantum walks on the hypercube",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			log, err := logging.New(logging.Config{
				Level:  cfg.Log.Level,
				JSON:   cfg.Log.Format == "json",
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			a, err = newApp(cmd.Context(), cfg, log)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&flags.dataDir, "data-dir", "", "cache root (overrides config)")
	pf.StringVar(&flags.backend, "backend", "", "cache backend: local, badger, minio, memory")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, error")
	pf.Int64Var(&flags.seed, "seed", 0, "generator seed (overrides config when set)")
	pf.IntVar(&flags.workers, "workers", 0, "concurrent realizations (overrides config when set)")

	appFn := func() *app { return a }
	root.AddCommand(
		newFamiliesCmd(),
		newGenerateCmd(appFn),
		newStatsCmd(appFn),
		newMHDCmd(appFn),
	)

	return root
}

// loadConfig layers flags that were set explicitly over the loaded config.
func loadConfig(cmd *cobra.Command, f rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	pf := cmd.Flags()
	if pf.Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if pf.Changed("backend") {
		cfg.Backend = f.backend
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if pf.Changed("seed") {
		cfg.Seed = f.seed
	}
	if pf.Changed("workers") {
		cfg.Workers = f.workers
	}

	return cfg, cfg.Validate()
}

func bindDatasetFlags(cmd *cobra.Command, p *datasets.Params) {
	cmd.Flags().IntVar(&p.N, "n", 8, "hypercube dimension N")
	cmd.Flags().IntVar(&p.NR, "nr", 100, "number of realizations")
	cmd.Flags().Float64Var(&p.P, "p", 0.5, "bond retention probability")
}

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List dataset families",
		Args:  cobra.NoArgs,
		// The listing needs no store.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range datasets.Families() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dynamics.Family)
			return nil
		},
	}
}

func newGenerateCmd(a func() *app) *cobra.Command {
	var p datasets.Params
	cmd := &cobra.Command{
		Use:   "generate <family>",
		Short: "Generate a dataset unless it is already cached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a().data.Ensure(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d realizations\n", p.Key(args[0]).Name(), n)
			return nil
		},
	}
	bindDatasetFlags(cmd, &p)

	return cmd
}

func newStatsCmd(a func() *app) *cobra.Command {
	var (
		p   datasets.Params
		pxp bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Cluster-size statistics of the origin cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var cs []int
			var err error
			if pxp {
				cs, err = a().data.PXPClusterSizes(ctx, p)
			} else {
				cs, err = a().data.ClusterSizes(ctx, p)
			}
			if err != nil {
				return err
			}
			return writeStats(cmd, cs)
		},
	}
	bindDatasetFlags(cmd, &p)
	cmd.Flags().BoolVar(&pxp, "pxp", false, "use the PXP (Fibonacci cube) model")

	return cmd
}

func writeStats(cmd *cobra.Command, cs []int) error {
	ns, err := stats.ClusterNumbers(cs)
	if err != nil {
		return err
	}
	ws, err := stats.Ws(cs)
	if err != nil {
		return err
	}
	mean, err := stats.MeanSize(cs)
	if err != nil {
		return err
	}
	alt, err := stats.AltMeanSize(cs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "S\t%.6g\nS'\t%.6g\n", mean, alt)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "s\tn_s\tw_s")
	for i, s := range ns.Sizes {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\n", s, ns.Values[i], ws.Values[i])
	}

	return tw.Flush()
}

func newMHDCmd(a func() *app) *cobra.Command {
	p := dynamics.Params{N: 7, NCoeff: 1, TMax: 1e6, NT: 20, NR: 10, Log: true}
	cmd := &cobra.Command{
		Use:   "mhd",
		Short: "Disorder-averaged mean Hamming distance on the largest cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mhd, err := a().averager.MeanHammingDistance(cmd.Context(), p)
			if err != nil {
				return err
			}
			var b strings.Builder
			for k, t := range p.Times() {
				fmt.Fprintf(&b, "%.8g\t%.10g\n", t, mhd[k])
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&p.N, "n", p.N, "hypercube dimension N")
	f.Float64Var(&p.NCoeff, "ncoeff", p.NCoeff, "p = ncoeff/N")
	f.Float64Var(&p.TMax, "tmax", p.TMax, "last time of the grid")
	f.IntVar(&p.NT, "nt", p.NT, "number of time points")
	f.IntVar(&p.NR, "nr", p.NR, "number of realizations")
	f.BoolVar(&p.Log, "log", p.Log, "logarithmic time grid over [1, tmax]")

	return cmd
}
