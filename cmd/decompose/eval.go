package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/decompose/internal/cli"
	"github.com/aretw0/decompose/internal/presentation/tui"
	"github.com/aretw0/decompose/pkg/dataset"
	"github.com/aretw0/decompose/pkg/methods"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [fantom|hitom]",
	Short: "Evaluate an answering method on a benchmark",
	Long: `Runs one answering method over FANToM or HiToM, logs every answer to a
jsonl file under the results directory and prints accuracy tables.

HiToM is sampled evenly across (order, length, tell) partitions; FANToM
uses the first N entries.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(dataset.KindFantom), string(dataset.KindHitom)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := dataset.ParseKind(args[0])
		if err != nil {
			return err
		}
		methodName, _ := cmd.Flags().GetString("method")
		method, err := methods.Parse(methodName)
		if err != nil {
			return err
		}
		contextName, _ := cmd.Flags().GetString("context")
		size, err := dataset.ParseContextSize(contextName)
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("num-problems")
		parallel, _ := cmd.Flags().GetInt("parallel")
		random, _ := cmd.Flags().GetBool("random-example")
		seed, _ := cmd.Flags().GetInt64("seed")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stack, err := setup(ctx)
		if err != nil {
			return err
		}
		defer stack.Close()
		stack.ServeMetrics(ctx, stack.Config.MetricsAddr)

		out := cmd.OutOrStdout()
		styled := out == os.Stdout && tui.IsTerminal(os.Stdout)
		if styled && !quiet {
			tui.PrintBanner(out)
		}

		if seed == 0 {
			seed = stack.Config.Seed
		}
		rep, err := stack.Eval(ctx, cli.EvalOptions{
			Dataset:       kind,
			Method:        method,
			NumProblems:   n,
			Context:       size,
			Parallel:      parallel,
			RandomExample: random,
			Seed:          seed,
		}, out)
		if rep != nil {
			if werr := tui.WriteReport(out, rep, styled); werr != nil && err == nil {
				err = werr
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringP("method", "m", string(methods.Decompose), "Answering method (baseline, cot, simtom, decompose)")
	evalCmd.Flags().IntP("num-problems", "n", 0, "Number of problems to evaluate (0 = all)")
	evalCmd.Flags().String("context", string(dataset.ContextShort), "FANToM context size (short, full)")
	evalCmd.Flags().IntP("parallel", "p", 0, "Concurrent problems (0 = config value)")
	evalCmd.Flags().Bool("random-example", false, "Evaluate a single random problem and print it")
	evalCmd.Flags().Int64("seed", 0, "Random seed for sampling and choice order (0 = config value or time)")
	evalCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
