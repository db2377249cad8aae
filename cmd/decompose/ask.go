package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/decompose/pkg/domain"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer one story and question with the decomposition engine",
	Long: `Runs a single task through the engine and prints the chosen label.

The story is read from --story, or from --story-file ("-" reads stdin).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		delimiter, _ := cmd.Flags().GetString("delimiter")
		m, err := mode.Parse(modeName, delimiter)
		if err != nil {
			return err
		}

		story, _ := cmd.Flags().GetString("story")
		storyFile, _ := cmd.Flags().GetString("story-file")
		if storyFile != "" {
			data, err := readInput(storyFile)
			if err != nil {
				return err
			}
			story = string(data)
		}

		task := domain.Task{Story: story}
		task.Question, _ = cmd.Flags().GetString("question")
		task.Choices, _ = cmd.Flags().GetString("choices")
		task.Note, _ = cmd.Flags().GetString("note")
		task.MaxRecursion, _ = cmd.Flags().GetInt("max-recursion")
		asJSON, _ := cmd.Flags().GetBool("json")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stack, err := setup(ctx)
		if err != nil {
			return err
		}
		defer stack.Close()

		engine, err := stack.Engine(m)
		if err != nil {
			return err
		}
		res, err := engine.StartTask(ctx, task)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		for _, l := range res.Layers {
			fmt.Fprintf(out, "[%d] %s: %s (%d/%d units)\n", l.Depth, l.Agent, l.Simplified, l.UnitsKnown, l.UnitsTotal)
		}
		fmt.Fprintf(out, "Reasoning: %s\n", res.Reasoning)
		fmt.Fprintf(out, "Answer: %s\n", res.Label)
		return nil
	},
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().String("mode", string(mode.NameGeneric), "Mode (hitom, fantom, generic)")
	askCmd.Flags().String("delimiter", ".", "Sentence delimiter for generic mode")
	askCmd.Flags().String("story", "", "Story text")
	askCmd.Flags().String("story-file", "", "Read the story from a file (- for stdin)")
	askCmd.Flags().StringP("question", "q", "", "Belief question")
	askCmd.Flags().String("choices", "", "Answer options as shown to the model")
	askCmd.Flags().String("note", "", "Extra rules for the answer prompt")
	askCmd.Flags().Int("max-recursion", 0, "Maximum number of belief layers (0 = config value)")
	askCmd.Flags().Bool("json", false, "Print the full result as JSON")
	_ = askCmd.MarkFlagRequired("question")
}
