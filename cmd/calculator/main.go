package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/calculator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "calculator: %v\n", err)
		os.Exit(1)
	}
}

type binaryOp func(a, b float64) (float64, error)

func total(f func(a, b float64) float64) binaryOp {
	return func(a, b float64) (float64, error) { return f(a, b), nil }
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "calculator",
		Short:         "Four-function arithmetic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newOpCmd("add", "Add two numbers", total(calculator.Add)),
		newOpCmd("sub", "Subtract the second number from the first", total(calculator.Subtract)),
		newOpCmd("mul", "Multiply two numbers", total(calculator.Multiply)),
		newOpCmd("div", "Divide the first number by the second", calculator.Divide),
	)

	return root
}

func newOpCmd(use, short string, op binaryOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <a> <b>",
		Short: short,
		Args:  cobra.ExactArgs(2),

		// operands like -2 must not be parsed as shorthand flags
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("first operand: %w", err)
			}
			b, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("second operand: %w", err)
			}

			result, err := op(a, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'g', -1, 64))
			return nil
		},
	}
}
