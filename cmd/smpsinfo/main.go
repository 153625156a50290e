// Command smpsinfo parses a single CORE, TIME, or STOCH file — whichever
// kind its first argument names — and prints a structural summary to
// stdout. It drives exactly one parser; triplet
// orchestration (matching a CORE file to its TIME/STOCH siblings) is
// out of scope for this repository.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smps-go/smps/core"
	"github.com/smps-go/smps/parser"
	"github.com/smps-go/smps/smpstime"
	"github.com/smps-go/smps/stoch"
)

var freeForm bool

var rootCmd = &cobra.Command{
	Use:   "smpsinfo [core|time|stoch] <path>",
	Short: "Print a structural summary of one SMPS file",
	Long: "smpsinfo parses a single CORE, TIME, or STOCH file and prints its " +
		"dimensions, stage count, or scenario count to stdout.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.Flags().BoolVar(&freeForm, "free-form", false, "use whitespace-tokenized lexing instead of fixed-column")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options(logger *logrus.Logger) []parser.Option {
	opts := []parser.Option{parser.WithLogger(logger)}
	if freeForm {
		opts = append(opts, parser.WithFreeForm())
	}
	return opts
}

func run(cmd *cobra.Command, kind, path string) error {
	logger := logrus.StandardLogger()

	switch strings.ToLower(kind) {
	case "core":
		return runCore(cmd, path, logger)
	case "time":
		return runTime(cmd, path, logger)
	case "stoch":
		return runStoch(cmd, path, logger)
	default:
		return fmt.Errorf("unrecognized file kind %q - want core, time, or stoch", kind)
	}
}

func runCore(cmd *cobra.Command, path string, logger *logrus.Logger) error {
	p, err := core.New(path, options(logger)...)
	if err != nil {
		return err
	}
	if err := p.Parse(); err != nil {
		return err
	}

	cmd.Printf("name:           %s\n", p.Name())
	cmd.Printf("objective:      %s\n", p.ObjectiveName())
	cmd.Printf("constraints:    %d\n", p.NumConstraints())
	cmd.Printf("variables:      %d\n", p.NumVariables())
	cmd.Printf("nonzeros:       %d\n", len(p.Coefficients().Triplets))
	for _, w := range p.Warnings() {
		cmd.Printf("warning:        %s\n", w)
	}
	return nil
}

func runTime(cmd *cobra.Command, path string, logger *logrus.Logger) error {
	p, err := smpstime.New(path, options(logger)...)
	if err != nil {
		return err
	}
	if err := p.Parse(); err != nil {
		return err
	}

	cmd.Printf("name:           %s\n", p.Name())
	cmd.Printf("layout:         %s\n", p.TimeType())
	cmd.Printf("stages:         %d\n", p.NumStages())
	for _, w := range p.Warnings() {
		cmd.Printf("warning:        %s\n", w)
	}
	return nil
}

func runStoch(cmd *cobra.Command, path string, logger *logrus.Logger) error {
	p, err := stoch.New(path, options(logger)...)
	if err != nil {
		return err
	}
	if err := p.Parse(); err != nil {
		return err
	}

	cmd.Printf("name:           %s\n", p.Name())
	cmd.Printf("scenarios:      %d\n", len(p.Scenarios()))
	cmd.Printf("indep sections: %d\n", len(p.Indeps()))
	for _, w := range p.Warnings() {
		cmd.Printf("warning:        %s\n", w)
	}
	return nil
}
