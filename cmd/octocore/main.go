// Command octocore is the external driver spec.md §1/§6 describes: it
// assembles a source file and then drives the CPU's Step loop either
// interactively (an in-terminal TUI) or to completion, depending on flags.
// None of the semantics here are part of the core -- everything in this
// package is replaceable without touching asm/cpu/register/mem.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"octocore/asm"
	"octocore/cpu"
	"octocore/vmerr"
)

// config mirrors original_source/runner.py's filename/skip globals, but
// passed explicitly rather than read from package-level state, per
// spec.md §9's "Global driver state" redesign flag.
type config struct {
	path string
	skip bool
	dump bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config{}

	cmd := &cobra.Command{
		Use:   "octocore",
		Short: "Assembler and single-step interpreter for the octocore instruction set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.path, "file", "f", "program.asm", "assembly source file to run")
	cmd.Flags().BoolVarP(&cfg.skip, "skip", "s", false, "run to completion without interactive stepping")
	cmd.Flags().BoolVar(&cfg.dump, "dump", false, "dump the assembled program, memory, and label table before running")

	return cmd
}

func run(cfg config) error {
	program, memory, labels, err := asm.Assemble(cfg.path)
	if err != nil {
		return fmt.Errorf("assembling %s: %w", cfg.path, err)
	}

	if cfg.dump {
		spew.Dump(program, memory, labels)
	}

	c, err := cpu.New(program, memory, labels)
	if err != nil {
		return fmt.Errorf("constructing cpu: %w", err)
	}

	if cfg.skip {
		return runToCompletion(c)
	}
	return runInteractive(c)
}

func runToCompletion(c *cpu.CPU) error {
	for {
		if err := c.Step(); err != nil {
			if errors.Is(err, vmerr.ErrEndOfProgram) {
				fmt.Println(c.RenderState())
				return nil
			}
			return err
		}
	}
}
