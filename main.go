// Command armature loads robot descriptions and armature scripts,
// validates them against the kinematic tree invariants, and reports
// on the resulting model.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/armature/pkg/engine"
	"github.com/chazu/armature/pkg/kintree"
	"github.com/chazu/armature/pkg/urdf"
)

var rootCmd = &cobra.Command{
	Use:           "armature",
	Short:         "Inspect robot descriptions and evaluate armature scripts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check <robot.urdf>",
	Short: "Parse and validate a robot description, print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tree, err := urdf.Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		printTree(tree)
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <robot.urdf>",
	Short: "Parse a robot description and re-serialize it to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tree, err := urdf.Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		doc, err := urdf.Serialize(tree)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", args[0], err)
		}
		fmt.Print(doc)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <script.lisp>",
	Short: "Evaluate a script and print the resulting world",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		w, evalErrs, err := engine.NewEngine().Evaluate(string(raw))
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", args[0], err)
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Error())
			}
			return fmt.Errorf("%d script errors", len(evalErrs))
		}
		printTree(w.Robot())
		for _, name := range w.AttachedNames() {
			fmt.Printf("attached: %s\n", name)
		}
		for _, name := range w.BodyNames() {
			fmt.Printf("free body: %s\n", name)
		}
		return nil
	},
}

func printTree(t *kintree.Tree) {
	fmt.Printf("robot %q: %d links, %d joints, root %q\n",
		t.Name(), t.LinkCount(), t.JointCount(), t.Root())
	limits := t.ControllableLimits()
	for _, name := range t.ControllableJoints() {
		iv := limits[name]
		fmt.Printf("  %s: [%g, %g]\n", name, iv.Lower, iv.Upper)
	}
}

func main() {
	rootCmd.AddCommand(checkCmd, dumpCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "armature:", err)
		os.Exit(1)
	}
}
