package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kernelplan/planner"
	"github.com/kernelplan/planner/internal/ir"
	"github.com/kernelplan/planner/internal/ir/irtest"
)

var (
	modulePath string
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "kernelplan",
	Short: "Offline driver for the function-size estimation and inlining/partitioning planner",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the planner over a YAML-described synthetic module and print a report",
	RunE:  runPlanner,
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure, matching the teacher's cmd.Execute convention.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&modulePath, "module", "", "path to a YAML module description (required)")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML planner configuration (defaults to planner.DefaultConfig())")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	_ = runCmd.MarkFlagRequired("module")

	rootCmd.AddCommand(runCmd)
}

func runPlanner(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	spec, err := loadModuleSpec(modulePath)
	if err != nil {
		return fmt.Errorf("loading module %q: %w", modulePath, err)
	}
	mod, err := irtest.Build(spec)
	if err != nil {
		return fmt.Errorf("building module %q: %w", modulePath, err)
	}

	cfg := planner.DefaultConfig()
	if configPath != "" {
		if cfg, err = loadConfig(configPath); err != nil {
			return fmt.Errorf("loading config %q: %w", configPath, err)
		}
	}

	logrus.Infof("planning %d functions from %s", len(mod.Functions()), modulePath)
	p := planner.New()
	result, err := p.Plan(context.Background(), mod, cfg)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	printReport(cmd, mod, result)
	return nil
}

func loadModuleSpec(path string) (irtest.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return irtest.Spec{}, err
	}
	var spec irtest.Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return irtest.Spec{}, err
	}
	return spec, nil
}

func loadConfig(path string) (planner.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return planner.Config{}, err
	}
	cfg := planner.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return planner.Config{}, err
	}
	return cfg, nil
}

// printReport prints one line per function, sorted by name for
// reproducible golden-file comparisons, followed by the module-level
// summary queries (spec.md §6).
func printReport(cmd *cobra.Command, mod *irtest.Module, result *planner.Result) {
	names := make([]string, 0, len(mod.Functions()))
	refs := make(map[string]ir.FunctionRef, len(mod.Functions()))
	for _, f := range mod.Functions() {
		name := mod.Name(f)
		names = append(names, name)
		refs[name] = f
	}
	sort.Strings(names)

	for _, name := range names {
		f := refs[name]
		size, _ := result.ExpandedSizeOf(f)
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s expanded=%-8d trimmed=%-5t stackcall=%-5t onlyCalledOnce=%t\n",
			name, size, result.IsTrimmed(f), result.IsStackCallAssigned(f), result.OnlyCalledOnce(f))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nmaxExpandedSize=%d maxUnitSize=%d subroutineEnabled=%t\n",
		result.MaxExpandedSize(), result.MaxUnitSize(), result.SubroutineEnabled())
}
