package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	component "github.com/goliatone/go-component"
	"github.com/goliatone/go-component/pkg/activity"
	"github.com/goliatone/go-component/pkg/state"
)

type initFlags struct {
	engine   string
	props    []string
	debug    bool
	perf     bool
	verbose  bool
	events   bool
	metrics  bool
	noMount  bool
	mountTag string
}

func initCmd(files *[]string) *cobra.Command {
	var flags initFlags

	cmd := &cobra.Command{
		Use:   "init NAME",
		Short: "Initialize and mount a component tree",
		Long: `Initialize a root instance of NAME, mount it and print the instance
tree with its props, data and computed values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBuilder(cmd.Context(), *files)
			if err != nil {
				return err
			}
			def, err := b.Build(args[0])
			if err != nil {
				return err
			}
			return runInit(cmd, def, flags)
		},
	}

	cmd.Flags().StringVar(&flags.engine, "engine", state.EngineExpr, "Computed expression engine (expr|cel|js)")
	cmd.Flags().StringSliceVarP(&flags.props, "prop", "p", nil, "Root prop as key=value (repeatable)")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Install the debug render proxy")
	cmd.Flags().BoolVar(&flags.perf, "perf", false, "Record init spans")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log init and resolve events to stderr")
	cmd.Flags().BoolVar(&flags.events, "events", false, "Print lifecycle activity events")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Print collected metrics")
	cmd.Flags().BoolVar(&flags.noMount, "no-mount", false, "Create the root instance without mounting it")
	cmd.Flags().StringVar(&flags.mountTag, "el", "#app", "Mount target passed as the el option")
	return cmd
}

func runInit(cmd *cobra.Command, def *component.Definition, flags initFlags) error {
	functions := state.NewFunctionRegistry()
	registerBuiltins(functions)
	evaluator, err := state.NewEvaluator(flags.engine, state.NewProgramCache(), functions)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	capture := &activity.CaptureHook{}
	opts := []component.Option{
		component.WithState(state.New(state.WithEvaluator(evaluator), state.WithFunctionRegistry(functions))),
		component.WithMetrics(component.NewMetrics(component.WithMetricsRegistry(registry))),
		component.WithActivityHooks(activity.Hooks{capture}, ""),
		component.WithDebug(flags.debug),
		component.WithPerformance(flags.perf),
	}
	if flags.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, component.WithLogger(component.SlogLogger(logger)))
	}

	supplied := map[string]any{}
	if !flags.noMount {
		supplied[component.KeyEl] = flags.mountTag
	}
	if len(flags.props) > 0 {
		props, err := parseProps(flags.props)
		if err != nil {
			return err
		}
		supplied[component.KeyPropsData] = props
	}

	in := component.NewInitializer(opts...)
	root, err := in.New(def, component.NewOptions(supplied))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printInstance(out, root, 0)
	if flags.events {
		fmt.Fprintln(out)
		for _, event := range capture.Events {
			fmt.Fprintf(out, "%s %s %s\n", event.Verb, event.ObjectID, event.Component)
		}
	}
	if flags.metrics {
		fmt.Fprintln(out)
		families, err := registry.Gather()
		if err != nil {
			return err
		}
		for _, family := range families {
			if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
				return err
			}
		}
	}
	return nil
}

func registerBuiltins(registry *state.FunctionRegistry) {
	_ = registry.Register("upper", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("upper expects 1 argument, got %d", len(args))
		}
		return strings.ToUpper(fmt.Sprint(args[0])), nil
	})
	_ = registry.Register("lower", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("lower expects 1 argument, got %d", len(args))
		}
		return strings.ToLower(fmt.Sprint(args[0])), nil
	})
}

func parseProps(values []string) (map[string]any, error) {
	props := make(map[string]any, len(values))
	for _, entry := range values {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid prop %q, expected key=value", entry)
		}
		props[key] = value
	}
	return props, nil
}

func printInstance(w io.Writer, inst *component.Instance, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s uid=%d\n", indent, inst.Name(), inst.UID)
	printTable(w, indent+"  props", inst.Props)
	printTable(w, indent+"  data", inst.Data)
	printTable(w, indent+"  computed", inst.Computed)
	printTable(w, indent+"  injected", inst.Injected)
	for _, child := range inst.Children {
		printInstance(w, child, depth+1)
	}
}

func printTable(w io.Writer, label string, table map[string]any) {
	if len(table) == 0 {
		return
	}
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, table[key]))
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(parts, " "))
}
