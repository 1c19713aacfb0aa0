// Package main provides the foodie-tour CLI entrypoint.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bububa/foodie-tour/platform"
	"github.com/bububa/foodie-tour/tools"
	"github.com/bububa/foodie-tour/tools/dish"
	"github.com/bububa/foodie-tour/tools/restaurants"
	"github.com/bububa/foodie-tour/tools/weather"
	"github.com/bububa/foodie-tour/tour"
)

var (
	cfgFile     string
	platformURL string
	model       string
	interval    time.Duration
	timeout     time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "foodie-tour [city]",
		Short: "Plan a one day foodie tour of a city",
		Long: `Compose a weather forecast, iconic local dishes and restaurant picks
into a one day foodie tour. The orchestration runs on an agent platform:
the CLI registers the tools, submits the task and services the tool
calls the platform hands back.

Without a city argument the CLI prompts for one on stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "YAML settings file")
	addTourFlags(rootCmd)

	rootCmd.AddCommand(runCmd(), taskCmd(), toolsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

// runE drives a tour for the city argument, prompting when none is given.
func runE(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	var city string
	if len(args) > 0 {
		city = strings.TrimSpace(args[0])
	}
	return runTour(cmd, settings, city)
}

// runCmd is the named form of the root command.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [city]",
		Short: "Run the foodie tour for a city",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runE,
	}
	addTourFlags(cmd)
	return cmd
}

// addTourFlags binds the tour options shared by the root and run forms.
func addTourFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&platformURL, "base-url", "", "agent platform endpoint")
	cmd.Flags().StringVar(&model, "model", "", "model backing the platform agent")
	cmd.Flags().DurationVar(&interval, "interval", 0, "execution poll interval")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the run after this long (0 waits forever)")
}

// taskCmd prints the task document exactly as it is submitted to the
// platform.
func taskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task",
		Short: "Print the foodie tour task document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := tour.Task().Document()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

// toolsCmd prints the tool definitions registered on the agent.
func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool definitions registered on the agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := yaml.Marshal(tour.Definitions())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(bs))
			return nil
		},
	}
}

// loadSettings merges the YAML settings file, the environment and the
// command line flags, in that order.
func loadSettings() (tour.Settings, error) {
	settings, err := tour.LoadSettings(cfgFile)
	if err != nil {
		return settings, err
	}
	settings.MergeEnv()
	if platformURL != "" {
		settings.PlatformURL = platformURL
	}
	if model != "" {
		settings.Model = model
	}
	if interval > 0 {
		settings.PollInterval = tour.Duration(interval)
	}
	if timeout > 0 {
		settings.Timeout = tour.Duration(timeout)
	}
	return settings, nil
}

func runTour(cmd *cobra.Command, settings tour.Settings, city string) error {
	fmt.Println(color.CyanString("--- Initializing Setup ---"))

	forecastOpts := []weather.Option{weather.WithAPIKey(settings.WeatherAPIKey)}
	if settings.WeatherURL != "" {
		forecastOpts = append(forecastOpts, weather.WithBaseURL(settings.WeatherURL))
	}
	forecast := weather.New(forecastOpts...)

	finder := restaurants.New(restaurants.WithAPIKey(settings.MapsAPIKey))
	finder.SetStartHook(searchBanner)

	registry := tour.NewRegistry(forecast, finder, dish.New())

	clientOpts := []platform.Option{platform.WithAPIKey(settings.PlatformAPIKey)}
	if settings.PlatformURL != "" {
		clientOpts = append(clientOpts, platform.WithBaseURL(settings.PlatformURL))
	}
	if settings.PollInterval > 0 {
		clientOpts = append(clientOpts, platform.WithPollInterval(time.Duration(settings.PollInterval)))
	}
	clt := platform.NewClient(clientOpts...)

	runner := tour.NewRunner(
		tour.WithClient(clt),
		tour.WithRegistry(registry),
		tour.WithModel(settings.Model),
		tour.WithLogf(func(format string, args ...any) {
			fmt.Println(color.GreenString(format, args...))
		}),
	)

	ctx := cmd.Context()
	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(settings.Timeout))
		defer cancel()
	}

	if err := runner.Setup(ctx); err != nil {
		return fmt.Errorf("error creating tasks: %w", err)
	}

	if city == "" {
		var err error
		if city, err = promptCity(cmd); err != nil {
			return err
		}
	}

	fmt.Println(color.CyanString("\n🚀 Running task for %q... The platform is now handling the orchestration.", city))
	execution, err := runner.Run(ctx, city)
	if err != nil {
		return err
	}

	if err := printResult(cmd, execution); err != nil {
		return err
	}
	printInvocations(registry)
	return nil
}

// searchBanner echoes every restaurant search the platform asks for.
func searchBanner(_ context.Context, _ tools.AnonymousTool, input any) {
	in, ok := input.(*restaurants.Input)
	if !ok {
		return
	}
	fmt.Println(color.YellowString("---> Searching Google Maps for %s", restaurants.Query(in.DishName, in.City)))
}

func promptCity(cmd *cobra.Command) (string, error) {
	fmt.Print("Enter the City: ")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read city: %w", err)
		}
		return "", errors.New("no city provided")
	}
	city := strings.TrimSpace(scanner.Text())
	if city == "" {
		return "", errors.New("no city provided")
	}
	return city, nil
}

// printResult renders the terminal execution as YAML, failed runs
// included: whatever the platform ended with is the answer.
func printResult(cmd *cobra.Command, execution *platform.Execution) error {
	report := map[string]any{"status": execution.Status}
	if len(execution.Output) > 0 {
		var output any
		if err := json.Unmarshal(execution.Output, &output); err != nil {
			return fmt.Errorf("decode execution output: %w", err)
		}
		report["output"] = output
	}
	if execution.Error != "" {
		report["error"] = execution.Error
	}
	bs, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("render execution result: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, color.GreenString("========================================"))
	fmt.Fprintln(out, color.GreenString("✅ Task Execution Complete! Final Answer:"))
	fmt.Fprintln(out, color.GreenString("========================================"))
	fmt.Fprint(out, string(bs))
	return nil
}

func printInvocations(registry *tools.Registry) {
	var parts []string
	for _, name := range registry.Names() {
		if n := registry.Invocations(name); n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", name, n))
		}
	}
	if len(parts) == 0 {
		return
	}
	fmt.Println(color.BlueString("Local tool invocations: %s", strings.Join(parts, ", ")))
}
