package cmd

import (
	"strings"

	"github.com/opencost/matchkit/pkg/cmd/matchexpr"
	"github.com/opencost/matchkit/pkg/log"
	"github.com/opencost/matchkit/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// commandRoot is the root command used to route to sub-commands
	commandRoot string = "matchexpr"

	// CommandEval compiles an expression and evaluates it against values.
	CommandEval string = "eval"

	// CommandDescribe compiles an expression and prints its description and tree.
	CommandDescribe string = "describe"

	// CommandList prints the known matcher names.
	CommandList string = "list"
)

// Execute runs the root command for the application. Any additional commands
// passed in will be added to the root command.
func Execute(cmds ...*cobra.Command) error {
	return newRootCommand(cmds...).Execute()
}

// newRootCommand creates a new root command which will act as a sub-command router.
func newRootCommand(cmds ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:          commandRoot,
		Short:        "Compile and evaluate matcher expressions over integers.",
		Version:      version.FriendlyVersion(),
		SilenceUsage: true,
	}

	// Add our persistent flags, these are global and available anywhere
	cmd.PersistentFlags().String("log-level", "info", "Set the log level")
	cmd.PersistentFlags().String("log-format", "pretty", "Set the log format - Can be either 'JSON' or 'pretty'")
	cmd.PersistentFlags().Bool("disable-log-color", false, "Disable coloring of log output")

	viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", cmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("disable-log-color", cmd.PersistentFlags().Lookup("disable-log-color"))

	// Setup viper to read from the env, this allows reading flags from the command line or the env
	// using the format 'LOG_LEVEL'
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cmd.AddCommand(
		append([]*cobra.Command{
			newEvalCommand(),
			newDescribeCommand(),
			newListCommand(),
		}, cmds...)...,
	)

	return cmd
}

func addCommonFlags(cmd *cobra.Command, opts *matchexpr.CommonOpts) {
	cmd.Flags().StringVarP(&opts.Definitions, "definitions", "d", "", "YAML file of named matchers to register before compiling")
	cmd.Flags().StringVar(&opts.MetricsConfig, "metrics-config", "", "JSON file listing matcher names whose evaluations are not counted")
}

func newEvalCommand() *cobra.Command {
	opts := &matchexpr.EvalOpts{}

	evalCmd := &cobra.Command{
		Use:   CommandEval + " <expression> <value>...",
		Short: "Evaluate an expression against integer values.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Init logging here so cobra/viper has processed the command line args and flags
			// otherwise only envvars are available during init
			log.InitLogging(false)

			values, err := matchexpr.ParseValues(args[1:])
			if err != nil {
				return err
			}

			return matchexpr.Eval(cmd.Context(), cmd.OutOrStdout(), opts, args[0], values)
		},
	}

	// negative values must not be read as flags
	evalCmd.Flags().SetInterspersed(false)

	addCommonFlags(evalCmd, &opts.CommonOpts)
	evalCmd.Flags().IntVarP(&opts.Parallel, "parallel", "p", 0, "Maximum concurrent evaluations, defaults to the number of CPUs")
	evalCmd.Flags().StringVarP(&opts.Output, "output", "o", matchexpr.OutputText, "Output format - Can be either 'text' or 'json'")
	evalCmd.Flags().BoolVar(&opts.Fail, "fail", false, "Exit with an error if any value does not match")
	evalCmd.Flags().BoolVar(&opts.ShowEvaluations, "show-evaluations", false, "Print how often each named matcher was evaluated")

	return evalCmd
}

func newDescribeCommand() *cobra.Command {
	opts := &matchexpr.DescribeOpts{}

	describeCmd := &cobra.Command{
		Use:   CommandDescribe + " <expression>",
		Short: "Print the description and parse tree of an expression.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.InitLogging(false)
			return matchexpr.Describe(cmd.OutOrStdout(), opts, args[0])
		},
	}

	addCommonFlags(describeCmd, &opts.CommonOpts)
	describeCmd.Flags().BoolVar(&opts.Short, "short", false, "Print the condensed tree")

	return describeCmd
}

func newListCommand() *cobra.Command {
	opts := &matchexpr.CommonOpts{}

	listCmd := &cobra.Command{
		Use:   CommandList,
		Short: "List the named matchers expressions can reference.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.InitLogging(false)
			return matchexpr.List(cmd.OutOrStdout(), opts)
		},
	}

	addCommonFlags(listCmd, opts)

	return listCmd
}
