package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/conductor-go/pkg/actions"
	"github.com/theapemachine/conductor-go/pkg/catalog"
	"github.com/theapemachine/conductor-go/pkg/conductor"
	"github.com/theapemachine/conductor-go/pkg/protocol"
	"github.com/theapemachine/conductor-go/pkg/provider"
	"github.com/theapemachine/conductor-go/pkg/state"
)

var (
	runMaxTurns int
	runStaged   bool
	runJSON     bool

	runCmd = &cobra.Command{
		Use:   "run [question]",
		Short: "Run a directive against the configured agent fleet",
		Long:  longRun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()

			registry := catalog.NewRegistry()
			registry.Discover(cmd.Context(), v.GetStringSlice("agents.endpoints"))

			if registry.Len() == 0 {
				log.Warn("no agents discovered, queries will fail")
			}

			generator, err := provider.FromConfig()
			if err != nil {
				return err
			}

			scratchpad := state.NewScratchpad()
			todo := state.NewTodo()

			handlerOptions := []actions.HandlerOption{
				actions.WithWaits(
					v.GetDuration("conductor.poll_interval"),
					v.GetDuration("conductor.max_wait"),
				),
			}

			if token := v.GetString("agents.token"); token != "" {
				tracker := protocol.NewTracker()
				handlerOptions = append(handlerOptions, actions.WithClientFactory(
					func(endpoint string) actions.TaskClient {
						return protocol.NewClient(
							endpoint,
							protocol.WithToken(token),
							protocol.WithTracker(tracker),
						)
					},
				))
			}

			handler := actions.NewHandler(registry, scratchpad, todo, handlerOptions...)

			orchestrator := conductor.New(
				registry, generator, handler, scratchpad, todo,
				conductor.WithModel(
					v.GetString("provider.model"),
					v.GetFloat64("provider.temperature"),
					v.GetInt64("provider.max_tokens"),
				),
			)

			maxTurns := runMaxTurns
			if maxTurns == 0 {
				maxTurns = v.GetInt("conductor.max_turns")
			}

			if runStaged || v.GetBool("conductor.staged") {
				results, err := orchestrator.RunStages(
					cmd.Context(), args[0], conductor.DefaultStages(maxTurns),
				)
				if err != nil {
					return err
				}

				return printJSON(results)
			}

			result, err := orchestrator.Run(cmd.Context(), args[0], maxTurns)
			if err != nil {
				return err
			}

			if runJSON {
				return printJSON(result)
			}

			printResult(result)
			return nil
		},
	}
)

func init() {
	runCmd.Flags().IntVar(&runMaxTurns, "max-turns", 0, "turn budget for the run (0 uses the configured default)")
	runCmd.Flags().BoolVar(&runStaged, "staged", false, "run the research, plan and implement stage sequence")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(runCmd)
}

func printResult(result *conductor.Result) {
	switch {
	case result.Completed:
		fmt.Println("completed in", result.TurnsExecuted, "turns")
	case result.Stalled:
		fmt.Println("stalled after", result.TurnsExecuted, "turns")
	default:
		fmt.Println("turn budget exhausted after", result.TurnsExecuted, "turns")
	}

	if result.FinishMessage != "" {
		fmt.Println()
		fmt.Println(result.FinishMessage)
	}

	if result.FinishSummary != "" {
		fmt.Println()
		fmt.Println(result.FinishSummary)
	}
}

func printJSON(value any) error {
	buf, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(buf))
	return nil
}

/*
longRun contains the detailed help text for the run command.
*/
var longRun = `
Run discovers the configured agents, then drives the conversation loop:
the language model emits action blocks, the conductor executes them
against the agent fleet over the A2A task protocol, and the results feed
back into the next turn until the model reports the work finished.
`
