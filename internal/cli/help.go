package cli

import (
	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExamplesCmd(app))
}

type workflowExample struct {
	Title    string   `json:"title"`
	Commands []string `json:"commands"`
}

var workflowExamples = []workflowExample{
	{
		Title: "Single Leg",
		Commands: []string{
			"analyzer payoff                           # Long call 100 @ 5",
			"analyzer payoff put:95:3:short            # Write a put",
			"analyzer payoff call:100:5 --table        # Every sampled price",
		},
	},
	{
		Title: "Multi-Leg Strategies",
		Commands: []string{
			"analyzer payoff call:100:5 put:100:5      # Long straddle",
			"analyzer strategy list                    # Built-in strategies",
			"analyzer strategy show iron-condor --center 150 --width 15",
			"analyzer payoff --file my-spread.yaml     # Strategy from YAML",
		},
	},
	{
		Title: "Tweaking a Strategy",
		Commands: []string{
			"analyzer payoff --preset straddle --set 1.premium=6",
			"analyzer payoff --preset butterfly --drop 4",
			"analyzer payoff --preset strangle --min 50 --max 150 --step 0.5",
		},
	},
	{
		Title: "Break-Evens Between Prices",
		Commands: []string{
			"analyzer payoff --preset bull-call-spread --interpolate",
			"analyzer payoff call:100:5.5 --interpolate --json",
		},
	},
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common strategy analysis workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(workflowExamples)
			}

			output.Bold("Common Workflow Examples")
			output.Println()

			for _, ex := range workflowExamples {
				output.Printf("%s\n", output.Cyan(ex.Title))
				for _, c := range ex.Commands {
					output.Printf("  %s\n", c)
				}
				output.Println()
			}
			return nil
		},
	}
}
