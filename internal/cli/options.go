package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/logging"
	"options-analyzer/internal/models"
	"options-analyzer/internal/payoff"
	"options-analyzer/internal/strategy"
	"options-analyzer/pkg/utils"
)

// addOptionsCommands adds payoff and strategy commands.
func addOptionsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPayoffCmd(app))
	rootCmd.AddCommand(newStrategyCmd(app))
}

// payoffReport is everything the payoff renderers need, and the JSON shape.
type payoffReport struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Legs        []models.OptionLeg     `json:"legs"`
	Range       models.PriceRange      `json:"range"`
	Result      *models.StrategyResult `json:"result"`
	Crossings   []float64              `json:"interpolated_break_evens,omitempty"`
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff [leg...]",
		Short: "Display payoff diagram",
		Long: `Evaluate a strategy of up to four option legs at expiry.

A leg is written kind:strike:premium[:side], e.g. call:100:5:long or put:95:3:short.
Legs come from arguments and --leg, from --preset, or from a YAML --file.
With no legs the strategy is a single long call struck at 100 for a premium of 5.

Break-even points are the sampled prices where profit is exactly zero. Use
--interpolate to also report crossings that fall between samples.`,
		Example: `  analyzer payoff call:100:5:long put:100:5:long
  analyzer payoff --preset iron-condor --center 150 --width 15
  analyzer payoff --file straddle.yaml --min 50 --max 150 --step 0.5
  analyzer payoff --preset straddle --set 2.premium=6 --drop 1 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			report, err := app.buildReport(cmd, args)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(report)
			}
			table, _ := cmd.Flags().GetBool("table")
			noChart, _ := cmd.Flags().GetBool("no-chart")
			app.renderReport(output, report, !noChart, table)
			return nil
		},
	}

	cmd.Flags().StringArray("leg", nil, "option leg kind:strike:premium[:side] (repeatable)")
	cmd.Flags().String("preset", "", "built-in strategy (see 'strategy list')")
	cmd.Flags().String("file", "", "YAML strategy file")
	cmd.Flags().StringArray("set", nil, "edit a leg field, INDEX.FIELD=VALUE, e.g. 1.strike=105 (repeatable)")
	cmd.Flags().IntSlice("drop", nil, "remove legs by 1-based index, applied after --set")
	cmd.Flags().Float64("center", 0, "preset at-the-money strike (default from config)")
	cmd.Flags().Float64("width", 0, "preset distance between strikes (default from config)")
	cmd.Flags().Float64("premium", 0, "preset at-the-money premium (default from config)")
	addEvaluationFlags(cmd)

	return cmd
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Built-in option strategies",
		Long:  "List and evaluate built-in strategies such as straddles, spreads and condors.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			params := app.presetParams(cmd)

			var all []*models.OptionStrategy
			for _, name := range strategy.PresetNames() {
				s, err := strategy.Preset(name, params)
				if err != nil {
					return err
				}
				all = append(all, s)
			}

			if output.IsJSON() {
				return output.JSON(all)
			}

			output.Bold("Available Option Strategies")
			output.Println()
			for _, s := range all {
				output.Printf("  %-18s %s\n", output.Cyan(s.Name), s.Description)
			}
			return nil
		},
	})

	show := &cobra.Command{
		Use:   "show <strategy>",
		Short: "Evaluate a built-in strategy",
		Example: `  analyzer strategy show straddle
  analyzer strategy show bull-call-spread --center 120 --premium 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			s, err := strategy.Preset(args[0], app.presetParams(cmd))
			if err != nil {
				output.Error("%v", err)
				output.Dim("Available: %s", strings.Join(strategy.PresetNames(), ", "))
				return err
			}
			b := strategy.NewBuilder(app.Config.Strategy.MaxLegs)
			if err := b.Replace(s.Legs); err != nil {
				output.Error("%v", err)
				return err
			}
			report, err := app.evaluate(cmd, s.Name, s.Description, b)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(report)
			}
			table, _ := cmd.Flags().GetBool("table")
			noChart, _ := cmd.Flags().GetBool("no-chart")
			app.renderReport(output, report, !noChart, table)
			return nil
		},
	}
	addEvaluationFlags(show)
	cmd.AddCommand(show)

	cmd.PersistentFlags().Float64("center", 0, "at-the-money strike (default from config)")
	cmd.PersistentFlags().Float64("width", 0, "distance between strikes (default from config)")
	cmd.PersistentFlags().Float64("premium", 0, "at-the-money premium (default from config)")

	return cmd
}

// addEvaluationFlags adds price range and rendering flags.
func addEvaluationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min", 0, "lowest underlying price (default from config)")
	cmd.Flags().Float64("max", 0, "highest underlying price (default from config)")
	cmd.Flags().Float64("step", 0, "price step (default from config)")
	cmd.Flags().Bool("interpolate", false, "also report break-evens between sampled prices")
	cmd.Flags().Bool("table", false, "print every sampled price")
	cmd.Flags().Bool("no-chart", false, "skip the ASCII chart")
}

// presetParams reads preset flags, falling back to config.
func (a *App) presetParams(cmd *cobra.Command) strategy.PresetParams {
	p := strategy.PresetParams{
		Center:  a.Config.Strategy.Center,
		Width:   a.Config.Strategy.Width,
		Premium: a.Config.Strategy.Premium,
	}
	if f := cmd.Flags().Lookup("center"); f != nil && f.Changed {
		p.Center, _ = cmd.Flags().GetFloat64("center")
	}
	if f := cmd.Flags().Lookup("width"); f != nil && f.Changed {
		p.Width, _ = cmd.Flags().GetFloat64("width")
	}
	if f := cmd.Flags().Lookup("premium"); f != nil && f.Changed {
		p.Premium, _ = cmd.Flags().GetFloat64("premium")
	}
	return p
}

// priceRange reads range flags, falling back to config.
func (a *App) priceRange(cmd *cobra.Command) models.PriceRange {
	rng := a.Config.Range.PriceRange()
	if cmd.Flags().Changed("min") {
		rng.Min, _ = cmd.Flags().GetFloat64("min")
	}
	if cmd.Flags().Changed("max") {
		rng.Max, _ = cmd.Flags().GetFloat64("max")
	}
	if cmd.Flags().Changed("step") {
		rng.Step, _ = cmd.Flags().GetFloat64("step")
	}
	return rng
}

// buildReport collects legs for the payoff command and evaluates them.
func (a *App) buildReport(cmd *cobra.Command, args []string) (*payoffReport, error) {
	flagLegs, _ := cmd.Flags().GetStringArray("leg")
	legSpecs := append(append([]string{}, args...), flagLegs...)
	presetName, _ := cmd.Flags().GetString("preset")
	file, _ := cmd.Flags().GetString("file")

	sources := 0
	for _, set := range []bool{len(legSpecs) > 0, presetName != "", file != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, apperrors.NewValidationError("legs", "", "use only one of legs, --preset or --file")
	}

	b := strategy.NewBuilder(a.Config.Strategy.MaxLegs)
	var name, description string

	switch {
	case presetName != "":
		s, err := strategy.Preset(presetName, a.presetParams(cmd))
		if err != nil {
			return nil, err
		}
		name, description = s.Name, s.Description
		if err := b.Replace(s.Legs); err != nil {
			return nil, err
		}
	case file != "":
		s, err := strategy.LoadFile(file)
		if err != nil {
			return nil, err
		}
		name, description = s.Name, s.Description
		if err := b.Replace(s.Legs); err != nil {
			return nil, err
		}
	case len(legSpecs) > 0:
		legs := make([]models.OptionLeg, 0, len(legSpecs))
		for i, spec := range legSpecs {
			leg, err := strategy.ParseLeg(spec)
			if err != nil {
				return nil, apperrors.NewLegError(i, err)
			}
			legs = append(legs, leg)
		}
		if err := b.Replace(legs); err != nil {
			return nil, err
		}
	}

	if err := applyEdits(cmd, b); err != nil {
		return nil, err
	}

	return a.evaluate(cmd, name, description, b)
}

// applyEdits applies --set then --drop to the builder. Both take 1-based
// indices into the legs as collected, before any leg is dropped.
func applyEdits(cmd *cobra.Command, b *strategy.Builder) error {
	sets, _ := cmd.Flags().GetStringArray("set")
	for _, set := range sets {
		target, value, ok := strings.Cut(set, "=")
		if !ok {
			return apperrors.NewValidationError("set", set, "want INDEX.FIELD=VALUE")
		}
		idxStr, field, ok := strings.Cut(target, ".")
		if !ok {
			return apperrors.NewValidationError("set", set, "want INDEX.FIELD=VALUE")
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return apperrors.NewValidationError("set", set, "leg index must be a number")
		}
		if err := b.Update(idx-1, field, value); err != nil {
			if apperrors.Is(err, apperrors.ErrLegIndex) {
				return apperrors.Wrapf(apperrors.ErrLegIndex, "--set %d: %d legs", idx, b.Len())
			}
			return apperrors.Wrapf(err, "--set %d", idx)
		}
	}

	drops, _ := cmd.Flags().GetIntSlice("drop")
	sort.Sort(sort.Reverse(sort.IntSlice(drops)))
	for i, idx := range drops {
		if i > 0 && drops[i-1] == idx {
			continue
		}
		if err := b.Remove(idx - 1); err != nil {
			if apperrors.Is(err, apperrors.ErrLegIndex) {
				return apperrors.Wrapf(apperrors.ErrLegIndex, "--drop %d: %d legs", idx, b.Len())
			}
			return apperrors.Wrapf(err, "--drop %d", idx)
		}
	}
	return nil
}

// evaluate runs the engine over the builder's legs. On error nothing is
// returned so callers render nothing.
func (a *App) evaluate(cmd *cobra.Command, name, description string, b *strategy.Builder) (*payoffReport, error) {
	logger := a.Logger
	if ctx := cmd.Context(); ctx != nil {
		logger = logging.FromContext(ctx)
	}
	logger = logging.WithOperation(logger, "payoff")
	if name != "" {
		logger = logging.WithStrategy(logger, name)
	}

	rng := a.priceRange(cmd)
	start := time.Now()
	result, err := b.Evaluate(rng)
	if err != nil {
		logging.LogEvaluationError(logger, b.Len(), err)
		return nil, err
	}
	logging.LogEvaluation(logger, b.Len(), rng, result, time.Since(start))

	report := &payoffReport{
		Name:        name,
		Description: description,
		Legs:        b.Legs(),
		Range:       rng,
		Result:      result,
	}
	if interpolate, _ := cmd.Flags().GetBool("interpolate"); interpolate {
		report.Crossings = payoff.Interpolate(result.Series)
	}
	return report, nil
}

// renderReport prints the text form of a payoff report.
func (a *App) renderReport(output *Output, r *payoffReport, chart, table bool) {
	title := "Payoff Diagram"
	if r.Name != "" {
		title += " - " + r.Name
	}
	output.Bold(title)
	if r.Description != "" {
		output.Dim("  %s", r.Description)
	}
	output.Println()

	legs := NewTable(output, "#", "Side", "Type", "Strike", "Premium")
	for i, leg := range r.Legs {
		legs.AddRow(
			strconv.Itoa(i+1),
			string(leg.Side),
			string(leg.Kind),
			utils.FormatNumber(leg.Strike),
			utils.FormatAmount(leg.Premium),
		)
	}
	legs.Render()
	output.Println()

	res := r.Result
	breakEvens := utils.JoinNumbers(res.BreakEvenPoints, ", ")
	if breakEvens == "" {
		breakEvens = output.ColoredString(ColorDim, "none at sampled prices")
	}
	output.Printf("  Max Profit:        %s\n", output.ColoredString(output.PnLColor(res.MaxProfit), utils.FormatPnL(res.MaxProfit)))
	output.Printf("  Max Loss:          %s\n", output.ColoredString(output.PnLColor(res.MaxLoss), utils.FormatPnL(res.MaxLoss)))
	output.Printf("  Break Even Points: %s\n", breakEvens)
	output.Printf("  Net Premium:       %s\n", formatNetPremium(res.NetPremium))
	if r.Crossings != nil {
		output.Printf("  Interpolated:      %s\n", utils.JoinNumbers(r.Crossings, ", "))
	}
	output.Dim("  Range %s..%s step %s, %d samples",
		utils.FormatNumber(r.Range.Min), utils.FormatNumber(r.Range.Max),
		utils.FormatNumber(r.Range.Step), len(res.Series))
	if len(res.BreakEvenPoints) == 0 && r.Crossings == nil {
		if crossings := payoff.Interpolate(res.Series); len(crossings) > 0 {
			output.Warning("  Profit crosses zero between samples; use --interpolate or a finer --step")
		}
	}

	if chart {
		output.Println()
		for _, line := range PayoffChart(res.Series, a.Config.UI.ChartWidth, a.Config.UI.ChartHeight) {
			output.Println(line)
		}
	}

	if table {
		output.Println()
		t := NewTable(output, "Price", "P/L")
		for _, pt := range res.Series {
			t.AddRow(utils.FormatNumber(pt.UnderlyingPrice), utils.FormatPnL(pt.TotalProfit))
		}
		t.Render()
	}
}

func formatNetPremium(net float64) string {
	switch {
	case net > 0:
		return fmt.Sprintf("%s debit", utils.FormatAmount(net))
	case net < 0:
		return fmt.Sprintf("%s credit", utils.FormatAmount(-net))
	}
	return "0.00"
}
