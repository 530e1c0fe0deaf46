package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-analyzer/internal/config"
	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(config.Default(), zerolog.Nop())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func runJSON(t *testing.T, args ...string) *payoffReport {
	t.Helper()
	out, err := runCmd(t, append(args, "--json")...)
	if err != nil {
		t.Fatalf("%v: error = %v\n%s", args, err, out)
	}
	var report payoffReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return &report
}

func TestPayoff_DefaultLeg(t *testing.T) {
	out, err := runCmd(t, "payoff")
	if err != nil {
		t.Fatalf("payoff error = %v", err)
	}
	for _, want := range []string{
		"Max Profit:        +95.00",
		"Max Loss:          -5.00",
		"Break Even Points: 105\n",
		"Net Premium:       5.00 debit",
		"LONG  CALL  100",
		"201 samples",
		"└",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPayoff_StraddleJSON(t *testing.T) {
	report := runJSON(t, "payoff", "call:100:5:long", "--leg", "put:100:5:long")
	res := report.Result
	if res.MaxLoss != -10 {
		t.Errorf("MaxLoss = %v, want -10", res.MaxLoss)
	}
	if !reflect.DeepEqual(res.BreakEvenPoints, []float64{90, 110}) {
		t.Errorf("BreakEvenPoints = %v, want [90 110]", res.BreakEvenPoints)
	}
	if len(res.Series) != 201 {
		t.Errorf("len(Series) = %d, want 201", len(res.Series))
	}
	if report.Range != models.DefaultPriceRange() {
		t.Errorf("Range = %+v", report.Range)
	}
}

func TestPayoff_PresetInterpolate(t *testing.T) {
	report := runJSON(t, "payoff", "--preset", "iron-condor", "--interpolate")
	if report.Name != "iron-condor" {
		t.Errorf("Name = %q", report.Name)
	}
	if len(report.Result.BreakEvenPoints) != 0 {
		t.Errorf("BreakEvenPoints = %v, want none", report.Result.BreakEvenPoints)
	}
	if !reflect.DeepEqual(report.Crossings, []float64{87.5, 112.5}) {
		t.Errorf("Crossings = %v, want [87.5 112.5]", report.Crossings)
	}
	if report.Result.NetPremium != -2.5 {
		t.Errorf("NetPremium = %v, want -2.5", report.Result.NetPremium)
	}
}

func TestPayoff_PresetParams(t *testing.T) {
	report := runJSON(t, "payoff", "--preset", "straddle", "--center", "120", "--premium", "4")
	if report.Result.MaxLoss != -8 {
		t.Errorf("MaxLoss = %v, want -8", report.Result.MaxLoss)
	}
	if !reflect.DeepEqual(report.Result.BreakEvenPoints, []float64{112, 128}) {
		t.Errorf("BreakEvenPoints = %v, want [112 128]", report.Result.BreakEvenPoints)
	}
}

func TestPayoff_Edits(t *testing.T) {
	// Indices refer to the legs as collected, so leg 2 is still the put after leg 1 is dropped.
	report := runJSON(t, "payoff", "--preset", "straddle", "--set", "2.premium=6", "--drop", "1")
	want := []models.OptionLeg{{Kind: models.OptionPut, Strike: 100, Premium: 6, Side: models.PositionLong}}
	if !reflect.DeepEqual(report.Legs, want) {
		t.Errorf("Legs = %v, want %v", report.Legs, want)
	}
	if report.Result.MaxLoss != -6 {
		t.Errorf("MaxLoss = %v, want -6", report.Result.MaxLoss)
	}

	// Flag order on the command line does not matter.
	reordered := runJSON(t, "payoff", "--preset", "straddle", "--drop", "1", "--set", "2.premium=6")
	if !reflect.DeepEqual(reordered.Legs, want) {
		t.Errorf("reordered Legs = %v, want %v", reordered.Legs, want)
	}
}

func TestPayoff_EditIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "set past end", args: []string{"payoff", "--preset", "straddle", "--set", "3.strike=90"}, want: "--set 3: 2 legs: leg index out of range"},
		{name: "drop past end", args: []string{"payoff", "--preset", "straddle", "--drop", "3"}, want: "--drop 3: 2 legs: leg index out of range"},
		{name: "set zero", args: []string{"payoff", "--set", "0.strike=90"}, want: "--set 0: 1 legs: leg index out of range"},
		{name: "set bad value", args: []string{"payoff", "--preset", "straddle", "--set", "2.strike=abc"}, want: "--set 2: leg 2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestPayoff_CrossingHint(t *testing.T) {
	out, err := runCmd(t, "payoff", "call:100:5.5", "--no-chart")
	if err != nil {
		t.Fatalf("payoff error = %v", err)
	}
	if !strings.Contains(out, "use --interpolate") {
		t.Errorf("output missing interpolate hint:\n%s", out)
	}

	out, err = runCmd(t, "payoff", "call:100:5", "--no-chart")
	if err != nil {
		t.Fatalf("payoff error = %v", err)
	}
	if strings.Contains(out, "use --interpolate") {
		t.Errorf("hint shown with exact break-even:\n%s", out)
	}
}

func TestPayoff_LogsThroughContextLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var logs bytes.Buffer
	root := NewRootCmd(config.Default(), zerolog.New(&logs).Level(zerolog.DebugLevel))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"strategy", "show", "straddle", "--json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("log is not a single JSON entry: %v\n%s", err, logs.String())
	}
	if entry["operation"] != "payoff" || entry["strategy"] != "straddle" || entry["legs"] != float64(2) {
		t.Errorf("log entry = %v", entry)
	}
}

// exampleArgs splits a documented command line into arguments, dropping the
// program name and any trailing comment. --file values are replaced by a
// straddle written to dir.
func exampleArgs(t *testing.T, line, dir string) []string {
	t.Helper()
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "analyzer" {
		t.Fatalf("example %q does not start with analyzer", line)
	}
	args := fields[1:]
	for i := 0; i+1 < len(args); i++ {
		if args[i] != "--file" {
			continue
		}
		path := filepath.Join(dir, filepath.Base(args[i+1]))
		doc := "name: straddle\nlegs:\n  - {kind: call, strike: 100, premium: 5}\n  - {kind: put, strike: 100, premium: 5}\n"
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatal(err)
		}
		args[i+1] = path
	}
	return args
}

func TestDocumentedExamplesRun(t *testing.T) {
	var lines []string
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, line := range strings.Split(c.Example, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(NewRootCmd(config.Default(), zerolog.Nop()))
	for _, ex := range workflowExamples {
		lines = append(lines, ex.Commands...)
	}
	if len(lines) == 0 {
		t.Fatal("no examples found")
	}

	dir := t.TempDir()
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			if out, err := runCmd(t, exampleArgs(t, line, dir)...); err != nil {
				t.Errorf("error = %v\n%s", err, out)
			}
		})
	}
}

func TestPayoff_CustomRange(t *testing.T) {
	report := runJSON(t, "payoff", "call:100:5", "--min", "90", "--max", "110", "--step", "0.5")
	if len(report.Result.Series) != 41 {
		t.Errorf("len(Series) = %d, want 41", len(report.Result.Series))
	}
	if report.Result.MaxProfit != 5 {
		t.Errorf("MaxProfit = %v, want 5", report.Result.MaxProfit)
	}
}

func TestPayoff_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.yaml")
	doc := "name: my spread\nlegs:\n  - {kind: call, strike: 90, premium: 12}\n  - {kind: call, strike: 110, premium: 4, side: short}\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	report := runJSON(t, "payoff", "--file", path)
	if report.Name != "my spread" {
		t.Errorf("Name = %q", report.Name)
	}
	if report.Result.MaxProfit != 12 || report.Result.MaxLoss != -8 {
		t.Errorf("MaxProfit/MaxLoss = %v/%v, want 12/-8", report.Result.MaxProfit, report.Result.MaxLoss)
	}
	if !reflect.DeepEqual(report.Result.BreakEvenPoints, []float64{98}) {
		t.Errorf("BreakEvenPoints = %v, want [98]", report.Result.BreakEvenPoints)
	}
}

func TestPayoff_Table(t *testing.T) {
	out, err := runCmd(t, "payoff", "--table", "--no-chart", "--min", "104", "--max", "106")
	if err != nil {
		t.Fatalf("payoff error = %v", err)
	}
	for _, want := range []string{"104    -1.00", "105    0.00", "106    +1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "└") {
		t.Errorf("chart rendered despite --no-chart:\n%s", out)
	}
}

func TestPayoff_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "bad leg", args: []string{"payoff", "call:abc:5"}, want: apperrors.ErrInvalidInput},
		{name: "too many legs", args: []string{"payoff", "c:1:1", "c:2:1", "c:3:1", "c:4:1", "c:5:1"}, want: apperrors.ErrTooManyLegs},
		{name: "two sources", args: []string{"payoff", "c:1:1", "--preset", "straddle"}, want: apperrors.ErrInvalidInput},
		{name: "unknown preset", args: []string{"payoff", "--preset", "jade-lizard"}, want: apperrors.ErrUnknownPreset},
		{name: "drop last leg", args: []string{"payoff", "--drop", "1"}, want: apperrors.ErrLastLeg},
		{name: "bad set", args: []string{"payoff", "--set", "strike=5"}, want: apperrors.ErrInvalidInput},
		{name: "nan premium", args: []string{"payoff", "--set", "1.premium=NaN"}, want: apperrors.ErrInvalidInput},
		{name: "bad range", args: []string{"payoff", "--step", "0"}, want: apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			if !apperrors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if strings.Contains(out, "Max Profit") {
				t.Errorf("result rendered despite error:\n%s", out)
			}
		})
	}
}

func TestStrategyList(t *testing.T) {
	out, err := runCmd(t, "strategy", "list", "--json")
	if err != nil {
		t.Fatalf("strategy list error = %v", err)
	}
	var all []models.OptionStrategy
	if err := json.Unmarshal([]byte(out), &all); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(all) != 8 {
		t.Errorf("len = %d, want 8", len(all))
	}

	out, err = runCmd(t, "strategy", "list")
	if err != nil {
		t.Fatalf("strategy list error = %v", err)
	}
	if !strings.Contains(out, "iron-condor") {
		t.Errorf("output missing iron-condor:\n%s", out)
	}
}

func TestStrategyShow(t *testing.T) {
	out, err := runCmd(t, "strategy", "show", "straddle", "--no-chart")
	if err != nil {
		t.Fatalf("strategy show error = %v", err)
	}
	for _, want := range []string{"Payoff Diagram - straddle", "Break Even Points: 90, 110", "Max Loss:          -10.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	report := runJSON(t, "strategy", "show", "bull-call-spread", "--center", "120", "--interpolate")
	if !reflect.DeepEqual(report.Crossings, []float64{122.5}) {
		t.Errorf("Crossings = %v, want [122.5]", report.Crossings)
	}

	if _, err := runCmd(t, "strategy", "show", "jade-lizard"); !apperrors.Is(err, apperrors.ErrUnknownPreset) {
		t.Errorf("error = %v, want ErrUnknownPreset", err)
	}
}

func TestVersionAndConfig(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil || !strings.Contains(out, Version) {
		t.Errorf("version output = %q, err = %v", out, err)
	}

	out, err = runCmd(t, "config", "validate")
	if err != nil || !strings.Contains(out, "valid") {
		t.Errorf("config validate output = %q, err = %v", out, err)
	}

	out, err = runCmd(t, "config", "path", "--config", "/tmp/analyzer")
	if err != nil || strings.TrimSpace(out) != "/tmp/analyzer" {
		t.Errorf("config path output = %q, err = %v", out, err)
	}
}

func TestExamples(t *testing.T) {
	out, err := runCmd(t, "examples", "--json")
	if err != nil {
		t.Fatalf("examples error = %v", err)
	}
	var examples []workflowExample
	if err := json.Unmarshal([]byte(out), &examples); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(examples) != len(workflowExamples) {
		t.Errorf("len = %d, want %d", len(examples), len(workflowExamples))
	}
}
