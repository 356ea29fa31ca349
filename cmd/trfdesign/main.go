package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/trfdesign/internal/apperr"
	"github.com/RMahshie/trfdesign/internal/cli"
	"github.com/RMahshie/trfdesign/internal/design"
	"github.com/RMahshie/trfdesign/internal/export"
	"github.com/RMahshie/trfdesign/internal/quality"
	"github.com/RMahshie/trfdesign/internal/trf"
	"github.com/RMahshie/trfdesign/pkg/models"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information"`
	Debug   bool        `help:"Enable debug logging"`

	Inspect InspectCmd `cmd:"" help:"Parse a TRF file and report its data quality"`
	Design  DesignCmd  `cmd:"" help:"Design a FIR filter from a TRF file and export its coefficients"`
	Presets PresetsCmd `cmd:"" help:"List frequency range presets"`
}

type versionFlag bool

// BeforeApply prints the styled version banner and exits
func (versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)
	return nil
}

// InspectCmd parses a TRF file and prints its quality report, optionally
// restricted to a frequency band
type InspectCmd struct {
	File   string  `arg:"" help:"TRF file to inspect" type:"existingfile"`
	Preset string  `short:"p" help:"Only report points inside this preset's range"`
	Min    float64 `help:"Lower frequency bound in Hz; requires --max"`
	Max    float64 `help:"Upper frequency bound in Hz"`
}

// Run executes the inspect command
func (c *InspectCmd) Run() error {
	r, err := frequencyRange(c.Preset, c.Min, c.Max)
	if err != nil {
		return err
	}
	set, err := load(c.File)
	if err != nil {
		return err
	}
	if set, err = design.FilterSet(set, r); err != nil {
		return err
	}
	cli.PrintMeasurement(os.Stdout, c.File, set, quality.Report(set.Points))
	return nil
}

// DesignCmd designs a filter and writes the formatted coefficients
type DesignCmd struct {
	File       string  `arg:"" help:"TRF file to design from" type:"existingfile"`
	Taps       int     `short:"n" default:"512" help:"Number of FIR taps"`
	SampleRate float64 `short:"r" help:"Sample rate in Hz (defaults to the rate detected from the data)"`
	Preset     string  `short:"p" help:"Frequency range preset (see 'presets')"`
	Min        float64 `help:"Lower frequency bound in Hz; requires --max, overrides --preset"`
	Max        float64 `help:"Upper frequency bound in Hz"`
	Format     string  `short:"f" default:"text" enum:"text,csv,matlab,python,high-res" help:"Export format (${enum})"`
	Out        string  `short:"o" type:"path" help:"Output file (stdout when omitted)"`
}

// Run executes the design command
func (c *DesignCmd) Run() error {
	r, err := frequencyRange(c.Preset, c.Min, c.Max)
	if err != nil {
		return err
	}
	set, err := load(c.File)
	if err != nil {
		return err
	}

	cfg := design.DefaultConfig()
	cfg.NumTaps = c.Taps
	cfg.SampleRate = float64(set.SampleRate)
	if c.SampleRate > 0 {
		cfg.SampleRate = c.SampleRate
	}
	cfg.FrequencyRange = r

	result, err := design.Design(set.Points, cfg)
	if err != nil {
		return err
	}
	content := export.Format(result.Coefficients, c.Format, cfg.SampleRate)

	cli.PrintDesign(os.Stderr, result)
	if c.Out == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	log.Info().Str("file", c.Out).Str("format", c.Format).Int("taps", len(result.Coefficients)).Msg("Coefficients exported")
	return nil
}

// PresetsCmd lists the frequency range presets
type PresetsCmd struct{}

// Run executes the presets command
func (c *PresetsCmd) Run() error {
	cli.PrintPresets(os.Stdout, design.Presets)
	return nil
}

// frequencyRange resolves the band flags. Explicit bounds beat a preset and
// no flags give the disabled default range.
func frequencyRange(preset string, lo, hi float64) (models.FrequencyRange, error) {
	switch {
	case hi > 0:
		return models.FrequencyRange{Enabled: true, Min: lo, Max: hi}, nil
	case lo != 0:
		return models.FrequencyRange{}, apperr.New(apperr.KindInvalidConfig, "trfdesign",
			"--min %g given without --max", lo)
	case preset != "":
		return design.SelectPreset(preset)
	}
	return design.DefaultFrequencyRange(), nil
}

func load(path string) (*models.MeasurementSet, error) {
	buf, err := trf.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := trf.Parse(buf)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Str("format", string(set.Format)).Int("points", set.PointCount).Msg("TRF parsed")
	return set, nil
}

func main() {
	var args CLI
	ctx := kong.Parse(&args,
		kong.Name("trfdesign"),
		kong.Description("Design FIR correction filters from TRF frequency-response measurements"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if args.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
