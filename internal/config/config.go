package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"backprop-forge/internal/network"
	"backprop-forge/internal/trainer"
)

// DataSource selects where training and evaluation cases come from.
type DataSource string

const (
	DataPatterns DataSource = "patterns"
	DataImages   DataSource = "images"
	DataFile     DataSource = "file"
)

// WeightsSource selects how the starting weights are produced.
type WeightsSource string

const (
	WeightsRandom WeightsSource = "random"
	WeightsFile   WeightsSource = "file"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	// NumInputs and NumOutputs are inferred from the data when zero.
	NumInputs      int     `yaml:"num_inputs"`
	NumHiddens     int     `yaml:"num_hiddens"`
	NumOutputs     int     `yaml:"num_outputs"`
	LearningRate   float64 `yaml:"learning_rate"`
	ErrorThreshold float64 `yaml:"error_threshold"`
	MaxIterations  int     `yaml:"max_iterations"`
	WeightMin      float64 `yaml:"weight_min"`
	WeightMax      float64 `yaml:"weight_max"`
	Seed           int64   `yaml:"seed"`
	ReportEvery    int     `yaml:"report_every"`

	DataSource DataSource `yaml:"data_source"`
	TrainDir   string     `yaml:"train_dir"`
	TestDir    string     `yaml:"test_dir"`
	TrainFile  string     `yaml:"train_file"`
	EvalFile   string     `yaml:"eval_file"`

	WeightsSource WeightsSource `yaml:"weights_source"`
	WeightsIn     string        `yaml:"weights_in"`
	WeightsOut    string        `yaml:"weights_out"`
	StrictWeights bool          `yaml:"strict_weights"`
}

// Overrides captures CLI supplied values. Zero values leave the config alone,
// except MaxIterations where only a negative value means unset.
type Overrides struct {
	NumHiddens     int
	LearningRate   float64
	ErrorThreshold float64
	MaxIterations  int
	Seed           int64
	ReportEvery    int
	DataSource     string
	TrainDir       string
	TestDir        string
	TrainFile      string
	EvalFile       string
	WeightsSource  string
	WeightsIn      string
	WeightsOut     string
	StrictWeights  bool
}

// DefaultHiddens is the hidden layer size when none is configured.
const DefaultHiddens = 5

// Default returns the settings used for any key a config file leaves out.
func Default() *Config {
	return &Config{
		NumHiddens:     DefaultHiddens,
		LearningRate:   trainer.DefaultLearningRate,
		ErrorThreshold: trainer.DefaultErrorThreshold,
		MaxIterations:  trainer.DefaultMaxIterations,
		WeightMin:      network.DefaultRange.Min,
		WeightMax:      network.DefaultRange.Max,
		ReportEvery:    trainer.DefaultReportEvery,
		DataSource:     DataPatterns,
		WeightsSource:  WeightsRandom,
	}
}

// Load reads a Config from YAML on top of Default. An empty path yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any set override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.NumHiddens > 0 {
		c.NumHiddens = o.NumHiddens
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.ErrorThreshold > 0 {
		c.ErrorThreshold = o.ErrorThreshold
	}
	if o.MaxIterations >= 0 {
		c.MaxIterations = o.MaxIterations
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.ReportEvery > 0 {
		c.ReportEvery = o.ReportEvery
	}
	if o.DataSource != "" {
		c.DataSource = DataSource(o.DataSource)
	}
	if o.TrainDir != "" {
		c.TrainDir = o.TrainDir
	}
	if o.TestDir != "" {
		c.TestDir = o.TestDir
	}
	if o.TrainFile != "" {
		c.TrainFile = o.TrainFile
	}
	if o.EvalFile != "" {
		c.EvalFile = o.EvalFile
	}
	if o.WeightsSource != "" {
		c.WeightsSource = WeightsSource(o.WeightsSource)
	}
	if o.WeightsIn != "" {
		c.WeightsIn = o.WeightsIn
	}
	if o.WeightsOut != "" {
		c.WeightsOut = o.WeightsOut
	}
	if o.StrictWeights {
		c.StrictWeights = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.NumInputs < 0 || c.NumOutputs < 0 {
		return errors.Errorf("num_inputs and num_outputs must be >= 0 (got %d, %d)", c.NumInputs, c.NumOutputs)
	}
	if c.NumHiddens <= 0 {
		return errors.Errorf("num_hiddens must be > 0 (got %d)", c.NumHiddens)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.ErrorThreshold <= 0 {
		return errors.Errorf("error_threshold must be > 0 (got %g)", c.ErrorThreshold)
	}
	if c.MaxIterations < 0 {
		return errors.Errorf("max_iterations must be >= 0 (got %d)", c.MaxIterations)
	}
	if !(c.WeightMax > c.WeightMin) {
		return errors.Errorf("weight range [%g, %g) is empty", c.WeightMin, c.WeightMax)
	}
	if c.ReportEvery <= 0 {
		c.ReportEvery = trainer.DefaultReportEvery
	}

	switch c.DataSource {
	case DataPatterns:
	case DataImages:
		if c.TrainDir == "" {
			return errors.New("train_dir is required for data_source images")
		}
	case DataFile:
		if c.TrainFile == "" {
			return errors.New("train_file is required for data_source file")
		}
	default:
		return errors.Errorf("unknown data_source %q", c.DataSource)
	}

	switch c.WeightsSource {
	case WeightsRandom:
	case WeightsFile:
		if c.WeightsIn == "" {
			return errors.New("weights_in is required for weights_source file")
		}
	default:
		return errors.Errorf("unknown weights_source %q", c.WeightsSource)
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
