package main

import (
	"flag"
	"log"

	"github.com/google/uuid"

	"backprop-forge/internal/config"
	"backprop-forge/internal/dataset"
	"backprop-forge/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults apply when empty)")
	hiddens := flag.Int("hiddens", 0, "Number of hidden nodes")
	learningRate := flag.Float64("learning-rate", 0, "Learning rate")
	threshold := flag.Float64("threshold", 0, "Total error at which training stops")
	maxIterations := flag.Int("max-iterations", -1, "Iteration cap (0 evaluates the starting weights)")
	seed := flag.Int64("seed", 0, "PRNG seed for random weights")
	reportEvery := flag.Int("report-every", 0, "Log progress every N iterations")
	data := flag.String("data", "", "Data source: patterns, images or file")
	trainDir := flag.String("train-dir", "", "Directory of training images")
	testDir := flag.String("test-dir", "", "Directory of held-out images")
	trainFile := flag.String("train-file", "", "Text file of training cases")
	evalFile := flag.String("eval-file", "", "Text file of held-out cases")
	weights := flag.String("weights", "", "Weights source: random or file")
	weightsIn := flag.String("weights-in", "", "Weight file to start from")
	weightsOut := flag.String("weights-out", "", "Weight file to write after training")
	strict := flag.Bool("strict-weights", false, "Reject weight files whose header or length disagree with the topology")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		NumHiddens:     *hiddens,
		LearningRate:   *learningRate,
		ErrorThreshold: *threshold,
		MaxIterations:  *maxIterations,
		Seed:           *seed,
		ReportEvery:    *reportEvery,
		DataSource:     *data,
		TrainDir:       *trainDir,
		TestDir:        *testDir,
		TrainFile:      *trainFile,
		EvalFile:       *evalFile,
		WeightsSource:  *weights,
		WeightsIn:      *weightsIn,
		WeightsOut:     *weightsOut,
		StrictWeights:  *strict,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	runID := uuid.NewString()
	log.Printf("run=%s %s", runID, hostSummary())

	sets, err := providerFor(cfg).Provide()
	if err != nil {
		log.Fatalf("load %s data: %v", cfg.DataSource, err)
	}
	topo, err := topologyFor(cfg, sets)
	if err != nil {
		log.Fatalf("topology: %v", err)
	}
	if err := dataset.Validate(sets, topo); err != nil {
		log.Fatalf("data does not fit topology: %v", err)
	}
	log.Printf("run=%s inputs=%d hiddens=%d outputs=%d training_cases=%d evaluation_cases=%d",
		runID, topo.Inputs, topo.Hiddens, topo.Outputs, len(sets.Training), len(sets.Evaluation))

	w, err := startingWeights(cfg, topo)
	if err != nil {
		log.Fatalf("weights: %v", err)
	}

	res, err := trainer.Run(w, sets.Training, trainer.RunConfig{
		LearningRate:   cfg.LearningRate,
		ErrorThreshold: cfg.ErrorThreshold,
		MaxIterations:  cfg.MaxIterations,
		ReportEvery:    cfg.ReportEvery,
		RunID:          runID,
	})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	for _, set := range []struct {
		name  string
		cases []dataset.Case
	}{
		{"training", sets.Training},
		{"evaluation", sets.Evaluation},
	} {
		reports, err := trainer.Evaluate(w, set.cases)
		if err != nil {
			log.Fatalf("evaluate %s set: %v", set.name, err)
		}
		trainer.LogReports(set.name, reports)
	}

	if cfg.WeightsOut != "" {
		if err := w.SaveFile(cfg.WeightsOut); err != nil {
			log.Fatalf("save weights: %v", err)
		}
		log.Printf("run=%s saved=%s hiddens=%d state=%s", runID, cfg.WeightsOut, topo.Hiddens, res.State)
	}
}
