package main

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/pkg/errors"

	"backprop-forge/internal/config"
	"backprop-forge/internal/dataset"
	"backprop-forge/internal/network"
)

func providerFor(cfg *config.Config) dataset.Provider {
	switch cfg.DataSource {
	case config.DataImages:
		return dataset.Images{TrainDir: cfg.TrainDir, TestDir: cfg.TestDir}
	case config.DataFile:
		return dataset.TextFile{TrainPath: cfg.TrainFile, EvalPath: cfg.EvalFile}
	default:
		return dataset.Patterns{}
	}
}

// topologyFor takes layer sizes from the data unless the config pins them,
// in which case the two must agree.
func topologyFor(cfg *config.Config, sets dataset.Sets) (network.Topology, error) {
	inputs, outputs, err := sets.Dimensions()
	if err != nil {
		return network.Topology{}, err
	}
	if cfg.NumInputs != 0 && cfg.NumInputs != inputs {
		return network.Topology{}, errors.Wrapf(network.ErrConfiguration, "num_inputs=%d but data has %d", cfg.NumInputs, inputs)
	}
	if cfg.NumOutputs != 0 && cfg.NumOutputs != outputs {
		return network.Topology{}, errors.Wrapf(network.ErrConfiguration, "num_outputs=%d but data has %d", cfg.NumOutputs, outputs)
	}
	topo := network.Topology{Inputs: inputs, Hiddens: cfg.NumHiddens, Outputs: outputs}
	return topo, topo.Validate()
}

func startingWeights(cfg *config.Config, topo network.Topology) (*network.Weights, error) {
	if cfg.WeightsSource == config.WeightsFile {
		return network.LoadWeightsFile(cfg.WeightsIn, topo, network.LoadOptions{Strict: cfg.StrictWeights})
	}
	return network.NewRandomWeights(topo, network.Range{Min: cfg.WeightMin, Max: cfg.WeightMax}, cfg.Seed)
}

// hostSummary describes the CPU the training loops run on.
func hostSummary() string {
	return fmt.Sprintf("cpu=%q cores=%d avx2=%t fma3=%t",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores,
		cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.FMA3))
}
