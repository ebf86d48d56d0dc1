package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"backprop-forge/internal/config"
	"backprop-forge/internal/dataset"
	"backprop-forge/internal/network"
)

func TestTopologyFor(t *testing.T) {
	sets, _ := dataset.Patterns{}.Provide()
	cfg := config.Default()
	topo, err := topologyFor(cfg, sets)
	if err != nil {
		t.Fatalf("topologyFor: %v", err)
	}
	if topo != (network.Topology{Inputs: 25, Hiddens: 5, Outputs: 2}) {
		t.Fatalf("unexpected topology %+v", topo)
	}

	cfg.NumInputs = 24
	if _, err := topologyFor(cfg, sets); !errors.Is(err, network.ErrConfiguration) {
		t.Fatalf("pinned input mismatch: got %v", err)
	}
}

func TestProviderFor(t *testing.T) {
	cfg := config.Default()
	if _, ok := providerFor(cfg).(dataset.Patterns); !ok {
		t.Fatalf("default provider is not patterns")
	}
	cfg.DataSource = config.DataImages
	if _, ok := providerFor(cfg).(dataset.Images); !ok {
		t.Fatalf("images source did not select Images")
	}
	cfg.DataSource = config.DataFile
	if _, ok := providerFor(cfg).(dataset.TextFile); !ok {
		t.Fatalf("file source did not select TextFile")
	}
}

func TestStartingWeightsFromFile(t *testing.T) {
	topo := network.Topology{Inputs: 25, Hiddens: 5, Outputs: 2}
	cfg := config.Default()
	random, err := startingWeights(cfg, topo)
	if err != nil {
		t.Fatalf("random weights: %v", err)
	}

	path := filepath.Join(t.TempDir(), "weights.txt")
	if err := random.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	cfg.WeightsSource = config.WeightsFile
	cfg.WeightsIn = path
	cfg.StrictWeights = true
	loaded, err := startingWeights(cfg, topo)
	if err != nil {
		t.Fatalf("file weights: %v", err)
	}
	if !loaded.Equal(random) {
		t.Fatalf("loaded weights differ from saved ones")
	}

	topo.Hiddens = 4
	if _, err := startingWeights(cfg, topo); !errors.Is(err, network.ErrConfiguration) {
		t.Fatalf("strict hidden mismatch: got %v", err)
	}
}

func TestHostSummary(t *testing.T) {
	got := hostSummary()
	for _, key := range []string{"cpu=", "cores=", "avx2=", "fma3="} {
		if !strings.Contains(got, key) {
			t.Fatalf("hostSummary()=%q missing %s", got, key)
		}
	}
}
