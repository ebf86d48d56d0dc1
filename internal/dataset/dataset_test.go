package dataset

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"backprop-forge/internal/network"
)

func TestPatternsProvide(t *testing.T) {
	sets, err := Patterns{}.Provide()
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	inputs, outputs, err := sets.Dimensions()
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if inputs != 25 || outputs != 2 {
		t.Fatalf("dimensions %d/%d want 25/2", inputs, outputs)
	}
	if len(sets.Training) != 2 || len(sets.Evaluation) != 3 {
		t.Fatalf("got %d training and %d evaluation cases", len(sets.Training), len(sets.Evaluation))
	}
	if err := Validate(sets, network.Topology{Inputs: 25, Hiddens: 5, Outputs: 2}); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMismatch(t *testing.T) {
	topo := network.Topology{Inputs: 2, Hiddens: 1, Outputs: 1}
	cases := []struct {
		name string
		sets Sets
	}{
		{"empty", Sets{}},
		{"short input", Sets{Training: []Case{{Input: []float64{1}, Target: []float64{1}}}}},
		{"missing target", Sets{Training: []Case{{Input: []float64{1, 0}}}}},
		{"wide eval target", Sets{
			Training:   []Case{{Input: []float64{1, 0}, Target: []float64{1}}},
			Evaluation: []Case{{Input: []float64{1, 0}, Target: []float64{1, 0}}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.sets, topo); !errors.Is(err, network.ErrConfiguration) {
				t.Fatalf("got %v want ErrConfiguration", err)
			}
		})
	}

	ok := Sets{
		Training:   []Case{{Input: []float64{1, 0}, Target: []float64{1}}},
		Evaluation: []Case{{Input: []float64{0, 1}}},
	}
	if err := Validate(ok, topo); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestParseCases(t *testing.T) {
	src := `# xor
zero: 0 0 | 0
1 0 | 1

one: 0 1 | 1
`
	cases, err := ParseCases(strings.NewReader(src), true)
	if err != nil {
		t.Fatalf("ParseCases: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	if cases[0].Name != "zero" || cases[1].Name != "case1" || cases[2].Name != "one" {
		t.Fatalf("unexpected names %q %q %q", cases[0].Name, cases[1].Name, cases[2].Name)
	}
	if cases[1].Input[0] != 1 || cases[1].Target[0] != 1 {
		t.Fatalf("unexpected case %+v", cases[1])
	}

	if _, err := ParseCases(strings.NewReader("1 0\n"), true); !errors.Is(err, network.ErrFormat) {
		t.Fatalf("missing target: got %v", err)
	}
	if _, err := ParseCases(strings.NewReader("1 x | 0\n"), true); !errors.Is(err, network.ErrFormat) {
		t.Fatalf("bad number: got %v", err)
	}
	eval, err := ParseCases(strings.NewReader("held: 1 1\n"), false)
	if err != nil || len(eval) != 1 || eval[0].HasTarget() {
		t.Fatalf("evaluation parse: %v %+v", err, eval)
	}
}

func TestTextFileProvide(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "train.txt")
	eval := filepath.Join(dir, "eval.txt")
	if err := os.WriteFile(train, []byte("0 0 | 0\n1 1 | 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(eval, []byte("0 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sets, err := TextFile{TrainPath: train, EvalPath: eval}.Provide()
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if len(sets.Training) != 2 || len(sets.Evaluation) != 1 {
		t.Fatalf("got %d/%d cases", len(sets.Training), len(sets.Evaluation))
	}
	if _, err := (TextFile{TrainPath: filepath.Join(dir, "missing")}).Provide(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestImagesProvide(t *testing.T) {
	dir := t.TempDir()
	trainDir := filepath.Join(dir, "train")
	testDir := filepath.Join(dir, "test")
	writeBMP(t, filepath.Join(trainDir, "a.bmp"), 3, 2, 255)
	writeBMP(t, filepath.Join(trainDir, "b.bmp"), 3, 2, 0)
	writePNG(t, filepath.Join(testDir, "held.png"), 3, 2, 255)

	sets, err := Images{TrainDir: trainDir, TestDir: testDir}.Provide()
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if len(sets.Training) != 2 || len(sets.Evaluation) != 1 {
		t.Fatalf("got %d/%d cases", len(sets.Training), len(sets.Evaluation))
	}
	a := sets.Training[0]
	if a.Name != "a" || len(a.Input) != 6 {
		t.Fatalf("unexpected first case %q with %d inputs", a.Name, len(a.Input))
	}
	for _, v := range a.Input {
		if v != 1 {
			t.Fatalf("white pixel decoded as %v", v)
		}
	}
	if got := sets.Training[0].Target[0]; got != 0.45 {
		t.Fatalf("first target %v want 0.45", got)
	}
	if got := sets.Training[1].Target[0]; got != 0.9 {
		t.Fatalf("second target %v want 0.9", got)
	}
	if sets.Evaluation[0].HasTarget() {
		t.Fatalf("held-out image should carry no target")
	}

	writeBMP(t, filepath.Join(trainDir, "c.bmp"), 4, 4, 0)
	if _, err := (Images{TrainDir: trainDir}).Provide(); !errors.Is(err, network.ErrConfiguration) {
		t.Fatalf("mixed sizes: got %v", err)
	}
}

func grayImage(w, h int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	return img
}

func writeBMP(t *testing.T, path string, w, h int, level uint8) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := bmp.Encode(f, grayImage(w, h, level)); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
}

func writePNG(t *testing.T, path string, w, h int, level uint8) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, grayImage(w, h, level)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}
