package dataset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"

	"backprop-forge/internal/network"
)

// Images decodes bitmap files into flat grayscale vectors. Every training
// image gets a single target output; targets step evenly up to 0.9 in file
// order.
type Images struct {
	TrainDir string
	TestDir  string
}

// Provide implements Provider.
func (p Images) Provide() (Sets, error) {
	trainFiles, err := DiscoverImages(p.TrainDir)
	if err != nil {
		return Sets{}, err
	}
	if len(trainFiles) == 0 {
		return Sets{}, errors.Wrapf(network.ErrConfiguration, "no images under %s", p.TrainDir)
	}
	var testFiles []string
	if p.TestDir != "" {
		testFiles, err = DiscoverImages(p.TestDir)
		if err != nil {
			return Sets{}, err
		}
	}

	var sets Sets
	space := 0.9 / float64(len(trainFiles))
	var bounds image.Rectangle
	for m, path := range trainFiles {
		features, b, err := decodeImageFile(path)
		if err != nil {
			return Sets{}, err
		}
		if m == 0 {
			bounds = b
		} else if b.Dx() != bounds.Dx() || b.Dy() != bounds.Dy() {
			return Sets{}, errors.Wrapf(network.ErrConfiguration, "%s is %dx%d, expected %dx%d",
				path, b.Dx(), b.Dy(), bounds.Dx(), bounds.Dy())
		}
		sets.Training = append(sets.Training, Case{
			Name:   caseName(path),
			Input:  features,
			Target: []float64{space * float64(m+1)},
		})
	}
	for _, path := range testFiles {
		features, b, err := decodeImageFile(path)
		if err != nil {
			return Sets{}, err
		}
		if b.Dx() != bounds.Dx() || b.Dy() != bounds.Dy() {
			return Sets{}, errors.Wrapf(network.ErrConfiguration, "%s is %dx%d, expected %dx%d",
				path, b.Dx(), b.Dy(), bounds.Dx(), bounds.Dy())
		}
		sets.Evaluation = append(sets.Evaluation, Case{Name: caseName(path), Input: features})
	}
	return sets, nil
}

func decodeImageFile(path string) ([]float64, image.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, image.Rectangle{}, errors.Wrapf(err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, image.Rectangle{}, errors.Wrapf(err, "decode image %s", path)
	}
	return Flatten(img), img.Bounds(), nil
}

// Flatten converts img to row-major intensities in [0, 1].
func Flatten(img image.Image) []float64 {
	bounds := img.Bounds()
	features := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			features = append(features, (float64(r)+float64(g)+float64(b))/(3*65535.0))
		}
	}
	return features
}

func caseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
