package network

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LoadOptions tunes how strictly a weight file is checked against the topology.
type LoadOptions struct {
	// Strict rejects a header that disagrees with Topology.Hiddens and any
	// trailing values. Without it a wrong hidden count loads silently.
	Strict bool
}

// LoadWeightsFile opens path and decodes it with LoadWeights.
func LoadWeightsFile(path string, topo Topology, opts LoadOptions) (*Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open weights %s", path)
	}
	defer f.Close()

	w, err := LoadWeights(f, topo, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load weights %s", path)
	}
	return w, nil
}

// LoadWeights reads a hidden-count header followed by every input->hidden
// weight in (k, j) order and every hidden->output weight in (j, i) order.
func LoadWeights(r io.Reader, topo Topology, opts LoadOptions) (*Weights, error) {
	if err := topo.Validate(); err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "read weights header")
		}
		return nil, errors.Wrap(ErrFormat, "missing hidden count header")
	}
	header, err := strconv.ParseFloat(scanner.Text(), 64)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "hidden count header %q is not a number", scanner.Text())
	}
	if opts.Strict && header != float64(topo.Hiddens) {
		return nil, errors.Wrapf(ErrConfiguration, "file was trained with %g hidden nodes, topology wants %d", header, topo.Hiddens)
	}

	want := topo.WeightCount()
	values := make([]float64, 0, want)
	for len(values) < want && scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "value %d: %q is not a number", len(values)+1, scanner.Text())
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read weights")
	}
	if len(values) < want {
		return nil, errors.Wrapf(ErrFormat, "expected %d weights for %dx%dx%d, found %d",
			want, topo.Inputs, topo.Hiddens, topo.Outputs, len(values))
	}
	if opts.Strict && scanner.Scan() {
		return nil, errors.Wrapf(ErrConfiguration, "weight file holds more than the %d weights expected", want)
	}

	split := topo.Inputs * topo.Hiddens
	return &Weights{
		topo:         topo,
		inputHidden:  mat.NewDense(topo.Inputs, topo.Hiddens, values[:split:split]),
		hiddenOutput: mat.NewDense(topo.Hiddens, topo.Outputs, values[split:]),
	}, nil
}

// Save writes the hidden count and then one weight per line. Values use the
// shortest representation that parses back to the same float64.
func (w *Weights) Save(dst io.Writer) error {
	bw := bufio.NewWriter(dst)
	buf := strconv.AppendInt(nil, int64(w.topo.Hiddens), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return errors.Wrap(err, "write weights header")
	}
	writeMatrix := func(m *mat.Dense) error {
		rows, cols := m.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				buf = strconv.AppendFloat(buf[:0], m.At(r, c), 'g', -1, 64)
				buf = append(buf, '\n')
				if _, err := bw.Write(buf); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := writeMatrix(w.inputHidden); err != nil {
		return errors.Wrap(err, "write input->hidden weights")
	}
	if err := writeMatrix(w.hiddenOutput); err != nil {
		return errors.Wrap(err, "write hidden->output weights")
	}
	return errors.Wrap(bw.Flush(), "flush weights")
}

// SaveFile writes the weights next to path and renames them into place, so a
// failed save leaves any previous file intact. A new file gets mode 0644; an
// existing one keeps its permissions.
func (w *Weights) SaveFile(path string) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	mode := fs.FileMode(0o644)
	if fi, statErr := os.Stat(path); statErr == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create weights %s", path)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = w.Save(tmp); err != nil {
		return errors.Wrapf(err, "save weights %s", path)
	}
	if err = tmp.Chmod(mode); err != nil {
		return errors.Wrapf(err, "chmod weights %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close weights %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename weights into %s", path)
	}
	return nil
}
