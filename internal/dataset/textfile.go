package dataset

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"backprop-forge/internal/network"
)

// TextFile reads cases from plain text. Each non-blank line is
//
//	[name:] input... | target...
//
// Lines starting with '#' are comments. Training lines need targets;
// evaluation lines may omit the '|' part.
type TextFile struct {
	TrainPath string
	EvalPath  string
}

// Provide implements Provider.
func (p TextFile) Provide() (Sets, error) {
	var sets Sets
	var err error
	sets.Training, err = readCaseFile(p.TrainPath, true)
	if err != nil {
		return Sets{}, err
	}
	if p.EvalPath != "" {
		sets.Evaluation, err = readCaseFile(p.EvalPath, false)
		if err != nil {
			return Sets{}, err
		}
	}
	return sets, nil
}

func readCaseFile(path string, needTarget bool) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open cases %s", path)
	}
	defer f.Close()

	cases, err := ParseCases(f, needTarget)
	if err != nil {
		return nil, errors.Wrapf(err, "parse cases %s", path)
	}
	return cases, nil
}

// ParseCases decodes the line format described on TextFile.
func ParseCases(r io.Reader, needTarget bool) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c := Case{Name: "case" + strconv.Itoa(len(cases))}
		if name, rest, ok := strings.Cut(line, ":"); ok {
			c.Name = strings.TrimSpace(name)
			line = rest
		}
		inputPart, targetPart, hasTarget := strings.Cut(line, "|")
		var err error
		if c.Input, err = parseVector(inputPart); err != nil {
			return nil, errors.Wrapf(err, "line %d: input", lineNo)
		}
		if len(c.Input) == 0 {
			return nil, errors.Wrapf(network.ErrFormat, "line %d: no input values", lineNo)
		}
		if hasTarget {
			if c.Target, err = parseVector(targetPart); err != nil {
				return nil, errors.Wrapf(err, "line %d: target", lineNo)
			}
		}
		if needTarget && len(c.Target) == 0 {
			return nil, errors.Wrapf(network.ErrFormat, "line %d: training case has no target", lineNo)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

func parseVector(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(network.ErrFormat, "%q is not a number", field)
		}
		out = append(out, v)
	}
	return out, nil
}
