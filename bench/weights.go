package bench

import (
	"bufio"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/achilleasa/glperf/asset"
	"github.com/pkg/errors"
)

// WeightTable maps scene names to weight overrides.
type WeightTable map[string]int

// Lookup returns the weight for name and whether an override exists.
func (wt WeightTable) Lookup(name string) (int, bool) {
	w, ok := wt[name]
	return w, ok
}

// ParseWeights reads a weight table. Each non-empty line not starting with '#'
// holds a scene name followed by an integer weight. Malformed lines are
// skipped; when a name appears more than once the first entry wins.
func ParseWeights(r io.Reader) (WeightTable, error) {
	table := make(WeightTable)
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			logger.Warningf("weights: line %d: expected '<name> <weight>'; got %q", lineNum, line)
			continue
		}

		weight, err := strconv.Atoi(fields[1])
		if err != nil {
			logger.Warningf("weights: line %d: invalid weight %q for %s", lineNum, fields[1], fields[0])
			continue
		}

		if _, exists := table[fields[0]]; !exists {
			table[fields[0]] = weight
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "weights: read failed")
	}
	return table, nil
}

// LoadWeights loads a weight table from a local path or http/https URL. A
// missing local file yields an empty table.
func LoadWeights(path string) (WeightTable, error) {
	if path == "" {
		return WeightTable{}, nil
	}

	res, err := asset.NewResource(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Infof("weight file %s not found; using default weights", path)
			return WeightTable{}, nil
		}
		return nil, errors.Wrapf(err, "weights: could not open %s", path)
	}
	defer res.Close()
	if res.IsRemote() {
		logger.Infof("fetching weights from %s", res.Path())
	}

	table, err := ParseWeights(res)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d weight override(s) from %s", len(table), res.Path())
	return table, nil
}
