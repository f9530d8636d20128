package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ptbdnr/vrp/core/logger"
	"github.com/ptbdnr/vrp/core/model"
)

// ErrBadRecord reports a CSV row that cannot be turned into a node.
var ErrBadRecord = errors.New("bad node record")

// LoadFile reads a node instance from a CSV file.
func LoadFile(path string, log logger.Logger) ([]model.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, log)
}

// Load reads nodes from CSV data with an id,x,y header. Rows that do not
// parse, carry negative or duplicate ids, or hold non-finite coordinates are
// skipped with a warning; only malformed headers and reader failures abort
// the load.
func Load(r io.Reader, log logger.Logger) ([]model.Node, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 3 || normalize(header[0]) != "id" || normalize(header[1]) != "x" || normalize(header[2]) != "y" {
		return nil, fmt.Errorf("%w: expected id,x,y header, got %v", ErrBadRecord, header)
	}
	var nodes []model.Node
	seen := make(map[int]bool)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		node, err := parseRecord(rec)
		if err != nil {
			log.Warnf("dataset line %d skipped: %v", line, err)
			continue
		}
		if seen[node.ID] {
			log.Warnf("dataset line %d skipped: %v: duplicate id %d", line, ErrBadRecord, node.ID)
			continue
		}
		seen[node.ID] = true
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func parseRecord(rec []string) (model.Node, error) {
	if len(rec) < 3 {
		return model.Node{}, fmt.Errorf("%w: %d fields", ErrBadRecord, len(rec))
	}
	id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return model.Node{}, fmt.Errorf("%w: id %q", ErrBadRecord, rec[0])
	}
	if id < 0 {
		return model.Node{}, fmt.Errorf("%w: negative id %d", ErrBadRecord, id)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return model.Node{}, fmt.Errorf("%w: x %q", ErrBadRecord, rec[1])
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return model.Node{}, fmt.Errorf("%w: y %q", ErrBadRecord, rec[2])
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return model.Node{}, fmt.Errorf("%w: non-finite coordinates (%v, %v)", ErrBadRecord, x, y)
	}
	return model.Node{ID: id, X: x, Y: y}, nil
}

func normalize(field string) string {
	return strings.ToLower(strings.TrimSpace(field))
}
