package dataset

import (
	"encoding/csv"
	"io"
	"math/rand"
	"strconv"

	"github.com/ptbdnr/vrp/core/model"
)

// GenerateConfig controls synthetic instance generation.
type GenerateConfig struct {
	Intermediates int     `json:"intermediates"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Seed          int64   `json:"seed"`
}

// Generate produces a dense-id instance: the origin sits at (0,0), the
// destination at (Width,Height) and the intermediates at uniformly random
// points in between. The same seed always yields the same instance.
func Generate(cfg GenerateConfig) []model.Node {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 100
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	nodes := make([]model.Node, 0, cfg.Intermediates+2)
	nodes = append(nodes, model.Node{ID: model.OriginID})
	for i := 1; i <= cfg.Intermediates; i++ {
		nodes = append(nodes, model.Node{ID: i, X: rng.Float64() * w, Y: rng.Float64() * h})
	}
	nodes = append(nodes, model.Node{ID: cfg.Intermediates + 1, X: w, Y: h})
	return nodes
}

// WriteCSV writes nodes to w in the id,x,y layout Load understands.
func WriteCSV(w io.Writer, nodes []model.Node) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "x", "y"}); err != nil {
		return err
	}
	for _, n := range nodes {
		rec := []string{
			strconv.Itoa(n.ID),
			strconv.FormatFloat(n.X, 'f', -1, 64),
			strconv.FormatFloat(n.Y, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
