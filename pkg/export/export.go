package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/search"
)

// FormatReport renders the three-line route summary: dash-joined node ids,
// total distance and the spread between the longest and shortest leg.
func FormatReport(route model.Route, evaluator *eval.Evaluator) string {
	total, edges := evaluator.TotalDistanceAndEdges(route)
	var delta float64
	if len(edges) > 0 {
		delta = floats.Max(edges) - floats.Min(edges)
	}
	return fmt.Sprintf("Route: %s\nTotal Distance: %.2f\nDelta Value :%.2f", route.String(), total, delta)
}

// RouteDocument is the JSON shape of an exported route.
type RouteDocument struct {
	Name     string  `json:"name"`
	Sequence []int   `json:"sequence"`
	Value    float64 `json:"value"`
}

// WriteRouteJSON writes the route and its objective value to w in JSON format.
func WriteRouteJSON(w io.Writer, route model.Route, value float64) error {
	enc := json.NewEncoder(w)
	return enc.Encode(RouteDocument{Name: route.Name, Sequence: route.IDs(), Value: value})
}

// WriteRouteCSV writes the visit order to w in CSV format.
func WriteRouteCSV(w io.Writer, route model.Route) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "id", "x", "y"}); err != nil {
		return err
	}
	for i, n := range route.Sequence {
		rec := []string{
			strconv.Itoa(i),
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

// WriteHistoryJSON writes the per-iteration search history to w in JSON format.
func WriteHistoryJSON(w io.Writer, records []search.IterationRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}
