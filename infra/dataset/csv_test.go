package dataset

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/ptbdnr/vrp/infra/logger"
)

type warnCountLogger struct {
	logger.NopLogger
	warns []string
}

func (l *warnCountLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func TestLoadValidInstance(t *testing.T) {
	data := "id,x,y\n0,0,0\n1,10,0\n2,20,5\n3,30,5\n"
	nodes, err := Load(strings.NewReader(data), logger.NopLogger{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(nodes))
	}
	if nodes[2].ID != 2 || nodes[2].X != 20 || nodes[2].Y != 5 {
		t.Fatalf("unexpected node: %+v", nodes[2])
	}
}

func TestLoadSkipsBadRecords(t *testing.T) {
	data := strings.Join([]string{
		"id,x,y",
		"0,0,0",
		"oops,1,2",
		"1,NaN,0",
		"2,10",
		"-3,1,1",
		"0,5,5",
		"2,20,0",
		"",
	}, "\n")
	log := &warnCountLogger{}
	nodes, err := Load(strings.NewReader(data), log)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d: %v", len(nodes), nodes)
	}
	if nodes[0].ID != 0 || nodes[1].ID != 2 {
		t.Fatalf("unexpected survivors: %v", nodes)
	}
	if len(log.warns) != 5 {
		t.Fatalf("expected 5 warnings, got %d: %v", len(log.warns), log.warns)
	}
	for _, w := range log.warns {
		if !strings.Contains(w, "skipped") {
			t.Fatalf("warning without skip marker: %s", w)
		}
	}
}

func TestLoadRejectsBadHeader(t *testing.T) {
	data := "node,lat,lon\n0,0,0\n"
	if _, err := Load(strings.NewReader(data), logger.NopLogger{}); err == nil {
		t.Fatalf("expected header error")
	}
}

func TestLoadAcceptsSpacedHeader(t *testing.T) {
	data := "ID, X, Y\n0,1.5,2.5\n"
	nodes, err := Load(strings.NewReader(data), logger.NopLogger{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(nodes) != 1 || nodes[0].X != 1.5 {
		t.Fatalf("unexpected nodes: %v", nodes)
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	cfg := GenerateConfig{Intermediates: 10, Width: 50, Height: 40, Seed: 7}
	nodes := Generate(cfg)
	if len(nodes) != 12 {
		t.Fatalf("expected 12 nodes, got %d", len(nodes))
	}
	if nodes[0].ID != 0 || nodes[0].X != 0 || nodes[0].Y != 0 {
		t.Fatalf("unexpected origin: %+v", nodes[0])
	}
	last := nodes[len(nodes)-1]
	if last.ID != 11 || last.X != 50 || last.Y != 40 {
		t.Fatalf("unexpected destination: %+v", last)
	}
	for _, n := range nodes[1:11] {
		if n.X < 0 || n.X > 50 || n.Y < 0 || n.Y > 40 {
			t.Fatalf("node %d outside box: %+v", n.ID, n)
		}
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, nodes); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(&buf, logger.NopLogger{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(nodes) {
		t.Fatalf("round trip lost nodes: %d vs %d", len(loaded), len(nodes))
	}
	for i := range nodes {
		if loaded[i] != nodes[i] {
			t.Fatalf("node %d mismatch: %+v vs %+v", i, loaded[i], nodes[i])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(GenerateConfig{Intermediates: 5, Seed: 42})
	b := Generate(GenerateConfig{Intermediates: 5, Seed: 42})
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different instances at %d", i)
		}
	}
	c := Generate(GenerateConfig{Intermediates: 5, Seed: 43})
	same := true
	for i := 1; i < len(a)-1; i++ {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical intermediates")
	}
	if math.IsNaN(c[1].X) {
		t.Fatalf("generator produced NaN")
	}
}
