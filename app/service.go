package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ptbdnr/vrp/config"
	"github.com/ptbdnr/vrp/core/bounds"
	"github.com/ptbdnr/vrp/core/construct"
	"github.com/ptbdnr/vrp/core/eval"
	"github.com/ptbdnr/vrp/core/factory"
	coremetrics "github.com/ptbdnr/vrp/core/metrics"
	"github.com/ptbdnr/vrp/core/model"
	"github.com/ptbdnr/vrp/core/network"
	"github.com/ptbdnr/vrp/core/search"
	"github.com/ptbdnr/vrp/infra/dataset"
	"github.com/ptbdnr/vrp/infra/logger"
	"github.com/ptbdnr/vrp/infra/metrics"
	"github.com/ptbdnr/vrp/infra/mqtt"
	"github.com/ptbdnr/vrp/internal/eventbus"
	"github.com/ptbdnr/vrp/pkg/export"
)

// Service wires the full solver pipeline from one configuration: instance
// loading, travel rules, metrics sinks, the optional MQTT publisher and the
// improvement searches.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	store     *network.Store
	dist      *network.DistanceCache
	rules     *network.EdgeRules
	evaluator *eval.Evaluator
	sink      coremetrics.MetricsSink
	bus       eventbus.EventBus
	publisher *mqtt.PahoPublisher
	promAddr  string
}

// LoadNodes reads the node instance named by the configuration, either from
// the CSV dataset or by synthesizing one.
func LoadNodes(cfg *config.Config, log logger.Logger) ([]model.Node, error) {
	if cfg.Input.Dataset != "" {
		return dataset.LoadFile(cfg.Input.Dataset, log)
	}
	if cfg.Input.Generate != nil {
		return dataset.Generate(*cfg.Input.Generate), nil
	}
	return nil, fmt.Errorf("no input source configured")
}

// New wires a Service from the loaded configuration: dataset input, solver,
// sinks and the optional publisher.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.NewWithBackend(cfg.Logging.Backend, "service")

	nodes, err := LoadNodes(cfg, logger.NewWithBackend(cfg.Logging.Backend, "dataset"))
	if err != nil {
		return nil, fmt.Errorf("load instance: %w", err)
	}
	store, err := network.NewStore(nodes)
	if err != nil {
		return nil, fmt.Errorf("node store: %w", err)
	}
	dist := network.NewDistanceCache()
	rules := network.NewEdgeRules(store, dist, logger.NewWithBackend(cfg.Logging.Backend, "network"))
	rules.RespectEvenToOdd = !cfg.Constraints.DisableEvenToOdd
	rules.RespectOddToEven = !cfg.Constraints.DisableOddToEven
	evaluator := eval.NewEvaluator(store, dist, rules, logger.NewWithBackend(cfg.Logging.Backend, "eval"))

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	var publisher *mqtt.PahoPublisher
	if cfg.MQTT.Enabled {
		publisher, err = mqtt.NewPahoPublisher(cfg.MQTT.Client)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{
		cfg:       cfg,
		log:       logg,
		store:     store,
		dist:      dist,
		rules:     rules,
		evaluator: evaluator,
		sink:      sink,
		bus:       eventbus.New(),
		publisher: publisher,
		promAddr:  promAddr(cfg.Metrics.Sinks),
	}, nil
}

// Run executes the configured optimisation and returns once the result has
// been reported, or earlier when the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	collectorDone := metrics.StartEventCollector(ctx, s.bus, s.sink)

	calc := bounds.NewCalculator(s.store, s.dist, s.log)
	lower, upper := calc.Range()
	s.log.Infof("objective bounds for %d nodes: [%.4f, %.4f]", s.store.Len(), lower, upper)
	if rec, ok := s.sink.(coremetrics.BoundsRecorder); ok {
		if err := rec.RecordBounds(coremetrics.BoundsRecord{Lower: lower, Upper: upper, Nodes: s.store.Len(), Time: time.Now()}); err != nil {
			s.log.Warnf("record bounds: %v", err)
		}
	}

	solver := s.cfg.Solver
	searchLog := logger.NewWithBackend(s.cfg.Logging.Backend, "search")
	ops, err := search.BuildOperations(solver.Operations, s.evaluator, searchLog, solver.Seed)
	if err != nil {
		return err
	}

	history := search.NewHistoryRecorder()
	cb := search.MultiCallback{history, search.LogCallback{Log: searchLog}}
	if s.publisher != nil {
		cb = append(cb, mqtt.NewSearchCallback(s.publisher, s.evaluator, s.log))
	}

	ls, err := search.NewLocalSearch(s.evaluator, ops, s.termination(ctx), cb, s.bus, searchLog)
	if err != nil {
		return err
	}
	ls.SetOnlyValid(!solver.AcceptInvalid)
	if err := s.addSeeds(ls.AddSeedRoute); err != nil {
		return err
	}

	best := ls.Optimise()
	bestValue, err := s.evaluator.Objective(best)
	if err != nil {
		return fmt.Errorf("optimisation yielded no evaluable route: %w", err)
	}

	if solver.ThreeSegmentAttempts > 0 {
		best, bestValue = s.polish(best, bestValue, searchLog)
	}
	if solver.Annealing.Enabled {
		best, bestValue = s.anneal(ctx, ops, best, bestValue, searchLog)
	}

	report := export.FormatReport(best, s.evaluator)
	fmt.Println(report)

	if s.publisher != nil {
		if err := s.publisher.PublishResult(best, bestValue); err != nil {
			s.log.Warnf("result publish failed: %v", err)
		}
	}
	if s.cfg.Output.Dir != "" {
		if err := s.writeArtifacts(best, bestValue, report, history); err != nil {
			return err
		}
	}

	// Let the collector flush pending events before the process exits.
	s.bus.Close()
	select {
	case <-collectorDone:
	case <-time.After(2 * time.Second):
		s.log.Warnf("metrics collector did not drain in time")
	}
	return nil
}

// Close disconnects the publisher if one was configured.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	return nil
}

// termination composes the configured stop conditions. Context cancellation
// always participates.
func (s *Service) termination(ctx context.Context) search.Termination {
	solver := s.cfg.Solver
	term := search.Any{
		search.FixedIterations(solver.MaxIterations),
		search.ContextDone{Ctx: ctx},
	}
	if solver.StallWindow > 0 {
		term = append(term, &search.Stalled{Window: solver.StallWindow})
	}
	if solver.TimeLimitSeconds > 0 {
		term = append(term, search.Deadline(time.Now().Add(time.Duration(solver.TimeLimitSeconds)*time.Second)))
	}
	return term
}

// addSeeds builds one seed route per configured constructive heuristic.
func (s *Service) addSeeds(add func(model.Route)) error {
	log := logger.NewWithBackend(s.cfg.Logging.Backend, "construct")
	for _, name := range s.cfg.Solver.Seeds {
		builder, err := construct.New(name, s.store, s.rules, log)
		if err != nil {
			return err
		}
		add(builder.Build())
	}
	return nil
}

// polish spends the configured random three-segment budget on the search
// result, restarting the budget after every hit.
func (s *Service) polish(best model.Route, bestValue float64, log logger.Logger) (model.Route, float64) {
	solver := s.cfg.Solver
	ts := search.NewThreeSegment(s.evaluator, log, solver.Seed)
	for {
		next := ts.ApplyRandomImprovement(best, solver.ThreeSegmentAttempts, !solver.AcceptInvalid)
		value, err := s.evaluator.Objective(next)
		if err != nil || value >= bestValue {
			return best, bestValue
		}
		s.log.Infof("random polish lowered objective %.4f -> %.4f", bestValue, value)
		best, bestValue = next, value
	}
}

// anneal runs the simulated annealing comparison and keeps its result when it
// beats the local search.
func (s *Service) anneal(ctx context.Context, ops []search.Operation, best model.Route, bestValue float64, log logger.Logger) (model.Route, float64) {
	solver := s.cfg.Solver
	sa, err := search.NewSimulatedAnnealing(s.evaluator, ops, s.termination(ctx), search.LogCallback{Log: log}, log, solver.Seed)
	if err != nil {
		s.log.Errorf("annealing setup: %v", err)
		return best, bestValue
	}
	if solver.Annealing.InitialTemp > 0 {
		sa.InitialTemp = solver.Annealing.InitialTemp
	}
	if solver.Annealing.Cooling > 0 {
		sa.Cooling = solver.Annealing.Cooling
	}
	sa.SetOnlyValid(!solver.AcceptInvalid)
	if err := s.addSeeds(sa.AddSeedRoute); err != nil {
		s.log.Errorf("annealing seeds: %v", err)
		return best, bestValue
	}

	annealed := sa.Optimise()
	value, err := s.evaluator.Objective(annealed)
	if err != nil {
		s.log.Warnf("annealing result not evaluable: %v", err)
		return best, bestValue
	}
	if value < bestValue {
		s.log.Infof("annealing beat local search: %.4f < %.4f", value, bestValue)
		return annealed, value
	}
	s.log.Infof("local search result kept: %.4f <= %.4f", bestValue, value)
	return best, bestValue
}

// writeArtifacts drops route.csv, route.json, history.json and report.txt in
// the output directory.
func (s *Service) writeArtifacts(best model.Route, bestValue float64, report string, history *search.HistoryRecorder) error {
	dir := s.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, "route.csv"), func(f *os.File) error {
		return export.WriteRouteCSV(f, best)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "route.json"), func(f *os.File) error {
		return export.WriteRouteJSON(f, best, bestValue)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "history.json"), func(f *os.File) error {
		return export.WriteHistoryJSON(f, history.Records())
	}); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "report.txt"), []byte(report+"\n"), 0o644); err != nil {
		return err
	}
	s.log.Infof("run artifacts written to %s", dir)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// promAddr extracts the listen address of the prometheus sink, if one is
// configured.
func promAddr(sinks []factory.ModuleConfig) string {
	for _, s := range sinks {
		if s.Type != "prometheus" {
			continue
		}
		port, _ := s.Conf["prometheus_port"].(string)
		if port == "" {
			return ""
		}
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		return port
	}
	return ""
}
