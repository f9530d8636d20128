// Package factory holds the generic named-constructor registry behind the
// configurable parts of the solver, such as the metrics sinks. A module is
// selected by its type string and configured from a raw settings map that
// the factory decodes into its own config struct:
//
//	reg := factory.NewRegistry[metrics.MetricsSink]()
//	reg.Register("prometheus", func(conf map[string]any) (metrics.MetricsSink, error) {
//	    var c promConfig
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newPromSink(c)
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "prometheus", Conf: raw})
//
// Implementations register themselves from init functions of their infra
// packages, keeping the core free of adapter imports.
package factory
