// Package observe provides router observers for metrics, tracing and logging.
//
// Each observer implements router.Observer and is attached with
// router.WithObserver:
//
//	metrics := observe.NewMetrics(observe.WithNamespace("myapp"))
//	r := router.New(router.WithObserver(
//	    metrics,
//	    observe.NewTracing(),
//	    observe.Log(logger),
//	))
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package observe
