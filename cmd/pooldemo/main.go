// Command pooldemo runs a worker pool under a synthetic workload and
// serves its Prometheus metrics over fasthttp.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/threadedio/threaded/pkg/config"
	obsprom "github.com/threadedio/threaded/pkg/observability/prometheus"
	"github.com/threadedio/threaded/pkg/pool"
)

func main() {
	configPath := flag.String("config", "", "path to YAML or JSON config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadWithEnv(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	p := pool.New(cfg.Capacity,
		pool.WithObserver(obsprom.NewPoolObserver(obsprom.GetMetrics())))
	log.Printf("Pool started with capacity %d", p.Capacity())

	server := newMetricsServer(p)
	go func() {
		log.Printf("Serving metrics on %s", cfg.MetricsAddr)
		if err := server.ListenAndServe(cfg.MetricsAddr); err != nil {
			// fasthttp returns non-nil on shutdown as well; log best-effort.
			log.Printf("metrics server stopped: %v", err)
		}
	}()

	stop := make(chan struct{})
	workloadDone := make(chan struct{})
	go func() {
		defer close(workloadDone)
		submitWorkload(p, cfg, stop)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")

	// The producer must stop before teardown: Execute on a closing pool
	// is a contract violation.
	close(stop)
	<-workloadDone

	if err := p.Close(); err != nil {
		log.Fatalf("Error closing pool: %v", err)
	}
	if err := server.Shutdown(); err != nil {
		log.Printf("Error shutting down metrics server: %v", err)
	}
	log.Printf("Done: %+v", p.Stats())
}

// submitWorkload feeds the pool short sleep jobs until stop closes.
func submitWorkload(p pool.Pool, cfg config.PoolConfig, stop <-chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d := time.Duration(10+rand.Intn(90)) * time.Millisecond
			p.Execute(pool.NewNamedJob("synthetic-sleep", pool.JobFunc(func() {
				time.Sleep(d)
			})))
			if depth := p.Stats().QueuedJobs; depth > cfg.QueueWarn {
				log.Printf("queue depth %d exceeds warn threshold %d", depth, cfg.QueueWarn)
			}
		}
	}
}

func newMetricsServer(p pool.Pool) *fasthttp.Server {
	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(obsprom.Handler())

	return &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			switch string(ctx.Path()) {
			case "/metrics":
				metricsHandler(ctx)
			case "/stats":
				ctx.SetContentType("application/json")
				if err := json.NewEncoder(ctx).Encode(p.Stats()); err != nil {
					ctx.Error("failed to encode stats", fasthttp.StatusInternalServerError)
				}
			case "/live":
				ctx.SetContentType("application/json")
				ctx.SetBodyString(`{"status":"up"}`)
			default:
				ctx.Error("not found", fasthttp.StatusNotFound)
			}
		},

		Name:                  "threaded-pooldemo",
		NoDefaultServerHeader: true,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		IdleTimeout:           30 * time.Second,
	}
}
