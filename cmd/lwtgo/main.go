package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"lwtgo/internal/job"
	"lwtgo/internal/metrics"
	"lwtgo/pkg/lwt"
)

func main() {
	app := &cli.App{
		Name:  "lwtgo",
		Usage: "demos for the lwtgo cooperative task runtime",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 2, Usage: "number of OS worker threads"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a scheduler YAML config"},
		},
		Commands: []*cli.Command{
			roundRobinCommand(),
			joinCommand(),
			sleepCommand(),
			counterCommand(),
			metricsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newScheduler(c *cli.Context) (*lwt.Scheduler, error) {
	cfg := lwt.LoadConfig(c.String("config"))
	if n := c.Int("workers"); n > 0 {
		cfg.NumWorkers = n
	}
	return lwt.NewSchedulerWithConfig(cfg)
}

// roundRobinCommand mirrors spec.md §8 scenario 2: three tasks that each
// loop 3x "append id; yield".
func roundRobinCommand() *cli.Command {
	return &cli.Command{
		Name:  "roundrobin",
		Usage: "spawn 3 tasks that yield to each other 3 times and print the dispatch order",
		Action: func(c *cli.Context) error {
			s, err := newScheduler(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create scheduler: %v", err), 1)
			}
			s.Start()
			defer s.Destroy()

			var mu sync.Mutex
			var log []int
			var wg sync.WaitGroup

			for id := 1; id <= 3; id++ {
				id := id
				wg.Add(1)
				target, err := s.Spawn(func(ctx context.Context) {
					defer wg.Done()
					job.CounterWork(id, 3, 0, &mu, &log)(ctx)
				}, 0)
				if err != nil {
					return cli.Exit(fmt.Sprintf("spawn failed: %v", err), 1)
				}
				_ = target
			}

			wg.Wait()
			fmt.Println("dispatch order:", log)
			return nil
		},
	}
}

// joinCommand mirrors spec.md §8 scenario 1: "Hello join".
func joinCommand() *cli.Command {
	return &cli.Command{
		Name:  "join",
		Usage: "spawn A, then B that joins A, and print the resulting order",
		Action: func(c *cli.Context) error {
			s, err := newScheduler(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create scheduler: %v", err), 1)
			}
			s.Start()
			defer s.Destroy()

			var mu sync.Mutex
			var log []int
			var wg sync.WaitGroup

			wg.Add(1)
			a, err := s.Spawn(func(ctx context.Context) {
				defer wg.Done()
				job.AppendWork(1, &mu, &log)(ctx)
			}, 0)
			if err != nil {
				return cli.Exit(fmt.Sprintf("spawn failed: %v", err), 1)
			}

			wg.Add(1)
			if _, err := s.Spawn(func(ctx context.Context) {
				defer wg.Done()
				job.JoinWork(2, a, &mu, &log)(ctx)
			}, 0); err != nil {
				return cli.Exit(fmt.Sprintf("spawn failed: %v", err), 1)
			}

			wg.Wait()
			fmt.Println("log:", log)
			return nil
		},
	}
}

// sleepCommand mirrors spec.md §8 scenario 4: sleep wakes up.
func sleepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sleep",
		Usage: "spawn a task that sleeps, then report how long it actually took",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Value: 50 * time.Millisecond},
		},
		Action: func(c *cli.Context) error {
			s, err := newScheduler(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create scheduler: %v", err), 1)
			}
			s.Start()
			defer s.Destroy()

			d := c.Duration("duration")
			start := time.Now()
			done := make(chan struct{})
			if _, err := s.Spawn(func(ctx context.Context) {
				job.SleepWork(d)(ctx)
				close(done)
			}, 0); err != nil {
				return cli.Exit(fmt.Sprintf("spawn failed: %v", err), 1)
			}

			<-done
			fmt.Printf("slept for %s (requested %s)\n", time.Since(start), d)
			return nil
		},
	}
}

// counterCommand mirrors spec.md §8 scenario 3: multi-worker parallelism
// with externally-locked increments.
func counterCommand() *cli.Command {
	return &cli.Command{
		Name:  "counter",
		Usage: "spawn N tasks each incrementing a shared counter M times",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "tasks", Value: 100},
			&cli.IntFlag{Name: "increments", Value: 100},
		},
		Action: func(c *cli.Context) error {
			s, err := newScheduler(c)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create scheduler: %v", err), 1)
			}
			s.Start()
			defer s.Destroy()

			var mu sync.Mutex
			var counter int
			var wg sync.WaitGroup

			numTasks := c.Int("tasks")
			increments := c.Int("increments")
			for i := 0; i < numTasks; i++ {
				wg.Add(1)
				if _, err := s.Spawn(func(ctx context.Context) {
					defer wg.Done()
					job.IncrementWork(increments, &mu, &counter)(ctx)
				}, 0); err != nil {
					return cli.Exit(fmt.Sprintf("spawn failed: %v", err), 1)
				}
			}

			wg.Wait()
			fmt.Printf("final counter: %d (expected %d)\n", counter, numTasks*increments)
			return nil
		},
	}
}

// metricsCommand runs the counter demo while exposing a Prometheus
// /metrics endpoint, grounded on
// Swind-go-task-runner/examples/prometheus_metrics/main.go.
func metricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "run the counter demo with a Prometheus /metrics endpoint on :2112",
		Action: func(c *cli.Context) error {
			reg := prometheus.NewRegistry()
			exporter, err := metrics.NewPrometheus("lwtgo", reg, metrics.PrometheusOptions{})
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create exporter: %v", err), 1)
			}

			cfg := lwt.LoadConfig(c.String("config"))
			cfg.NumWorkers = c.Int("workers")
			cfg.Metrics = exporter
			s, err := lwt.NewSchedulerWithConfig(cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("failed to create scheduler: %v", err), 1)
			}
			s.Start()
			defer s.Destroy()

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			server := &http.Server{Addr: ":2112", Handler: mux}
			go func() {
				_ = server.ListenAndServe()
			}()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = server.Shutdown(ctx)
			}()

			var mu sync.Mutex
			var counter int
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				if _, err := s.Spawn(func(ctx context.Context) {
					defer wg.Done()
					job.IncrementWork(20, &mu, &counter)(ctx)
				}, 0); err != nil {
					return cli.Exit(fmt.Sprintf("spawn failed: %v", err), 1)
				}
			}
			wg.Wait()

			fmt.Println("Prometheus endpoint is up at http://127.0.0.1:2112/metrics")
			fmt.Println("Try: curl -s http://127.0.0.1:2112/metrics | grep '^lwtgo_'")
			time.Sleep(2 * time.Second)
			return nil
		},
	}
}
