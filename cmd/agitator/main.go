// Package main - agitator
// Load generator for the countdown server. Every simulated player connects
// over WebSocket, starts countdowns, wanders off, cancels and respawns.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/urfave/cli"

	"github.com/pearlworks/countdown/internal/domain/player"
	"github.com/pearlworks/countdown/internal/network"
)

// Config for the agitator
type Config struct {
	ServerURL      string
	NumClients     int
	ActionInterval time.Duration
	TestDuration   time.Duration
	Output         string
}

// Stats tracks performance metrics
type Stats struct {
	MessagesSent     int64
	MessagesReceived int64
	Errors           int64
	Latencies        []time.Duration
	mu               sync.Mutex
}

var (
	cfg Config

	flags = []cli.Flag{
		cli.StringFlag{
			Name:        "url, u",
			Usage:       "WebSocket endpoint of the server",
			Value:       "ws://localhost:8080/ws",
			Destination: &cfg.ServerURL,
		},
		cli.IntFlag{
			Name:        "clients, c",
			Usage:       "number of concurrent players",
			Value:       50,
			Destination: &cfg.NumClients,
		},
		cli.DurationFlag{
			Name:        "interval, i",
			Usage:       "action interval per player",
			Value:       250 * time.Millisecond,
			Destination: &cfg.ActionInterval,
		},
		cli.DurationFlag{
			Name:        "duration, d",
			Usage:       "test duration",
			Value:       60 * time.Second,
			Destination: &cfg.TestDuration,
		},
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "file the JSON results are written to",
			Value:       "stress_test_results.json",
			Destination: &cfg.Output,
		},
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "agitator"
	app.Usage = "stress the countdown server with simulated players"
	app.Flags = flags
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(*cli.Context) error {
	if cfg.NumClients <= 0 {
		return cli.NewExitError("clients must be positive", 2)
	}

	fmt.Println("=========================================")
	fmt.Println("AGITATOR - Countdown Stress Test")
	fmt.Println("=========================================")
	fmt.Printf("Server: %s\n", cfg.ServerURL)
	fmt.Printf("Clients: %d\n", cfg.NumClients)
	fmt.Printf("Interval: %v\n", cfg.ActionInterval)
	fmt.Printf("Duration: %v\n", cfg.TestDuration)
	fmt.Println("=========================================")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.TestDuration)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	stats := runStressTest(ctx, cfg)
	return printResults(stats, cfg)
}

func runStressTest(ctx context.Context, config Config) *Stats {
	stats := &Stats{
		Latencies: make([]time.Duration, 0, 10000),
	}

	var wg sync.WaitGroup

	fmt.Println("\nStarting clients...")

	for i := 0; i < config.NumClients; i++ {
		wg.Add(1)
		go func(clientID int) {
			defer wg.Done()
			runClient(ctx, clientID, config, stats)
		}(i)

		// Stagger client starts to avoid thundering herd
		time.Sleep(10 * time.Millisecond)
	}

	fmt.Printf("All %d clients started\n\n", config.NumClients)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sent := atomic.LoadInt64(&stats.MessagesSent)
				recv := atomic.LoadInt64(&stats.MessagesReceived)
				errs := atomic.LoadInt64(&stats.Errors)
				fmt.Printf("Progress: Sent=%d Recv=%d Errors=%d\n", sent, recv, errs)
			}
		}
	}()

	wg.Wait()
	return stats
}

func runClient(ctx context.Context, clientID int, config Config, stats *Stats) {
	u, err := url.Parse(config.ServerURL)
	if err != nil {
		log.Printf("Client %d: URL parse error: %v", clientID, err)
		atomic.AddInt64(&stats.Errors, 1)
		return
	}

	q := u.Query()
	q.Set("player", uuid.NewString())
	q.Set("name", fmt.Sprintf("agitator_%03d", clientID))
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		log.Printf("Client %d: Connection failed: %v", clientID, err)
		atomic.AddInt64(&stats.Errors, 1)
		return
	}
	defer conn.Close()

	go func() {
		for {
			var msg network.ServerMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			atomic.AddInt64(&stats.MessagesReceived, 1)
			if msg.Type == network.MessageError {
				atomic.AddInt64(&stats.Errors, 1)
			}
		}
	}()

	w := &wanderer{pos: player.Position{World: "world", Y: 64}}
	ticker := time.NewTicker(config.ActionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case <-ticker.C:
			action, err := w.next()
			if err != nil {
				atomic.AddInt64(&stats.Errors, 1)
				continue
			}
			start := time.Now()

			if err := conn.WriteJSON(action); err != nil {
				atomic.AddInt64(&stats.Errors, 1)
				return
			}

			latency := time.Since(start)
			atomic.AddInt64(&stats.MessagesSent, 1)

			stats.mu.Lock()
			stats.Latencies = append(stats.Latencies, latency)
			stats.mu.Unlock()
		}
	}
}

// wanderer picks the next action for one simulated player. It mostly
// shuffles around, sometimes far enough to walk out of a countdown.
type wanderer struct {
	pos player.Position
}

func (w *wanderer) next() (network.PlayerAction, error) {
	switch r := rand.Intn(20); {
	case r < 3:
		return network.PlayerAction{Type: network.ActionSuicide}, nil
	case r < 4:
		return network.PlayerAction{Type: network.ActionCancel}, nil
	case r < 5:
		return network.PlayerAction{Type: network.ActionRespawn}, nil
	default:
		step := 1.0
		if r == 19 {
			step = 4
		}
		w.pos.X += (rand.Float64()*2 - 1) * step
		w.pos.Z += (rand.Float64()*2 - 1) * step
		payload, err := json.Marshal(w.pos)
		if err != nil {
			return network.PlayerAction{}, err
		}
		return network.PlayerAction{Type: network.ActionMove, Payload: payload}, nil
	}
}

func printResults(stats *Stats, config Config) error {
	fmt.Println("\n=========================================")
	fmt.Println("STRESS TEST RESULTS")
	fmt.Println("=========================================")

	sent := atomic.LoadInt64(&stats.MessagesSent)
	recv := atomic.LoadInt64(&stats.MessagesReceived)
	errs := atomic.LoadInt64(&stats.Errors)

	fmt.Printf("Messages Sent:     %d\n", sent)
	fmt.Printf("Messages Received: %d\n", recv)
	fmt.Printf("Errors:            %d\n", errs)
	fmt.Printf("Error Rate:        %.2f%%\n", float64(errs)/float64(sent+1)*100)

	throughput := float64(sent) / config.TestDuration.Seconds()
	fmt.Printf("Throughput:        %.2f msg/sec\n", throughput)

	stats.mu.Lock()
	latencies := stats.Latencies
	stats.mu.Unlock()
	if len(latencies) > 0 {
		var total time.Duration
		minL, maxL := latencies[0], latencies[0]
		for _, l := range latencies {
			total += l
			minL = min(minL, l)
			maxL = max(maxL, l)
		}

		fmt.Printf("\nLatency:\n")
		fmt.Printf("  Min: %v\n", minL)
		fmt.Printf("  Avg: %v\n", total/time.Duration(len(latencies)))
		fmt.Printf("  Max: %v\n", maxL)
	}

	// Cooldown rejections come back as ERROR replies, so a few are expected.
	fmt.Println("\n-----------------------------------------")
	switch rate := float64(errs) / float64(sent+1); {
	case rate < 0.05:
		fmt.Println("TEST PASSED: System handled the load")
	case rate < 0.25:
		fmt.Println("TEST WARNING: Elevated error rate")
	default:
		fmt.Println("TEST FAILED: High error rate")
	}
	fmt.Println("=========================================")

	results := map[string]any{
		"messages_sent":      sent,
		"messages_received":  recv,
		"errors":             errs,
		"throughput_per_sec": throughput,
		"config": map[string]any{
			"clients":  config.NumClients,
			"interval": config.ActionInterval.String(),
			"duration": config.TestDuration.String(),
		},
	}

	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(config.Output, jsonData, 0o644); err != nil {
		return err
	}
	fmt.Printf("\nResults saved to %s\n", config.Output)
	return nil
}
