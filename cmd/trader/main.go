// Command trader trains the three-class trading classifier (BUY, SELL, IGNORE)
// on market indicators and can serve its decisions over HTTP.
//
// Usage:
//
//	go run ./cmd/trader [-serve] [-addr 0.0.0.0:8000] [-notify-url URL] [-data train.csv]
//
// With -serve, POST {"rsi": 25, "ma_gap": 0.01, "trend": 1} to the address to
// get {"decision": "BUY"}.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/FlavioCFOliveira/feedforward/internal/config"
	"github.com/FlavioCFOliveira/feedforward/internal/net"
	"github.com/FlavioCFOliveira/feedforward/internal/server"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:], config.TraderDefaults())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	examples := net.TradingExamples()
	if cfg.Data != "" {
		examples, err = net.LoadCSV(cfg.Data, cfg.LabelColumn, net.NumTradingClasses, true)
		if err != nil {
			log.Fatalf("load %s: %v", cfg.Data, err)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	network, err := net.New(net.ClassifierConfig(len(examples[0].Input), net.NumTradingClasses, cfg.LearningRate, cfg.Hidden...), rng)
	if err != nil {
		log.Fatalf("network: %v", err)
	}

	callbacks := []net.Callback{&net.Logger{Interval: cfg.LogInterval}}
	if cfg.LossCSV != "" {
		callbacks = append(callbacks, net.NewCSVLogger(cfg.LossCSV, false, max(cfg.LogInterval, 1)))
	}
	if err := net.NewTrainer(network, rng, callbacks...).Train(examples, cfg.Epochs); err != nil {
		log.Fatalf("train: %v", err)
	}

	for _, ex := range examples {
		pred, err := network.Classify(ex.Input)
		if err != nil {
			log.Fatalf("classify: %v", err)
		}
		fmt.Printf("Input: %v => Predicted: %d Target: %d\n", ex.Input, pred, floats.MaxIdx(ex.Target))
	}
	fmt.Println()
	network.Summary(os.Stdout)
	if err := network.WriteParams(os.Stdout); err != nil {
		log.Fatalf("report: %v", err)
	}

	if !cfg.Server.Enabled {
		return
	}
	if len(examples[0].Input) != 3 {
		log.Fatalf("serve: the endpoint sends 3 features, the network expects %d", len(examples[0].Input))
	}

	var notifier server.Notifier = server.NopNotifier{}
	if cfg.Server.NotifyURL != "" {
		notifier = server.NewHTTPNotifier(cfg.Server.NotifyURL, cfg.Server.NotifyTimeout)
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(network, server.WithNotifier(notifier)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Serving on %s\n", cfg.Server.Addr)
	if cfg.Server.NotifyURL != "" {
		fmt.Printf("Notifications to %s\n", cfg.Server.NotifyURL)
	}
	log.Fatal(srv.ListenAndServe())
}
