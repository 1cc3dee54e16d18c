// Command xor trains a small sigmoid network on the XOR truth table and prints
// what it learned.
//
// Usage:
//
//	go run ./cmd/xor [-seed 1] [-epochs 20000] [-lr 0.5] [-hidden 4] [-config run.yaml]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/exp/rand"

	"github.com/FlavioCFOliveira/feedforward/internal/config"
	"github.com/FlavioCFOliveira/feedforward/internal/net"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:], config.XORDefaults())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fmt.Println("=== XOR Training ===")

	rng := rand.New(rand.NewSource(cfg.Seed))
	network, err := net.New(net.XORConfig(cfg.LearningRate, cfg.Hidden...), rng)
	if err != nil {
		log.Fatalf("network: %v", err)
	}
	network.Summary(os.Stdout)

	callbacks := []net.Callback{&net.Logger{Interval: cfg.LogInterval}}
	if cfg.LossCSV != "" {
		callbacks = append(callbacks, net.NewCSVLogger(cfg.LossCSV, false, max(cfg.LogInterval, 1)))
	}

	examples := net.XORExamples()
	if err := net.NewTrainer(network, rng, callbacks...).Train(examples, cfg.Epochs); err != nil {
		log.Fatalf("train: %v", err)
	}

	fmt.Println("\nTesting trained network:")
	for _, ex := range examples {
		p, err := network.Predict(ex.Input)
		if err != nil {
			log.Fatalf("predict: %v", err)
		}
		fmt.Printf("Input: %v => Output: %.4f Predicted: %d Target: %v\n",
			ex.Input, p.Output[0], p.Bits[0], ex.Target[0])
	}

	fmt.Println("\nTrained parameters:")
	if err := network.WriteParams(os.Stdout); err != nil {
		log.Fatalf("report: %v", err)
	}
}
