package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	srarq "github.com/arqsim/srarq-go"
)

func main() {
	configPath := flag.String("config", "", "YAML simulation config")
	messages := flag.Int("messages", 0, "number of generated messages (overrides config)")
	loss := flag.Float64("loss", -1, "packet loss probability (overrides config)")
	corrupt := flag.Float64("corrupt", -1, "packet corruption probability (overrides config)")
	interarrival := flag.Float64("interarrival", 0, "mean virtual seconds between messages (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config)")
	traceLevel := flag.Int("trace", -1, "trace level 0..3 (overrides config)")
	input := flag.String("input", "", "stream this file through the link instead of generated messages")
	output := flag.String("output", "", "write the reassembled stream to this file")
	flag.Parse()

	cfg := srarq.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = srarq.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *messages > 0 {
		cfg.Messages = *messages
	}
	if *loss >= 0 {
		cfg.Loss = *loss
	}
	if *corrupt >= 0 {
		cfg.Corrupt = *corrupt
	}
	if *interarrival > 0 {
		cfg.Interarrival = *interarrival
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *traceLevel >= 0 {
		cfg.Trace = *traceLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *input != "" {
		runStream(cfg, *input, *output)
		return
	}
	runGenerated(cfg)
}

func runGenerated(cfg srarq.Config) {
	sim := srarq.NewSimulator(cfg, srarq.NewGeneratorSource(cfg.Messages), nil)
	printReport(sim.Run())
}

func runStream(cfg srarq.Config, inputPath, outputPath string) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatal(err)
	}
	source := srarq.NewStreamSource(data)
	sink := srarq.NewStreamSink(len(data))
	sim := srarq.NewSimulator(cfg, source, sink)
	report := sim.Run()
	out := sink.Bytes(len(data))
	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0644); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("streamed %d of %d bytes\n", len(out), len(data))
	printReport(report)
}

func printReport(report srarq.Report) {
	fmt.Println("---------------------------------------------")
	fmt.Printf("virtual time elapsed:   %v\n", report.Clock)
	fmt.Printf("messages submitted:     %d (accepted %d)\n", report.Submitted, report.Accepted)
	fmt.Printf("packets on the wire:    %d (lost %d, corrupted %d)\n", report.Transmitted, report.Lost, report.Corrupted)
	fmt.Printf("A sent %d, resent %d, window full %d\n", report.Sender.Sent, report.Sender.Resent, report.Sender.WindowFull)
	fmt.Printf("A acks: %d received, %d new, %d duplicate, %d corrupted, %d stale\n",
		report.Sender.AcksReceived, report.Sender.NewAcks, report.Sender.DuplicateAcks,
		report.Sender.CorruptedAcks, report.Sender.StaleAcks)
	fmt.Printf("B received %d, delivered %d, duplicates %d, corrupted %d\n",
		report.Receiver.Received, report.Receiver.Delivered,
		report.Receiver.DuplicateData, report.Receiver.Corrupted)
}
