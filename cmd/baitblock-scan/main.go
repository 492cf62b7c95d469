package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/core"
	"github.com/baitblock/baitblock/internal/di"
	"github.com/baitblock/baitblock/internal/ports"
	"github.com/baitblock/baitblock/internal/scan"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	mailExtractor ports.Extractor,
	scanner *scan.Service,
	classifier ports.Classifier,
) error {
	defer logger.Sync()

	var reader io.Reader = os.Stdin
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		reader = file
		logger.Info("Reading mail from file", zap.String("file", flags.InputFile))
	} else {
		logger.Info("Reading mail from stdin")
	}

	msg, err := mailExtractor.Extract(reader)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("From: %s\n", msg.Headers.From)
	fmt.Printf("Subject: %s\n", msg.Headers.Subject)
	fmt.Printf("Body length: %d bytes\n", len(msg.Text)+len(msg.HTML))
	fmt.Printf("\n=== Analysis ===\n")
	fmt.Printf("Provider: %s\n", flags.Provider)

	startTime := time.Now()
	result := scanner.Scan(context.Background(), msg, flags.UserID)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Label: %s\n", result.Label)
	fmt.Printf("Raw score: %.1f\n", result.RawScore)
	fmt.Printf("Personalized score: %.1f\n", result.PersonalizedScore)
	fmt.Printf("Risk: %s\n", core.RiskLabel(result.PersonalizedScore))
	for _, reason := range result.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
	for _, link := range result.Links {
		if link.Suspicious {
			fmt.Printf("Suspicious link: %s\n", link.URL)
		}
	}
	if result.Error != "" {
		fmt.Printf("Error: %s\n", result.Error)
	}
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
	return nil
}
