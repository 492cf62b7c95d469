package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/baitblock/baitblock/internal/core"
	"github.com/baitblock/baitblock/internal/di"
	"github.com/baitblock/baitblock/internal/ports"
	"github.com/baitblock/baitblock/internal/profile"
	"github.com/baitblock/baitblock/internal/scan"
)

var (
	userID    = flag.String("user", "default", "User ID whose profile adjusts the score")
	inputFile = flag.String("file", "", "Input mail file (use stdin if not specified)")

	// Profile setup flags
	setup      = flag.Bool("setup", false, "Create or replace the user's profile and exit")
	email      = flag.String("email", "", "User email address for profile setup")
	jobRole    = flag.String("role", "", "Job role for profile setup (ceo, cfo, finance, hr, it-admin, ...)")
	department = flag.String("department", "", "Department for profile setup")
	alertStyle = flag.String("alert-style", string(profile.AlertStandard), "Alert style for profile setup (standard, minimal, detailed)")
	orgID      = flag.String("org", "", "Organization ID for profile setup and stats")

	// Feedback flags
	feedbackID   = flag.String("feedback", "", "Record feedback for the given threat ID and exit")
	actualThreat = flag.Bool("actual", false, "Whether the reported threat was real")
	userAction   = flag.String("action", "confirmed", "What the user did (confirmed, dismissed, reported)")

	// Stats flags
	stats = flag.Bool("stats", false, "Print organization threat stats and exit")
)

func main() {
	flag.Parse()

	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	mailExtractor ports.Extractor,
	profiles *profile.Manager,
	scanner *scan.Service,
) error {
	defer logger.Sync()
	ctx := context.Background()

	switch {
	case *setup:
		return runSetup(ctx, profiles)
	case *feedbackID != "":
		return runFeedback(ctx, scanner)
	case *stats:
		return runStats(ctx, scanner)
	default:
		return runScan(ctx, logger, mailExtractor, scanner)
	}
}

func runSetup(ctx context.Context, profiles *profile.Manager) error {
	p := profiles.Setup(ctx, *email, *jobRole, *department, profile.AlertStyle(*alertStyle), *orgID)
	fmt.Printf("Profile created for %s\n", p.UserID)
	fmt.Printf("Risk level: %s\n", p.RiskLevel)
	fmt.Printf("Sensitivity: %.2f\n", p.SensitivityLevel)
	return nil
}

func runFeedback(ctx context.Context, scanner *scan.Service) error {
	sensitivity := scanner.RecordFeedback(ctx, *userID, *feedbackID, *actualThreat, *userAction)
	fmt.Printf("Feedback recorded for threat %s\n", *feedbackID)
	fmt.Printf("Adjusted sensitivity: %.2f\n", sensitivity)
	return nil
}

func runStats(ctx context.Context, scanner *scan.Service) error {
	orgStats := scanner.OrganizationStats(ctx, *orgID)
	if orgStats == nil {
		fmt.Printf("No threat activity recorded for organization %q\n", *orgID)
		return nil
	}
	fmt.Printf("=== Organization Stats ===\n")
	fmt.Printf("Total threats: %d\n", orgStats.TotalThreats)
	fmt.Printf("Threats last 24h: %d\n", orgStats.ThreatsLast24h)
	fmt.Printf("Threats last 7d: %d\n", orgStats.ThreatsLast7d)
	fmt.Printf("Most common type: %s\n", orgStats.MostCommonType)
	return nil
}

func runScan(
	ctx context.Context,
	logger *zap.Logger,
	mailExtractor ports.Extractor,
	scanner *scan.Service,
) error {
	reader := os.Stdin
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	msg, err := mailExtractor.Extract(reader)
	if err != nil {
		return err
	}

	result := scanner.Scan(ctx, msg, *userID)

	fmt.Printf("=== Scan Result ===\n")
	fmt.Printf("From: %s\n", msg.Headers.From)
	fmt.Printf("Subject: %s\n", msg.Headers.Subject)
	fmt.Printf("Label: %s\n", result.Label)
	fmt.Printf("Raw score: %.1f\n", result.RawScore)
	fmt.Printf("Personalized score: %.1f\n", result.PersonalizedScore)
	fmt.Printf("Risk: %s\n", core.RiskLabel(result.PersonalizedScore))
	for _, reason := range result.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
	if result.LedgerMatch != nil && result.LedgerMatch.IsKnownThreat {
		fmt.Printf("Known threat in organization ledger (type %s)\n", result.LedgerMatch.ThreatType)
	}
	if result.Error != "" {
		fmt.Printf("Error: %s\n", result.Error)
	}
	logger.Debug("Scan complete", zap.String("source", result.Source))
	return nil
}
