package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"duit/internal/app"
	"duit/internal/jobs"
	"duit/internal/shared/config"
)

const usage = `Duit Admin CLI - Management commands for the Duit worker

Usage:
  admin <command> [options]

Commands:
  run   Run one automation job immediately (outside its schedule)
  list  List available jobs

Examples:
  # Materialize due recurring transactions now
  admin run recurring-materialization

  # Send budget alerts now, with a custom timeout
  admin run budget-alerts --timeout=10m

  # Show all job names
  admin list
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runJob(os.Args[2:])
	case "list":
		listJobs()
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func runJob(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "5m", "Timeout for the run (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin run <job-name> [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin run recurring-materialization")
		fmt.Println("  admin run daily-summary --timeout=10m")
	}

	if len(args) < 1 || args[0] == "" {
		fmt.Println("Error: must specify a job name")
		fs.Usage()
		os.Exit(1)
	}
	jobName := args[0]

	if err := fs.Parse(args[1:]); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	deps, err := app.NewDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	runner := findRunner(deps, jobName)
	if runner == nil {
		fmt.Printf("Unknown job: %s\n\n", jobName)
		listJobNames(deps)
		os.Exit(1)
	}

	log.Printf("Running job %s (timeout=%v)", runner.Name(), timeout)
	start := time.Now()

	summary, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Job %s failed after %v: %v", runner.Name(), time.Since(start), err)
	}

	log.Printf("Job %s completed in %v: %s", runner.Name(), time.Since(start), summary)
}

func listJobs() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deps, err := app.NewDependencies(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	listJobNames(deps)
}

func listJobNames(deps *app.Dependencies) {
	fmt.Println("Available jobs:")
	for _, r := range deps.Runners() {
		fmt.Printf("  %s\n", r.Name())
	}
}

func findRunner(deps *app.Dependencies, name string) jobs.Runner {
	for _, r := range deps.Runners() {
		if r.Name() == name {
			return r
		}
	}
	return nil
}
