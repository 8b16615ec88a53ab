// Package main provides a performance benchmarking tool for the Aura CLI.
// It measures scoring latency across the face, body and reach commands,
// running each phase multiple times, treating the first successful cached run
// as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - aura binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where measurement fixtures and the cache database are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Fixture     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	CacheDB     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
}

// commandSpec describes one CLI invocation to benchmark.
type commandSpec struct {
	command     string
	fixture     string
	payload     string
	extraArgs   string
	description string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		CacheDB:     filepath.Join(workDir, "benchmark-cache.db"),
		Timeout:     time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	specs := commandSpecs()
	if err := writeFixtures(config, specs); err != nil {
		fmt.Printf("Failed to write fixtures: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty cache so the cold run is really cold
	_ = os.Remove(config.CacheDB)

	results := runBenchmarks(config, specs)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// commandSpecs returns the scoring invocations to measure. Each fixture gets
// a distinct photo hash so the commands never share cache entries.
func commandSpecs() []commandSpec {
	face := `{
  "photoHash": "b12ac0ffee000001",
  "photoQuality": 0.85,
  "landmarks": {
    "faceWidth": 14.0, "faceLength": 20.3, "interEye": 6.4,
    "eyeWidthLeft": 3.1, "eyeWidthRight": 3.0, "noseWidth": 3.6,
    "mouthWidth": 5.2, "jawWidth": 12.1,
    "forehead": 6.5, "midface": 6.8, "lowerFace": 7.0
  },
  "features": {
    "eyes": {"score10": 7.0, "confidence": 0.85},
    "skin": {"score10": 6.5, "confidence": 0.8},
    "hair": {"score10": 7.0, "confidence": 0.9}
  }
}`
	body := `{
  "photoHash": "b12ac0ffee000002",
  "photoQuality": 0.75,
  "presentation": "v_taper",
  "clothingFit": "fitted",
  "hairLength": "medium",
  "hasSideView": true,
  "shoulder": 48.0, "waist": 33.0, "hip": 37.0, "leg": 100.0, "torso": 61.0,
  "posture": {"forwardHeadDeg": 9.0, "shoulderRoundingDeg": 14.0},
  "leanness10": 6.0
}`
	reach := strings.Replace(body, "b12ac0ffee000002", "b12ac0ffee000003", 1)

	return []commandSpec{
		{command: "face", fixture: "face.json", payload: face, description: "face scoring"},
		{command: "body", fixture: "body.json", payload: body, description: "body scoring"},
		{command: "reach", fixture: "reach.json", payload: reach, extraArgs: "--level 2", description: "reachability estimate (level 2)"},
	}
}

// checkPrerequisites verifies that the aura binary and the work dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if aura is available
	if _, err := exec.LookPath("aura"); err != nil {
		return fmt.Errorf("aura binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("work dir %s not writable: %w", config.WorkDir, err)
	}

	return nil
}

// writeFixtures materializes the measurement payloads in the work dir.
func writeFixtures(config BenchmarkConfig, specs []commandSpec) error {
	for _, spec := range specs {
		path := filepath.Join(config.WorkDir, spec.fixture)
		if err := os.WriteFile(path, []byte(spec.payload), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// runBenchmarks executes all benchmark phases across the configured commands
func runBenchmarks(config BenchmarkConfig, specs []commandSpec) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d commands, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(specs), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, spec := range specs {
		results = append(results, runBenchmarkSuite(config, spec))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, spec commandSpec) BenchmarkResult {
	fmt.Printf("Running %s\n", spec.description)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, spec, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Fixture:     spec.fixture,
		Command:     spec.command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes an aura command multiple times with the specified
// cache backend and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, spec commandSpec, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{spec.command, filepath.Join(config.WorkDir, spec.fixture), "--cache-backend", cacheBackend}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", config.CacheDB)
	}
	if spec.extraArgs != "" {
		args = append(args, strings.Fields(spec.extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("aura", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, spec.command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	if command == "reach" {
		completionPhrase = "Estimated in"
	} else {
		completionPhrase = "Scored in"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/aura_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"fixture", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Fixture, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "face", "Face Scoring:")
	printCommandSummary(results, "body", "Body Scoring:")
	printCommandSummary(results, "reach", "Reachability Estimates:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Fixture, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
