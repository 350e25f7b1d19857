// huntersim is a Monte Carlo simulator for Hunters of the Rift builds.
//
// Usage:
//
//	huntersim [command] [options]
//
// Commands:
//
//	run          - Simulate a single build across many runs
//	compare      - Simulate two builds and compare their statistics
//	dump-config  - Write an empty build template for an archetype
//	history      - List previously saved batch summaries
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/lawnchairsociety/huntersim/internal/config"
	"github.com/lawnchairsociety/huntersim/internal/database"
	"github.com/lawnchairsociety/huntersim/internal/logger"
	"github.com/lawnchairsociety/huntersim/internal/montecarlo"
	"github.com/lawnchairsociety/huntersim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runBatch()
	case "compare":
		runCompare()
	case "dump-config":
		runDumpConfig()
	case "history":
		runHistory()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Hunter Simulator

A Monte Carlo simulator for hunter builds.

Usage: huntersim <command> [options]

Commands:
  run          Simulate a single build across many runs
  compare      Simulate two builds and compare their statistics
  dump-config  Write an empty build template for an archetype
  history      List previously saved batch summaries

Examples:
  huntersim run -f builds/my_borge.yaml -i 500
  huntersim run -f builds/my_borge.yaml -i 100 -t 4 -seed 42 -save
  huntersim compare -f builds/current.yaml -c builds/candidate.yaml -i 500
  huntersim dump-config -hunter Ozzy -o builds/empty_ozzy.yaml
  huntersim history -n 10

Use "huntersim <command> -h" for more information about a command.`)
}

// batchFlags are the options shared by run and compare.
type batchFlags struct {
	iterations *int
	workers    *int
	seed       *int64
	verbose    *bool
	logFile    *string
}

func addBatchFlags(fs *flag.FlagSet) batchFlags {
	return batchFlags{
		iterations: fs.Int("i", 100, "Number of independent runs"),
		workers:    fs.Int("t", runtime.NumCPU(), "Worker threads (0 = sequential)"),
		seed:       fs.Int64("seed", 0, "Base RNG seed (default: random based on current time)"),
		verbose:    fs.Bool("v", false, "Write per-action combat logs"),
		logFile:    fs.String("log", "logs/huntersim.log", "Combat log file path (with -v)"),
	}
}

func (bf batchFlags) runLogger() *slog.Logger {
	if !*bf.verbose {
		return logger.Discard()
	}
	cfg := logger.DefaultConfig()
	cfg.Level = "DEBUG"
	cfg.FileEnabled = true
	cfg.FilePath = *bf.logFile
	return logger.NewRunLogger(cfg)
}

func (bf batchFlags) montecarloConfig() montecarlo.Config {
	seed := *bf.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return montecarlo.Config{
		Iterations: *bf.iterations,
		Workers:    *bf.workers,
		Seed:       seed,
		Options:    sim.DefaultOptions(),
	}
}

func runBatch() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	buildPath := fs.String("f", "", "Path to the build config YAML file (required)")
	bf := addBatchFlags(fs)
	save := fs.Bool("save", false, "Save the batch summary to the history database")
	dialect := fs.String("db-dialect", "sqlite", "History database dialect (sqlite or postgres)")
	dsn := fs.String("db", "data/huntersim.db", "History database path or connection string")
	fs.Parse(os.Args[2:])

	if *buildPath == "" {
		fmt.Println("run: -f is required")
		fs.Usage()
		os.Exit(1)
	}

	build, err := config.Load(*buildPath)
	if err != nil {
		fatal(err)
	}

	mcCfg := bf.montecarloConfig()

	fmt.Println("=== Hunter Simulation ===")
	fmt.Println()
	fmt.Printf("Build:      %s (%s, level %d)\n", *buildPath, build.Meta.Hunter, build.Meta.Level)
	fmt.Printf("Iterations: %d (%d workers, seed %d)\n", mcCfg.Iterations, mcCfg.Workers, mcCfg.Seed)
	fmt.Println()

	start := time.Now()
	results, err := montecarlo.RunMany(build, mcCfg, bf.runLogger())
	if err != nil {
		fatal(err)
	}
	elapsed := time.Since(start)

	summary := montecarlo.Reduce(results)
	printSummary(summary)
	fmt.Printf("\nCompleted in %s\n", elapsed.Round(time.Millisecond))

	if *save {
		db, err := database.Open(database.DialectType(*dialect), *dsn)
		if err != nil {
			fatal(err)
		}
		defer db.Close()
		id, err := db.SaveBatch(build.Meta.Hunter, mcCfg.Seed, summary)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Saved as batch %d\n", id)
	}
}

func runCompare() {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	buildPath := fs.String("f", "", "Path to the baseline build YAML file (required)")
	comparePath := fs.String("c", "", "Path to the candidate build YAML file (required)")
	bf := addBatchFlags(fs)
	fs.Parse(os.Args[2:])

	if *buildPath == "" || *comparePath == "" {
		fmt.Println("compare: both -f and -c are required")
		fs.Usage()
		os.Exit(1)
	}

	buildA, err := config.Load(*buildPath)
	if err != nil {
		fatal(err)
	}
	buildB, err := config.Load(*comparePath)
	if err != nil {
		fatal(err)
	}
	if buildA.Meta.Hunter != buildB.Meta.Hunter {
		fatal(fmt.Errorf("cannot compare different hunters: %s vs %s",
			buildA.Meta.Hunter, buildB.Meta.Hunter))
	}

	mcCfg := bf.montecarloConfig()
	log := bf.runLogger()

	fmt.Println("=== Build Comparison ===")
	fmt.Println()
	fmt.Printf("Baseline:   %s (%s, level %d)\n", *buildPath, buildA.Meta.Hunter, buildA.Meta.Level)
	fmt.Printf("Candidate:  %s (%s, level %d)\n", *comparePath, buildB.Meta.Hunter, buildB.Meta.Level)
	fmt.Printf("Iterations: %d each (%d workers, seed %d)\n", mcCfg.Iterations, mcCfg.Workers, mcCfg.Seed)
	fmt.Println()

	resultsA, err := montecarlo.RunMany(buildA, mcCfg, log)
	if err != nil {
		fatal(err)
	}
	resultsB, err := montecarlo.RunMany(buildB, mcCfg, log)
	if err != nil {
		fatal(err)
	}

	printComparison(montecarlo.Compare(resultsA, resultsB))
}

func runDumpConfig() {
	fs := flag.NewFlagSet("dump-config", flag.ExitOnError)
	hunter := fs.String("hunter", "Borge", "Archetype to dump (Borge or Ozzy)")
	out := fs.String("o", "", "Output path (default: empty_<hunter>.yaml)")
	fs.Parse(os.Args[2:])

	path := *out
	if path == "" {
		path = fmt.Sprintf("empty_%s.yaml", *hunter)
	}
	if err := config.Dump(path, *hunter); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote empty %s build to %s\n", *hunter, path)
}

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "Number of batches to list")
	dialect := fs.String("db-dialect", "sqlite", "History database dialect (sqlite or postgres)")
	dsn := fs.String("db", "data/huntersim.db", "History database path or connection string")
	fs.Parse(os.Args[2:])

	db, err := database.Open(database.DialectType(*dialect), *dsn)
	if err != nil {
		fatal(err)
	}
	defer db.Close()

	batches, err := db.ListBatches(*limit)
	if err != nil {
		fatal(err)
	}
	if len(batches) == 0 {
		fmt.Println("No saved batches.")
		return
	}

	fmt.Println("   ID | Created             | Hunter | Iter  | Avg Stage | Loot/Hour")
	fmt.Println("------+---------------------+--------+-------+-----------+----------")
	for _, b := range batches {
		stage := b.Summary.Fields["final_stage"].Mean
		lph := b.Summary.Fields["loot_per_hour"].Mean
		fmt.Printf("%5d | %s | %-6s | %5d | %9.1f | %9.1f\n",
			b.ID, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Archetype, b.Iterations, stage, lph)
	}
}

func printSummary(s montecarlo.Summary) {
	fmt.Printf("Results (%d runs):\n", s.Iterations)
	fmt.Println()
	fmt.Println("Field                    |       Mean |        Std |        Min |        Max")
	fmt.Println("-------------------------+------------+------------+------------+-----------")
	for _, name := range s.FieldNames() {
		f := s.Fields[name]
		fmt.Printf("%-24s | %10.2f | %10.2f | %10.2f | %10.2f\n",
			name, f.Mean, f.Std, f.Min, f.Max)
	}
}

func printComparison(c montecarlo.Comparison) {
	fmt.Printf("Results (%d runs each):\n", c.A.Iterations)
	fmt.Println()
	fmt.Println("Field                    |   Baseline |  Candidate |      Delta |     Pct")
	fmt.Println("-------------------------+------------+------------+------------+--------")
	for _, name := range c.FieldNames() {
		d := c.Fields[name]
		fmt.Printf("%-24s | %10.2f | %10.2f | %+10.2f | %+6.1f%%\n",
			name, d.A.Mean, d.B.Mean, d.Delta, d.Pct)
	}

	fmt.Println()
	fmt.Println("=== Assessment ===")
	for _, name := range c.FieldNames() {
		higher, tracked := montecarlo.HigherIsBetter[name]
		if !tracked {
			continue
		}
		d := c.Fields[name]
		if d.Pct == 0 {
			continue
		}
		improved := (d.Delta > 0) == higher
		if d.Pct > 5 || d.Pct < -5 {
			verdict := "WORSE"
			if improved {
				verdict = "BETTER"
			}
			fmt.Printf("%-24s %s (%+.1f%%)\n", name, verdict, d.Pct)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
