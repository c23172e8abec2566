// cmd/root.go
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aalborg-palloc/palloc/sim"
	"github.com/aalborg-palloc/palloc/sim/workload"
)

var (
	environmentPath string
	timesteps       int
	startTime       string
	maxDuration     int
	maxArrival      int
	minParkingTime  int
	requestRate     float64
	batchInterval   int
	commitInterval  int
	weightedParking bool
	randomGenerator string
	seed            int64
	outputPath      string
	outputTrace     bool
	prettify        bool
	aggregate       int
	jobs            int
	configPath      string
)

var rootCmd = &cobra.Command{
	Use:   "palloc",
	Short: "Parking dispatch simulator",
	RunE:  runSimulation,
}

// Execute runs the CLI, exiting 1 on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&environmentPath, "environment", "e", "", "path to environment file (required)")
	flags.IntVarP(&timesteps, "timesteps", "t", 1440, "minutes to simulate")
	flags.StringVarP(&startTime, "start-time", "S", "00:00", "start of day, HH:MM")
	flags.IntVarP(&maxDuration, "duration", "d", 1440, "maximum request duration, minutes")
	flags.IntVarP(&maxArrival, "arrival", "A", 0, "maximum minutes a request can arrive early")
	flags.IntVarP(&minParkingTime, "minimum-parking-time", "m", 0, "scheduler feasibility slack, minutes")
	flags.Float64VarP(&requestRate, "request-rate", "r", 1.0, "base Poisson request rate")
	flags.IntVarP(&batchInterval, "batch-interval", "b", 15, "minutes between solver invocations")
	flags.IntVarP(&commitInterval, "commit-interval", "c", 0, "a request commits only when tillArrival <= this")
	flags.BoolVarP(&weightedParking, "weighted-parking", "w", false, "apply per-parking cost weighting")
	flags.StringVarP(&randomGenerator, "random-generator", "g", "pcg", "\"pcg\" or \"pcg-fast\"")
	flags.Int64VarP(&seed, "seed", "s", 0, "PRNG seed (defaults to wall-clock nanoseconds)")
	flags.StringVarP(&outputPath, "output", "o", "", "optional output file path")
	flags.BoolVarP(&outputTrace, "trace", "T", false, "emit full per-timestep trace")
	flags.BoolVarP(&prettify, "prettify", "p", false, "pretty-print output JSON")
	flags.IntVarP(&aggregate, "aggregate", "a", 1, "number of independent runs to aggregate")
	flags.IntVarP(&jobs, "jobs", "j", 0, "worker threads (0 = GOMAXPROCS)")
	flags.StringVar(&configPath, "config", "", "optional YAML defaults file; explicit flags override it")

	_ = rootCmd.MarkFlagRequired("environment")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	defaults, err := loadDefaults()
	if err != nil {
		return err
	}
	applyDefaults(cmd, defaults)

	env, err := sim.LoadEnvironment(environmentPath)
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	if weightedParking {
		if err := env.ValidateParkingWeights(); err != nil {
			return err
		}
	}

	startMinutes, err := sim.ParseStartTime(startTime)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	simSettings := &sim.SimulatorSettings{
		Timesteps:          timesteps,
		StartTimeOfDay:     startMinutes,
		MaxRequestDuration: maxDuration,
		MaxTimeTillArrival: maxArrival,
		MinParkingTime:     minParkingTime,
		RequestRate:        requestRate,
		BatchInterval:      batchInterval,
		CommitInterval:     commitInterval,
		WeightedParking:    weightedParking,
		RandomGenerator:    randomGenerator,
		Seed:               uint64(seed),
	}
	if err := simSettings.Validate(); err != nil {
		return err
	}

	outSettings := &sim.OutputSettings{
		OutputPath:              outputPath,
		NumberOfRunsToAggregate: aggregate,
		Prettify:                prettify,
		OutputTrace:             outputTrace,
	}
	if err := outSettings.Validate(); err != nil {
		return err
	}

	genSettings := &sim.GeneralSettings{NumberOfThreads: jobs}

	logrus.Infof("starting %d run(s) of %d timesteps over %d dropoffs / %d parkings",
		outSettings.NumberOfRunsToAggregate, simSettings.Timesteps, env.NumDropoffs(), env.NumParkings())

	numDropoffs := env.NumDropoffs()
	newSource := func(engine sim.Engine) sim.RequestSource {
		return workload.NewGenerator(numDropoffs, requestRate, maxDuration, maxArrival, engine)
	}

	aggregated, err := sim.RunMonteCarlo(env, simSettings, outSettings, genSettings, newSource)
	if err != nil {
		logrus.Errorf("simulation failed: %v", err)
		return err
	}

	return emitResult(aggregated)
}

// emitResult writes the aggregated result to stdout, bypassing logrus:
// simulation results are program output, not log lines. If an output path
// is set, the same JSON is also written there.
func emitResult(result *sim.AggregatedResult) error {
	var data []byte
	var err error
	if prettify {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("serializing result: %w", err)
	}

	fmt.Println(string(data))

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
	}
	return nil
}

func loadDefaults() (*workload.DefaultsSpec, error) {
	if configPath == "" {
		return nil, nil
	}
	return workload.LoadDefaultsSpec(configPath)
}

// applyDefaults fills any flag the user did not set on the command line
// from the loaded config file. Explicit flags always win.
func applyDefaults(cmd *cobra.Command, d *workload.DefaultsSpec) {
	if d == nil {
		return
	}
	flags := cmd.Flags()
	s := d.Simulator
	if !flags.Changed("timesteps") && s.Timesteps != nil {
		timesteps = *s.Timesteps
	}
	if !flags.Changed("start-time") && s.StartTimeOfDay != nil {
		startTime = *s.StartTimeOfDay
	}
	if !flags.Changed("duration") && s.MaxRequestDuration != nil {
		maxDuration = *s.MaxRequestDuration
	}
	if !flags.Changed("arrival") && s.MaxTimeTillArrival != nil {
		maxArrival = *s.MaxTimeTillArrival
	}
	if !flags.Changed("minimum-parking-time") && s.MinParkingTime != nil {
		minParkingTime = *s.MinParkingTime
	}
	if !flags.Changed("request-rate") && s.RequestRate != nil {
		requestRate = *s.RequestRate
	}
	if !flags.Changed("batch-interval") && s.BatchInterval != nil {
		batchInterval = *s.BatchInterval
	}
	if !flags.Changed("commit-interval") && s.CommitInterval != nil {
		commitInterval = *s.CommitInterval
	}
	if !flags.Changed("weighted-parking") && s.WeightedParking != nil {
		weightedParking = *s.WeightedParking
	}
	if !flags.Changed("random-generator") && s.RandomGenerator != nil {
		randomGenerator = *s.RandomGenerator
	}
	if !flags.Changed("seed") && s.Seed != nil {
		seed = int64(*s.Seed)
	}

	o := d.Output
	if !flags.Changed("output") && o.OutputPath != nil {
		outputPath = *o.OutputPath
	}
	if !flags.Changed("aggregate") && o.Aggregate != nil {
		aggregate = *o.Aggregate
	}
	if !flags.Changed("prettify") && o.Prettify != nil {
		prettify = *o.Prettify
	}
	if !flags.Changed("trace") && o.Trace != nil {
		outputTrace = *o.Trace
	}

	if !flags.Changed("jobs") && d.General.Jobs != nil {
		jobs = *d.General.Jobs
	}
}
