// Command exchanged drives one synthetic matching run: build the engine,
// generate a batch, process it, record the timing, print the result.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"matchcore/config"
	"matchcore/domain"
	"matchcore/gen"
	"matchcore/matching"
	"matchcore/perf"
)

// runIDs stamps every run() call with a short, monotonic id ("run-1",
// "run-2", ...) in the log and in the recorded CSV row. The counter is per
// process, so each separate invocation of this binary records "run-1";
// rows from separate invocations differ by their Timestamp column, not by
// this id.
var runIDs = matching.NewIDGenerator("run-")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		workers  int
		orders   int
		symbols  int
		seed     int64
		outFile  string
		logLevel string
		cfgFile  string
	)

	cmd := &cobra.Command{
		Use:   "exchanged",
		Short: "Run one synthetic order batch through the matching engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(workers, viper.GetInt("orders"), viper.GetInt("symbols"), viper.GetInt64("seed"),
				viper.GetString("out"), viper.GetString("log-level"))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&workers, "workers", 0, "worker pool size (0 = GOMAXPROCS, capped at 16)")
	flags.IntVar(&orders, "orders", 100000, "number of synthetic orders to generate")
	flags.IntVar(&symbols, "symbols", 8, "number of distinct symbols to spread orders across")
	flags.Int64Var(&seed, "seed", 1, "generator seed, for reproducible runs")
	flags.StringVar(&outFile, "out", "results.csv", "path to the CSV results file")
	flags.StringVar(&logLevel, "log-level", "info", "zerolog level: debug, info, warn, error")
	flags.StringVar(&cfgFile, "config", "", "optional config file (env/flag overrides take precedence)")

	viper.SetEnvPrefix("EXCHANGED")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	cobra.OnInitialize(func() {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			_ = viper.ReadInConfig()
		}
	})

	return cmd
}

func run(workers, numOrders, numSymbols int, seed int64, outFile, logLevel string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	runID := runIDs.Next()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("run_id", runID).Logger()

	cfg := config.Default()
	if viper.IsSet("workers") {
		workers = viper.GetInt("workers")
	}
	if workers > 0 {
		cfg.NumWorkers = workers
	}

	sink := matching.NewInMemoryTradeSink()
	engine := matching.New(cfg, domain.NewSystemClock(), sink, log)
	defer engine.Stop()

	generator := gen.New(uint64(seed), 9000, 11000, 25)
	commands := generator.Generate(numOrders, numSymbols)

	start := time.Now()
	if err := engine.ProcessBatch(commands); err != nil {
		log.Error().Err(err).Msg("batch processing failed")
		return err
	}
	elapsed := time.Since(start)

	usPerOrder := float64(elapsed.Microseconds()) / float64(numOrders)
	result := perf.Result{
		WallTimestamp: start,
		TotalTimeUs:   elapsed.Microseconds(),
		NSymbols:      int64(numSymbols),
		NOrders:       int64(numOrders),
		UsPerOrder:    usPerOrder,
		Description:   fmt.Sprintf("%s: workers=%d, seed=%d", runID, cfg.NumWorkers, seed),
	}

	recorder := perf.NewCSVRecorder(outFile)
	if err := recorder.Record(result); err != nil {
		log.Error().Err(err).Msg("failed to record benchmark result")
		return err
	}

	trades := sink.Trades()
	log.Info().
		Int("orders", numOrders).
		Int("symbols", numSymbols).
		Int("trades", len(trades)).
		Dur("elapsed", elapsed).
		Msg("batch processed")

	if book, ok := engine.GetOrderBook("SYM0"); ok {
		bid, bidOK := book.BestBid()
		ask, askOK := book.BestAsk()
		fmt.Printf("SYM0 best bid: %v, best ask: %v\n", optionalPrice(bid, bidOK), optionalPrice(ask, askOK))
	}

	return nil
}

func optionalPrice(price int64, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%d", price)
}
