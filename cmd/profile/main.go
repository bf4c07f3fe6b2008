package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"matchcore/config"
	"matchcore/domain"
	"matchcore/matching"
)

func main() {
	// 创建 CPU profile 文件
	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	pprof.StartCPUProfile(cpuFile)
	defer pprof.StopCPUProfile()

	fmt.Println("=== 性能分析开始 ===")
	fmt.Println("生成 CPU profile: cpu.prof")

	cfg := config.Default()
	log := zerolog.New(io.Discard)
	tradeCounter := &countingSink{}
	engine := matching.New(cfg, domain.NewSystemClock(), tradeCounter, log)
	defer engine.Stop()

	duration := 10 * time.Second
	numCPU := runtime.NumCPU()
	numProducers := numCPU - 2
	if numProducers < 1 {
		numProducers = 1
	}

	var orderCount atomic.Int64

	fmt.Printf("CPU 核心数: %d\n", numCPU)
	fmt.Printf("撮合 worker 数: %d\n", cfg.NumWorkers)
	fmt.Printf("生产者数量: %d\n", numProducers)
	fmt.Printf("测试时长: %v\n\n", duration)

	startTime := time.Now()
	stopChan := make(chan struct{})

	for w := 0; w < numProducers; w++ {
		go func(workerID int) {
			var orderID uint64
			const batchSize = 64
			batch := make([]domain.Command, 0, batchSize)
			for {
				select {
				case <-stopChan:
					return
				default:
					orderID++
					var side domain.Side
					if orderID%2 == 0 {
						side = domain.SideBuy
					} else {
						side = domain.SideSell
					}
					price := 50000 + int64(orderID%200)

					order := domain.NewLimitOrder(
						uint64(workerID)<<48|orderID,
						"BTCUSDT",
						side,
						price,
						1,
					)
					batch = append(batch, domain.NewOrderCommand{Order: *order})
					if len(batch) == batchSize {
						_ = engine.ProcessBatch(batch)
						orderCount.Add(int64(len(batch)))
						batch = batch[:0]
					}
				}
			}
		}(w)
	}

	time.Sleep(duration)
	close(stopChan)
	time.Sleep(500 * time.Millisecond)

	elapsed := time.Since(startTime)
	totalOrders := orderCount.Load()
	totalTrades := tradeCounter.count.Load()

	fmt.Println("\n=== 性能测试结果 ===")
	fmt.Printf("总订单数: %d\n", totalOrders)
	fmt.Printf("总成交数: %d\n", totalTrades)
	fmt.Printf("Order QPS: %.0f orders/sec\n", float64(totalOrders)/elapsed.Seconds())
	fmt.Printf("Trade TPS: %.0f trades/sec\n", float64(totalTrades)/elapsed.Seconds())

	fmt.Println("\n分析 CPU profile:")
	fmt.Println("  go tool pprof -http=:8080 cpu.prof")
	fmt.Println("  或者: go tool pprof cpu.prof")
	fmt.Println("  然后输入: top10  (查看前 10 个热点函数)")
	fmt.Println("  然后输入: list <函数名>  (查看具体代码)")
}

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) OnTrades(symbol string, trades []domain.Trade) {
	s.count.Add(int64(len(trades)))
}

func (s *countingSink) OnRejected(rejected matching.RejectedOrder) {}
