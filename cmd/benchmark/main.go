package main

import (
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"matchcore/config"
	"matchcore/domain"
	"matchcore/matching"
)

func main() {
	fmt.Println("=== 交易所撮合系统性能测试 ===")

	// 创建撮合引擎：固定 worker 数量，trade 用无锁内存 sink 收集计数
	cfg := config.Default()
	log := zerolog.New(io.Discard)
	tradeCounter := &countingSink{}
	engine := matching.New(cfg, domain.NewSystemClock(), tradeCounter, log)
	defer engine.Stop()

	// 测试参数
	testDuration := 5 * time.Second
	numCPU := runtime.NumCPU()
	numProducers := numCPU - 2 // 1 个给撮合 worker 池，1 个给系统/GC
	if numProducers < 1 {
		numProducers = 1
	}

	var orderCount atomic.Int64

	fmt.Printf("开始测试...\n")
	fmt.Printf("CPU 核心数: %d\n", numCPU)
	fmt.Printf("撮合 worker 数: %d\n", cfg.NumWorkers)
	fmt.Printf("生产者数量: %d (NumCPU - 2)\n", numProducers)
	fmt.Printf("测试时长: %v\n\n", testDuration)

	startTime := time.Now()
	stopChan := make(chan struct{})

	// 启动多个生产者，每个生产者攒一批订单后提交给引擎
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
					// 交替发送买单和卖单，价格有重叠以产生成交
					var side domain.Side
					if orderID%2 == 0 {
						side = domain.SideBuy
					} else {
						side = domain.SideSell
					}
					price := 50000 + int64(orderID%200) // 50000-50199，买卖价格重叠

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

	// 实时显示进度
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			elapsed := time.Since(startTime)
			orders := orderCount.Load()
			trades := tradeCounter.count.Load()
			qps := float64(orders) / elapsed.Seconds()
			tps := float64(trades) / elapsed.Seconds()
			fmt.Printf("[%.0fs] 订单: %d (%.0f/s) | 成交: %d (%.0f/s)\n",
				elapsed.Seconds(), orders, qps, trades, tps)
		}
	}()

	// 等待测试时间
	time.Sleep(testDuration)
	close(stopChan)
	ticker.Stop()

	// 等待处理完成
	time.Sleep(500 * time.Millisecond)

	elapsed := time.Since(startTime)
	totalOrders := orderCount.Load()
	totalTrades := tradeCounter.count.Load()

	qps := float64(totalOrders) / elapsed.Seconds()
	tps := float64(totalTrades) / elapsed.Seconds()
	avgLatency := elapsed.Seconds() * 1e6 / float64(totalOrders)
	matchRate := float64(totalTrades) / float64(totalOrders) * 100

	fmt.Println("\n=== 性能测试结果 ===")
	fmt.Printf("测试时长:     %v\n", elapsed)
	fmt.Printf("总订单数:     %d\n", totalOrders)
	fmt.Printf("总成交数:     %d\n", totalTrades)
	fmt.Printf("订单吞吐量:   %.0f orders/sec\n", qps)
	fmt.Printf("成交吞吐量:   %.0f trades/sec\n", tps)
	fmt.Printf("平均延迟:     %.2f μs/order\n", avgLatency)
	fmt.Printf("撮合率:       %.2f%%\n", matchRate)

	fmt.Println("\n=== 订单簿状态 ===")
	if book, ok := engine.GetOrderBook("BTCUSDT"); ok {
		bid, bidOK := book.BestBid()
		ask, askOK := book.BestAsk()
		fmt.Printf("最佳买价:     %v\n", priceOrNone(bid, bidOK))
		fmt.Printf("最佳卖价:     %v\n", priceOrNone(ask, askOK))
	}
}

func priceOrNone(price int64, ok bool) any {
	if !ok {
		return "none"
	}
	return price
}

// countingSink is a minimal TradeSink that only tracks a trade count, to
// avoid the allocation pressure of InMemoryTradeSink under sustained load.
type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) OnTrades(symbol string, trades []domain.Trade) {
	s.count.Add(int64(len(trades)))
}

func (s *countingSink) OnRejected(rejected matching.RejectedOrder) {}
