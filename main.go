package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"matchcore/config"
	"matchcore/domain"
	"matchcore/matching"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	// Initialize the matching engine. Books are created lazily per symbol on
	// first order, so there is nothing to pre-warm for BTCUSDT here.
	sink := matching.NewInMemoryTradeSink()
	engine := matching.New(config.Default(), domain.NewSystemClock(), sink, log)
	defer engine.Stop()

	fmt.Println("Exchange engine started")

	// Sell 1 BTC at 50000, then buy 0.5 BTC at 50000 (should cross).
	sellOrder := domain.NewLimitOrder(1, "BTCUSDT", domain.SideSell, 50000, 100000000) // 1 BTC in satoshis
	if err := engine.ProcessOrder(*sellOrder); err != nil {
		fmt.Println("sell order rejected:", err)
		return
	}
	fmt.Println("Submitted sell order: 1 BTC @ 50000 USDT")

	buyOrder := domain.NewLimitOrder(2, "BTCUSDT", domain.SideBuy, 50000, 50000000) // 0.5 BTC
	if err := engine.ProcessOrder(*buyOrder); err != nil {
		fmt.Println("buy order rejected:", err)
		return
	}
	fmt.Println("Submitted buy order: 0.5 BTC @ 50000 USDT")

	for _, trade := range sink.Trades() {
		fmt.Printf("Trade executed: maker=%d taker=%d price=%d quantity=%d\n",
			trade.MakerOrderID, trade.TakerOrderID, trade.Price, trade.Quantity)
	}
}
