package model

// Trade is an open position snapshot for one trader, embedding the funding
// and leverage parameters of its pair. The indexer only returns it while the
// position is open on-chain.
type Trade struct {
	ID              string  `json:"id"`
	TradeID         Numeric `json:"tradeID"`
	TradeType       string  `json:"tradeType"`
	Trader          string  `json:"trader"`
	Index           Numeric `json:"index"`
	Collateral      Numeric `json:"collateral"`
	Leverage        Numeric `json:"leverage"`
	HighestLeverage Numeric `json:"highestLeverage"`
	OpenPrice       Numeric `json:"openPrice"`
	ClosePrice      Numeric `json:"closePrice"`
	StopLossPrice   Numeric `json:"stopLossPrice"`
	TakeProfitPrice Numeric `json:"takeProfitPrice"`
	Notional        Numeric `json:"notional"`
	TradeNotional   Numeric `json:"tradeNotional"`
	Funding         Numeric `json:"funding"`
	Rollover        Numeric `json:"rollover"`
	IsOpen          bool    `json:"isOpen"`
	IsBuy           bool    `json:"isBuy"`
	CloseInitiated  Numeric `json:"closeInitiated"`
	Timestamp       Numeric `json:"timestamp"`

	Pair *Pair `json:"pair,omitempty"`
}
