package model

// LimitOrder is a pending limit order awaiting its trigger price.
type LimitOrder struct {
	ID              string  `json:"id"`
	Trader          string  `json:"trader"`
	Collateral      Numeric `json:"collateral"`
	Leverage        Numeric `json:"leverage"`
	OpenPrice       Numeric `json:"openPrice"`
	TakeProfitPrice Numeric `json:"takeProfitPrice"`
	StopLossPrice   Numeric `json:"stopLossPrice"`
	IsBuy           bool    `json:"isBuy"`
	IsActive        bool    `json:"isActive"`
	InitiatedAt     Numeric `json:"initiatedAt"`
	LimitType       string  `json:"limitType"`

	Pair *Pair `json:"pair,omitempty"`
}

// Order is an executed or cancelled order record, carrying settlement fees
// and profit figures on top of the position fields. Lookups by id select a
// few extra fields (price impact, block numbers) that list queries omit.
type Order struct {
	ID                 string  `json:"id"`
	Trader             string  `json:"trader"`
	TradeID            Numeric `json:"tradeID"`
	LimitID            Numeric `json:"limitID"`
	OrderType          string  `json:"orderType"`
	OrderAction        string  `json:"orderAction"`
	Price              Numeric `json:"price"`
	PriceAfterImpact   Numeric `json:"priceAfterImpact"`
	PriceImpactP       Numeric `json:"priceImpactP"`
	Collateral         Numeric `json:"collateral"`
	Notional           Numeric `json:"notional"`
	TradeNotional      Numeric `json:"tradeNotional"`
	Leverage           Numeric `json:"leverage"`
	IsBuy              bool    `json:"isBuy"`
	IsPending          bool    `json:"isPending"`
	IsCancelled        bool    `json:"isCancelled"`
	CancelReason       string  `json:"cancelReason"`
	ProfitPercent      Numeric `json:"profitPercent"`
	TotalProfitPercent Numeric `json:"totalProfitPercent"`
	AmountSentToTrader Numeric `json:"amountSentToTrader"`
	RolloverFee        Numeric `json:"rolloverFee"`
	FundingFee         Numeric `json:"fundingFee"`
	DevFee             Numeric `json:"devFee"`
	VaultFee           Numeric `json:"vaultFee"`
	OracleFee          Numeric `json:"oracleFee"`
	LiquidationFee     Numeric `json:"liquidationFee"`
	ClosePercent       Numeric `json:"closePercent"`
	InitiatedAt        Numeric `json:"initiatedAt"`
	ExecutedAt         Numeric `json:"executedAt"`
	InitiatedTx        string  `json:"initiatedTx"`
	ExecutedTx         string  `json:"executedTx"`
	InitiatedBlock     Numeric `json:"initiatedBlock"`
	ExecutedBlock      Numeric `json:"executedBlock"`

	Pair *Pair `json:"pair,omitempty"`
}
