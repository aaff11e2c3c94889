package model

// PriceQuote is one entry of the metadata service's latest-prices table.
// Field names match the service's JSON exactly; entries absent from a served
// record decode to their zero values.
type PriceQuote struct {
	FeedID                            string  `json:"feed_id"`
	Bid                               float64 `json:"bid"`
	Mid                               float64 `json:"mid"`
	Ask                               float64 `json:"ask"`
	IsMarketOpen                      bool    `json:"isMarketOpen"`
	IsDayTradingClosed                bool    `json:"isDayTradingClosed"`
	SecondsToToggleIsDayTradingClosed int64   `json:"secondsToToggleIsDayTradingClosed"`
	From                              string  `json:"from"`
	To                                string  `json:"to"`
	TimestampSeconds                  int64   `json:"timestampSeconds"`
}
