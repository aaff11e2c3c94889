package model

// Pair describes a tradable instrument's funding, rollover, leverage and fee
// parameters as of the indexer's last processed block. Queries that embed a
// pair select a subset of these fields; the rest stay zero-valued.
type Pair struct {
	ID                    string  `json:"id"`
	From                  string  `json:"from"`
	To                    string  `json:"to"`
	Feed                  string  `json:"feed"`
	SpreadP               Numeric `json:"spreadP"`
	OvernightMaxLeverage  Numeric `json:"overnightMaxLeverage"`
	LongOI                Numeric `json:"longOI"`
	ShortOI               Numeric `json:"shortOI"`
	MaxOI                 Numeric `json:"maxOI"`
	MakerFeeP             Numeric `json:"makerFeeP"`
	TakerFeeP             Numeric `json:"takerFeeP"`
	MakerMaxLeverage      Numeric `json:"makerMaxLeverage"`
	CurFundingLong        Numeric `json:"curFundingLong"`
	CurFundingShort       Numeric `json:"curFundingShort"`
	CurRollover           Numeric `json:"curRollover"`
	TotalOpenTrades       Numeric `json:"totalOpenTrades"`
	TotalOpenLimitOrders  Numeric `json:"totalOpenLimitOrders"`
	AccRollover           Numeric `json:"accRollover"`
	LastRolloverBlock     Numeric `json:"lastRolloverBlock"`
	RolloverFeePerBlock   Numeric `json:"rolloverFeePerBlock"`
	AccFundingLong        Numeric `json:"accFundingLong"`
	AccFundingShort       Numeric `json:"accFundingShort"`
	LastFundingBlock      Numeric `json:"lastFundingBlock"`
	MaxFundingFeePerBlock Numeric `json:"maxFundingFeePerBlock"`
	LastFundingRate       Numeric `json:"lastFundingRate"`
	HillInflectionPoint   Numeric `json:"hillInflectionPoint"`
	HillPosScale          Numeric `json:"hillPosScale"`
	HillNegScale          Numeric `json:"hillNegScale"`
	SpringFactor          Numeric `json:"springFactor"`
	SFactorUpScaleP       Numeric `json:"sFactorUpScaleP"`
	SFactorDownScaleP     Numeric `json:"sFactorDownScaleP"`
	LastTradePrice        Numeric `json:"lastTradePrice"`
	MaxLeverage           Numeric `json:"maxLeverage"`

	Group *PairGroup `json:"group,omitempty"`
	Fee   *PairFee   `json:"fee,omitempty"`
}

// PairGroup holds the leverage and collateral limits shared by a group of
// pairs.
type PairGroup struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MinLeverage     Numeric `json:"minLeverage"`
	MaxLeverage     Numeric `json:"maxLeverage"`
	MaxCollateralP  Numeric `json:"maxCollateralP"`
	LongCollateral  Numeric `json:"longCollateral"`
	ShortCollateral Numeric `json:"shortCollateral"`
}

// PairFee holds a pair's fee parameters.
type PairFee struct {
	MinLevPos Numeric `json:"minLevPos"`
}
