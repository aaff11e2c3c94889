package subgraph

// Fixed query documents for the protocol subgraph. Field lists follow the
// indexer's schema; the client reshapes results but never edits documents at
// runtime.

const queryPairs = `
query getPairs {
  pairs(first: 1000) {
    id
    from
    to
    feed
    overnightMaxLeverage
    longOI
    shortOI
    maxOI
    makerFeeP
    takerFeeP
    makerMaxLeverage
    curFundingLong
    curFundingShort
    curRollover
    totalOpenTrades
    totalOpenLimitOrders
    accRollover
    lastRolloverBlock
    rolloverFeePerBlock
    accFundingLong
    accFundingShort
    lastFundingBlock
    maxFundingFeePerBlock
    lastFundingRate
    hillInflectionPoint
    hillPosScale
    hillNegScale
    springFactor
    sFactorUpScaleP
    sFactorDownScaleP
    lastTradePrice
    maxLeverage
    group {
      id
      name
      minLeverage
      maxLeverage
      maxCollateralP
      longCollateral
      shortCollateral
    }
    fee {
      minLevPos
    }
  }
}`

const queryPairDetails = `
query getPairDetails($pair_id: ID!) {
  pair(id: $pair_id) {
    id
    from
    to
    overnightMaxLeverage
    longOI
    shortOI
    maxOI
    makerFeeP
    takerFeeP
    makerMaxLeverage
    curFundingLong
    curFundingShort
    curRollover
    totalOpenTrades
    totalOpenLimitOrders
    accRollover
    lastRolloverBlock
    rolloverFeePerBlock
    accFundingLong
    accFundingShort
    lastFundingBlock
    maxFundingFeePerBlock
    lastFundingRate
    hillInflectionPoint
    hillPosScale
    hillNegScale
    springFactor
    sFactorUpScaleP
    sFactorDownScaleP
    lastTradePrice
    maxLeverage
    group {
      id
      name
      minLeverage
      maxLeverage
      maxCollateralP
      longCollateral
      shortCollateral
    }
    fee {
      minLevPos
    }
  }
}`

const queryMetaDatas = `
query metaDatas {
  metaDatas {
    liqMarginThresholdP
  }
}`

const queryOpenTrades = `
query trades($trader: Bytes!) {
  trades(where: { isOpen: true, trader: $trader }) {
    tradeID
    collateral
    leverage
    highestLeverage
    openPrice
    stopLossPrice
    takeProfitPrice
    isOpen
    timestamp
    isBuy
    notional
    tradeNotional
    funding
    rollover
    trader
    index
    pair {
      id
      feed
      from
      to
      accRollover
      lastRolloverBlock
      rolloverFeePerBlock
      accFundingLong
      spreadP
      accFundingShort
      longOI
      shortOI
      maxOI
      hillInflectionPoint
      hillPosScale
      hillNegScale
      springFactor
      sFactorUpScaleP
      sFactorDownScaleP
      lastFundingBlock
      maxFundingFeePerBlock
      lastFundingRate
      maxLeverage
    }
  }
}`

const queryOpenOrders = `
query orders($trader: Bytes!) {
  limits(
    where: { trader: $trader, isActive: true }
    orderBy: initiatedAt
    orderDirection: asc
  ) {
    collateral
    leverage
    isBuy
    isActive
    id
    openPrice
    takeProfitPrice
    stopLossPrice
    trader
    initiatedAt
    limitType
    pair {
      id
      feed
      from
      to
      accRollover
      lastRolloverBlock
      rolloverFeePerBlock
      accFundingLong
      spreadP
      accFundingShort
      longOI
      shortOI
      lastFundingBlock
      maxFundingFeePerBlock
      lastFundingRate
    }
  }
}`

const queryRecentHistory = `
query ListOrdersHistory($trader: Bytes, $last_n_orders: Int) {
  orders(
    where: { trader: $trader, isPending: false }
    first: $last_n_orders
    orderBy: executedAt
    orderDirection: desc
  ) {
    id
    isBuy
    trader
    notional
    tradeNotional
    collateral
    leverage
    orderType
    orderAction
    price
    initiatedAt
    executedAt
    executedTx
    isCancelled
    cancelReason
    profitPercent
    totalProfitPercent
    isPending
    amountSentToTrader
    rolloverFee
    fundingFee
    devFee
    vaultFee
    oracleFee
    liquidationFee
    pair {
      id
      from
      to
      feed
      longOI
      shortOI
      group {
        name
      }
    }
  }
}`

const queryOrderByID = `
query GetOrder($order_id: ID!) {
  orders(where: { id: $order_id }) {
    id
    trader
    pair {
      id
      from
      to
      feed
    }
    tradeID
    limitID
    orderType
    orderAction
    price
    priceAfterImpact
    priceImpactP
    collateral
    notional
    tradeNotional
    profitPercent
    totalProfitPercent
    amountSentToTrader
    isBuy
    initiatedAt
    executedAt
    initiatedTx
    executedTx
    initiatedBlock
    executedBlock
    leverage
    isPending
    isCancelled
    cancelReason
    devFee
    vaultFee
    oracleFee
    liquidationFee
    fundingFee
    rolloverFee
    closePercent
  }
}`

const queryTradeByID = `
query GetTrade($trade_id: ID!) {
  trades(where: { id: $trade_id }) {
    id
    trader
    pair {
      id
      from
      to
      feed
    }
    index
    tradeID
    tradeType
    openPrice
    closePrice
    takeProfitPrice
    stopLossPrice
    collateral
    notional
    tradeNotional
    highestLeverage
    leverage
    isBuy
    isOpen
    closeInitiated
    funding
    rollover
    timestamp
  }
}`
