package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Numeric is a float64-backed scalar for subgraph BigDecimal and BigInt
// fields. The indexer serves those as JSON strings of arbitrary precision;
// decoding normalizes them to a standard float before they reach callers.
type Numeric float64

func (n Numeric) Float64() float64 {
	return float64(n)
}

// MarshalJSON encodes the value as a plain JSON number.
func (n Numeric) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(n), 'g', -1, 64)), nil
}

// UnmarshalJSON accepts a JSON number, a decimal string, or null.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode numeric: %w", err)
		}
		if s == "" {
			*n = 0
			return nil
		}
		raw = s
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	*n = Numeric(d.InexactFloat64())
	return nil
}
