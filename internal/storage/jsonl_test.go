package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"perpScope/internal/model"
)

func TestJsonlAppendsQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.jsonl")
	sink := NewJsonlStorage(path)

	quotes := []model.PriceQuote{
		{FeedID: "0x01", From: "BTC", To: "USD", Mid: 107646.03, IsMarketOpen: true, TimestampSeconds: 1748460056},
		{FeedID: "0x02", From: "EUR", To: "USD", Mid: 1.0843, TimestampSeconds: 1748460056},
	}

	if err := sink.PutQuoteBatch(context.Background(), quotes); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}
	if err := sink.PutQuoteBatch(context.Background(), quotes[:1]); err != nil {
		t.Fatalf("second batch failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines []model.PriceQuote
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var quote model.PriceQuote
		if err := json.Unmarshal(scanner.Bytes(), &quote); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		lines = append(lines, quote)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan output: %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != quotes[0] || lines[2] != quotes[0] {
		t.Fatalf("round-trip mismatch: %+v", lines)
	}
}
