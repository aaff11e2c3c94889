package model

import (
	"encoding/json"
	"testing"
)

func TestNumericUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"decimal string", `"107646.03680130735"`, 107646.03680130735},
		{"integer string", `"36000000"`, 36000000},
		{"number", `42.5`, 42.5},
		{"big decimal string", `"123456789.123456789123456789"`, 123456789.123456789123456789},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Numeric
			if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if n.Float64() != tc.want {
				t.Fatalf("value mismatch: %v != %v", n.Float64(), tc.want)
			}
		})
	}
}

func TestNumericUnmarshalInvalid(t *testing.T) {
	var n Numeric
	if err := json.Unmarshal([]byte(`"not a number"`), &n); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestNumericMarshalAsNumber(t *testing.T) {
	b, err := json.Marshal(Numeric(1234.5))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != "1234.5" {
		t.Fatalf("expected unquoted number, got %s", b)
	}
}
