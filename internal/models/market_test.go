package models

import "testing"

func TestMarketSnapshot_IsEmpty(t *testing.T) {
	var nilSnapshot *MarketSnapshot
	if !nilSnapshot.IsEmpty() {
		t.Error("nil snapshot must be empty")
	}

	if !(&MarketSnapshot{Ticker: "AAPL"}).IsEmpty() {
		t.Error("snapshot with no price fields must be empty")
	}

	withPrice := &MarketSnapshot{Ticker: "AAPL", LastPrice: Float64Ptr(227.52)}
	if withPrice.IsEmpty() {
		t.Error("snapshot with a last price must not be empty")
	}

	withCapOnly := &MarketSnapshot{MarketCap: Float64Ptr(3.4e12)}
	if withCapOnly.IsEmpty() {
		t.Error("snapshot with any field must not be empty")
	}
}
