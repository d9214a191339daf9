package models

import "time"

// MarketSnapshot is a point-in-time set of price and valuation fields for a
// ticker. Individual fields are nil when the provider did not supply them;
// a snapshot with no fields at all is treated as a failed fetch.
type MarketSnapshot struct {
	Ticker        string
	LastPrice     *float64
	PreviousClose *float64
	DayHigh       *float64
	DayLow        *float64
	YearHigh      *float64
	YearLow       *float64
	MarketCap     *float64
	FetchedAt     time.Time
}

// IsEmpty reports whether the snapshot carries no usable price fields.
// A nil snapshot is empty.
func (s *MarketSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.LastPrice == nil &&
		s.PreviousClose == nil &&
		s.DayHigh == nil &&
		s.DayLow == nil &&
		s.YearHigh == nil &&
		s.YearLow == nil &&
		s.MarketCap == nil
}

// NewsItem is a single news article reference for a ticker.
type NewsItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   string    `json:"sentiment,omitempty"`
}

// Float64Ptr returns a pointer to v. Convenience for building snapshots.
func Float64Ptr(v float64) *float64 {
	return &v
}
