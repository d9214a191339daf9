package finnhub

import (
	"testing"
	"time"

	finnhubapi "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

func strPtr(s string) *string { return &s }

func intPtr(i int64) *int64 { return &i }

func article(headline, url, source string, ts int64) finnhubapi.CompanyNews {
	return finnhubapi.CompanyNews{
		Headline: strPtr(headline),
		Url:      strPtr(url),
		Source:   strPtr(source),
		Datetime: intPtr(ts),
	}
}

func TestMapArticles(t *testing.T) {
	ts := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC).Unix()
	articles := []finnhubapi.CompanyNews{
		article("Apple unveils new chip", "https://example.com/1", "Reuters", ts),
		article("Apple supplier update", "https://example.com/2", "Bloomberg", ts),
	}

	news := mapArticles(articles, 5)

	if len(news) != 2 {
		t.Fatalf("expected 2 items, got %d", len(news))
	}
	if news[0].Title != "Apple unveils new chip" {
		t.Errorf("unexpected title: %q", news[0].Title)
	}
	if news[0].URL != "https://example.com/1" {
		t.Errorf("unexpected URL: %q", news[0].URL)
	}
	if news[0].Source != "Reuters" {
		t.Errorf("unexpected source: %q", news[0].Source)
	}
	if news[0].PublishedAt.Unix() != ts {
		t.Errorf("unexpected timestamp: %v", news[0].PublishedAt)
	}
}

func TestMapArticles_DropsEmptyHeadlines(t *testing.T) {
	articles := []finnhubapi.CompanyNews{
		article("", "https://example.com/1", "Reuters", 0),
		{Url: strPtr("https://example.com/2")},
		article("Real headline", "https://example.com/3", "Reuters", 0),
	}

	news := mapArticles(articles, 5)

	if len(news) != 1 {
		t.Fatalf("expected 1 item, got %d", len(news))
	}
	if news[0].Title != "Real headline" {
		t.Errorf("unexpected title: %q", news[0].Title)
	}
}

func TestMapArticles_CapsAtLimit(t *testing.T) {
	articles := make([]finnhubapi.CompanyNews, 10)
	for i := range articles {
		articles[i] = article("headline", "https://example.com", "src", 0)
	}

	news := mapArticles(articles, 3)

	if len(news) != 3 {
		t.Fatalf("expected 3 items, got %d", len(news))
	}
}

func TestMapArticles_Empty(t *testing.T) {
	if news := mapArticles(nil, 5); len(news) != 0 {
		t.Fatalf("expected no items, got %d", len(news))
	}
}
