package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bobmcallan/finsilio/internal/models"
)

// callRecorder captures the order of collaborator calls across fakes.
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) record(name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *callRecorder) sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// --- fakes ---

type fakeLLM struct {
	recorder *callRecorder

	classifyCalls atomic.Int32
	extractCalls  atomic.Int32
	resolveCalls  atomic.Int32
	generateCalls atomic.Int32

	classifyFn func(ctx context.Context, prompt string) (models.Intent, error)
	extractFn  func(ctx context.Context, prompt string) (string, error)
	resolveFn  func(ctx context.Context, entity string) (string, error)
	generateFn func(ctx context.Context, ticker string, snapshot *models.MarketSnapshot, headlines []string) (string, error)
}

func (f *fakeLLM) ClassifyIntent(ctx context.Context, prompt string) (models.Intent, error) {
	f.classifyCalls.Add(1)
	f.recorder.record("classify")
	if f.classifyFn != nil {
		return f.classifyFn(ctx, prompt)
	}
	return models.IntentOther, nil
}

func (f *fakeLLM) ExtractEntity(ctx context.Context, prompt string) (string, error) {
	f.extractCalls.Add(1)
	f.recorder.record("extract")
	if f.extractFn != nil {
		return f.extractFn(ctx, prompt)
	}
	return "", nil
}

func (f *fakeLLM) ResolveTicker(ctx context.Context, entity string) (string, error) {
	f.resolveCalls.Add(1)
	f.recorder.record("resolve")
	if f.resolveFn != nil {
		return f.resolveFn(ctx, entity)
	}
	return "", nil
}

func (f *fakeLLM) GenerateAnalysis(ctx context.Context, ticker string, snapshot *models.MarketSnapshot, headlines []string) (string, error) {
	f.generateCalls.Add(1)
	f.recorder.record("generate")
	if f.generateFn != nil {
		return f.generateFn(ctx, ticker, snapshot, headlines)
	}
	return "generated analysis for " + ticker, nil
}

type fakeMarketData struct {
	recorder   *callRecorder
	calls      atomic.Int32
	snapshotFn func(ctx context.Context, ticker string) (*models.MarketSnapshot, error)
}

func (f *fakeMarketData) GetSnapshot(ctx context.Context, ticker string) (*models.MarketSnapshot, error) {
	f.calls.Add(1)
	f.recorder.record("snapshot")
	if f.snapshotFn != nil {
		return f.snapshotFn(ctx, ticker)
	}
	return makeTestSnapshot(ticker), nil
}

type fakeNews struct {
	recorder *callRecorder
	calls    atomic.Int32
	newsFn   func(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error)
}

func (f *fakeNews) GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error) {
	f.calls.Add(1)
	f.recorder.record("news")
	if f.newsFn != nil {
		return f.newsFn(ctx, ticker, limit)
	}
	return nil, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeMessenger struct {
	recorder *callRecorder
	mu       sync.Mutex
	sent     []sentMessage
	sendErr  error
}

func (f *fakeMessenger) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.recorder.record("send")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return f.sendErr
}

func (f *fakeMessenger) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

// --- helpers ---

func makeTestSnapshot(ticker string) *models.MarketSnapshot {
	return &models.MarketSnapshot{
		Ticker:        ticker,
		LastPrice:     models.Float64Ptr(227.52),
		PreviousClose: models.Float64Ptr(225.12),
		DayHigh:       models.Float64Ptr(229.87),
		DayLow:        models.Float64Ptr(224.83),
		YearHigh:      models.Float64Ptr(237.23),
		YearLow:       models.Float64Ptr(164.08),
		MarketCap:     models.Float64Ptr(3.46e12),
	}
}

func makeTestNews(titles ...string) []*models.NewsItem {
	items := make([]*models.NewsItem, len(titles))
	for i, title := range titles {
		items[i] = &models.NewsItem{Title: title}
	}
	return items
}
