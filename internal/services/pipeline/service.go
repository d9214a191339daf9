// Package pipeline implements the stock-analysis orchestration pipeline.
//
// One inbound chat message becomes one pipeline run: classify the intent,
// route, resolve the company to a ticker, fetch market data and news,
// generate an analysis, and deliver it. Collaborator failures never abort a
// run; each stage converts them into state fields so that every run ends in
// exactly one delivery attempt.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/interfaces"
	"github.com/bobmcallan/finsilio/internal/models"
)

// Service implements PipelineService
type Service struct {
	llm       interfaces.LLMClient
	market    interfaces.MarketDataClient
	news      interfaces.NewsClient
	messenger interfaces.MessengerClient
	logger    *common.Logger
}

// NewService creates a new pipeline service. Any collaborator may be nil
// when its configuration is missing; the corresponding stage then follows
// its failure mapping instead of calling out.
func NewService(
	llm interfaces.LLMClient,
	market interfaces.MarketDataClient,
	news interfaces.NewsClient,
	messenger interfaces.MessengerClient,
	logger *common.Logger,
) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		llm:       llm,
		market:    market,
		news:      news,
		messenger: messenger,
		logger:    logger,
	}
}

// update is the partial state change produced by one stage. Nil fields are
// left untouched by merge; there is no field removal.
type update struct {
	intent    *models.Intent
	entity    *models.Optional[string]
	ticker    *models.Optional[string]
	snapshot  *models.MarketSnapshot
	headlines *[]string
	analysis  *models.Optional[string]
}

// merge applies a stage's partial update to the running state.
func merge(state *models.PipelineState, u update) {
	if u.intent != nil {
		state.Intent = *u.intent
	}
	if u.entity != nil {
		state.Entity = *u.entity
	}
	if u.ticker != nil {
		state.Ticker = *u.ticker
	}
	if u.snapshot != nil {
		state.Snapshot = u.snapshot
	}
	if u.headlines != nil {
		state.Headlines = *u.headlines
	}
	if u.analysis != nil {
		// Passthrough invariant: an analysis or error message already in
		// the state is final.
		if !state.Analysis.IsPresent() {
			state.Analysis = *u.analysis
		}
	}
}

// HandleMessage runs the full pipeline for one inbound message. It never
// returns an error: every run terminates with exactly one delivery attempt,
// carrying either an analysis, a diagnostic, or the fixed rejection text.
func (s *Service) HandleMessage(ctx context.Context, chatID int64, prompt string) {
	runID := uuid.New().String()[:8]
	runLogger := &common.Logger{Logger: s.logger.With().
		Str("run_id", runID).
		Int64("chat_id", chatID).
		Logger()}

	runLogger.Info().Msg("Pipeline run started")

	state := models.NewPipelineState(chatID, prompt)

	merge(state, s.classifyIntent(ctx, state, runLogger))

	if routeByIntent(state.Intent) == routeReject {
		s.sendRejection(ctx, state, runLogger)
		runLogger.Info().Str("intent", string(state.Intent)).Msg("Pipeline run finished (rejected)")
		return
	}

	merge(state, s.extractEntity(ctx, state, runLogger))
	merge(state, s.resolveTicker(ctx, state, runLogger))
	merge(state, s.fetchMarketData(ctx, state, runLogger))
	merge(state, s.generateAnalysis(ctx, state, runLogger))

	s.sendResponse(ctx, state, runLogger)

	runLogger.Info().
		Str("ticker", state.Ticker.OrElse("")).
		Int("headlines", len(state.Headlines)).
		Msg("Pipeline run finished")
}

// Ensure Service implements PipelineService
var _ interfaces.PipelineService = (*Service)(nil)
