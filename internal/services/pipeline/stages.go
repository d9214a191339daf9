package pipeline

import (
	"context"
	"fmt"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/models"
)

// maxHeadlines caps the news headlines carried into analysis generation.
const maxHeadlines = 5

// Fixed user-facing messages. These are part of the bot's contract: tests
// and downstream consumers match on them.
const (
	rejectionMessage = "I'm sorry, I can only provide analysis for specific stocks and companies."

	noTickerMessage = "I could not identify a valid stock ticker in your request. " +
		"Please try again with a company name like 'Apple' or a ticker like 'AAPL'."

	priceUnavailableTemplate = "Sorry, I could not retrieve price data for %s. " +
		"The ticker might be invalid or the data source is unavailable."

	missingDataMessage = "An error occurred: Ticker or price data was not found."

	generationFailedMessage = "Error: Failed to generate AI analysis."

	emptyModelResponseMessage = "Error: The AI model returned no content."

	undeliverableMessage = "An unexpected error occurred."
)

// classifyIntent decides whether the prompt asks about a stock. A missing
// or failing classifier maps to OTHER: the pipeline fails closed toward
// rejection, never toward a false-positive analysis.
func (s *Service) classifyIntent(ctx context.Context, state *models.PipelineState, logger *common.Logger) update {
	intent := models.IntentOther

	if s.llm == nil {
		logger.Warn().Msg("LLM client not configured, treating intent as OTHER")
		return update{intent: &intent}
	}

	classified, err := s.llm.ClassifyIntent(ctx, state.Prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("Intent classification failed, treating as OTHER")
		return update{intent: &intent}
	}

	intent = classified
	logger.Debug().Str("intent", string(intent)).Msg("Intent classified")
	return update{intent: &intent}
}

// extractEntity pulls a company name or ticker out of the prompt. Failure
// and "nothing mentioned" both map to absent.
func (s *Service) extractEntity(ctx context.Context, state *models.PipelineState, logger *common.Logger) update {
	entity := models.Absent[string]()

	if s.llm == nil {
		return update{entity: &entity}
	}

	extracted, err := s.llm.ExtractEntity(ctx, state.Prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("Entity extraction failed")
		return update{entity: &entity}
	}
	if extracted == "" {
		logger.Debug().Msg("No entity found in prompt")
		return update{entity: &entity}
	}

	logger.Debug().Str("entity", extracted).Msg("Entity extracted")
	entity = models.Present(extracted)
	return update{entity: &entity}
}

// resolveTicker maps the extracted entity to an official ticker. When no
// entity was found the resolver is not consulted at all and the ticker is
// forced absent.
func (s *Service) resolveTicker(ctx context.Context, state *models.PipelineState, logger *common.Logger) update {
	ticker := models.Absent[string]()

	entity, ok := state.Entity.Get()
	if !ok {
		return update{ticker: &ticker}
	}

	if s.llm == nil {
		return update{ticker: &ticker}
	}

	resolved, err := s.llm.ResolveTicker(ctx, entity)
	if err != nil {
		logger.Warn().Err(err).Str("entity", entity).Msg("Ticker resolution failed")
		return update{ticker: &ticker}
	}
	if resolved == "" {
		logger.Debug().Str("entity", entity).Msg("No ticker found for entity")
		return update{ticker: &ticker}
	}

	logger.Debug().Str("entity", entity).Str("ticker", resolved).Msg("Entity resolved to ticker")
	ticker = models.Present(resolved)
	return update{ticker: &ticker}
}

// fetchMarketData retrieves the market snapshot and, when the snapshot is
// usable, the news headlines. A missing ticker or failed snapshot fetch
// short-circuits: the analysis field is set to a diagnostic message and the
// remaining acquisition work is skipped. News is best-effort and never
// blocks the run.
func (s *Service) fetchMarketData(ctx context.Context, state *models.PipelineState, logger *common.Logger) update {
	empty := &models.MarketSnapshot{}
	noHeadlines := []string{}

	ticker, ok := state.Ticker.Get()
	if !ok {
		analysis := models.Present(noTickerMessage)
		return update{snapshot: empty, headlines: &noHeadlines, analysis: &analysis}
	}

	var snapshot *models.MarketSnapshot
	if s.market != nil {
		fetched, err := s.market.GetSnapshot(ctx, ticker)
		if err != nil {
			logger.Warn().Err(err).Str("ticker", ticker).Msg("Market snapshot fetch failed")
		} else {
			snapshot = fetched
		}
	} else {
		logger.Warn().Msg("Market data client not configured")
	}

	if snapshot.IsEmpty() {
		analysis := models.Present(fmt.Sprintf(priceUnavailableTemplate, ticker))
		return update{snapshot: empty, headlines: &noHeadlines, analysis: &analysis}
	}

	logger.Debug().
		Str("ticker", ticker).
		Interface("snapshot", snapshot).
		Msg("Market snapshot fetched")

	headlines := s.fetchHeadlines(ctx, ticker, logger)
	return update{snapshot: snapshot, headlines: &headlines}
}

// fetchHeadlines returns up to maxHeadlines news titles for the ticker.
// Fetch failures yield an empty list.
func (s *Service) fetchHeadlines(ctx context.Context, ticker string, logger *common.Logger) []string {
	if s.news == nil {
		return []string{}
	}

	items, err := s.news.GetNews(ctx, ticker, maxHeadlines)
	if err != nil {
		logger.Warn().Err(err).Str("ticker", ticker).Msg("News fetch failed, continuing without headlines")
		return []string{}
	}

	headlines := make([]string, 0, maxHeadlines)
	for _, item := range items {
		if len(headlines) >= maxHeadlines {
			break
		}
		if item == nil || item.Title == "" {
			continue
		}
		headlines = append(headlines, item.Title)
	}

	logger.Debug().Str("ticker", ticker).Int("headlines", len(headlines)).Msg("News fetched")
	return headlines
}

// generateAnalysis asks the model for the final analysis. If an earlier
// short-circuit already set the analysis field this stage is a no-op.
func (s *Service) generateAnalysis(ctx context.Context, state *models.PipelineState, logger *common.Logger) update {
	if state.Analysis.IsPresent() {
		return update{}
	}

	ticker, ok := state.Ticker.Get()
	if !ok || state.Snapshot.IsEmpty() {
		analysis := models.Present(missingDataMessage)
		return update{analysis: &analysis}
	}

	if s.llm == nil {
		analysis := models.Present(generationFailedMessage)
		return update{analysis: &analysis}
	}

	text, err := s.llm.GenerateAnalysis(ctx, ticker, state.Snapshot, state.Headlines)
	if err != nil {
		logger.Warn().Err(err).Str("ticker", ticker).Msg("Analysis generation failed")
		analysis := models.Present(generationFailedMessage)
		return update{analysis: &analysis}
	}
	if text == "" {
		analysis := models.Present(emptyModelResponseMessage)
		return update{analysis: &analysis}
	}

	logger.Debug().Str("ticker", ticker).Int("length", len(text)).Msg("Analysis generated")
	analysis := models.Present(text)
	return update{analysis: &analysis}
}

// sendResponse delivers the analysis (or whatever diagnostic the state
// carries) to the originating chat.
func (s *Service) sendResponse(ctx context.Context, state *models.PipelineState, logger *common.Logger) {
	s.dispatch(ctx, state.ChatID, state.Analysis.OrElse(undeliverableMessage), logger)
}

// sendRejection delivers the fixed rejection message.
func (s *Service) sendRejection(ctx context.Context, state *models.PipelineState, logger *common.Logger) {
	s.dispatch(ctx, state.ChatID, rejectionMessage, logger)
}

// dispatch makes the single best-effort delivery call that terminates every
// run. Failures are logged and never retried: there is no channel back to
// the user once delivery itself fails.
func (s *Service) dispatch(ctx context.Context, chatID int64, text string, logger *common.Logger) {
	if s.messenger == nil {
		logger.Error().Msg("Messenger client not configured, message dropped")
		return
	}

	if err := s.messenger.SendMessage(ctx, chatID, text); err != nil {
		logger.Error().Err(err).Msg("Message delivery failed")
		return
	}

	logger.Debug().Msg("Message delivered")
}
