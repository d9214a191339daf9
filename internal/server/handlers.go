package server

import (
	"context"
	"net/http"

	"github.com/bobmcallan/finsilio/internal/common"
	"github.com/bobmcallan/finsilio/internal/models"
)

// handleRoot responds to GET / with a running confirmation.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Finsilio Interactive Bot is running!",
	})
}

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleTelegramWebhook receives updates from Telegram. Updates that carry a
// text message start one pipeline run; everything else is acknowledged and
// ignored. The response is always 200 {"status":"ok"} so Telegram does not
// re-deliver the update.
func (s *Server) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var upd models.TelegramUpdate
	if !DecodeJSON(w, r, &upd) {
		return
	}

	if upd.Message == nil || upd.Message.Text == "" {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	chatID := upd.Message.Chat.ID
	prompt := upd.Message.Text

	s.logger.Info().
		Int64("chat_id", chatID).
		Int64("update_id", upd.UpdateID).
		Msg("Webhook message received")

	// A run, once started, is never cancelled: it is detached from the
	// webhook request so that Telegram's short delivery timeout cannot
	// abort it mid-pipeline.
	go s.app.Pipeline.HandleMessage(context.Background(), chatID, prompt)

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
