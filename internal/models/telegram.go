package models

// TelegramUpdate is the inbound webhook payload from the Telegram Bot API.
// Only the fields the bot consumes are declared; everything else in the
// update is ignored.
type TelegramUpdate struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message,omitempty"`
}

// TelegramMessage is the message portion of an update.
type TelegramMessage struct {
	MessageID int64        `json:"message_id"`
	Chat      TelegramChat `json:"chat"`
	Text      string       `json:"text,omitempty"`
}

// TelegramChat identifies the conversation a message belongs to.
type TelegramChat struct {
	ID int64 `json:"id"`
}
