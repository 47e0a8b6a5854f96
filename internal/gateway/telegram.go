package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// Telegram implements Gateway against the Telegram Bot API.
type Telegram struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewTelegram(baseURL, token string) *Telegram {
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return &Telegram{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			// Long polls ask for up to 30s, leave headroom on top.
			Timeout: 50 * time.Second,
		},
	}
}

// Wire types, trimmed to the fields the engine reads.

type tgUser struct {
	Id        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tgChat struct {
	Id int64 `json:"id"`
}

type tgPhotoSize struct {
	FileId string `json:"file_id"`
}

type tgMessage struct {
	MessageId int64         `json:"message_id"`
	From      *tgUser       `json:"from"`
	Chat      tgChat        `json:"chat"`
	Text      string        `json:"text"`
	Photo     []tgPhotoSize `json:"photo"`
}

type tgCallbackQuery struct {
	Id      string     `json:"id"`
	From    tgUser     `json:"from"`
	Message *tgMessage `json:"message"`
	Data    string     `json:"data"`
}

type tgUpdate struct {
	UpdateId      int64            `json:"update_id"`
	Message       *tgMessage       `json:"message"`
	CallbackQuery *tgCallbackQuery `json:"callback_query"`
}

type tgResponse struct {
	Ok          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type tgInlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type tgInlineKeyboardMarkup struct {
	InlineKeyboard [][]tgInlineKeyboardButton `json:"inline_keyboard"`
}

func (t *Telegram) call(ctx context.Context, method string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var apiResp tgResponse
	if err := json.Unmarshal(respBytes, &apiResp); err != nil {
		return fmt.Errorf("telegram: malformed response for %s: %w", method, err)
	}
	if !apiResp.Ok {
		return fmt.Errorf("telegram: %s failed: %s", method, apiResp.Description)
	}
	if result != nil {
		return json.Unmarshal(apiResp.Result, result)
	}
	return nil
}

func (t *Telegram) SendMessage(ctx context.Context, chatId int64, text string) error {
	return t.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id": chatId,
		"text":    text,
	}, nil)
}

func (t *Telegram) SendButtons(ctx context.Context, chatId int64, text string, buttons [][]Button) error {
	markup := tgInlineKeyboardMarkup{}
	for _, row := range buttons {
		var keyboardRow []tgInlineKeyboardButton
		for _, b := range row {
			keyboardRow = append(keyboardRow, tgInlineKeyboardButton{Text: b.Text, CallbackData: b.Data})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, keyboardRow)
	}
	return t.call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":      chatId,
		"text":         text,
		"reply_markup": markup,
	}, nil)
}

func (t *Telegram) ForwardMessage(ctx context.Context, toChatId, fromChatId, messageId int64) error {
	return t.call(ctx, "forwardMessage", map[string]interface{}{
		"chat_id":      toChatId,
		"from_chat_id": fromChatId,
		"message_id":   messageId,
	}, nil)
}

func (t *Telegram) EditMessageText(ctx context.Context, chatId, messageId int64, text string) error {
	return t.call(ctx, "editMessageText", map[string]interface{}{
		"chat_id":    chatId,
		"message_id": messageId,
		"text":       text,
	}, nil)
}

func (t *Telegram) AnswerCallback(ctx context.Context, callbackId, text string) error {
	payload := map[string]interface{}{
		"callback_query_id": callbackId,
	}
	if text != "" {
		payload["text"] = text
	}
	return t.call(ctx, "answerCallbackQuery", payload, nil)
}

// GetUpdates long-polls the platform for the next batch of inbound events.
// Returns the raw platform updates so the poller can track offsets.
func (t *Telegram) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]tgUpdate, error) {
	var updates []tgUpdate
	err := t.call(ctx, "getUpdates", map[string]interface{}{
		"offset":  offset,
		"timeout": timeoutSeconds,
	}, &updates)
	if err != nil {
		return nil, err
	}
	return updates, nil
}

func mapUpdate(u tgUpdate) *Update {
	if u.Message != nil && u.Message.From != nil {
		return &Update{
			Message: &Message{
				MessageId: u.Message.MessageId,
				From: Sender{
					Id:        u.Message.From.Id,
					Username:  u.Message.From.Username,
					FirstName: u.Message.From.FirstName,
					LastName:  u.Message.From.LastName,
				},
				Text:     u.Message.Text,
				HasPhoto: len(u.Message.Photo) > 0,
			},
		}
	}
	if u.CallbackQuery != nil {
		cb := &Callback{
			Id: u.CallbackQuery.Id,
			From: Sender{
				Id:        u.CallbackQuery.From.Id,
				Username:  u.CallbackQuery.From.Username,
				FirstName: u.CallbackQuery.From.FirstName,
				LastName:  u.CallbackQuery.From.LastName,
			},
			Data: u.CallbackQuery.Data,
		}
		if u.CallbackQuery.Message != nil {
			cb.MessageId = u.CallbackQuery.Message.MessageId
		}
		return &Update{Callback: cb}
	}
	return nil
}

// DecodeUpdate parses one platform update delivered over the webhook intake.
func DecodeUpdate(body []byte) (*Update, error) {
	var raw tgUpdate
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	mapped := mapUpdate(raw)
	if mapped == nil {
		return nil, fmt.Errorf("gateway: update carries no message or callback")
	}
	return mapped, nil
}
