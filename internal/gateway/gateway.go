package gateway

import "context"

// Button is one inline action control. Data carries the callback payload
// string decoded by the dto package.
type Button struct {
	Text string
	Data string
}

// Sender identifies the account behind an inbound message or button press.
type Sender struct {
	Id        int64
	Username  string
	FirstName string
	LastName  string
}

// Message is an inbound chat message. HasPhoto marks receipt-image uploads;
// the photo itself stays on the platform and is forwarded by message id.
type Message struct {
	MessageId int64
	From      Sender
	Text      string
	HasPhoto  bool
}

// Callback is an inbound button press. MessageId refers to the message that
// carried the button, so the control can be edited after a decision.
type Callback struct {
	Id        string
	From      Sender
	MessageId int64
	Data      string
}

// Update is one inbound event from the messaging platform. Exactly one of
// Message and Callback is set.
type Update struct {
	Message  *Message
	Callback *Callback
}

// Gateway is the outbound surface of the messaging platform. The engine
// never talks to the platform except through this interface.
type Gateway interface {
	SendMessage(ctx context.Context, chatId int64, text string) error
	SendButtons(ctx context.Context, chatId int64, text string, buttons [][]Button) error
	ForwardMessage(ctx context.Context, toChatId, fromChatId, messageId int64) error
	EditMessageText(ctx context.Context, chatId, messageId int64, text string) error
	AnswerCallback(ctx context.Context, callbackId, text string) error
}
