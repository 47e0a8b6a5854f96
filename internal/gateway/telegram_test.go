package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUpdateMessage(t *testing.T) {
	body := []byte(`{
		"update_id": 10,
		"message": {
			"message_id": 55,
			"from": {"id": 42, "username": "someone", "first_name": "Some", "last_name": "One"},
			"chat": {"id": 42},
			"text": "/start"
		}
	}`)

	update, err := DecodeUpdate(body)
	require.NoError(t, err)
	require.NotNil(t, update.Message)
	assert.Nil(t, update.Callback)

	assert.Equal(t, int64(55), update.Message.MessageId)
	assert.Equal(t, int64(42), update.Message.From.Id)
	assert.Equal(t, "someone", update.Message.From.Username)
	assert.Equal(t, "/start", update.Message.Text)
	assert.False(t, update.Message.HasPhoto)
}

func TestDecodeUpdatePhotoMessage(t *testing.T) {
	body := []byte(`{
		"update_id": 11,
		"message": {
			"message_id": 56,
			"from": {"id": 42, "first_name": "Some"},
			"chat": {"id": 42},
			"photo": [{"file_id": "abc"}, {"file_id": "def"}]
		}
	}`)

	update, err := DecodeUpdate(body)
	require.NoError(t, err)
	require.NotNil(t, update.Message)
	assert.True(t, update.Message.HasPhoto)
	assert.Empty(t, update.Message.Text)
}

func TestDecodeUpdateCallback(t *testing.T) {
	body := []byte(`{
		"update_id": 12,
		"callback_query": {
			"id": "cb-1",
			"from": {"id": 99, "first_name": "Admin"},
			"message": {"message_id": 70, "chat": {"id": 99}},
			"data": "approve_42_8e5a52c1-1111-2222-3333-444455556666"
		}
	}`)

	update, err := DecodeUpdate(body)
	require.NoError(t, err)
	require.NotNil(t, update.Callback)
	assert.Nil(t, update.Message)

	assert.Equal(t, "cb-1", update.Callback.Id)
	assert.Equal(t, int64(99), update.Callback.From.Id)
	assert.Equal(t, int64(70), update.Callback.MessageId)
	assert.Equal(t, "approve_42_8e5a52c1-1111-2222-3333-444455556666", update.Callback.Data)
}

func TestDecodeUpdateRejectsEmptyAndMalformed(t *testing.T) {
	_, err := DecodeUpdate([]byte(`{"update_id": 13}`))
	assert.Error(t, err)

	_, err = DecodeUpdate([]byte(`not json`))
	assert.Error(t, err)
}
