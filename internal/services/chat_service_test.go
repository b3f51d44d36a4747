package services

import (
	"context"
	"strings"
	"testing"

	"rentride/internal/models"
	"rentride/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatFixture struct {
	service  ChatService
	chats    *fakeChatRepo
	users    *fakeUserRepo
	notifier *recordingNotifier

	alice *models.User
	bob   *models.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	chats := newFakeChatRepo()
	users := newFakeUserRepo()
	notifier := &recordingNotifier{}

	alice := &models.User{Name: "Alice", Email: "alice@example.com"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, users.Create(context.Background(), alice))
	require.NoError(t, users.Create(context.Background(), bob))

	return &chatFixture{
		service:  NewChatService(chats, users, notifier, testLogger()),
		chats:    chats,
		users:    users,
		notifier: notifier,
		alice:    alice,
		bob:      bob,
	}
}

func TestResolveChatIDCommutative(t *testing.T) {
	f := newChatFixture(t)

	ab := f.service.ResolveChatID(f.alice.ID, f.bob.ID)
	ba := f.service.ResolveChatID(f.bob.ID, f.alice.ID)

	assert.Equal(t, ab, ba)
	assert.Contains(t, ab, utils.ChatIDSeparator)

	// The lexicographically smaller hex comes first.
	parts := strings.SplitN(ab, utils.ChatIDSeparator, 2)
	require.Len(t, parts, 2)
	assert.LessOrEqual(t, parts[0], parts[1])
}

func TestEnsureChatIdempotent(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	// Send something so the chat row carries state that re-opening must
	// not wipe.
	_, err = f.service.SendMessage(ctx, f.alice.ID, first.ID, &models.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	again, err := f.service.EnsureChat(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "hello", again.LastMessage)
}

func TestEnsureChatRejectsSelf(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.EnsureChat(context.Background(), f.alice.ID, f.alice.ID)
	assert.ErrorIs(t, err, ErrSelfChat)
}

func TestEnsureChatUnknownOther(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.EnsureChat(context.Background(), f.alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	message, err := f.service.SendMessage(ctx, f.alice.ID, chat.ID, &models.SendMessageRequest{Content: "see you at 9"})
	require.NoError(t, err)

	assert.Equal(t, models.MessageTypeText, message.Type)
	assert.False(t, message.ID.IsZero())
	assert.False(t, message.CreatedAt.IsZero())

	// The chat preview is updated.
	stored, err := f.chats.GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "see you at 9", stored.LastMessage)

	// One push into the chat room, one list nudge per participant.
	assert.Len(t, f.notifier.eventsOfType(utils.EventChatMessage), 1)
	assert.Len(t, f.notifier.eventsOfType(utils.EventChatUpdated), 2)
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	outsider := &models.User{Name: "Mallory", Email: "mallory@example.com"}
	require.NoError(t, f.users.Create(ctx, outsider))

	_, err = f.service.SendMessage(ctx, outsider.ID, chat.ID, &models.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSendMessageRejectsOverlongContent(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.SendMessage(ctx, f.alice.ID, chat.ID, &models.SendMessageRequest{
		Content: strings.Repeat("a", utils.MaxMessageLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendMessageUnknownChat(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.SendMessage(context.Background(), f.alice.ID, "missing_chat", &models.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMessagesOrderAndAccess(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := f.service.SendMessage(ctx, f.alice.ID, chat.ID, &models.SendMessageRequest{Content: content})
		require.NoError(t, err)
	}

	// Newest first.
	messages, total, err := f.service.GetMessages(ctx, f.bob.ID, chat.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, messages, 3)
	assert.Equal(t, "three", messages[0].Content)
	assert.Equal(t, "one", messages[2].Content)

	_, _, err = f.service.GetMessages(ctx, primitive.NewObjectID(), chat.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetUserChatsIncludesOtherProfile(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	summaries, total, err := f.service.GetUserChats(ctx, f.alice.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].Other)
	assert.Equal(t, f.bob.Name, summaries[0].Other.Name)
}

func TestLogCall(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	chat, err := f.service.EnsureChat(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	message, err := f.service.LogCall(ctx, f.alice.ID, &models.LogCallRequest{
		ChatID:  chat.ID,
		Outcome: models.CallOutcomeMissed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeCall, message.Type)
	assert.Equal(t, string(models.CallOutcomeMissed), message.Content)
}

func TestLogCallRejectsUnknownOutcome(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.LogCall(context.Background(), f.alice.ID, &models.LogCallRequest{
		ChatID:  "whatever",
		Outcome: "Video Call",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetPresence(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SetPresence(ctx, f.alice.ID, true))

	stored, err := f.users.GetByID(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOnline)

	require.NoError(t, f.service.SetPresence(ctx, f.alice.ID, false))

	stored, err = f.users.GetByID(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOnline)
	require.NotNil(t, stored.LastSeenAt)

	assert.Len(t, f.notifier.eventsOfType(utils.EventPresence), 2)
}
