package slack

import (
	"context"

	"github.com/stretchr/testify/mock"

	"threadscan/clients"
)

// MockSlackClient implements the clients.SlackClient interface for testing
type MockSlackClient struct {
	mock.Mock
}

// AuthTest mocks the auth.test call
func (m *MockSlackClient) AuthTest() (*clients.SlackAuthTestResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackAuthTestResponse), args.Error(1)
}

// GetConversationReplies mocks fetching the replies of a thread
func (m *MockSlackClient) GetConversationReplies(
	ctx context.Context,
	params clients.SlackConversationRepliesParameters,
) ([]clients.SlackMessage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.SlackMessage), args.Error(1)
}

// PostMessage mocks posting a message to a channel
func (m *MockSlackClient) PostMessage(
	ctx context.Context,
	channelID string,
	params clients.SlackMessageParams,
) (*clients.SlackPostMessageResponse, error) {
	args := m.Called(ctx, channelID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.SlackPostMessageResponse), args.Error(1)
}

// PostEphemeral mocks posting an ephemeral message to a user
func (m *MockSlackClient) PostEphemeral(
	ctx context.Context,
	channelID, userID string,
	params clients.SlackMessageParams,
) error {
	args := m.Called(ctx, channelID, userID, params)
	return args.Error(0)
}

// UpdateMessage mocks editing a message in place
func (m *MockSlackClient) UpdateMessage(ctx context.Context, channelID, messageTS, text string) error {
	args := m.Called(ctx, channelID, messageTS, text)
	return args.Error(0)
}

// DeleteMessage mocks deleting a message
func (m *MockSlackClient) DeleteMessage(ctx context.Context, channelID, messageTS string) error {
	args := m.Called(ctx, channelID, messageTS)
	return args.Error(0)
}

// GetPermalink mocks generating a permalink for a message
func (m *MockSlackClient) GetPermalink(params *clients.SlackPermalinkParameters) (string, error) {
	args := m.Called(params)
	return args.String(0), args.Error(1)
}
