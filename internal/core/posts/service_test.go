package posts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parishfeed/internal/events"
)

// Mock repository for testing
type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) Create(ctx context.Context, post *Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*Post, error) {
	args := m.Called(ctx, authorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *mockPostRepository) ListVisible(ctx context.Context, limit, offset int) ([]*Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *mockPostRepository) UpdateVisibility(ctx context.Context, id string, visibility Visibility, expectedVersion int) error {
	args := m.Called(ctx, id, visibility, expectedVersion)
	return args.Error(0)
}

func (m *mockPostRepository) UpdateDonation(ctx context.Context, id string, enabled bool, goal *int64) error {
	args := m.Called(ctx, id, enabled, goal)
	return args.Error(0)
}

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) IsSuperAdmin(ctx context.Context, actorID string) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthorizer) HasPayoutDestination(ctx context.Context, actorID string) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

func TestCreatePost_EventRequiresTitleAndStart(t *testing.T) {
	service := NewService(new(mockPostRepository), new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.CreatePost(context.Background(), CreatePostRequest{
		AuthorID: "manager-1",
		Type:     TypeEvent,
		Content:  "Easter vigil",
	})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreatePost_PhotoRequiresImageRefs(t *testing.T) {
	service := NewService(new(mockPostRepository), new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.CreatePost(context.Background(), CreatePostRequest{
		AuthorID: "manager-1",
		Type:     TypePhoto,
	})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreatePost_GeneralRequiresContent(t *testing.T) {
	service := NewService(new(mockPostRepository), new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.CreatePost(context.Background(), CreatePostRequest{
		AuthorID: "manager-1",
		Type:     TypeGeneral,
		Content:  "   ",
	})

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreatePost_PublishesEvent(t *testing.T) {
	repo := new(mockPostRepository)
	publisher := new(mockPublisher)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Post) bool {
		return p.Visibility == VisibilityPublished && p.ID != ""
	})).Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Kind == events.KindPostCreated && e.AudienceID == "manager-1"
	})).Once()

	service := NewService(repo, new(mockAuthorizer), publisher, nil)

	starts := time.Now().Add(48 * time.Hour)
	post, err := service.CreatePost(context.Background(), CreatePostRequest{
		AuthorID:      "manager-1",
		Type:          TypeEvent,
		EventTitle:    "Easter Vigil",
		EventLocation: "Main sanctuary",
		EventStartsAt: &starts,
	})

	require.NoError(t, err)
	assert.Equal(t, VisibilityPublished, post.Visibility)
	assert.Equal(t, "manager-1", post.AuthorID)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestEnableDonation_RequiresOwnership(t *testing.T) {
	repo := new(mockPostRepository)
	repo.On("GetByID", mock.Anything, "post-1").Return(&Post{
		ID:       "post-1",
		AuthorID: "manager-1",
	}, nil)

	service := NewService(repo, new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.EnableDonation(context.Background(), "post-1", "someone-else", nil)

	assert.ErrorIs(t, err, ErrNotPostAuthor)
}

func TestEnableDonation_RequiresPayoutDestination(t *testing.T) {
	repo := new(mockPostRepository)
	authorizer := new(mockAuthorizer)

	repo.On("GetByID", mock.Anything, "post-1").Return(&Post{
		ID:       "post-1",
		AuthorID: "manager-1",
	}, nil)
	authorizer.On("HasPayoutDestination", mock.Anything, "manager-1").Return(false, nil)

	service := NewService(repo, authorizer, new(mockPublisher), nil)

	_, err := service.EnableDonation(context.Background(), "post-1", "manager-1", nil)

	assert.ErrorIs(t, err, ErrPayoutUnset)
}

func TestEnableDonation_SetsGoal(t *testing.T) {
	repo := new(mockPostRepository)
	authorizer := new(mockAuthorizer)
	goal := int64(50000)

	repo.On("GetByID", mock.Anything, "post-1").Return(&Post{
		ID:       "post-1",
		AuthorID: "manager-1",
	}, nil)
	authorizer.On("HasPayoutDestination", mock.Anything, "manager-1").Return(true, nil)
	repo.On("UpdateDonation", mock.Anything, "post-1", true, &goal).Return(nil)

	service := NewService(repo, authorizer, new(mockPublisher), nil)

	post, err := service.EnableDonation(context.Background(), "post-1", "manager-1", &goal)

	require.NoError(t, err)
	assert.True(t, post.DonationEnabled)
	require.NotNil(t, post.DonationGoal)
	assert.Equal(t, goal, *post.DonationGoal)
	repo.AssertExpectations(t)
}

func TestEnableDonation_RejectsNonPositiveGoal(t *testing.T) {
	service := NewService(new(mockPostRepository), new(mockAuthorizer), new(mockPublisher), nil)
	goal := int64(-5)

	_, err := service.EnableDonation(context.Background(), "post-1", "manager-1", &goal)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestSetVisibility_PropagatesVersionConflict(t *testing.T) {
	repo := new(mockPostRepository)
	repo.On("UpdateVisibility", mock.Anything, "post-1", VisibilityWarned, 3).Return(ErrVersionConflict)

	service := NewService(repo, new(mockAuthorizer), new(mockPublisher), nil)

	err := service.SetVisibility(context.Background(), "post-1", VisibilityWarned, 3)

	assert.ErrorIs(t, err, ErrVersionConflict)
}
