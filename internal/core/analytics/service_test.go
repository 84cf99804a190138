package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/posts"
)

// Mock repositories for testing
type mockViewRepository struct {
	mock.Mock
}

func (m *mockViewRepository) RecordView(ctx context.Context, postID, fingerprint string, day time.Time) (bool, error) {
	args := m.Called(ctx, postID, fingerprint, day)
	return args.Bool(0), args.Error(1)
}

func (m *mockViewRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockPostGetter struct {
	mock.Mock
}

func (m *mockPostGetter) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

type mockInteractionCounter struct {
	mock.Mock
}

func (m *mockInteractionCounter) Counts(ctx context.Context, subjectType interactions.SubjectType, subjectID string) (*interactions.Counts, error) {
	args := m.Called(ctx, subjectType, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interactions.Counts), args.Error(1)
}

type mockCommentCounter struct {
	mock.Mock
}

func (m *mockCommentCounter) CountByPost(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func TestRecordView_BucketsToUTCDay(t *testing.T) {
	repo := new(mockViewRepository)
	postGetter := new(mockPostGetter)

	postGetter.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		Visibility: posts.VisibilityPublished,
	}, nil)

	// 23:30 in UTC+2 is 21:30 UTC, so the bucket is that same UTC day
	loc := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2026, 7, 14, 23, 30, 0, 0, loc)
	wantDay := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	repo.On("RecordView", mock.Anything, "post-1", "viewer-1", wantDay).Return(true, nil)

	service := NewService(repo, postGetter, new(mockInteractionCounter), new(mockCommentCounter), nil)

	err := service.RecordView(context.Background(), "post-1", "viewer-1", at)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordView_DuplicateIsSilentNoOp(t *testing.T) {
	repo := new(mockViewRepository)
	postGetter := new(mockPostGetter)

	postGetter.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		Visibility: posts.VisibilityPublished,
	}, nil)
	repo.On("RecordView", mock.Anything, "post-1", "viewer-1", mock.Anything).Return(false, nil)

	service := NewService(repo, postGetter, new(mockInteractionCounter), new(mockCommentCounter), nil)

	err := service.RecordView(context.Background(), "post-1", "viewer-1", time.Now())
	assert.NoError(t, err)
}

func TestRecordView_EmptyFingerprintIgnored(t *testing.T) {
	repo := new(mockViewRepository)

	service := NewService(repo, new(mockPostGetter), new(mockInteractionCounter), new(mockCommentCounter), nil)

	err := service.RecordView(context.Background(), "post-1", "", time.Now())
	require.NoError(t, err)
	repo.AssertNotCalled(t, "RecordView", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordView_RemovedPostNotFound(t *testing.T) {
	postGetter := new(mockPostGetter)
	postGetter.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		Visibility: posts.VisibilityRemoved,
	}, nil)

	service := NewService(new(mockViewRepository), postGetter, new(mockInteractionCounter), new(mockCommentCounter), nil)

	err := service.RecordView(context.Background(), "post-1", "viewer-1", time.Now())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRecordView_WarnedPostStillCounts(t *testing.T) {
	repo := new(mockViewRepository)
	postGetter := new(mockPostGetter)

	postGetter.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		Visibility: posts.VisibilityWarned,
	}, nil)
	repo.On("RecordView", mock.Anything, "post-1", "viewer-1", mock.Anything).Return(true, nil)

	service := NewService(repo, postGetter, new(mockInteractionCounter), new(mockCommentCounter), nil)

	err := service.RecordView(context.Background(), "post-1", "viewer-1", time.Now())
	assert.NoError(t, err)
}

func TestMetricsFor_ComposesEngagementRate(t *testing.T) {
	postGetter := new(mockPostGetter)
	ledger := new(mockInteractionCounter)
	comments := new(mockCommentCounter)

	postGetter.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		Visibility: posts.VisibilityPublished,
		ViewCount:  200,
	}, nil)
	ledger.On("Counts", mock.Anything, interactions.SubjectPost, "post-1").
		Return(&interactions.Counts{Likes: 30, Bookmarks: 5, Shares: 10}, nil)
	comments.On("CountByPost", mock.Anything, "post-1").Return(int64(10), nil)

	service := NewService(new(mockViewRepository), postGetter, ledger, comments, nil)

	metrics, err := service.MetricsFor(context.Background(), "post-1")
	require.NoError(t, err)

	assert.Equal(t, int64(200), metrics.Views)
	assert.Equal(t, int64(30), metrics.Likes)
	assert.Equal(t, int64(10), metrics.Comments)
	assert.Equal(t, int64(10), metrics.Shares)
	// (30 + 10 + 10) / 200; bookmarks are excluded from the rate
	assert.InDelta(t, 0.25, metrics.EngagementRate, 1e-9)
}

func TestMetricsFor_ZeroViewsDividesByOne(t *testing.T) {
	postGetter := new(mockPostGetter)
	ledger := new(mockInteractionCounter)
	comments := new(mockCommentCounter)

	postGetter.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		Visibility: posts.VisibilityPublished,
		ViewCount:  0,
	}, nil)
	ledger.On("Counts", mock.Anything, interactions.SubjectPost, "post-1").
		Return(&interactions.Counts{Likes: 3}, nil)
	comments.On("CountByPost", mock.Anything, "post-1").Return(int64(1), nil)

	service := NewService(new(mockViewRepository), postGetter, ledger, comments, nil)

	metrics, err := service.MetricsFor(context.Background(), "post-1")
	require.NoError(t, err)

	assert.Equal(t, int64(0), metrics.Views)
	assert.InDelta(t, 4.0, metrics.EngagementRate, 1e-9)
}

func TestMetricsFor_MissingPost(t *testing.T) {
	postGetter := new(mockPostGetter)
	postGetter.On("GetByID", mock.Anything, "nope").Return(nil, posts.ErrPostNotFound)

	service := NewService(new(mockViewRepository), postGetter, new(mockInteractionCounter), new(mockCommentCounter), nil)

	_, err := service.MetricsFor(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSweepExpired_KeepsCurrentAndPreviousBucket(t *testing.T) {
	repo := new(mockViewRepository)

	repo.On("DeleteBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		today := time.Now().UTC().Truncate(DedupWindow)
		return cutoff.Equal(today.Add(-DedupWindow))
	})).Return(int64(42), nil)

	service := NewService(repo, new(mockPostGetter), new(mockInteractionCounter), new(mockCommentCounter), nil)

	swept, err := service.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), swept)
}
