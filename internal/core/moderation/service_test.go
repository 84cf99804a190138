package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parishfeed/internal/core/posts"
	"parishfeed/internal/events"
)

// Mock repositories for testing
type mockReportRepository struct {
	mock.Mock
}

func (m *mockReportRepository) Create(ctx context.Context, report *Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Report), args.Error(1)
}

func (m *mockReportRepository) ListPending(ctx context.Context, limit, offset int) ([]*Report, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Report), args.Error(1)
}

func (m *mockReportRepository) Resolve(ctx context.Context, reportID, resolverID string, resolution Resolution) (*Report, error) {
	args := m.Called(ctx, reportID, resolverID, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Report), args.Error(1)
}

type mockPostStore struct {
	mock.Mock
}

func (m *mockPostStore) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *mockPostStore) UpdateVisibility(ctx context.Context, id string, visibility posts.Visibility, expectedVersion int) error {
	args := m.Called(ctx, id, visibility, expectedVersion)
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

func publishedPost(id, authorID string, version int) *posts.Post {
	return &posts.Post{ID: id, AuthorID: authorID, Visibility: posts.VisibilityPublished, Version: version}
}

func pendingReport(id, postID string) *Report {
	return &Report{
		ID:         id,
		PostID:     postID,
		ReporterID: "reporter-1",
		Reason:     ReasonSpam,
		Status:     StatusPending,
		Resolution: ResolutionNone,
		CreatedAt:  time.Now().UTC(),
	}
}

func resolvedReport(id, postID string, resolution Resolution) *Report {
	r := pendingReport(id, postID)
	r.Status = StatusResolved
	r.Resolution = resolution
	resolver := "admin-1"
	now := time.Now().UTC()
	r.ResolverID = &resolver
	r.ResolvedAt = &now
	return r
}

func TestFileReport_StoresPending(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)

	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *Report) bool {
		return r.PostID == "post-1" && r.Status == StatusPending && r.Resolution == ResolutionNone
	})).Return(nil)

	service := NewService(repo, postStore, new(mockAuthorizer), new(mockPublisher), nil)

	report, err := service.FileReport(context.Background(), FileReportRequest{
		PostID:     "post-1",
		ReporterID: "user-1",
		Reason:     ReasonSpam,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, report.Status)
	repo.AssertExpectations(t)
}

func TestFileReport_InvalidReason(t *testing.T) {
	service := NewService(new(mockReportRepository), new(mockPostStore), new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.FileReport(context.Background(), FileReportRequest{
		PostID:     "post-1",
		ReporterID: "user-1",
		Reason:     Reason("rude"),
	})

	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestFileReport_OwnPostForbidden(t *testing.T) {
	postStore := new(mockPostStore)
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil)

	service := NewService(new(mockReportRepository), postStore, new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.FileReport(context.Background(), FileReportRequest{
		PostID:     "post-1",
		ReporterID: "manager-1",
		Reason:     ReasonOther,
	})

	assert.ErrorIs(t, err, ErrOwnPost)
}

func TestFileReport_RemovedPostConflict(t *testing.T) {
	postStore := new(mockPostStore)
	postStore.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		AuthorID:   "manager-1",
		Visibility: posts.VisibilityRemoved,
	}, nil)

	service := NewService(new(mockReportRepository), postStore, new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.FileReport(context.Background(), FileReportRequest{
		PostID:     "post-1",
		ReporterID: "user-1",
		Reason:     ReasonSpam,
	})

	assert.ErrorIs(t, err, ErrPostRemoved)
}

func TestFileReport_WarnedPostStillReportable(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)

	postStore.On("GetByID", mock.Anything, "post-1").Return(&posts.Post{
		ID:         "post-1",
		AuthorID:   "manager-1",
		Visibility: posts.VisibilityWarned,
	}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, postStore, new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.FileReport(context.Background(), FileReportRequest{
		PostID:     "post-1",
		ReporterID: "user-1",
		Reason:     ReasonMisleading,
	})

	assert.NoError(t, err)
}

func TestQueue_RequiresAuthority(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("IsSuperAdmin", mock.Anything, "user-1").Return(false, nil)

	service := NewService(new(mockReportRepository), new(mockPostStore), authorizer, new(mockPublisher), nil)

	_, err := service.Queue(context.Background(), "user-1", 50, 0)
	assert.ErrorIs(t, err, ErrNotAuthority)
}

func TestResolve_RemoveTransitionsPost(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)
	publisher := new(mockPublisher)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-1").Return(pendingReport("report-1", "post-1"), nil)
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 3), nil)
	postStore.On("UpdateVisibility", mock.Anything, "post-1", posts.VisibilityRemoved, 3).Return(nil)
	repo.On("Resolve", mock.Anything, "report-1", "admin-1", ResolutionRemoved).
		Return(resolvedReport("report-1", "post-1", ResolutionRemoved), nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Kind == events.KindModerationDecided && e.AudienceID == "manager-1"
	})).Once()

	service := NewService(repo, postStore, authorizer, publisher, nil)

	resolved, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   DecisionRemove,
	})

	require.NoError(t, err)
	assert.Equal(t, ResolutionRemoved, resolved.Resolution)
	postStore.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestResolve_KeepLeavesVisibilityAlone(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)
	publisher := new(mockPublisher)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-1").Return(pendingReport("report-1", "post-1"), nil)
	repo.On("Resolve", mock.Anything, "report-1", "admin-1", ResolutionKept).
		Return(resolvedReport("report-1", "post-1", ResolutionKept), nil)
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Once()

	service := NewService(repo, postStore, authorizer, publisher, nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   DecisionKeep,
	})

	require.NoError(t, err)
	postStore.AssertNotCalled(t, "UpdateVisibility", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_WarnOnRemovedPostDoesNotResurrect(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)
	publisher := new(mockPublisher)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-2").Return(pendingReport("report-2", "post-1"), nil)

	// A concurrent remove already won; warn must not touch visibility.
	removed := &posts.Post{ID: "post-1", AuthorID: "manager-1", Visibility: posts.VisibilityRemoved, Version: 4}
	postStore.On("GetByID", mock.Anything, "post-1").Return(removed, nil)
	repo.On("Resolve", mock.Anything, "report-2", "admin-1", ResolutionWarned).
		Return(resolvedReport("report-2", "post-1", ResolutionWarned), nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Once()

	service := NewService(repo, postStore, authorizer, publisher, nil)

	resolved, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-2",
		ResolverID: "admin-1",
		Decision:   DecisionWarn,
	})

	require.NoError(t, err)
	assert.Equal(t, ResolutionWarned, resolved.Resolution)
	postStore.AssertNotCalled(t, "UpdateVisibility", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_LostClaimLeavesVisibilityUntouched(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-b").Return(true, nil)

	// Admin B reads the report while still pending, but admin A claims it
	// first. B's decision must fail without any visibility side effect.
	repo.On("GetByID", mock.Anything, "report-1").Return(pendingReport("report-1", "post-1"), nil)
	repo.On("Resolve", mock.Anything, "report-1", "admin-b", ResolutionWarned).
		Return(nil, ErrAlreadyResolved)

	service := NewService(repo, postStore, authorizer, new(mockPublisher), nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-b",
		Decision:   DecisionWarn,
	})

	assert.ErrorIs(t, err, ErrAlreadyResolved)
	postStore.AssertNotCalled(t, "UpdateVisibility", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	postStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestResolve_RemoveWinningMidTransitionSupersedes(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)
	publisher := new(mockPublisher)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-1").Return(pendingReport("report-1", "post-1"), nil)
	repo.On("Resolve", mock.Anything, "report-1", "admin-1", ResolutionWarned).
		Return(resolvedReport("report-1", "post-1", ResolutionWarned), nil)

	// The reload still sees the post published, but a remove lands before the
	// version-checked update. The warn resolves cleanly without resurrecting.
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil)
	postStore.On("UpdateVisibility", mock.Anything, "post-1", posts.VisibilityWarned, 1).
		Return(posts.ErrPostRemoved).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Once()

	service := NewService(repo, postStore, authorizer, publisher, nil)

	resolved, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   DecisionWarn,
	})

	require.NoError(t, err)
	assert.Equal(t, ResolutionWarned, resolved.Resolution)
	postStore.AssertExpectations(t)
}

func TestFileReport_RemoveRaceSurfacesConflict(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)

	// Visibility check passes, then the conditional insert finds the post
	// removed underneath it
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrPostRemoved)

	service := NewService(repo, postStore, new(mockAuthorizer), new(mockPublisher), nil)

	_, err := service.FileReport(context.Background(), FileReportRequest{
		PostID:     "post-1",
		ReporterID: "user-1",
		Reason:     ReasonSpam,
	})

	assert.ErrorIs(t, err, ErrPostRemoved)
}

func TestResolve_AlreadyResolved(t *testing.T) {
	repo := new(mockReportRepository)
	authorizer := new(mockAuthorizer)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-1").
		Return(resolvedReport("report-1", "post-1", ResolutionKept), nil)

	service := NewService(repo, new(mockPostStore), authorizer, new(mockPublisher), nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   DecisionRemove,
	})

	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolve_RequiresAuthority(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("IsSuperAdmin", mock.Anything, "user-1").Return(false, nil)

	service := NewService(new(mockReportRepository), new(mockPostStore), authorizer, new(mockPublisher), nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "user-1",
		Decision:   DecisionRemove,
	})

	assert.ErrorIs(t, err, ErrNotAuthority)
}

func TestResolve_InvalidDecision(t *testing.T) {
	authorizer := new(mockAuthorizer)
	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)

	service := NewService(new(mockReportRepository), new(mockPostStore), authorizer, new(mockPublisher), nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   Decision("escalate"),
	})

	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestResolve_RetriesVersionRace(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)
	publisher := new(mockPublisher)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-1").Return(pendingReport("report-1", "post-1"), nil)

	// First attempt loses the version race; the reload sees the bumped
	// version and the second attempt lands.
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil).Once()
	postStore.On("UpdateVisibility", mock.Anything, "post-1", posts.VisibilityWarned, 1).Return(posts.ErrVersionConflict).Once()
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 2), nil)
	postStore.On("UpdateVisibility", mock.Anything, "post-1", posts.VisibilityWarned, 2).Return(nil).Once()

	repo.On("Resolve", mock.Anything, "report-1", "admin-1", ResolutionWarned).
		Return(resolvedReport("report-1", "post-1", ResolutionWarned), nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Once()

	service := NewService(repo, postStore, authorizer, publisher, nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   DecisionWarn,
	})

	require.NoError(t, err)
	postStore.AssertExpectations(t)
}

func TestResolve_SurfacesConflictAfterExhaustedRetries(t *testing.T) {
	repo := new(mockReportRepository)
	postStore := new(mockPostStore)
	authorizer := new(mockAuthorizer)

	authorizer.On("IsSuperAdmin", mock.Anything, "admin-1").Return(true, nil)
	repo.On("GetByID", mock.Anything, "report-1").Return(pendingReport("report-1", "post-1"), nil)
	repo.On("Resolve", mock.Anything, "report-1", "admin-1", ResolutionWarned).
		Return(resolvedReport("report-1", "post-1", ResolutionWarned), nil)
	postStore.On("GetByID", mock.Anything, "post-1").Return(publishedPost("post-1", "manager-1", 1), nil)
	postStore.On("UpdateVisibility", mock.Anything, "post-1", posts.VisibilityWarned, 1).Return(posts.ErrVersionConflict)

	service := NewService(repo, postStore, authorizer, new(mockPublisher), nil)

	_, err := service.Resolve(context.Background(), ResolveRequest{
		ReportID:   "report-1",
		ResolverID: "admin-1",
		Decision:   DecisionWarn,
	})

	assert.ErrorIs(t, err, ErrVisibilityConflict)
}
