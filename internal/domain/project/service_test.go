package project_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpggio/ccsearch/internal/domain/activity"
	"github.com/rpggio/ccsearch/internal/domain/project"
	"github.com/rpggio/ccsearch/internal/domain/record"
	"github.com/rpggio/ccsearch/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	snap  *project.Snapshot
	err   error
	calls atomic.Int32
	limit int
}

func (s *stubSource) Scan(_ context.Context, limit int) (*project.Snapshot, error) {
	s.calls.Add(1)
	s.limit = limit
	return s.snap, s.err
}

func sampleSnapshot() *project.Snapshot {
	return &project.Snapshot{
		Root:       "/logs",
		Limit:      30,
		Candidates: 3,
		LoadedAt:   time.Now(),
		Projects: []project.Project{
			{
				SourcePath:  "/logs/-src-web/a.jsonl",
				DisplayName: "-src-web",
				Records: []record.Record{
					record.User{
						Base:    record.Base{ID: "11111111-1111-1111-1111-111111111111", Timestamp: "t"},
						Message: record.UserMessage{Role: "user", Content: record.UserText("hello")},
					},
				},
			},
			{
				SourcePath:  "/logs/-src-api/b.jsonl",
				DisplayName: "-src-api",
				Records: []record.Record{
					record.Summary{Summary: "api work", LeafID: "leaf-1"},
				},
			},
			{
				SourcePath:  "/logs/-src-web/c.jsonl",
				DisplayName: "-src-web",
				LoadErr:     errors.New("permission denied"),
			},
		},
	}
}

func TestProjectService_Load_PublishesSnapshotAndLogs(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{snap: sampleSnapshot()}

	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeFileDropped && e.Project == "-src-web"
	})).Return(nil).Once()
	repo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeProjectsLoaded && e.ItemCount == 3
	})).Return(nil).Once()

	svc := project.NewService(source, 30, repo, nil)
	require.Nil(t, svc.Current())

	snap, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Same(t, snap, svc.Current())
	require.Equal(t, 30, source.limit)
	repo.AssertExpectations(t)
}

func TestProjectService_Load_Error(t *testing.T) {
	source := &stubSource{err: project.ErrRootNotFound}
	svc := project.NewService(source, 30, nil, nil)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, project.ErrRootNotFound)
	require.Nil(t, svc.Current())
}

func TestProjectService_Load_KeepsPreviousSnapshotOnError(t *testing.T) {
	source := &stubSource{snap: sampleSnapshot()}
	svc := project.NewService(source, 30, nil, nil)

	first, err := svc.Load(context.Background())
	require.NoError(t, err)

	source.err = errors.New("walk failed")
	_, err = svc.Load(context.Background())
	require.Error(t, err)
	require.Same(t, first, svc.Current())
}

func TestProjectService_Snapshot_LoadsOnce(t *testing.T) {
	source := &stubSource{snap: sampleSnapshot()}
	svc := project.NewService(source, 30, nil, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Snapshot(context.Background())
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), source.calls.Load())
}

func TestProjectService_List(t *testing.T) {
	svc := project.NewService(&stubSource{snap: sampleSnapshot()}, 30, nil, nil)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "permission denied", all[2].LoadError)

	api, err := svc.List(context.Background(), "api")
	require.NoError(t, err)
	require.Len(t, api, 1)
	require.Equal(t, "-src-api", api[0].DisplayName)
}

func TestProjectService_Select(t *testing.T) {
	svc := project.NewService(&stubSource{snap: sampleSnapshot()}, 30, nil, nil)
	ctx := context.Background()

	web, err := svc.Select(ctx, "-src-web")
	require.NoError(t, err)
	require.Len(t, web, 2)

	byPath, err := svc.Select(ctx, "/logs/-src-api/b.jsonl")
	require.NoError(t, err)
	require.Len(t, byPath, 1)

	all, err := svc.Select(ctx, " ")
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = svc.Select(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_FindRecord_LogsView(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(nil)

	svc := project.NewService(&stubSource{snap: sampleSnapshot()}, 30, repo, nil)
	_, _, err := svc.FindRecord(ctx, "-src-api", "leaf-1")
	require.NoError(t, err)

	repo.AssertCalled(t, "Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeRecordViewed &&
			e.Project == "-src-api" &&
			e.SourcePath != nil && *e.SourcePath == "/logs/-src-api/b.jsonl"
	}))
}

func TestProjectService_FindRecord_Lookup(t *testing.T) {
	ctx := context.Background()
	svc := project.NewService(&stubSource{snap: sampleSnapshot()}, 30, nil, nil)

	p, rec, err := svc.FindRecord(ctx, "-src-web", "11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	require.Equal(t, "/logs/-src-web/a.jsonl", p.SourcePath)
	require.Equal(t, record.KindUser, rec.Kind())

	_, rec, err = svc.FindRecord(ctx, "", "leaf-1")
	require.NoError(t, err)
	require.Equal(t, record.KindSummary, rec.Kind())

	_, _, err = svc.FindRecord(ctx, "-src-api", "11111111-1111-1111-1111-111111111111")
	require.ErrorIs(t, err, project.ErrRecordNotFound)

	_, _, err = svc.FindRecord(ctx, "-src-web", "")
	require.ErrorIs(t, err, project.ErrInvalidInput)
}
