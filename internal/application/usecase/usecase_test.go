package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/application/usecase"
	"github.com/bnema/twinview/internal/domain/entity"
	repomocks "github.com/bnema/twinview/internal/domain/repository/mocks"
	"github.com/bnema/twinview/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestVisitJournal_WritesQueuedVisits(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	defer cancel()

	repo := repomocks.NewMockVisitRepository(t)
	var mu sync.Mutex
	var saved []string
	repo.EXPECT().Save(mock.Anything, mock.Anything).
		Run(func(_ context.Context, v *entity.Visit) {
			mu.Lock()
			saved = append(saved, v.URL)
			mu.Unlock()
		}).
		Return(nil)

	journal := usecase.NewVisitJournal(repo, 8)
	done := make(chan error, 1)
	go func() { done <- journal.Run(ctx) }()

	journal.RecordVisit(ctx, entity.Visit{SessionID: "s", Role: entity.RolePrimary, URL: "https://a.example"})
	journal.RecordVisit(ctx, entity.Visit{SessionID: "s", Role: entity.RoleSecondary, URL: "https://a.example/page2"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(saved) == 2
	}, time.Second, time.Millisecond)

	journal.Close()
	require.NoError(t, <-done)
	assert.Equal(t, []string{"https://a.example", "https://a.example/page2"}, saved)
}

func TestVisitJournal_DropsWhenFull(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockVisitRepository(t)
	journal := usecase.NewVisitJournal(repo, 1)

	journal.RecordVisit(ctx, entity.Visit{URL: "https://a.example"})
	journal.RecordVisit(ctx, entity.Visit{URL: "https://b.example"})
	assert.Equal(t, int64(1), journal.Dropped())

	// Close before Run: Run flushes the queued visit and returns.
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(v *entity.Visit) bool {
		return v.URL == "https://a.example"
	})).Return(nil).Once()
	journal.Close()
	require.NoError(t, journal.Run(ctx))

	journal.RecordVisit(ctx, entity.Visit{URL: "https://c.example"})
	assert.Equal(t, int64(1), journal.Dropped(), "visits after close are ignored")
}

func TestVisitJournal_SaveErrorsAreLogged(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockVisitRepository(t)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	journal := usecase.NewVisitJournal(repo, 4)
	journal.RecordVisit(ctx, entity.Visit{URL: "https://a.example"})
	journal.Close()
	assert.NoError(t, journal.Run(ctx))
}

func TestManageVisits_ListRecent(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockVisitRepository(t)
	want := []*entity.Visit{{ID: 1, URL: "https://a.example"}}
	repo.EXPECT().GetRecent(ctx, 50, 0).Return(want, nil)

	uc := usecase.NewManageVisitsUseCase(repo)
	got, err := uc.List(ctx, usecase.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManageVisits_ListSession(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockVisitRepository(t)
	repo.EXPECT().GetBySession(ctx, "s1").Return(nil, errors.New("locked"))

	uc := usecase.NewManageVisitsUseCase(repo)
	_, err := uc.List(ctx, usecase.ListInput{SessionID: "s1", Limit: 5})
	assert.ErrorContains(t, err, "locked")
}

func TestManageVisits_Prune(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockVisitRepository(t)
	repo.EXPECT().
		DeleteOlderThan(ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().AddDate(0, 0, -30)
			diff := expected.Sub(cutoff)
			return diff > -time.Minute && diff < time.Minute
		})).
		Return(int64(4), nil)

	uc := usecase.NewManageVisitsUseCase(repo)
	n, err := uc.Prune(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = uc.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestManageVisits_Clear(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockVisitRepository(t)
	repo.EXPECT().DeleteAll(ctx).Return(nil)

	require.NoError(t, usecase.NewManageVisitsUseCase(repo).Clear(ctx))
}
