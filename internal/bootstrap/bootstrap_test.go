//go:build !gtk

package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/twinview/internal/domain/entity"
	"github.com/bnema/twinview/internal/infrastructure/config"
	"github.com/bnema/twinview/internal/infrastructure/headless"
	"github.com/bnema/twinview/internal/logging"
	"github.com/bnema/twinview/internal/ui/state"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "visits.db")
	cfg.Sync.SettleDelayMs = 5
	cfg.Reconcile.InitialDelayMs = 10
	cfg.Reconcile.IntervalMs = 50
	return cfg
}

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// snapshot reads the store on the UI loop. It is called from Eventually
// conditions, so it reports failure as a zero snapshot.
func snapshot(ctx context.Context, ui *UI) state.Snapshot {
	var snap state.Snapshot
	_ = ui.Loop.PostWait(ctx, func() { snap = ui.Store.Snapshot() })
	return snap
}

func TestLocal_SplitRoundTrip(t *testing.T) {
	base := testContext()
	cfg := testConfig(t)

	journal, err := OpenJournal(cfg)
	require.NoError(t, err)
	platform := NewPlatform(base, cfg)
	host := platform.Host.(*headless.Host)

	local, err := NewLocal(base, LocalInput{Config: cfg, Platform: platform, Journal: journal})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(base)
	done := make(chan error, 1)
	go func() { done <- local.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = journal.Close()
	})

	local.UI.Resize(entity.Size{Width: 1000, Height: 700})
	local.UI.Open("a.example")

	require.Eventually(t, func() bool {
		status, err := local.Client.GetDetailedStatus(ctx)
		return err == nil && status.PrimaryURL == "https://a.example"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, entity.Size{Width: 1000, Height: 700}, host.WindowSize(), "headless window follows the terminal")

	local.UI.FollowLink("https://a.example/page2", false)
	require.Eventually(t, func() bool {
		snap := snapshot(ctx, local.UI)
		return snap.IsSplit && snap.SecondaryURL == "https://a.example/page2"
	}, 2*time.Second, 5*time.Millisecond)

	// The settled sync moves both surfaces onto the split placeholders.
	primary, secondary := entity.SplitBounds(entity.Size{Width: 1000, Height: 700}, entity.DefaultRatio, cfg.Layout.Metrics())
	require.Eventually(t, func() bool {
		p, okP := host.Content(entity.RolePrimary)
		s, okS := host.Content(entity.RoleSecondary)
		return okP && okS && p.Bounds == primary && s.Bounds == secondary
	}, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		visits, err := journal.Repo.GetRecent(ctx, 10, 0)
		return err == nil && len(visits) == 2
	}, 2*time.Second, 10*time.Millisecond)

	local.UI.CloseSecondary()
	require.Eventually(t, func() bool {
		status, err := local.Client.GetDetailedStatus(ctx)
		return err == nil && !status.HasSecondary && !status.IsSplit
	}, 2*time.Second, 5*time.Millisecond)

	local.UI.CloseSession()
	require.Eventually(t, func() bool {
		snap := snapshot(ctx, local.UI)
		return !snap.HasPrimary
	}, 2*time.Second, 5*time.Millisecond)
	_, ok := host.Content(entity.RolePrimary)
	assert.False(t, ok)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
		done <- nil
	case <-time.After(2 * time.Second):
		t.Fatal("runtime did not stop")
	}
}

func TestLocal_OpenBlankSetsNotice(t *testing.T) {
	base := testContext()
	cfg := testConfig(t)
	local, err := NewLocal(base, LocalInput{Config: cfg, Platform: NewPlatform(base, cfg)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(base)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- local.Run(ctx) }()

	local.UI.Open("   ")
	require.Eventually(t, func() bool {
		return snapshot(ctx, local.UI).Notice != ""
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestSnapshotRelay_KeepsNewest(t *testing.T) {
	relay := NewSnapshotRelay()
	relay.Push(state.Snapshot{Ratio: 0.3})
	relay.Push(state.Snapshot{Ratio: 0.4})
	relay.Push(state.Snapshot{Ratio: 0.6})

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan float64, 4)
	go func() {
		_ = relay.Run(ctx, func(s state.Snapshot) { got <- s.Ratio })
	}()
	defer cancel()

	select {
	case r := <-got:
		assert.InDelta(t, 0.6, r, 1e-9)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestRunAll_FirstReturnCancelsOthers(t *testing.T) {
	blocked := func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}
	quick := func(context.Context) error { return nil }

	done := make(chan error, 1)
	go func() { done <- RunAll(context.Background(), blocked, blocked, quick) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("RunAll did not stop")
	}
}

func TestSetupLogger_File(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Dir = t.TempDir()
	cfg.Logging.Level = "debug"
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger, cleanup, err := SetupLogger(cfg, true)
	require.NoError(t, err)
	logger.Info().Msg("hello")
	cleanup()

	assert.FileExists(t, filepath.Join(cfg.Logging.Dir, LogFileName))
}

func TestApplyLogLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	ApplyLogLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	ApplyLogLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
