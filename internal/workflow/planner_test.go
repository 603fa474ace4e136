package workflow

import (
	"context"
	"testing"

	"studymate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlanWorkflow_FetchPlan_Success(t *testing.T) {
	plan := []domain.PlanItem{
		{Topic: "goroutines", Accuracy: 40, NextReview: "2026-08-29"},
		{Topic: "interfaces", Accuracy: 80, NextReview: "2026-09-03"},
	}
	gw := new(MockGateway)
	gw.On("FetchPlan", mock.Anything).Return(plan, nil)

	w := NewPlanWorkflow(gw)
	require.NoError(t, w.FetchPlan(context.Background()))

	snap := w.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, plan, snap.Plan)
	assert.Empty(t, snap.Message)
}

func TestPlanWorkflow_EmptyPlanIsNotAnError(t *testing.T) {
	gw := new(MockGateway)
	gw.On("FetchPlan", mock.Anything).Return([]domain.PlanItem{}, nil)

	w := NewPlanWorkflow(gw)
	require.NoError(t, w.FetchPlan(context.Background()))

	snap := w.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Empty(t, snap.Plan)
	assert.Empty(t, snap.Message)
}

func TestPlanWorkflow_FailureSurfacesQuizFirstMessage(t *testing.T) {
	gw := new(MockGateway)
	gw.On("FetchPlan", mock.Anything).
		Return(nil, domain.NewBackendError("plan fetch request failed", nil))

	w := NewPlanWorkflow(gw)
	err := w.FetchPlan(context.Background())
	require.Error(t, err)

	snap := w.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Empty(t, snap.Plan)
	assert.Equal(t, MsgNoQuizData, snap.Message)
}

func TestPlanWorkflow_RefetchFullyReplaces(t *testing.T) {
	gw := new(MockGateway)
	gw.On("FetchPlan", mock.Anything).
		Return(nil, domain.NewBackendError("plan fetch request failed", nil)).Once()
	gw.On("FetchPlan", mock.Anything).
		Return([]domain.PlanItem{{Topic: "slices", Accuracy: 55, NextReview: "2026-08-30"}}, nil).Once()

	w := NewPlanWorkflow(gw)
	require.Error(t, w.FetchPlan(context.Background()))
	require.NoError(t, w.FetchPlan(context.Background()))

	snap := w.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Len(t, snap.Plan, 1)
	assert.Empty(t, snap.Message)
}

func TestPlanWorkflow_ReentrantFetchIsANoOp(t *testing.T) {
	gw := new(MockGateway)
	release := make(chan struct{})
	started := make(chan struct{})
	gw.On("FetchPlan", mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.PlanItem{{Topic: "maps", Accuracy: 70, NextReview: "2026-09-01"}}, nil)

	w := NewPlanWorkflow(gw)
	done := make(chan error, 1)
	go func() { done <- w.FetchPlan(context.Background()) }()
	<-started

	// Duplicate click while loading: silently dropped.
	require.NoError(t, w.FetchPlan(context.Background()))

	close(release)
	require.NoError(t, <-done)
	gw.AssertNumberOfCalls(t, "FetchPlan", 1)
}

func TestPlanWorkflow_CloseDiscardsLateResolution(t *testing.T) {
	gw := new(MockGateway)
	release := make(chan struct{})
	started := make(chan struct{})
	gw.On("FetchPlan", mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.PlanItem{{Topic: "channels", Accuracy: 30, NextReview: "2026-08-28"}}, nil)

	w := NewPlanWorkflow(gw)
	done := make(chan error, 1)
	go func() { done <- w.FetchPlan(context.Background()) }()
	<-started

	w.Close()
	close(release)
	<-done

	snap := w.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Plan)
}
