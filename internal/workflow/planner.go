package workflow

import (
	"context"

	"studymate/internal/domain"
	"studymate/internal/logger"

	"go.uber.org/zap"
)

// MsgNoQuizData is surfaced when the planner cannot produce a plan; the
// backend has no input until at least one quiz has been completed.
const MsgNoQuizData = "No quiz data yet! Complete a quiz first."

// PlanWorkflow owns the fetch/display/error cycle of the adaptive review
// plan. Each successful fetch fully replaces the prior plan; an empty
// plan without an error is the valid "nothing planned yet" state.
type PlanWorkflow struct {
	gw Gateway
	op AsyncOperation[[]domain.PlanItem]
}

// PlanSnapshot is a render-safe view of the planner state.
type PlanSnapshot struct {
	Phase   Phase
	Plan    []domain.PlanItem
	Message string
}

func NewPlanWorkflow(gw Gateway) *PlanWorkflow {
	return &PlanWorkflow{gw: gw}
}

// FetchPlan retrieves the current review plan. Calling it again while a
// fetch is pending is a no-op; each resolution fully replaces whatever
// was loaded before, never merges.
func (w *PlanWorkflow) FetchPlan(ctx context.Context) error {
	err := w.op.Run(ctx, "plan fetch", func(ctx context.Context) ([]domain.PlanItem, error) {
		return w.gw.FetchPlan(ctx)
	})
	if err != nil {
		if domain.IsBusy(err) {
			// Duplicate click while loading: dropped, not buffered.
			return nil
		}
		logger.Get().Warn("plan fetch failed", zap.Error(err))
		return err
	}
	return nil
}

// Close tears the workflow down; late resolutions are discarded.
func (w *PlanWorkflow) Close() {
	w.op.Close()
}

// Snapshot returns the current phase, the loaded plan, and the surfaced
// message for a failed fetch. The plan slice is copied in backend order.
func (w *PlanWorkflow) Snapshot() PlanSnapshot {
	phase, plan, err := w.op.State()
	snap := PlanSnapshot{Phase: phase}
	if phase == PhaseFailed && err != nil {
		snap.Message = MsgNoQuizData
		return snap
	}
	snap.Plan = append([]domain.PlanItem(nil), plan...)
	return snap
}
