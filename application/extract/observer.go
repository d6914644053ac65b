package extract

import "video-to-audio/domain/media"

// Observer receives run progress so the service itself prints nothing
// beyond log lines. Calls happen on the run's goroutine, in order.
type Observer interface {
	// OnPlan is called once the tracks are classified and named, before any extraction
	OnPlan(plan *media.ExtractionPlan)
	// OnStep is called after every external call, or when a step is skipped
	OnStep(step StepResult)
}

// NopObserver ignores all events
type NopObserver struct{}

func (NopObserver) OnPlan(*media.ExtractionPlan) {}
func (NopObserver) OnStep(StepResult)            {}
