// Package ecs provides ECS adapters for fold.
package ecs

import (
	"github.com/phanxgames/fold"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RotationEventType is the Donburi event type for fold rotation changes.
var RotationEventType = events.NewEventType[fold.RotationEvent]()

// TransitionEvent reports an unfold state change. Progress events carry the
// current state with the new stage.
type TransitionEvent struct {
	State    fold.TransitionState
	Stage    float64
	Progress bool
}

// TransitionEventType is the Donburi event type for unfold transitions.
var TransitionEventType = events.NewEventType[TransitionEvent]()

// AttachRotation publishes every rotation change of f into world. A
// previously set OnRotationChange callback keeps being called first.
func AttachRotation(world donburi.World, f *fold.Foldable) {
	prev := f.OnRotationChange
	f.OnRotationChange = func(e fold.RotationEvent) {
		if prev != nil {
			prev(e)
		}
		RotationEventType.Publish(world, e)
	}
}

// NewFoldingListener returns a listener that publishes unfold transitions
// into world. Set it with Unfoldable.SetFoldingListener.
func NewFoldingListener(world donburi.World) fold.FoldingListener {
	state := func(u *fold.Unfoldable) {
		TransitionEventType.Publish(world, TransitionEvent{State: u.State(), Stage: u.Stage()})
	}
	return fold.FoldingFuncs{
		Unfolding:   state,
		Unfolded:    state,
		FoldingBack: state,
		FoldedBack:  state,
		Progress: func(u *fold.Unfoldable, stage float64) {
			TransitionEventType.Publish(world, TransitionEvent{State: u.State(), Stage: stage, Progress: true})
		},
	}
}
