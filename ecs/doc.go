// Package ecs provides ECS adapters for fold's rotation and unfold events.
//
// [AttachRotation] publishes a Foldable's rotation changes and
// [NewFoldingListener] publishes an Unfoldable's transitions into a
// [Donburi] world as typed events. Subscribe to [RotationEventType] or
// [TransitionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	ecs.AttachRotation(world, f)
//	u.SetFoldingListener(ecs.NewFoldingListener(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
