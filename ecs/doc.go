// Package ecs connects tau widgets to a [Donburi] world.
//
// [NewDonburiSink] turns widget frames into typed Donburi events and
// [UpdateWidgets] steps every entity that carries a [Widget] component.
//
// Usage:
//
//	opts := tau.DefaultOptions(tau.KindAnimatorAppear)
//	opts.Sink = ecs.NewDonburiSink(world)
//	ecs.NewWidgetEntity(world, tau.NewAnimatorAppear(opts))
//	// each tick:
//	ecs.UpdateWidgets(world, 1.0/60)
//	ecs.FrameEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
