// Package ecs provides ECS adapters for tau.
package ecs

import (
	"github.com/phanxgames/tau"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// FrameEventType is the Donburi event type for widget frames. Subscribe to
// this in your ECS systems to render or record frames.
var FrameEventType = events.NewEventType[*tau.Frame]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a FrameSink that publishes every frame to
// FrameEventType. Consume them with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) tau.FrameSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) PublishFrame(f *tau.Frame) {
	FrameEventType.Publish(s.world, f)
}

// WidgetData attaches a widget to an entity.
type WidgetData struct {
	Widget tau.Widget
}

// Widget is the component holding an entity's widget.
var Widget = donburi.NewComponentType[WidgetData]()

var widgetQuery = donburi.NewQuery(filter.Contains(Widget))

// NewWidgetEntity creates an entity carrying w.
func NewWidgetEntity(world donburi.World, w tau.Widget) donburi.Entity {
	e := world.Create(Widget)
	Widget.SetValue(world.Entry(e), WidgetData{Widget: w})
	return e
}

// UpdateWidgets advances every widget entity by dt seconds and returns how
// many changed. Widgets built with a sink from NewDonburiSink publish their
// frames as they change.
func UpdateWidgets(world donburi.World, dt float32) int {
	changed := 0
	widgetQuery.Each(world, func(entry *donburi.Entry) {
		if w := Widget.Get(entry).Widget; w != nil && w.Update(dt) {
			changed++
		}
	})
	return changed
}
