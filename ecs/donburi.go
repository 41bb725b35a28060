package ecs

import (
	"github.com/phanxgames/arcgallery"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GalleryEventType is the Donburi event type for gallery events.
var GalleryEventType = events.NewEventType[arcgallery.Event]()

type donburiSink struct {
	world donburi.World
	types map[arcgallery.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to GalleryEventType and delivered by ProcessEvents. When types is
// non-empty only those event types are published; wrap events fire often
// while scrolling, so systems that only care about snaps can filter them out.
func NewDonburiSink(world donburi.World, types ...arcgallery.EventType) arcgallery.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.types = make(map[arcgallery.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *donburiSink) Emit(event arcgallery.Event) {
	if s.types != nil && !s.types[event.Type] {
		return
	}
	GalleryEventType.Publish(s.world, event)
}
