// Package ecs provides ECS adapters for arcgallery events.
//
// The primary adapter is [NewDonburiSink], which bridges gallery events
// (layout, snap, wrap, settle) into a [Donburi] world as typed events.
// Subscribe to [GalleryEventType] in your ECS systems to receive them.
//
// Usage:
//
//	cfg := arcgallery.DefaultConfig()
//	cfg.Events = ecs.NewDonburiSink(world)
//	g := arcgallery.New(items, cfg)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
