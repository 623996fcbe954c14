// Package ecs provides ECS adapters for stage's notification system.
//
// The primary adapter is [NewDonburiStore], which bridges stage actor
// notifications (lifecycle, collision, viewport, pointer) into a [Donburi]
// world as typed events. Only actors bound with [DonburiStore.Bind] are
// forwarded. Subscribe to [EventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	store.Bind(player)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
