// Package stage is the per-frame simulation and rendering core of a 2D scene
// graph for [Ebitengine].
//
// A [Scene] holds a set of live root [Actor] values. Each frame the scene
// updates every actor in insertion order (initialize once, preupdate,
// actions, physics integration, the trait pipeline, children, postupdate),
// then a [GraphicsSystem] draws all actors with a graphics component in
// ascending Z order through a [Context].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := stage.NewScene()
//	scene.Add(stage.NewColoredActor("box", 320, 240, 40, 40, stage.ColorRed))
//	stage.Run(scene, stage.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, create an [Engine] with [NewEngine]; it implements
// [ebiten.Game].
//
// # Actors
//
// Actors form a tree. A child's world position is the sum of the local
// positions from its root down, rotated by its world rotation about the
// root's position. Every actor built with [NewActor] has a [Body] holding
// velocity and acceleration, and a [Collider] used for bounds, containment
// and collision queries.
//
// Behavior is pluggable through [Trait] values run in order after
// integration. The default pipeline resolves collisions against the scene's
// tile maps (see [TileMap]), delivers pointer events to actors that called
// [Actor.EnablePointerCapture], and marks actors outside the camera's view
// off screen so they are not drawn.
//
// # Notifications
//
// Actors emit named notifications ([EventInitialize], [EventKill],
// [EventPostCollision], [EventPointerDown] and others). Subscribe with
// [Actor.On]; the returned [Handle] removes the subscription. Bound actors
// also forward notifications to an optional [EntityStore], see the ecs
// subpackage for a [Donburi] adapter.
//
// Misuse, such as killing an actor that is not in a scene, is reported
// through a [Logger] and otherwise ignored.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package stage
