package ecs

import (
	"github.com/phanxgames/stage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// EventType is the Donburi event type for stage actor notifications.
// Subscribe to this in your ECS systems to receive lifecycle, collision,
// viewport and pointer events of bound actors.
var EventType = events.NewEventType[stage.Event]()

// ActorData links a Donburi entity back to its actor.
type ActorData struct {
	Actor *stage.Actor
}

// ActorComponent is attached to every entity created by Bind.
var ActorComponent = donburi.NewComponentType[ActorData]()

// actorQuery matches entities created by Bind.
var actorQuery = donburi.NewQuery(filter.Contains(ActorComponent))

// DonburiStore is a stage.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
	nextID   uint32
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Notifications are published to EventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

// World returns the backing world.
func (s *DonburiStore) World() donburi.World {
	return s.world
}

// Bind creates an entity carrying ActorComponent for a and sets a.EntityID,
// so the actor's notifications reach the world. Binding an actor twice
// returns its existing entity.
func (s *DonburiStore) Bind(a *stage.Actor) donburi.Entity {
	if ent, ok := s.entities[a.EntityID]; ok && a.EntityID != 0 {
		return ent
	}
	s.nextID++
	ent := s.world.Create(ActorComponent)
	ActorComponent.SetValue(s.world.Entry(ent), ActorData{Actor: a})
	a.EntityID = s.nextID
	s.entities[a.EntityID] = ent
	return ent
}

// Unbind removes a's entity and clears a.EntityID.
func (s *DonburiStore) Unbind(a *stage.Actor) {
	ent, ok := s.entities[a.EntityID]
	if !ok {
		return
	}
	delete(s.entities, a.EntityID)
	a.EntityID = 0
	if s.world.Valid(ent) {
		s.world.Remove(ent)
	}
}

// Entity returns the entity bound to a.
func (s *DonburiStore) Entity(a *stage.Actor) (donburi.Entity, bool) {
	ent, ok := s.entities[a.EntityID]
	return ent, ok && a.EntityID != 0
}

// Len returns the number of bound actors.
func (s *DonburiStore) Len() int {
	return len(s.entities)
}

// EachActor calls fn for every bound actor in the world.
func (s *DonburiStore) EachActor(fn func(a *stage.Actor)) {
	actorQuery.Each(s.world, func(e *donburi.Entry) {
		fn(ActorComponent.Get(e).Actor)
	})
}

// Publish queues evt on EventType. A postkill notification also unbinds
// the actor, whose entity is removed.
func (s *DonburiStore) Publish(evt stage.Event) {
	EventType.Publish(s.world, evt)
	if evt.Name == stage.EventPostKill && evt.Target != nil {
		s.Unbind(evt.Target)
	}
}
