package stage

import (
	"math"
	"testing"
)

func TestWorldPos_NoParent(t *testing.T) {
	a := NewActor("a", 12, -4, 10, 10)
	assertVec(t, "WorldPos", a.WorldPos(), V(12, -4))
}

func TestWorldPos_TranslationChain(t *testing.T) {
	root := NewActor("root", 100, 50, 10, 10)
	mid := NewActor("mid", 10, 5, 10, 10)
	leaf := NewActor("leaf", 1, 2, 10, 10)
	root.AddChild(mid)
	mid.AddChild(leaf)

	assertVec(t, "mid", mid.WorldPos(), V(110, 55))
	assertVec(t, "leaf", leaf.WorldPos(), V(111, 57))
}

func TestWorldPos_RotatesAboutRoot(t *testing.T) {
	root := NewActor("root", 10, 0, 10, 10)
	root.SetRotation(math.Pi / 2)
	child := NewActor("child", 5, 0, 10, 10)
	root.AddChild(child)

	// (15, 0) rotated a quarter turn about (10, 0).
	assertVec(t, "child", child.WorldPos(), V(10, 5))
	assertNear(t, "WorldRotation", child.WorldRotation(), math.Pi/2)
}

func TestWorldRotation_Sums(t *testing.T) {
	root := NewActor("root", 0, 0, 1, 1)
	mid := NewActor("mid", 0, 0, 1, 1)
	leaf := NewActor("leaf", 0, 0, 1, 1)
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.SetRotation(0.5)
	mid.SetRotation(0.25)
	leaf.SetRotation(0.125)

	assertNear(t, "WorldRotation", leaf.WorldRotation(), 0.875)
}

func TestWorldScale_Product(t *testing.T) {
	root := NewActor("root", 0, 0, 1, 1)
	child := NewActor("child", 0, 0, 1, 1)
	root.AddChild(child)
	root.SetScale(2, 3)
	child.SetScale(0.5, 2)

	assertVec(t, "WorldScale", child.WorldScale(), V(1, 6))
}

func TestAddChild_Panics(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for nil child")
			}
		}()
		NewActor("a", 0, 0, 1, 1).AddChild(nil)
	})
	t.Run("cycle", func(t *testing.T) {
		a := NewActor("a", 0, 0, 1, 1)
		b := NewActor("b", 0, 0, 1, 1)
		a.AddChild(b)
		defer func() {
			if recover() == nil {
				t.Error("expected panic for cycle")
			}
		}()
		b.AddChild(a)
	})
}

func TestAddChild_Reparents(t *testing.T) {
	a := NewActor("a", 0, 0, 1, 1)
	b := NewActor("b", 0, 0, 1, 1)
	c := NewActor("c", 0, 0, 1, 1)
	a.AddChild(c)
	b.AddChild(c)

	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if c.Parent() != b {
		t.Error("child parent not updated")
	}
	if c.Collider().Type != CollisionPreventCollision {
		t.Errorf("child collider type = %v, want PreventCollision", c.Collider().Type)
	}
}

func TestAncestorsAndRoot(t *testing.T) {
	root := NewActor("root", 0, 0, 1, 1)
	mid := NewActor("mid", 0, 0, 1, 1)
	leaf := NewActor("leaf", 0, 0, 1, 1)
	root.AddChild(mid)
	mid.AddChild(leaf)

	chain := leaf.Ancestors()
	if len(chain) != 3 || chain[0] != root || chain[1] != mid || chain[2] != leaf {
		t.Errorf("Ancestors = %v", chain)
	}
	if leaf.Root() != root {
		t.Error("Root did not return the topmost ancestor")
	}
	if root.Root() != root {
		t.Error("detached actor is not its own root")
	}

	leaf.RemoveFromParent()
	if leaf.Parent() != nil || len(mid.Children()) != 0 {
		t.Error("RemoveFromParent did not detach")
	}
}
