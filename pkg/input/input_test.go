package input

import "testing"

func TestDispatcherMotion(t *testing.T) {
	d := NewDispatcher(640, 480)

	var got []float64
	id := d.OnMouseMotion(func(x, y, dx, dy float64) {
		got = append(got, x, y)
	})

	d.MouseMotion(3, 4, 1, 1)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("motion handler got %v, want [3 4]", got)
	}

	d.Remove(id)
	d.MouseMotion(5, 6, 1, 1)
	if len(got) != 2 {
		t.Errorf("removed handler still called: %v", got)
	}
	if d.MotionHandlers() != 0 {
		t.Errorf("MotionHandlers() = %d, want 0", d.MotionHandlers())
	}
}

func TestDispatcherRemoveDuringDelivery(t *testing.T) {
	d := NewDispatcher(0, 0)

	calls := 0
	var second HandlerID
	d.OnMouseMotion(func(x, y, dx, dy float64) {
		calls++
		d.Remove(second)
	})
	second = d.OnMouseMotion(func(x, y, dx, dy float64) { calls++ })

	d.MouseMotion(0, 0, 0, 0)
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (snapshot delivery)", calls)
	}

	d.MouseMotion(0, 0, 0, 0)
	if calls != 3 {
		t.Errorf("calls = %d, want 3 after removal", calls)
	}
}

func TestDispatcherButtons(t *testing.T) {
	d := NewDispatcher(0, 0)

	var pressed, released, dragged bool
	d.OnMousePress(func(x, y float64, b Buttons, m Modifiers) { pressed = b.Has(ButtonLeft) })
	d.OnMouseRelease(func(x, y float64, b Buttons, m Modifiers) { released = true })
	d.OnMouseDrag(func(x, y, dx, dy float64, b Buttons, m Modifiers) { dragged = m == ModShift })

	d.MousePress(0, 0, ButtonLeft|ButtonRight, 0)
	d.MouseDrag(1, 1, 1, 1, ButtonLeft, ModShift)
	d.MouseRelease(1, 1, ButtonLeft, 0)

	if !pressed || !released || !dragged {
		t.Errorf("pressed=%v released=%v dragged=%v, want all true", pressed, released, dragged)
	}
	if d.ButtonHandlers() != 3 {
		t.Errorf("ButtonHandlers() = %d, want 3", d.ButtonHandlers())
	}
}

func TestDispatcherSize(t *testing.T) {
	d := NewDispatcher(10, 20)
	d.SetSize(30, 40)
	if w, h := d.Size(); w != 30 || h != 40 {
		t.Errorf("Size() = %v, %v, want 30, 40", w, h)
	}
}
