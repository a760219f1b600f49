package observability

import (
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	l := NoopLayoutHooks{}
	l.OnUpdate("root", 5, 3, time.Millisecond)
	l.OnRestructure("split horizontal", "root", 2, time.Millisecond, nil)
	l.OnRestructure("close", "root", 0, 0, errors.New("closing a root container is not allowed"))
	l.OnRatioChanged("root_hsplit", 0.25)

	v := NoopViewHooks{}
	v.OnViewCreated("graph", "root_cleft")
	v.OnViewMigrated("graph", "root", "root_hsplit_cleft")
	v.OnViewDiscarded("graph", "root_cleft")
	v.OnBatchCreated("graph")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := View().(NoopViewHooks); !ok {
		t.Error("View() should return NoopViewHooks by default")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customView := &testViewHooks{}
	SetViewHooks(customView)
	if View() != customView {
		t.Error("SetViewHooks should set custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
	if _, ok := View().(NoopViewHooks); !ok {
		t.Error("Reset() should restore NoopViewHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)

	// Setting nil should be ignored
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testLayoutHooks struct{ NoopLayoutHooks }
type testViewHooks struct{ NoopViewHooks }
