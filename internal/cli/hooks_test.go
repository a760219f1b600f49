package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}

	h.OnUpdate("root", 3, 2, time.Millisecond)
	h.OnRestructure("close", "leaf", 0, 0, errors.New("not allowed"))
	h.OnRatioChanged("split", 0.25)

	out := buf.String()
	for _, want := range []string{"layout updated", "restructure rejected", "not allowed", "split ratio changed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestViewCounter(t *testing.T) {
	var v viewCounter
	v.OnViewCreated("a", "graph")
	v.OnViewCreated("b", "graph")
	v.OnViewMigrated("a", "a_cleft", "graph")
	v.OnViewDiscarded("b", "graph")
	v.OnBatchCreated("graph")

	if v.created.Load() != 2 || v.migrated.Load() != 1 || v.discarded.Load() != 1 || v.batches.Load() != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 2/1/1/1",
			v.created.Load(), v.migrated.Load(), v.discarded.Load(), v.batches.Load())
	}
}
