package cli

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ioxu/boxer/pkg/observability"
)

// logHooks reports layout events at debug level. View events are already
// logged by the registry, so they are only counted.
type logHooks struct {
	logger *log.Logger
}

// viewCounter counts view lifecycle events for the summary line.
type viewCounter struct {
	created, migrated, discarded, batches atomic.Int64
}

// viewStats is the process-wide counter installed by installHooks.
var viewStats = &viewCounter{}

func installHooks(l *log.Logger) {
	observability.SetLayoutHooks(logHooks{logger: l})
	observability.SetViewHooks(viewStats)
}

func (h logHooks) OnUpdate(root string, nodes, leaves int, d time.Duration) {
	h.logger.Debug("layout updated", "root", root, "nodes", nodes, "leaves", leaves, "took", d)
}

func (h logHooks) OnRestructure(action, target string, leaves int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("restructure rejected", "action", action, "target", target, "err", err)
		return
	}
	h.logger.Debug("restructured", "action", action, "target", target, "result", leaves, "took", d)
}

func (h logHooks) OnRatioChanged(split string, ratio float64) {
	h.logger.Debug("split ratio changed", "split", split, "ratio", ratio)
}

func (v *viewCounter) OnViewCreated(string, string)          { v.created.Add(1) }
func (v *viewCounter) OnViewMigrated(string, string, string) { v.migrated.Add(1) }
func (v *viewCounter) OnViewDiscarded(string, string)        { v.discarded.Add(1) }
func (v *viewCounter) OnBatchCreated(string)                 { v.batches.Add(1) }

var (
	_ observability.LayoutHooks = logHooks{}
	_ observability.ViewHooks   = (*viewCounter)(nil)
)
