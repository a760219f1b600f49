package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ioxu/boxer/pkg/config"
	"github.com/ioxu/boxer/pkg/errors"
	"github.com/ioxu/boxer/pkg/view/plugins"
)

func newTestTree(t *testing.T, cfg *config.Config) *tree {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	tr, err := newTree(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newTree() error = %v", err)
	}
	return tr
}

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []config.Startup
		wantErr bool
	}{
		{
			name:   "action and view",
			values: []string{"0:split-horizontal", "1:view=graph"},
			want:   []config.Startup{{Leaf: 0, Action: "split-horizontal"}, {Leaf: 1, View: "graph"}},
		},
		{
			name:   "empty",
			values: nil,
			want:   []config.Startup{},
		},
		{name: "missing colon", values: []string{"split"}, wantErr: true},
		{name: "missing action", values: []string{"0:"}, wantErr: true},
		{name: "negative leaf", values: []string{"-1:close"}, wantErr: true},
		{name: "leaf not a number", values: []string{"a:close"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.values)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Fatalf("parseSteps() error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSteps() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseSteps() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTreeRun(t *testing.T) {
	tr := newTestTree(t, nil)

	steps, err := parseSteps([]string{"0:hsplit", "1:split vertical", "0:view=graph", "2:view=parameters"})
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.run(steps); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	leaves := tr.root.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("leaf count = %d, want 3", len(leaves))
	}
	if got := tr.reg.ViewName(leaves[0]); got != plugins.GraphName {
		t.Errorf("leaf 0 view = %q, want %q", got, plugins.GraphName)
	}
	if got := tr.reg.ViewName(leaves[2]); got != plugins.ParametersName {
		t.Errorf("leaf 2 view = %q, want %q", got, plugins.ParametersName)
	}
	if got := tr.nodeCount(); got != 6 {
		t.Errorf("nodeCount() = %d, want 6", got)
	}
}

func TestTreeRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		steps []config.Startup
		code  errors.Code
	}{
		{"leaf out of range", []config.Startup{{Leaf: 3, Action: "close"}}, errors.ErrCodeInvalidConfig},
		{"unknown action", []config.Startup{{Leaf: 0, Action: "explode"}}, errors.ErrCodeInvalidAction},
		{"close root", []config.Startup{{Leaf: 0, Action: "close"}}, errors.ErrCodeInvalidTopology},
		{"unknown view", []config.Startup{{Leaf: 0, View: "nope"}}, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTree(t, nil)
			err := tr.run(tt.steps)
			if !errors.Is(err, tt.code) {
				t.Errorf("run() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewTreeDefaultView(t *testing.T) {
	cfg := config.Default()
	cfg.Views.Default = plugins.ParametersName

	tr := newTestTree(t, cfg)
	if got := tr.reg.ViewName(tr.root); got != plugins.ParametersName {
		t.Errorf("root view = %q, want %q", got, plugins.ParametersName)
	}

	cfg.Views.Default = "missing"
	if _, err := newTree(cfg, log.New(io.Discard)); err == nil {
		t.Error("newTree() with unknown default view should fail")
	}
}

func TestTreeSyncAfterCloseSplit(t *testing.T) {
	tr := newTestTree(t, nil)
	if err := tr.run([]config.Startup{{Leaf: 0, Action: "hsplit"}, {Leaf: 1, View: "graph"}}); err != nil {
		t.Fatal(err)
	}

	if err := tr.run([]config.Startup{{Leaf: 1, Action: "close-split"}}); err != nil {
		t.Fatalf("close split: %v", err)
	}
	leaves := tr.root.Leaves()
	if len(leaves) != 1 {
		t.Fatalf("leaf count = %d, want 1", len(leaves))
	}
	if got := tr.reg.ViewName(leaves[0]); got != plugins.GraphName {
		t.Errorf("surviving leaf view = %q, want %q", got, plugins.GraphName)
	}
}
