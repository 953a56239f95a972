package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/storage"
	"github.com/san-kum/collide/internal/world"
	"github.com/spf13/cobra"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd.Flags())
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(newTestCmd(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bodies.Count != config.DefaultBodies || cfg.Arena.Width != config.DefaultWidth {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Run.Seed == 0 {
		t.Error("seed not filled from flag default")
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	data := []byte("bodies:\n  count: 7\n  radius: 14\nrun:\n  seed: 99\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(newTestCmd(t, "--preset", "heavy", "--config", path, "--radius", "9"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bodies.Mass != 5 {
		t.Errorf("preset mass lost: %v", cfg.Bodies.Mass)
	}
	if cfg.Bodies.Count != 7 {
		t.Errorf("config file count = %d, want 7", cfg.Bodies.Count)
	}
	if cfg.Bodies.Radius != 9 {
		t.Errorf("flag radius = %v, want 9", cfg.Bodies.Radius)
	}
	if cfg.Run.Seed != 99 {
		t.Errorf("seed = %d, want 99 from file", cfg.Run.Seed)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	if _, err := resolveConfig(newTestCmd(t, "--preset", "nope")); err == nil {
		t.Error("unknown preset accepted")
	}
	if _, err := resolveConfig(newTestCmd(t, "--axis", "sideways")); err == nil {
		t.Error("unknown axis accepted")
	}
	if _, err := resolveConfig(newTestCmd(t, "--radius=-1")); err == nil {
		t.Error("negative radius accepted")
	}
}

type recordSink struct{ speeds []float64 }

func (r *recordSink) Collide(speed float64) { r.speeds = append(r.speeds, speed) }

func TestContactLogForwards(t *testing.T) {
	next := &recordSink{}
	contactLog{next: next}.Collide(12)
	contactLog{}.Collide(3)
	if len(next.speeds) != 1 || next.speeds[0] != 12 {
		t.Errorf("forwarded %v", next.speeds)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	result := &world.Result{
		FramesTaken: 10,
		Candidates:  4,
		Collisions:  3,
		Metrics:     map[string]float64{"max_speed": 2, "energy_drift": 0.5},
	}
	if err := writeSummary(&buf, "classic_1", time.Second, result); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"run id: classic_1", "COLLISIONS", "energy_drift"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "energy_drift") > strings.Index(out, "max_speed") {
		t.Error("metrics not sorted by name")
	}
}

func TestRunGeometryPrefersStoredValues(t *testing.T) {
	meta := &storage.RunMetadata{Width: 300, Height: 200, Radius: 6}
	arena, radius, err := runGeometry(meta, newTestCmd(t, "--radius", "9"))
	if err != nil {
		t.Fatal(err)
	}
	if arena.Width != 300 || arena.Height != 200 || radius != 6 {
		t.Errorf("got %vx%v radius %v, want stored 300x200 radius 6", arena.Width, arena.Height, radius)
	}
}

func TestRunGeometryFallsBackToConfig(t *testing.T) {
	arena, radius, err := runGeometry(&storage.RunMetadata{}, newTestCmd(t, "--radius", "9"))
	if err != nil {
		t.Fatal(err)
	}
	if arena.Width != config.DefaultWidth || radius != 9 {
		t.Errorf("got width %v radius %v, want config defaults with flag radius", arena.Width, radius)
	}
}
