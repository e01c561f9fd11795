package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/glperf/display"
	"github.com/achilleasa/glperf/log"
	"github.com/achilleasa/glperf/registry"
	"github.com/achilleasa/glperf/scene"
	"github.com/achilleasa/glperf/text"
	"github.com/achilleasa/glperf/timer"
	"github.com/urfave/cli"
)

type fakeDisplay struct {
	supported bool
	createErr error

	created bool
	closed  bool
	now     float64
}

func (d *fakeDisplay) IsSupported() bool                     { return d.supported }
func (d *fakeDisplay) Create() error                         { d.created = d.createErr == nil; return d.createErr }
func (d *fakeDisplay) SwapBuffer()                           {}
func (d *fakeDisplay) ProcessInput() bool                    { return true }
func (d *fakeDisplay) SetRenderNode(node display.RenderNode) { node.OnResized(800, 600) }
func (d *fakeDisplay) SetTitle(_ string)                     {}
func (d *fakeDisplay) GLESVersion() int                      { return 300 }
func (d *fakeDisplay) Info() display.Info                    { return display.Info{Backend: "fake"} }
func (d *fakeDisplay) Close()                                { d.closed = true }
func (d *fakeDisplay) Clock() timer.Source {
	return timer.Func(func() float64 {
		d.now += 1.0
		return d.now
	})
}

type nopOverlay struct{}

func (nopOverlay) Resize(_, _ int) {}
func (nopOverlay) Render(_ string) {}
func (nopOverlay) Close()          {}

type testScene struct {
	scene.Base
	name     string
	category scene.Category
}

func (s *testScene) Name() string             { return s.name }
func (s *testScene) Category() scene.Category { return s.category }

type harness struct {
	disp      *fakeDisplay
	displays  int
	created   map[string]int
	out       bytes.Buffer
	errOut    bytes.Buffer
	exitCode  int
	exitCalls int
	overlays  int
}

// setup replaces the package collaborators and restores them when the test
// completes.
func setup(t *testing.T, disp *fakeDisplay) *harness {
	h := &harness{disp: disp, created: make(map[string]int)}

	reg := registry.New[scene.Scene]()
	for _, def := range []struct {
		key      string
		category scene.Category
	}{{"fill", scene.FillRate}, {"fire", scene.Generic}} {
		reg.Register(def.key, func() scene.Scene {
			h.created[def.key]++
			return &testScene{name: def.key, category: def.category}
		})
	}

	origDisplay, origRegistry, origOverlay := newDisplay, sceneRegistry, newTextOverlay
	origExiter, origErrWriter := cli.OsExiter, cli.ErrWriter
	t.Cleanup(func() {
		newDisplay, sceneRegistry, newTextOverlay = origDisplay, origRegistry, origOverlay
		cli.OsExiter, cli.ErrWriter = origExiter, origErrWriter
		log.SetSink(io.Discard)
	})

	newDisplay = func(_ display.Options) display.Display {
		h.displays++
		return h.disp
	}
	sceneRegistry = func() *registry.Registry[scene.Scene] { return reg }
	newTextOverlay = func(_ *text.Face) (scene.Overlay, error) {
		h.overlays++
		return nopOverlay{}, nil
	}
	cli.OsExiter = func(code int) {
		h.exitCode = code
		h.exitCalls++
	}
	cli.ErrWriter = &h.errOut
	log.SetSink(io.Discard)
	return h
}

func (h *harness) run(args ...string) error {
	app := NewApp()
	app.Writer = &h.out
	return app.Run(append([]string{"glperf"}, args...))
}

func TestListScenes(t *testing.T) {
	h := setup(t, nil)

	if err := h.run("-l"); err != nil {
		t.Fatal(err)
	}

	if h.displays != 0 {
		t.Fatal("expected no display to be created")
	}
	if len(h.created) != 0 {
		t.Fatalf("expected no scene to be instantiated; got %v", h.created)
	}

	out := h.out.String()
	if fillAt, fireAt := strings.Index(out, "fill"), strings.Index(out, "fire"); fillAt == -1 || fireAt < fillAt {
		t.Fatalf("expected scenes to be listed in registration order; got:\n%s", out)
	}
}

func TestDisplayFailures(t *testing.T) {
	type spec struct {
		disp *fakeDisplay
		exp  string
	}

	specs := []spec{
		{&fakeDisplay{supported: false}, "GLES 2.0"},
		{&fakeDisplay{supported: true, createErr: display.ErrCreateFailed}, display.ErrCreateFailed.Error()},
	}

	for specIndex, s := range specs {
		h := setup(t, s.disp)
		err := h.run("--weights", filepath.Join(t.TempDir(), "none.txt"))
		if err == nil {
			t.Fatalf("[spec %d] expected an error", specIndex)
		}
		if h.exitCalls != 1 || h.exitCode != 1 {
			t.Fatalf("[spec %d] expected exit code 1; got %d (%d calls)", specIndex, h.exitCode, h.exitCalls)
		}
		if !strings.Contains(h.errOut.String(), s.exp) {
			t.Fatalf("[spec %d] expected error output to contain %q; got %q", specIndex, s.exp, h.errOut.String())
		}
		if len(h.out.String()) != 0 {
			t.Fatalf("[spec %d] expected no report rows; got:\n%s", specIndex, h.out.String())
		}
	}
}

func TestNoMatchingScenes(t *testing.T) {
	h := setup(t, &fakeDisplay{supported: true})

	if err := h.run("-b", "missing"); err != nil {
		t.Fatal(err)
	}
	if h.displays != 0 || h.exitCalls != 0 {
		t.Fatal("expected the run to end before creating a display")
	}
}

func TestRunSelectedScene(t *testing.T) {
	disp := &fakeDisplay{supported: true}
	h := setup(t, disp)

	if err := h.run("-b", "fire", "--weights", filepath.Join(t.TempDir(), "none.txt")); err != nil {
		t.Fatal(err)
	}

	if !disp.created || !disp.closed {
		t.Fatalf("expected display to be created and closed; got created=%t closed=%t", disp.created, disp.closed)
	}
	if h.created["fire"] != 1 || h.created["fill"] != 0 {
		t.Fatalf("expected only fire to be instantiated; got %v", h.created)
	}

	out := h.out.String()
	for _, exp := range []string{"Scene", "fire", "Generic", "success", "RUN"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected report to contain %q; got:\n%s", exp, out)
		}
	}
	if strings.Contains(out, "FillRate") {
		t.Fatalf("expected report to skip categories without scenes; got:\n%s", out)
	}
}

func TestMissingFontFailsScenes(t *testing.T) {
	disp := &fakeDisplay{supported: true}
	h := setup(t, disp)

	err := h.run("--font", filepath.Join(t.TempDir(), "nonexistent.ttf"), "--weights", filepath.Join(t.TempDir(), "none.txt"))
	if err != nil {
		t.Fatalf("expected the run to complete; got %v", err)
	}
	if h.exitCalls != 0 {
		t.Fatalf("expected no exit call; got exit code %d", h.exitCode)
	}
	if h.overlays != 0 {
		t.Fatalf("expected no overlay to be created; got %d", h.overlays)
	}

	out := h.out.String()
	if got := strings.Count(out, "failed"); got != 2 {
		t.Fatalf("expected 2 failed rows; got %d in:\n%s", got, out)
	}
	if !strings.Contains(out, "RUN") {
		t.Fatalf("expected the summary table to be printed; got:\n%s", out)
	}
}

func TestReporterRows(t *testing.T) {
	var buf bytes.Buffer
	r := newTableReporter(&buf)

	reg := registry.New[scene.Scene]()
	reg.Register("fire", func() scene.Scene { return &testScene{name: "fire"} })
	sc, _ := reg.Create("fire")
	node := scene.NewNode("fire", sc)

	r.SceneCompleted(node)
	r.SceneCompleted(node)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and 2 rows; got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "|Scene") {
		t.Fatalf("expected header row first; got %q", lines[0])
	}
}
