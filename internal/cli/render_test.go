package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notewerk/blocktree/pkg/block"
)

func writeTestGraph(t *testing.T, dir string) string {
	t.Helper()
	g := block.Graph{}
	page := g.Add(block.New(block.TypePage).WithID("root").WithTitle("Release Notes"))
	body := g.Add(block.New(block.TypeText).WithID("t1").WithTitle("Initial release."))
	g.AppendChild(page, body)

	path := filepath.Join(dir, "notes.json")
	if err := block.WriteGraphFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRenderMarkdown(t *testing.T) {
	dir := t.TempDir()
	input := writeTestGraph(t, dir)

	c := New(io.Discard, LogInfo)
	opts := renderOpts{formats: []string{"md"}, noCache: true}
	if err := c.runRender(context.Background(), input, &opts); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "notes.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "# Release Notes") {
		t.Errorf("output missing title:\n%s", out)
	}
	if !strings.Contains(string(out), "Initial release.") {
		t.Errorf("output missing body:\n%s", out)
	}
}

func TestRunRenderExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeTestGraph(t, dir)
	outPath := filepath.Join(dir, "custom.md")

	c := New(io.Discard, LogInfo)
	opts := renderOpts{output: outPath, formats: []string{"md"}, noCache: true}
	if err := c.runRender(context.Background(), input, &opts); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output at %s: %v", outPath, err)
	}
}

func TestRunRenderMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	input := writeTestGraph(t, dir)

	c := New(io.Discard, LogInfo)
	opts := renderOpts{formats: []string{"md", "dot"}, noCache: true}
	if err := c.runRender(context.Background(), input, &opts); err != nil {
		t.Fatal(err)
	}
	for _, ext := range []string{".md", ".dot"} {
		if _, err := os.Stat(filepath.Join(dir, "notes"+ext)); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestRunRenderUnknownRoot(t *testing.T) {
	dir := t.TempDir()
	input := writeTestGraph(t, dir)

	c := New(io.Discard, LogInfo)
	opts := renderOpts{root: "nope", formats: []string{"md"}, noCache: true}
	if err := c.runRender(context.Background(), input, &opts); err == nil {
		t.Error("expected error for unknown root block")
	}
}

func TestFindRoot(t *testing.T) {
	g := block.Graph{}
	page := g.Add(block.New(block.TypePage).WithID("page").WithTitle("Top"))
	child := g.Add(block.New(block.TypeText).WithID("child"))
	g.AppendChild(page, child)

	if got := findRoot(g); got != "page" {
		t.Errorf("findRoot() = %q, want %q", got, "page")
	}

	if got := findRoot(block.Graph{}); got != "" {
		t.Errorf("findRoot(empty) = %q, want empty", got)
	}
}
