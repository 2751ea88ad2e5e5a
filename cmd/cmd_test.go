package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args in a fresh XDG environment
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag back to its default; cobra keeps values and
// Changed between Execute calls on the same command tree
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeGallery(t *testing.T, n int) string {
	t.Helper()
	var items []string
	for i := 0; i < n; i++ {
		// Unroutable art urls: prefetch fails fast and titles are shown instead
		items = append(items, fmt.Sprintf(`{"id": "img%d", "title": "Image %d", "link": "http://127.0.0.1:1/img%d.png"}`, i, i, i))
	}
	p := filepath.Join(t.TempDir(), "gallery.json")
	doc := `{"data": [` + strings.Join(items, ",") + `], "success": true}`
	if err := os.WriteFile(p, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReadPicks(t *testing.T) {
	picks := readPicks(context.Background(), strings.NewReader("3\nnot a number\n\n 7 \nq\n5\n"))

	var got []int
	for p := range picks {
		got = append(got, p)
	}

	if len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("Expected [3 7], got %v", got)
	}
}

func TestReadPicksStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	picks := readPicks(ctx, strings.NewReader("1\n2\n"))
	cancel()

	// Nobody receives, so the reader can only finish by noticing cancellation
	time.Sleep(50 * time.Millisecond)
	select {
	case _, ok := <-picks:
		if ok {
			// A send raced with cancellation; the channel must still close
			for range picks {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("Expected the pick channel to close")
	}
}

func TestPlayQuits(t *testing.T) {
	out, err := execute(t, "q\n", "play", "--gallery", writeGallery(t, 3), "--count", "2", "--delay", "1ms")
	if err != nil {
		t.Fatalf("play returned %v\n%s", err, out)
	}

	for _, want := range []string{"#1", "#4", "0 matched, 2 pairs left"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "#5") {
		t.Errorf("Expected the batch to be truncated to 2 images:\n%s", out)
	}
}

func TestPlayWithoutImages(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, err := execute(t, "", "play", "--gallery", missing)
	if err != nil {
		t.Fatalf("Expected a missing gallery not to be fatal, got %v", err)
	}
	if !strings.Contains(out, "we do not have images!") {
		t.Errorf("Expected the no images message:\n%s", out)
	}
}

func TestFetchFromGallery(t *testing.T) {
	out, err := execute(t, "", "fetch", "--gallery", writeGallery(t, 4), "--count", "3")
	if err != nil {
		t.Fatalf("fetch returned %v", err)
	}
	if !strings.Contains(out, "Image 2") || strings.Contains(out, "Image 3") {
		t.Errorf("Expected exactly three images:\n%s", out)
	}
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	galleryPath := writeGallery(t, 8)

	if _, err := execute(t, "", "fetch", "--gallery", galleryPath, "--count", "2"); err != nil {
		t.Fatalf("fetch returned %v", err)
	}

	// Without --count the config default of 6 applies again
	out, err := execute(t, "", "fetch", "--gallery", galleryPath)
	if err != nil {
		t.Fatalf("fetch returned %v", err)
	}
	if !strings.Contains(out, "Image 5") || strings.Contains(out, "Image 6") {
		t.Errorf("Expected the default six images:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "", "validate", writeGallery(t, 6), "--count", "6")
	if err != nil {
		t.Fatalf("validate returned %v\n%s", err, out)
	}
	if !strings.Contains(out, "can deal 6 pairs") {
		t.Errorf("Unexpected output:\n%s", out)
	}

	if _, err := execute(t, "", "validate", filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Errorf("Expected an error for a missing gallery file")
	}
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)

	RootCmd.SetArgs([]string{"config", "set", "image_count", "9"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("config set returned %v", err)
	}

	RootCmd.SetArgs([]string{"config", "show"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("config show returned %v", err)
	}
	if !strings.Contains(out.String(), "= 9") {
		t.Errorf("Expected image_count 9 in output:\n%s", out.String())
	}

	RootCmd.SetArgs([]string{"config", "set", "colour", "red"})
	if err := RootCmd.Execute(); err == nil {
		t.Errorf("Expected an error for an unknown key")
	}
}

func TestCacheListEmpty(t *testing.T) {
	out, err := execute(t, "", "cache", "ls")
	if err != nil {
		t.Fatalf("cache ls returned %v", err)
	}
	if !strings.Contains(out, "Art cache is empty") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}
