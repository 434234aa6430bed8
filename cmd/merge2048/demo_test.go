package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunDemo(t *testing.T) {
	cfg.Play.Seed = 7
	t.Cleanup(func() { cfg.Play.Seed = 0 })

	var out bytes.Buffer
	demoCmd.SetOut(&out)
	t.Cleanup(func() { demoCmd.SetOut(nil) })

	if err := runDemo(demoCmd, nil); err != nil {
		t.Fatalf("runDemo() failed: %v", err)
	}

	got := out.String()
	if n := strings.Count(got, "------"); n != len(demoMoves) {
		t.Errorf("printed %d separators, want %d", n, len(demoMoves))
	}

	// The first table is the fixed starting board.
	first := strings.SplitN(got, "------", 2)[0]
	for _, want := range []string{"0 |    2    |    2    |    2    |    2    |", "3 |    2    |    4    |    1    |    2    |"} {
		if !strings.Contains(first, want) {
			t.Errorf("starting table missing %q:\n%s", want, first)
		}
	}
	if !strings.Contains(got, "right (moved: true, score: 10)") {
		t.Errorf("first move should merge the top row and the 1s:\n%s", got)
	}
}
