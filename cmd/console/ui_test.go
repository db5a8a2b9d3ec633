package main

import (
	"strings"
	"testing"

	"github.com/hiibolt/sabi/pkg/ast"
	"github.com/hiibolt/sabi/pkg/loader"
	"github.com/hiibolt/sabi/pkg/playback"
)

func newTestUI(t *testing.T, source string) *ConsoleUI {
	t.Helper()
	act, err := loader.Load(source, "test")
	if err != nil {
		t.Fatalf("loading script: %v", err)
	}
	return NewConsoleUI(playback.New(act), "Sam")
}

func TestAdvance_StopsOnJumpCycle(t *testing.T) {
	m := newTestUI(t, `scene a { jump(a) }`)

	cmd := m.advance()
	if cmd != nil {
		t.Error("expected no follow-up command")
	}
	if m.status == "" {
		t.Error("expected a status message for the jump cycle")
	}
	if m.finished {
		t.Error("cycle must not report the act finished")
	}
}

func TestAdvance_StopsOnMultiSceneJumpCycle(t *testing.T) {
	m := newTestUI(t, `scene a { jump(b) } scene b { jump(a) }`)

	if cmd := m.advance(); cmd != nil {
		t.Error("expected no follow-up command")
	}
	if !strings.Contains(m.status, "without pausing") {
		t.Errorf("status = %q", m.status)
	}
}

func TestAdvance_FollowsJumpToDialogue(t *testing.T) {
	m := newTestUI(t, `
scene a {
	jump(b)
}

scene b {
	Ben "Made it"
}
`)

	cmd := m.advance()
	if cmd == nil {
		t.Fatal("expected a scroll command for the landed dialogue")
	}
	if !m.blocking {
		t.Error("dialogue should assert the blocking flag")
	}
	if m.message != "Made it" {
		t.Errorf("message = %q", m.message)
	}
	if d, ok := m.engine.Current().(ast.Dialogue); !ok || d.Speaker != "Ben" {
		t.Errorf("cursor not on Ben's line: %T", m.engine.Current())
	}
}
