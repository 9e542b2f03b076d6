// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	SetOutput(&buf)
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	buf := withBuffer(t)
	SetDebug(true)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestDebugGating(t *testing.T) {
	buf := withBuffer(t)
	SetDebug(false)
	if DebugEnabled() {
		t.Fatalf("debug should be off")
	}
	Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output leaked while disabled: %s", buf.String())
	}

	SetDebug(true)
	With("table", "clients").Debug("shown")
	if !strings.Contains(buf.String(), "table=clients") {
		t.Fatalf("expected structured field in output; got: %s", buf.String())
	}
}
