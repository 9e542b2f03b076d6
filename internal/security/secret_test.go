// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestSecretRedactionAndJSON(t *testing.T) {
	s := FromString("supersecret")
	for _, verb := range []string{"%v", "%s", "%q", "%+v", "%#v", "%x"} {
		if got := fmt.Sprintf(verb, s); got != "[SECRET]" {
			t.Fatalf("unexpected fmt output for %s: %q", verb, got)
		}
	}
	b, err := json.Marshal(struct{ Password Secret }{s})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(b) != `{"Password":"[SECRET]"}` {
		t.Fatalf("unexpected json marshal: %s", string(b))
	}
	wrapped := fmt.Errorf("login failed for password %v", s)
	if errors.Unwrap(wrapped) != nil || wrapped.Error() != "login failed for password [SECRET]" {
		t.Fatalf("secret leaked into error: %v", wrapped)
	}
}

func TestSecretZero(t *testing.T) {
	s := FromString("abc123")
	(&s).Zero()
	for i, b := range s {
		if b != 0 {
			t.Fatalf("expected zeroed byte at index %d, got %d", i, b)
		}
	}
	var nilSecret *Secret
	nilSecret.Zero()
}

func TestSecretFromBytesCopies(t *testing.T) {
	in := []byte("pw")
	s := FromBytes(in)
	in[0] = 'x'
	if err := s.Use(func(b []byte) error {
		if string(b) != "pw" {
			return fmt.Errorf("got %q", b)
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 || s.IsEmpty() {
		t.Fatalf("unexpected length %d", s.Len())
	}
}
