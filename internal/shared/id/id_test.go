package id

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateUnique(t *testing.T) {
	g := NewGenerator()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := g.GenerateString()
		if seen[s] {
			t.Fatalf("duplicate ULID generated: %s", s)
		}
		seen[s] = true
	}
}

func TestPrefixedIDs(t *testing.T) {
	sess := NewSessionID()
	if !strings.HasPrefix(sess.String(), "sess_") {
		t.Errorf("session ID missing prefix: %s", sess)
	}

	ent := NewEntryID()
	if !strings.HasPrefix(ent.String(), "ent_") {
		t.Errorf("entry ID missing prefix: %s", ent)
	}

	req := NewRequestID()
	if !strings.HasPrefix(req.String(), "req_") {
		t.Errorf("request ID missing prefix: %s", req)
	}
}

func TestTimestampExtraction(t *testing.T) {
	before := time.Now().Add(-time.Second)
	raw := Default().GenerateString()
	after := time.Now().Add(time.Second)

	ts, err := Timestamp(raw)
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Before(before) || ts.After(after) {
		t.Errorf("timestamp %v outside window [%v, %v]", ts, before, after)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(Default().GenerateString()) {
		t.Error("freshly generated ULID should be valid")
	}
	if IsValid("not-a-ulid") {
		t.Error("garbage should not validate")
	}
}
