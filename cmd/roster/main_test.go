package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/roster"
)

func TestResolveSlots(t *testing.T) {
	var out bytes.Buffer

	n, err := resolveSlots(true, 0, 4, strings.NewReader(""), &out)
	if err != nil || n != 0 {
		t.Errorf("Expected an explicit flag to win even when zero, got %d (%v)", n, err)
	}

	n, err = resolveSlots(false, 0, 4, strings.NewReader(""), &out)
	if err != nil || n != 4 {
		t.Errorf("Expected configured 4, got %d (%v)", n, err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no prompt, got %q", out.String())
	}
}

func TestPromptSlots(t *testing.T) {
	var out bytes.Buffer
	n, err := resolveSlots(false, 0, 0, strings.NewReader(" 3 \n"), &out)
	if err != nil || n != 3 {
		t.Errorf("Expected 3, got %d (%v)", n, err)
	}
	if !strings.Contains(out.String(), "altar servers") {
		t.Errorf("Expected a prompt, got %q", out.String())
	}

	n, err = promptSlots(strings.NewReader("3"), &out)
	if err != nil || n != 3 {
		t.Errorf("Expected 3 without a trailing newline, got %d (%v)", n, err)
	}
}

func TestPromptSlots_NotANumber(t *testing.T) {
	var out bytes.Buffer
	_, err := promptSlots(strings.NewReader("three\n"), &out)
	if !errors.Is(err, roster.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}
