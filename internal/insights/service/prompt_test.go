package service

import (
	"strings"
	"testing"
)

func TestBuildPrompt_ContainsAttributesAndSchema(t *testing.T) {
	prompt := buildPrompt(testAttrs, "", nil)

	for _, want := range []string{
		"240.0 square meters",
		"latitude 17.410500",
		"longitude 78.430500",
		"confidence: 0.85",
		"7J9W4M00+XX",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	for _, key := range requiredKeys {
		if !strings.Contains(prompt, `"`+key+`"`) {
			t.Fatalf("prompt missing schema key %q", key)
		}
	}
}

func TestBuildPrompt_OptionalSections(t *testing.T) {
	bare := buildPrompt(testAttrs, "", nil)
	if strings.Contains(bare, "Area context") {
		t.Fatal("area context section must be absent without notes")
	}
	if strings.Contains(bare, "street-level photo") {
		t.Fatal("imagery section must be absent without images")
	}

	full := buildPrompt(testAttrs, "IT corridor of Hyderabad", []string{"N", "E"})
	if !strings.Contains(full, "IT corridor of Hyderabad") {
		t.Fatal("area context notes missing")
	}
	if !strings.Contains(full, "direction(s): N, E") {
		t.Fatal("image direction labels missing")
	}
}
