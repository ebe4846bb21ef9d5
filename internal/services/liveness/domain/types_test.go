package domain

import "testing"

func TestParseDecision(t *testing.T) {
	cases := map[string]Decision{
		"":          DecisionAbsent,
		"  ":        DecisionAbsent,
		"realface":  DecisionReal,
		"RealFace":  DecisionReal,
		"real":      DecisionReal,
		"spoofface": DecisionSpoof,
		"spoof":     DecisionSpoof,
		"uncertain": DecisionUnknown,
	}
	for in, want := range cases {
		if got := ParseDecision(in); got != want {
			t.Fatalf("ParseDecision(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMode(t *testing.T) {
	if ModePlain.PathSegment() != "detectLiveness" || ModeVerify.PathSegment() != "detectLivenessWithVerify" {
		t.Fatal("path segments")
	}
	if ModePlain.String() != "PlainCheck" || ModeVerify.String() != "CheckWithReferenceMatch" {
		t.Fatal("mode names")
	}
}

func TestOutcome_Succeeded(t *testing.T) {
	if (Outcome{Status: "Running"}).Succeeded() {
		t.Fatal("Running is not terminal")
	}
	if !(Outcome{Status: StatusSucceeded}).Succeeded() {
		t.Fatal("Succeeded is terminal")
	}
}
