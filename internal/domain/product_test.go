package domain

import "testing"

func TestProductHasTag(t *testing.T) {
	p := Product{Tags: []string{"ceramides", "hydrating"}}

	tests := []struct {
		tag  string
		want bool
	}{
		{"ceramides", true},
		{"hydrating", true},
		{"retinol", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := p.HasTag(tt.tag); got != tt.want {
			t.Fatalf("HasTag(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}

	var empty Product
	if empty.HasTag("ceramides") {
		t.Fatalf("expected no tags on zero product")
	}
}
