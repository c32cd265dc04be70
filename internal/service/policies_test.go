package service

import (
	"testing"

	"dermamatch/internal/domain"
)

func TestValidatePolicies(t *testing.T) {
	if err := ValidatePolicies(); err != nil {
		t.Fatalf("policy table must be valid at startup: %v", err)
	}
}

func TestPolicyForEverySkinType(t *testing.T) {
	for _, st := range domain.SkinTypeOrder {
		policy, err := PolicyFor(st)
		if err != nil {
			t.Fatalf("PolicyFor(%q): %v", st, err)
		}
		if len(policy.PreferredCategories) == 0 {
			t.Fatalf("policy for %q has empty preferred categories", st)
		}
		if policy.Limit <= 0 {
			t.Fatalf("policy for %q has limit %d, want > 0", st, policy.Limit)
		}
		for tag, weight := range policy.BoostTags {
			if weight < 0 {
				t.Fatalf("policy for %q boosts %q with negative weight %v", st, tag, weight)
			}
		}
	}
}

func TestPolicyForUnknownType(t *testing.T) {
	if _, err := PolicyFor(domain.SkinType("XX")); err == nil {
		t.Fatalf("expected error for unconfigured skin type")
	}
}

func TestSensitivePolicyExcludesIrritants(t *testing.T) {
	policy, err := PolicyFor(domain.SkinTypeSensitive)
	if err != nil {
		t.Fatalf("PolicyFor(HS): %v", err)
	}
	excluded := make(map[string]bool, len(policy.ExcludedTags))
	for _, tag := range policy.ExcludedTags {
		excluded[tag] = true
	}
	for _, tag := range []string{"fragrance", "essential-oils", "drying-alcohol"} {
		if !excluded[tag] {
			t.Fatalf("HS policy must exclude %q, has %v", tag, policy.ExcludedTags)
		}
	}
}
