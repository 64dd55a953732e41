package icons

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		fallback string
		want     string
		wantOK   bool
	}{
		{"known identifier passes through", "Car", DefaultPot, "Car", true},
		{"empty uses fallback without warning", "", DefaultBudget, DefaultBudget, true},
		{"unknown substitutes fallback and reports it", "Sparkles2000", DefaultPot, DefaultPot, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.in, tt.fallback)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown("Wallet") {
		t.Fatal("Wallet should be known")
	}
	if IsKnown("wallet") {
		t.Fatal("lookup is case-sensitive; lowercase should be unknown")
	}
}
