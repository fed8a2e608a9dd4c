package league

import "testing"

func TestNormalizeShortCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bukovsko", "BUK"},
		{"KOS", "KOS"},
		{"hc", "HC"},
		{"  kostelec  ", "KOS"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeShortCode(tt.input); got != tt.want {
			t.Errorf("NormalizeShortCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidPosition(t *testing.T) {
	for _, p := range []string{PositionGoalkeeper, PositionDefenseman, PositionForward} {
		if !ValidPosition(p) {
			t.Errorf("ValidPosition(%q) = false", p)
		}
	}
	if ValidPosition("winger") {
		t.Error(`ValidPosition("winger") = true`)
	}
}
