package bill

import "testing"

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{StatusPending, true},
		{StatusPaid, true},
		{StatusOverdue, true},
		{"cancelled", false},
		{"Pending", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidStatus(tt.input); got != tt.expected {
			t.Errorf("IsValidStatus(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
