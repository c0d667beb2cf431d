package utils

import (
	"reflect"
	"testing"
)

func TestStringHelper_HeaderKey(t *testing.T) {
	s := NewStringHelper()

	tests := []struct {
		input string
		want  string
	}{
		{"follower_count", "follower_count"},
		{"  Follower   Count ", "follower count"},
		{"\ufeffID", "id"},
		{"Total_Payout", "total_payout"},
	}

	for _, tt := range tests {
		if got := s.HeaderKey(tt.input); got != tt.want {
			t.Errorf("HeaderKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStringHelper_TruncateString(t *testing.T) {
	s := NewStringHelper()

	if got := s.TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %q, want short", got)
	}

	if got := s.TruncateString("नमस्ते दुनिया", 3); got != "नमस..." {
		t.Errorf("TruncateString = %q, want rune-safe cut", got)
	}
}

func TestStringHelper_SplitList(t *testing.T) {
	s := NewStringHelper()

	got := s.SplitList(" Instagram, ,YouTube ,")
	want := []string{"Instagram", "YouTube"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}

	if got := s.SplitList(""); got != nil {
		t.Errorf("SplitList(\"\") = %v, want nil", got)
	}
}

func TestNumberHelper_Clean(t *testing.T) {
	n := NewNumberHelper()

	tests := []struct {
		input string
		want  string
	}{
		{"1250", "1250"},
		{" ₹1,250.50 ", "1250.50"},
		{"$ 99", "99"},
		{"INR 4,000", "4000"},
		{"Rs. 300", "300"},
		{"12%", "12"},
		{"-5", "-5"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := n.Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNumberHelper_Group(t *testing.T) {
	n := NewNumberHelper()

	tests := []struct {
		input string
		want  string
	}{
		{"0.00", "0.00"},
		{"999", "999"},
		{"1590.00", "1,590.00"},
		{"-1050.00", "-1,050.00"},
		{"1234567", "1,234,567"},
		{"123456.5", "123,456.5"},
	}

	for _, tt := range tests {
		if got := n.Group(tt.input); got != tt.want {
			t.Errorf("Group(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
