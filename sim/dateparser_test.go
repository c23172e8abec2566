package sim

import "testing"

func TestParseStartTime_Valid(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"08:30": 8*60 + 30,
		"23:59": 23*60 + 59,
	}
	for input, want := range cases {
		got, err := ParseStartTime(input)
		if err != nil {
			t.Fatalf("ParseStartTime(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseStartTime(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestParseStartTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "25:00", "8:30am", "not-a-time"} {
		if _, err := ParseStartTime(input); err == nil {
			t.Fatalf("expected ParseStartTime(%q) to return an error", input)
		}
	}
}
