package clock

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"9:30 AM", 9*60 + 30, false},
		{"09:30 AM", 9*60 + 30, false},
		{"9:30AM", 9*60 + 30, false},
		{"9:30 am", 9*60 + 30, false},
		{"12:00 AM", 0, false},
		{"12:00 PM", 12 * 60, false},
		{"12:59 PM", 12*60 + 59, false},
		{"11:59 PM", 23*60 + 59, false},
		{"1:05 PM", 13*60 + 5, false},
		{"", 0, true},
		{"930 AM", 0, true},
		{"13:00 PM", 0, true},
		{"0:30 AM", 0, true},
		{"00:30 AM", 0, true},
		{"9:60 AM", 0, true},
		{"9:30", 0, true},
		{"9:30 XM", 0, true},
		{"9:30  AM", 0, true},
		{"+9:30 AM", 0, true},
		{"9:3 AM", 0, true},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "12:00 AM"},
		{30, "12:30 AM"},
		{9 * 60, "9:00 AM"},
		{12 * 60, "12:00 PM"},
		{13 * 60, "1:00 PM"},
		{23*60 + 59, "11:59 PM"},
	}

	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Errorf("Format(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	cases := map[string]string{
		"9:30 AM":  "9:30 AM",
		"09:30 am": "9:30 AM",
		"02:30PM":  "2:30 PM",
		"12:00 pm": "12:00 PM",
	}

	for in, want := range cases {
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
		// Normalized output must survive another round trip unchanged.
		again, err := Normalize(got)
		if err != nil || again != got {
			t.Errorf("Normalize(%q) is not a fixed point: %q, err=%v", got, again, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"disjoint before", 540, 600, 600, 660, false},
		{"disjoint after", 660, 720, 600, 660, false},
		{"identical", 600, 660, 600, 660, true},
		{"partial overlap", 570, 630, 600, 660, true},
		{"contained", 610, 620, 600, 660, true},
		{"same-hour boundary", 600, 630, 630, 660, false},
	}

	for _, tc := range cases {
		if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Errorf("%s: Overlaps(%d,%d,%d,%d) = %v, want %v",
				tc.name, tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
		}
	}
}
