package format

import (
	"testing"
	"time"
)

func TestParseDefaultTemplate(t *testing.T) {
	f, err := Parse(DefaultTemplate)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", DefaultTemplate, err)
	}
	got := f.Render(0)
	if got != "Elapsed: 00:00:00" {
		t.Errorf("Render(0) = %q, want %q", got, "Elapsed: 00:00:00")
	}
}

func TestNewlines(t *testing.T) {
	f, err := Parse("Hours: %H%nMinutes: %M\\nSeconds: %S\n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if f.Newlines() != 3 {
		t.Errorf("Newlines() = %d, want 3", f.Newlines())
	}
}

func TestRender(t *testing.T) {
	testCases := []struct {
		template string
		d        time.Duration
		want     string
	}{
		{"Elapsed: %H:%M:%S", 0, "Elapsed: 00:00:00"},
		{"", 0, ""},
		{"Elapsed: %H:%M:%S.%f", 0, "Elapsed: 00:00:00.000000"},
		{"Elapsed: %s.%f", 0, "Elapsed: 0.000000"},
		{"Elapsed: %s.%0f", 0, "Elapsed: 0."},
		{"Elapsed: %s.%1f", 0, "Elapsed: 0.0"},
		{"Elapsed: %H:%M:%S", (2*3600 + 34*60 + 56) * time.Second, "Elapsed: 02:34:56"},
		{"Elapsed: %s", (2*3600 + 34*60 + 56) * time.Second, "Elapsed: 9296"},
		{"Elapsed: %s.%2f", 123 * time.Millisecond, "Elapsed: 0.12"},
		{"Elapsed: %s.%2f", 999 * time.Millisecond, "Elapsed: 0.99"},
		{"Elapsed: %s.%f", 123456789 * time.Nanosecond, "Elapsed: 0.123456"},
		{"Elapsed: %s.%20f", 123456789 * time.Nanosecond, "Elapsed: 0.12345678900000000000"},
		{`/%%\\ %e[1mElapsed:\e[m%t\t%H:%M:%S`, 0, "/%\\ \x1b[1mElapsed:\x1b[m\t\t00:00:00"},
		// Hours degrade gracefully past two digits.
		{"%H:%M:%S", 123*time.Hour + 4*time.Minute + 5*time.Second, "123:04:05"},
		// Sub-second digits truncate, never round.
		{"%1f", 999999999 * time.Nanosecond, "9"},
	}

	for _, tc := range testCases {
		f, err := Parse(tc.template)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.template, err)
			continue
		}
		got := f.Render(tc.d)
		if got != tc.want {
			t.Errorf("Parse(%q).Render(%v) = %q, want %q", tc.template, tc.d, got, tc.want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	f := MustParse("%H:%M:%S.%3f")
	d := 3*time.Hour + 2*time.Minute + 1*time.Second + 456*time.Millisecond
	first := f.Render(d)
	for i := 0; i < 10; i++ {
		if got := f.Render(d); got != first {
			t.Fatalf("Render(%v) changed between calls: %q then %q", d, first, got)
		}
	}
}

func TestZeroPaddingWidth(t *testing.T) {
	// %H/%M/%S are exactly two digits for every duration under 100 hours.
	f := MustParse("%H|%M|%S")
	durations := []time.Duration{
		0,
		time.Second,
		59 * time.Second,
		time.Minute,
		59 * time.Minute,
		time.Hour,
		9*time.Hour + 59*time.Minute + 59*time.Second,
		99*time.Hour + 59*time.Minute + 59*time.Second,
	}
	for _, d := range durations {
		got := f.Render(d)
		if len(got) != 8 { // 2+1+2+1+2
			t.Errorf("Render(%v) = %q, want every field zero-padded to 2 digits", d, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []string{
		"Years: %Y",
		"Years: %",
		`Time: %s\r`,
		`Time: %s\`,
		"Time: %s.%999999999999f",
		"Time: %s.%999_999f",
	}

	for _, template := range testCases {
		if _, err := Parse(template); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", template)
		}
	}
}

func TestNegativeDurationClamps(t *testing.T) {
	f := Default()
	if got := f.Render(-5 * time.Second); got != "Elapsed: 00:00:00" {
		t.Errorf("Render(-5s) = %q, want clamped to zero", got)
	}
}
