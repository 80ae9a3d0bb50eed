package match

import "testing"

func TestMatchesNormalizedVariants(t *testing.T) {
	cases := []struct {
		name     string
		observed string
		expected string
	}{
		{"identical", "Profit: $60000000.0", "Profit: $60000000.0"},
		{"case differs", "PROFIT: $60000000.0", "Profit: $60000000.0"},
		{"extra whitespace", "  Profit:   $60000000.0  ", "Profit: $60000000.0"},
		{"newline style", "Apple\r\nGoogle\r\nAmazon", "Apple\nGoogle\nAmazon"},
		{"tabs collapsed", "Signal:\tBUY", "Signal: BUY"},
	}
	for _, tc := range cases {
		if !Matches(tc.observed, tc.expected) {
			t.Errorf("%s: expected %q to match %q", tc.name, tc.observed, tc.expected)
		}
	}
}

func TestMatchesEmptyNeverMatches(t *testing.T) {
	if Matches("", "anything") {
		t.Fatalf("empty observed must not match")
	}
	if Matches("anything", "") {
		t.Fatalf("empty expected must not match")
	}
	if Matches("   \n  ", "x") {
		t.Fatalf("whitespace-only observed must not match")
	}
}

func TestMatchesContainment(t *testing.T) {
	if !Matches("The answer is: Signal: BUY today", "Signal: BUY") {
		t.Fatalf("expected containment match")
	}
	if !Matches("NVIDIA", "Last stock: NVIDIA") {
		t.Fatalf("expected reverse containment match")
	}
}

func TestMatchesLineWise(t *testing.T) {
	observed := "Apple\nGoogle\nAmazon\n"
	expected := "apple\ngoogle\namazon"
	if !Matches(observed, expected) {
		t.Fatalf("expected line-wise match")
	}

	// Every expected line contained in the output, with extra lines around.
	observed = "starting...\nApple\nGoogle\nAmazon\ndone"
	if !Matches(observed, expected) {
		t.Fatalf("expected contained-lines match")
	}

	if Matches("Apple\nBanana", "Apple\nGoogle\nAmazon") {
		t.Fatalf("missing line must not match")
	}
}

func TestMatchesNumericFallback(t *testing.T) {
	if !Matches("Total: $1175 million", "1175.4") {
		t.Fatalf("expected numeric fallback match within tolerance")
	}
	if Matches("Total: 10", "20") {
		t.Fatalf("numbers differing by 10 must not match")
	}
	if !Matches("310,000.00 KWD", "Converted: 310000") {
		t.Fatalf("expected thousands separators to be stripped")
	}
	if !Matches("result = 300000.5", "300000.0") {
		t.Fatalf("expected sub-1.0 difference to match")
	}
	if Matches("no numbers here", "also none") {
		t.Fatalf("fallback requires numbers on both sides")
	}
}

func TestMatchesUsesLastNumber(t *testing.T) {
	// The final value is the one that counts, not intermediates.
	if !Matches("year 5 of 5: $146932807.68", "Final Value: $146932807.68") {
		t.Fatalf("expected match on last extracted number")
	}
	if Matches("rounds 1 2 3, result 999", "result 100") {
		t.Fatalf("mismatched final numbers must not match")
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  Hello\n\tWorld  ")
	if got != "hello world" {
		t.Fatalf("unexpected normalization result: %q", got)
	}
}
