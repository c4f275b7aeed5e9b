package translate

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     Kind
	}{
		{"Forecast total sales for the next 6 months.", KindForecast},
		{"What is the sales trend by month?", KindForecast},
		{"List all customers from Germany.", KindPlain},
		{"How many orders were placed in 1997?", KindPlain},
		{"revenue per region", KindPlain},
	}
	for _, tc := range cases {
		if got := Classify(tc.question); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}

func TestIsAmbiguous(t *testing.T) {
	if !IsAmbiguous("What will next month look like?") {
		t.Error("expected ambiguous phrasing to be detected")
	}
	if IsAmbiguous("List all customers.") {
		t.Error("plain listing question flagged ambiguous")
	}
}

func TestExtractHorizon(t *testing.T) {
	cases := []struct {
		question string
		want     int
	}{
		{"Forecast sales for the next 6 months", 6},
		{"predict revenue for 2 years", 24},
		{"outlook over 3 quarters", 9},
		{"what happens next 4", 4},
		{"forecast sales", DefaultHorizon},
	}
	for _, tc := range cases {
		if got := ExtractHorizon(tc.question); got != tc.want {
			t.Errorf("ExtractHorizon(%q) = %d, want %d", tc.question, got, tc.want)
		}
	}
}
