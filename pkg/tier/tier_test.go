package tier

import (
	"errors"
	"testing"
)

func TestOrderRanks(t *testing.T) {
	want := []Tier{Bronze, Silver, Gold, Platinum}
	for i, tr := range want {
		got, err := IndexOf(tr)
		if err != nil {
			t.Fatalf("IndexOf(%s): %v", tr, err)
		}
		if got != i {
			t.Errorf("IndexOf(%s) = %d, want %d", tr, got, i)
		}
		if Order[i] != tr {
			t.Errorf("Order[%d] = %s, want %s", i, Order[i], tr)
		}
	}
}

func TestCompareAntisymmetric(t *testing.T) {
	for _, a := range Order {
		for _, b := range Order {
			ab, err := Compare(a, b)
			if err != nil {
				t.Fatalf("Compare(%s, %s): %v", a, b, err)
			}
			ba, err := Compare(b, a)
			if err != nil {
				t.Fatalf("Compare(%s, %s): %v", b, a, err)
			}
			if ab != -ba {
				t.Errorf("Compare(%s, %s) = %d but Compare(%s, %s) = %d", a, b, ab, b, a, ba)
			}
			if a == b && ab != 0 {
				t.Errorf("Compare(%s, %s) = %d, want 0", a, b, ab)
			}
		}
	}
}

func TestCompareTransitive(t *testing.T) {
	for _, a := range Order {
		for _, b := range Order {
			for _, c := range Order {
				ab, _ := Compare(a, b)
				bc, _ := Compare(b, c)
				ac, _ := Compare(a, c)
				if ab < 0 && bc < 0 && ac >= 0 {
					t.Errorf("transitivity violated: %s < %s < %s but Compare(%s, %s) = %d", a, b, c, a, c, ac)
				}
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		token   string
		want    Tier
		invalid bool
	}{
		{token: "bronze", want: Bronze},
		{token: "silver", want: Silver},
		{token: "gold", want: Gold},
		{token: "platinum", want: Platinum},
		{token: "banana", invalid: true},
		{token: "Gold", invalid: true}, // callers normalize case before parsing
		{token: "", invalid: true},
	}

	for _, tc := range tests {
		got, err := Parse(tc.token)
		if tc.invalid {
			if err == nil {
				t.Errorf("Parse(%q) = %s, want error", tc.token, got)
				continue
			}
			var invErr *InvalidTierError
			if !errors.As(err, &invErr) {
				t.Errorf("Parse(%q) error = %v, want InvalidTierError", tc.token, err)
			} else if invErr.Token != tc.token {
				t.Errorf("InvalidTierError.Token = %q, want %q", invErr.Token, tc.token)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestInvalidTierNotValid(t *testing.T) {
	if Tier("copper").Valid() {
		t.Error("Tier(copper).Valid() = true, want false")
	}
	if _, err := Compare(Gold, Tier("copper")); err == nil {
		t.Error("Compare with invalid tier: want error, got nil")
	}
}
