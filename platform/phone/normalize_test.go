package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0555 111 22 33", "+905551112233"},
		{"+90 555 111 22 33", "+905551112233"},
		{"  05551112233  ", "+905551112233"},
		{"not a number", "not a number"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeE164(c.in); got != c.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
