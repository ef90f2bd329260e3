package repository

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"Yeni", StatusNew},
		{"yeni", StatusNew},
		{"  Arandı  ", StatusCalled},
		{"teklif gönderildi", StatusOfferSent},
		{"satış oldu", StatusSold},
		{"Ulaşılamadı", StatusUnreachable},
	}
	for _, c := range cases {
		if got := NormalizeStatus(c.in); got != c.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeStatusPassesUnknownThrough(t *testing.T) {
	if got := NormalizeStatus(" Belirsiz "); got != "Belirsiz" {
		t.Fatalf("unknown literal must pass through trimmed, got %q", got)
	}
}

func TestIsValidStatus(t *testing.T) {
	if !IsValidStatus("arandı") {
		t.Fatal("known literal must validate regardless of case")
	}
	if IsValidStatus("Belirsiz") {
		t.Fatal("unknown literal must not validate")
	}
}
