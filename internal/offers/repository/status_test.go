package repository

import "testing"

func TestNormalizeStatusCollapsesHistoricalCasing(t *testing.T) {
	// Old rows carry "Kabul edildi"; both spellings must land on Accepted.
	if got := NormalizeStatus("Kabul edildi"); got != StatusAccepted {
		t.Fatalf("NormalizeStatus(\"Kabul edildi\") = %q, want %q", got, StatusAccepted)
	}
	if got := NormalizeStatus("Kabul Edildi"); got != StatusAccepted {
		t.Fatalf("NormalizeStatus(\"Kabul Edildi\") = %q, want %q", got, StatusAccepted)
	}
}

func TestNormalizeStatusKnownLiterals(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"Beklemede", StatusPending},
		{"gönderildi", StatusSent},
		{"Bekliyor", StatusAwaiting},
		{"reddedildi", StatusRejected},
	}
	for _, c := range cases {
		if got := NormalizeStatus(c.in); got != c.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	if !IsValidStatus("kabul edildi") {
		t.Fatal("historical casing must validate")
	}
	if IsValidStatus("İptal") {
		t.Fatal("unknown literal must not validate")
	}
}
