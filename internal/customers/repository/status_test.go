package repository

import "testing"

func TestNormalizePaymentStatus(t *testing.T) {
	cases := []struct {
		in   string
		want PaymentStatus
	}{
		{"Beklemede", PaymentPending},
		{"beklemede", PaymentPending},
		{"ödeme bekleniyor", PaymentAwaiting},
		{" Ödendi ", PaymentPaid},
	}
	for _, c := range cases {
		if got := NormalizePaymentStatus(c.in); got != c.want {
			t.Fatalf("NormalizePaymentStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValidPaymentStatus(t *testing.T) {
	if !IsValidPaymentStatus("ödendi") {
		t.Fatal("known literal must validate regardless of case")
	}
	if IsValidPaymentStatus("Taksitli") {
		t.Fatal("unknown literal must not validate")
	}
}
