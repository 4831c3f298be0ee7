package commission

import (
	"strings"
	"testing"
)

func TestMoney_Fixed(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{eur("0.6"), "0.60"},
		{eur("3"), "3.00"},
		{eur("0.69481973288041"), "0.69"},
		{mustMoney("8611.4100000001", JPY), "8611.41"},
		{mustMoney("0.575", USD), "0.58"},
		{M(0, EUR), "0.00"},
	}
	for _, tt := range tests {
		if got := tt.m.Fixed(); got != tt.want {
			t.Errorf("%s.Fixed() = %q, want %q", tt.m.Value(), got, tt.want)
		}
	}
}

func TestMoney_Round(t *testing.T) {
	m := eur("0.69481973288041").Round()
	if !m.Equal(eur("0.69")) {
		t.Errorf("Round() = %s, want 0.69", m.Value())
	}
}

func TestMoney_String(t *testing.T) {
	for _, cur := range Currencies() {
		got := M(0.3, cur).String()
		if !strings.Contains(got, cur.Symbol()) || !strings.Contains(got, "30") {
			t.Errorf("M(0.3, %s).String() = %q, want the %q symbol and two decimals", cur, got, cur.Symbol())
		}
	}
}

func TestMoney_Add(t *testing.T) {
	if got := eur("0.6").Add(eur("3")); !got.Equal(eur("3.6")) {
		t.Errorf("Add() = %s, want 3.6", got.Value())
	}
	defer func() {
		if recover() == nil {
			t.Errorf("Add() of different currencies should panic")
		}
	}()
	eur("1").Add(M(1, USD))
}

func TestParseMoney(t *testing.T) {
	if _, err := ParseMoney("12,5", EUR); err == nil {
		t.Errorf("ParseMoney(12,5) should fail")
	}
	m, err := ParseMoney("1200.00", EUR)
	if err != nil || !m.Equal(eur("1200")) {
		t.Errorf("ParseMoney(1200.00) = %v, %v", m.Value(), err)
	}
}
