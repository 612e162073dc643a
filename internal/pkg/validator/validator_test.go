package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"dokter@dokterku.id", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidLatitude(t *testing.T) {
	valid := []float64{0, -6.2088, 90, -90}
	invalid := []float64{95.0, -90.0001, 180}
	for _, lat := range valid {
		if !IsValidLatitude(lat) {
			t.Errorf("IsValidLatitude(%v) = false, want true", lat)
		}
	}
	for _, lat := range invalid {
		if IsValidLatitude(lat) {
			t.Errorf("IsValidLatitude(%v) = true, want false", lat)
		}
	}
}

func TestIsValidLongitude(t *testing.T) {
	valid := []float64{0, 106.8456, 180, -180}
	invalid := []float64{-185.0, 180.0001}
	for _, lon := range valid {
		if !IsValidLongitude(lon) {
			t.Errorf("IsValidLongitude(%v) = false, want true", lon)
		}
	}
	for _, lon := range invalid {
		if IsValidLongitude(lon) {
			t.Errorf("IsValidLongitude(%v) = true, want false", lon)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2025-01-01", "2000-12-31"}
	invalid := []string{"2025-13-01", "01-01-2025", "2025/01/01", "", "today"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if m, ok := IsValidMonth("2025-07"); !ok || m.Month() != 7 {
		t.Errorf("IsValidMonth(2025-07) = %v, %v", m, ok)
	}
	for _, s := range []string{"2025-13", "2025", "07-2025", ""} {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	shifts := []string{"Pagi", "Siang"}
	if !IsInSlice("Pagi", shifts) {
		t.Error("IsInSlice(Pagi) = false, want true")
	}
	if IsInSlice("Sore", shifts) {
		t.Error("IsInSlice(Sore) = true, want false")
	}
	if IsInSlice("Pagi", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}
