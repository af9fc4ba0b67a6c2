package units

import (
	"testing"

	"github.com/san-kum/orrery/internal/dec"
)

func TestAUConversion(t *testing.T) {
	if AUToMeters(dec.One()).Cmp(dec.MustParse("149597870691")) != 0 {
		t.Errorf("1 AU = %s m, want 149597870691", AUToMeters(dec.One()).String())
	}

	roundTrip := MetersToAU(AUToMeters(dec.MustParse("2.5")))
	if roundTrip.Cmp(dec.MustParse("2.5")) != 0 {
		t.Errorf("AU round trip = %s, want 2.5", roundTrip.String())
	}
}

func TestG(t *testing.T) {
	if G().Cmp(dec.MustParse("6.67408e-11")) != 0 {
		t.Errorf("G = %s, want 6.67408e-11", G().String())
	}
}
