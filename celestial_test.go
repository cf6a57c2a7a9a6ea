package reentry

import (
	"testing"
)

func TestCelestialObject(t *testing.T) {
	for _, object := range []CelestialObject{Sun, Venus, Earth, Mars, Jupiter} {
		var i uint8
		for i = 1; i < 6; i++ {
			if i == 2 && object.J(i) != object.J2 {
				t.Fatalf("J2 not returned for %s", object)
			} else if i != 2 && object.J(i) != 0 {
				t.Fatalf("J(%d) = %f != 0 for %s", i, object.J(i), object)
			}
		}
		if object.GM() != object.μ {
			t.Fatalf("GM not returned for %s", object)
		}
	}
	if !Earth.Equals(Earth) {
		t.Fatal("Earth is not Earth")
	}
	if Earth.Equals(Mars) {
		t.Fatal("Earth should not equal Mars")
	}
}

func TestCelestialObjectFromString(t *testing.T) {
	for _, name := range []string{"Earth", "earth", "MOON", "Titan"} {
		body, err := CelestialObjectFromString(name)
		if err != nil {
			t.Fatalf("lookup of %q failed: %s", name, err)
		}
		if body.NAIF == 0 && name != "SSB" {
			t.Fatalf("lookup of %q returned the SSB", name)
		}
	}
	if _, err := CelestialObjectFromString("Vesta"); err == nil {
		t.Fatal("lookup of an uncataloged body should fail")
	}
}

func TestBodyKindString(t *testing.T) {
	for kind, exp := range map[BodyKind]string{KindBarycenter: "barycenter", KindStar: "star", KindPlanet: "planet", KindMoon: "moon"} {
		if kind.String() != exp {
			t.Fatalf("kind %d stringifies to %q", kind, kind.String())
		}
	}
	assertPanic(t, func() {
		_ = BodyKind(42).String()
	})
}

func TestCatalogHierarchy(t *testing.T) {
	seen := make(map[int]bool, len(catalog))
	for _, body := range catalog {
		if body.Parent != -1 && !seen[body.Parent] {
			t.Fatalf("%s appears before its parent %d", body, body.Parent)
		}
		if seen[body.NAIF] {
			t.Fatalf("duplicate NAIF id %d", body.NAIF)
		}
		seen[body.NAIF] = true
		if body.Kind == KindMoon && body.Orbit == nil {
			t.Fatalf("moon %s has no orbit", body)
		}
	}
}
