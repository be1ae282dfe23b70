package resource

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		h Handle
		v Version
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{42, 7},
		{Handle(1<<32 - 1), Version(1<<32 - 1)},
	}
	for _, c := range cases {
		packed := Pack(c.h, c.v)
		gotH, gotV := packed.Unpack()
		if gotH != c.h || gotV != c.v {
			t.Errorf("Pack(%d, %d).Unpack() = (%d, %d), want (%d, %d)", c.h, c.v, gotH, gotV, c.h, c.v)
		}
	}
}

func TestInvalidVersionedIsInvalid(t *testing.T) {
	if InvalidVersioned.Valid() {
		t.Error("InvalidVersioned.Valid() = true, want false")
	}
	if Pack(0, 0).Valid() != true {
		t.Error("Pack(0, 0).Valid() = false, want true")
	}
}
