package report

import (
	"testing"

	"github.com/buttonboxco/tinygo-buttonbox-rp2040/pkg/button"
)

func allStates() []button.State {
	return []button.State{
		{},
		{Button1: true},
		{Button2: true},
		{Button1: true, Button2: true},
	}
}

func TestPackOrder(t *testing.T) {
	cases := []struct {
		st   button.State
		want byte
	}{
		{button.State{}, 0x00},
		{button.State{Button1: true}, 0x01},
		{button.State{Button2: true}, 0x02},
		{button.State{Button1: true, Button2: true}, 0x03},
	}

	for _, c := range cases {
		if got := Pack(c.st); got != c.want {
			t.Errorf("Pack(%+v): expected 0x%02x, got 0x%02x", c.st, c.want, got)
		}
	}
}

func TestPackPaddingAlwaysZero(t *testing.T) {
	for _, st := range allStates() {
		if r := Pack(st); r&PaddingMask != 0 {
			t.Errorf("Pack(%+v) set padding bits: 0x%02x", st, r)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, st := range allStates() {
		if got := Unpack(Pack(st)); got != st {
			t.Errorf("round trip of %+v gave %+v", st, got)
		}
	}
}

func TestUnpackIgnoresPadding(t *testing.T) {
	st := Unpack(0xFD)
	if !st.Button1 || st.Button2 {
		t.Errorf("expected button 1 only, got %+v", st)
	}
}

func TestValid(t *testing.T) {
	for r := 0; r < 256; r++ {
		want := r&int(PaddingMask) == 0
		if got := Valid(byte(r)); got != want {
			t.Errorf("Valid(0x%02x): expected %v, got %v", r, want, got)
		}
	}
}
