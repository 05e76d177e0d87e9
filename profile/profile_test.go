package profile

import "testing"

func TestMake(t *testing.T) {
	c := Make(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))

	want := Config{Mode: "cpu", Path: "/tmp/p", Quiet: true}
	if c != want {
		t.Errorf("Make() = %+v, want %+v", c, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	for _, c := range []Config{{}, {Mode: "bogus"}} {
		s := c.Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("Start(%+v) = %T, want no-op", c, s)
		}

		s.Stop()
	}
}
