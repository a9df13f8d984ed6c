package profile

import "testing"

func TestMake_AppliesOptions(t *testing.T) {
	p := Make(WithMode("cpu"), WithPath("/tmp/prof"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/prof", Quiet: true}
	if p != want {
		t.Errorf("Make() = %+v, want %+v", p, want)
	}
}

func TestProfiler_StartWithoutMode(t *testing.T) {
	stop := Make(WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() without mode = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestProfiler_UnknownMode(t *testing.T) {
	stop := Make(WithMode("bogus"), WithPath(t.TempDir())).Start()
	if _, ok := stop.(ignore); !ok {
		t.Errorf("Start() with unknown mode = %T, want no-op", stop)
	}

	stop.Stop()
}
