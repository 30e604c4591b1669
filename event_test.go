package geoscribe

import "testing"

func TestEventFireOrder(t *testing.T) {
	var e Event[int]
	var got []int
	e.Listen(func(v int) { got = append(got, v*10) })
	e.Listen(func(v int) { got = append(got, v*100) })

	e.Fire(1)
	e.Fire(2)

	want := []int{10, 100, 20, 200}
	if len(got) != len(want) {
		t.Fatalf("got %v calls, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEventListenerRemove(t *testing.T) {
	var e Event[string]
	calls := 0
	handle := e.Listen(func(string) { calls++ })

	e.Fire("a")
	handle.Remove()
	e.Fire("b")
	handle.Remove() // repeated removal is safe

	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
	if n := e.NumListeners(); n != 0 {
		t.Errorf("NumListeners() = %d, want 0", n)
	}
}

func TestEventListenOnce(t *testing.T) {
	var e Event[int]
	calls := 0
	e.ListenOnce(func(int) { calls++ })

	e.Fire(1)
	e.Fire(2)

	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}

func TestEventRemoveDuringFire(t *testing.T) {
	var e Event[int]
	var secondHandle ListenerHandle
	firstCalls, secondCalls := 0, 0

	e.Listen(func(int) {
		firstCalls++
		secondHandle.Remove()
	})
	secondHandle = e.Listen(func(int) { secondCalls++ })

	e.Fire(0)

	if firstCalls != 1 {
		t.Errorf("first listener: got %d calls, want 1", firstCalls)
	}
	if secondCalls != 0 {
		t.Errorf("second listener fired after being removed mid-fire: got %d calls, want 0", secondCalls)
	}
}

func TestEventSelfRemoveDuringFire(t *testing.T) {
	var e Event[int]
	var handle ListenerHandle
	calls := 0
	handle = e.Listen(func(int) {
		calls++
		handle.Remove()
	})

	e.Fire(0)
	e.Fire(0)

	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}

func TestEventListenDuringFire(t *testing.T) {
	var e Event[int]
	lateCalls := 0
	e.ListenOnce(func(int) {
		e.Listen(func(int) { lateCalls++ })
	})

	e.Fire(0)
	if lateCalls != 0 {
		t.Errorf("listener added mid-fire saw the current value: got %d calls, want 0", lateCalls)
	}

	e.Fire(0)
	if lateCalls != 1 {
		t.Errorf("got %d calls after second fire, want 1", lateCalls)
	}
}
