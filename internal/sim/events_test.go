package sim

import (
	"encoding/json"
	"testing"
)

func TestEventJSONUsesNames(t *testing.T) {
	data, err := json.Marshal(Event{Kind: EventBossHit, Amount: 9})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"kind":"boss_hit","at":0,"amount":9}` {
		t.Errorf("encoded %s", data)
	}
	var back Event
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Kind != EventBossHit || back.Amount != 9 {
		t.Errorf("decoded %+v", back)
	}
	if err := json.Unmarshal([]byte(`{"kind":"nap"}`), &back); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestOutcomeText(t *testing.T) {
	for o := OutcomeNone; o <= OutcomeLevelFailed; o++ {
		b, _ := o.MarshalText()
		var got Outcome
		if err := got.UnmarshalText(b); err != nil || got != o {
			t.Errorf("%v decoded as %v (%v)", o, got, err)
		}
	}
	var o Outcome
	if err := o.UnmarshalText([]byte("unknown")); err == nil {
		t.Error("unknown outcome accepted")
	}
}

func TestRecorderTee(t *testing.T) {
	var seen []EventKind
	r := NewRecorder(SinkFunc(func(e Event) { seen = append(seen, e.Kind) }))
	r.Emit(Event{Kind: EventPickup})
	r.Emit(Event{Kind: EventPickup})
	r.Emit(Event{Kind: EventLifeLost})

	if r.Count(EventPickup) != 2 || r.Len() != 3 {
		t.Errorf("count = %d, len = %d", r.Count(EventPickup), r.Len())
	}
	if len(r.Drain()) != 3 || r.Len() != 0 {
		t.Error("drain should empty the buffer")
	}
	if len(seen) != 3 {
		t.Errorf("tee saw %d events", len(seen))
	}
	if len(EventKinds()) != len(eventNames)-1 {
		t.Error("EventKinds should list every named kind except none")
	}
}
