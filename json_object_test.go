package commission

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/etnz/commission/date"
)

func TestOrderedObject(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w orderedObject
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w orderedObject
		w.Set("user_id", "4")
		w.Set("amount", 1200)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"user_id":"4","amount":1200}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("merge", func(t *testing.T) {
		var w orderedObject
		w.Set("index", 0)
		w.Merge(json.RawMessage(`{"c":3,"d":4}`))
		w.Set("fee", "0.60")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"index":0,"c":3,"d":4,"fee":"0.60"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("merge a non object", func(t *testing.T) {
		var w orderedObject
		w.Merge([]int{1, 2})
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("expected an error when merging an array")
		}
	})

	t.Run("marshal error", func(t *testing.T) {
		var w orderedObject
		w.Set("bad", make(chan int))
		if _, err := w.MarshalJSON(); err == nil {
			t.Errorf("expected an error for an unsupported value")
		}
	})
}

func TestResult_MarshalJSON(t *testing.T) {
	op := NewOperation(date.MustParse("2016-01-07"), "1", Individual, Withdrawal, M(100, USD))
	r := Result{Index: 7, Operation: op, Fee: M(0.3000000001, USD)}
	got, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"index":7,"date":"2016-01-07","user_id":"1","user_type":"natural","operation_type":"cash_out","amount":"100","currency":"USD","fee":"0.30"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}

	failed := Result{Index: 2, Err: errors.New("boom")}
	got, err = json.Marshal(failed)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"index":2,"error":"boom"}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
