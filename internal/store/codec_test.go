package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/moneytree/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts.UTC()
}

func float(v float64) *float64 { return &v }

func sampleState(t *testing.T) model.AppState {
	t.Helper()
	return model.AppState{
		Trees: []model.Goal{
			{
				ID:            "0190a1b2-c3d4-7e5f-8000-000000000001",
				Name:          "Retirement",
				GoalAmount:    10_000_000,
				CurrentAmount: 50000,
				CreatedAt:     mustTime(t, "2025-06-01T10:00:00.123Z"),
				UpdatedAt:     mustTime(t, "2025-06-02T08:30:00.456Z"),
				History: []model.HistoryEntry{
					{ID: "e1", Timestamp: mustTime(t, "2025-06-01T11:00:00.000Z"), Amount: 50000, Delta: float(50000), Memo: "salary"},
					{ID: "e2", Timestamp: mustTime(t, "2025-06-02T08:30:00.456Z"), Amount: 0, Delta: float(-70000)},
					{ID: "e3", Timestamp: mustTime(t, "2025-06-02T08:30:00.456Z"), Amount: 50000},
					{ID: "e4", Timestamp: mustTime(t, "2025-06-02T08:30:00.456Z"), Amount: 50000, Delta: float(0), Memo: "noop"},
				},
			},
			{
				ID:         "0190a1b2-c3d4-7e5f-8000-000000000002",
				Name:       "旅行",
				GoalAmount: 0.5,
				CreatedAt:  mustTime(t, "2025-06-03T00:00:00Z"),
				UpdatedAt:  mustTime(t, "2025-06-03T00:00:00Z"),
				History:    []model.HistoryEntry{},
			},
		},
		ActiveTreeID: "0190a1b2-c3d4-7e5f-8000-000000000002",
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	st := sampleState(t)
	data, err := Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v\n%s", err, data)
	}
	if !got.Equal(st) {
		t.Fatalf("round trip mismatch\nwant %+v\ngot  %+v", st, got)
	}

	h := got.Trees[0].History
	if h[2].Delta != nil || h[2].Memo != "" {
		t.Errorf("absent change/memo not preserved: %+v", h[2])
	}
	if h[3].Delta == nil || *h[3].Delta != 0 {
		t.Errorf("explicit zero change lost: %+v", h[3])
	}
}

func TestEncode_DocumentShape(t *testing.T) {
	data, err := Encode(sampleState(t))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{
		`"trees":[`,
		`"activeTreeId":"0190a1b2-c3d4-7e5f-8000-000000000002"`,
		`"goalAmount":10000000`,
		`"createdAt":"2025-06-01T10:00:00.123Z"`,
		`{"id":"e1","date":"2025-06-01T11:00:00.000Z","amount":50000,"change":50000,"memo":"salary"}`,
		`{"id":"e3","date":"2025-06-02T08:30:00.456Z","amount":50000}`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded document missing %s\n%s", want, s)
		}
	}

	empty, err := Encode(model.EmptyState())
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != `{"trees":[],"activeTreeId":null}` {
		t.Errorf("empty state encoded as %s", empty)
	}
}

// A document exported from the browser app, including an entry written by
// the variant that never recorded a change.
func TestDecode_BrowserExport(t *testing.T) {
	doc := `{
	  "trees": [{
	    "id": "1717236000000-k2j4h5g",
	    "name": "家族旅行",
	    "goalAmount": 300000,
	    "currentAmount": 120000,
	    "createdAt": "2024-06-01T10:00:00.000Z",
	    "updatedAt": "2024-06-05T12:34:56.789Z",
	    "history": [
	      {"id": "1717236000001-aaaaaaa", "date": "2024-06-01T10:00:00.000Z", "amount": 100000},
	      {"id": "1717236000002-bbbbbbb", "date": "2024-06-05T12:34:56.789Z", "amount": 120000, "change": 20000, "memo": "ボーナス"}
	    ]
	  }],
	  "activeTreeId": "1717236000000-k2j4h5g"
	}`
	st, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	g, ok := st.Active()
	if !ok || g.Name != "家族旅行" || g.CurrentAmount != 120000 {
		t.Fatalf("active = %+v, %v", g, ok)
	}
	if g.History[0].Delta != nil || g.History[1].Change() != 20000 || g.History[1].Memo != "ボーナス" {
		t.Fatalf("history decoded wrong: %+v", g.History)
	}
	if g.UpdatedAt.Nanosecond() != 789_000_000 {
		t.Fatalf("UpdatedAt = %v, want .789", g.UpdatedAt)
	}
}

func TestDecode_NullActive(t *testing.T) {
	st, err := Decode([]byte(`{"trees":[],"activeTreeId":null}`))
	if err != nil {
		t.Fatal(err)
	}
	if st.ActiveTreeID != "" || st.Trees == nil || len(st.Trees) != 0 {
		t.Fatalf("state = %+v, want empty", st)
	}
}

func TestDecode_TruncatesToMillis(t *testing.T) {
	doc := `{"trees":[{"id":"a","name":"A","goalAmount":1,"currentAmount":0,
	  "createdAt":"2025-01-01T00:00:00.123456789+09:00","updatedAt":"2025-01-01T00:00:00Z","history":[]}],
	  "activeTreeId":"a"}`
	st, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	created := st.Trees[0].CreatedAt
	if created.Nanosecond() != 123_000_000 || created.Location() != time.UTC || created.Hour() != 15 {
		t.Fatalf("CreatedAt = %v, want 2024-12-31T15:00:00.123Z", created)
	}
}

func TestDecode_RejectsSchemaMismatch(t *testing.T) {
	const okTree = `"id":"a","name":"A","goalAmount":100,"currentAmount":0,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"`
	tests := map[string]string{
		"not json":          `{trees:`,
		"array root":        `[]`,
		"missing trees":     `{"activeTreeId":null}`,
		"null trees":        `{"trees":null,"activeTreeId":null}`,
		"trees wrong type":  `{"trees":{},"activeTreeId":null}`,
		"amount as string":  `{"trees":[{"id":"a","name":"A","goalAmount":"100","currentAmount":0,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z","history":[]}]}`,
		"missing id":        `{"trees":[{"name":"A","goalAmount":100,"currentAmount":0,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]}`,
		"blank name":        `{"trees":[{"id":"a","name":"  ","goalAmount":100,"currentAmount":0,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]}`,
		"zero goal":         `{"trees":[{"id":"a","name":"A","goalAmount":0,"currentAmount":0,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]}`,
		"negative current":  `{"trees":[{"id":"a","name":"A","goalAmount":1,"currentAmount":-1,"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}]}`,
		"bad createdAt":     `{"trees":[{"id":"a","name":"A","goalAmount":1,"currentAmount":0,"createdAt":"yesterday","updatedAt":"2025-01-01T00:00:00Z"}]}`,
		"duplicate ids":     `{"trees":[{` + okTree + `},{` + okTree + `}]}`,
		"entry missing id":  `{"trees":[{` + okTree + `,"history":[{"date":"2025-01-01T00:00:00Z","amount":1}]}]}`,
		"entry bad date":    `{"trees":[{` + okTree + `,"history":[{"id":"e","date":"","amount":1}]}]}`,
		"entry negative":    `{"trees":[{` + okTree + `,"history":[{"id":"e","date":"2025-01-01T00:00:00Z","amount":-3}]}]}`,
		"entry change type": `{"trees":[{` + okTree + `,"history":[{"id":"e","date":"2025-01-01T00:00:00Z","amount":1,"change":"+1"}]}]}`,
	}
	for name, doc := range tests {
		_, err := Decode([]byte(doc))
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: err = %v, want ErrCorrupt", name, err)
		}
	}
}
