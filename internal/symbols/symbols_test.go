package symbols

import (
	"reflect"
	"testing"
)

func TestBuiltinTablesShareKeys(t *testing.T) {
	gcin := GCINTable()
	speech := SpeechTable()

	if gcin.Len() != 42 {
		t.Errorf("GCINTable() has %d entries, want 42", gcin.Len())
	}
	if speech.Len() != gcin.Len() {
		t.Fatalf("SpeechTable() has %d entries, GCINTable() has %d", speech.Len(), gcin.Len())
	}

	gcinEntries := gcin.Entries()
	speechEntries := speech.Entries()
	for i := range gcinEntries {
		if gcinEntries[i].Key != speechEntries[i].Key {
			t.Errorf("entry %d: key %q vs %q", i, gcinEntries[i].Key, speechEntries[i].Key)
		}
	}
}

func TestBuiltinTablesUniqueKeys(t *testing.T) {
	for name, table := range map[string]Table{"gcin": GCINTable(), "speech": SpeechTable()} {
		seen := make(map[string]bool)
		for _, e := range table.Entries() {
			if seen[e.Key] {
				t.Errorf("%s: duplicate key %q", name, e.Key)
			}
			seen[e.Key] = true
			if e.Source == "" {
				t.Errorf("%s: empty source for %q", name, e.Key)
			}
		}
	}
}

func TestEntriesOrder(t *testing.T) {
	table := Table{
		{Name: "A", Entries: []Entry{{"1", "x"}, {"2", "y"}}},
		{Name: "B", Entries: []Entry{{"3", "z"}}},
	}

	want := []Entry{{"1", "x"}, {"2", "y"}, {"3", "z"}}
	if got := table.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestFilter(t *testing.T) {
	table := GCINTable()

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"no filter", nil, []string{Consonants, Vowels, Tones}},
		{"single", []string{"tones"}, []string{Tones}},
		{"case and spaces", []string{" VOWELS ", "Consonants"}, []string{Consonants, Vowels}},
		{"unknown", []string{"finals"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range table.Filter(tt.names...) {
				got = append(got, c.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%v) = %v, want %v", tt.names, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	table := SpeechTable()

	entry, category, ok := table.Lookup("tone3")
	if !ok {
		t.Fatal("Lookup(tone3) not found")
	}
	if entry.Source != "馬" || category != Tones {
		t.Errorf("Lookup(tone3) = %v in %s", entry, category)
	}

	if _, _, ok := table.Lookup("ㄪ"); ok {
		t.Error("Lookup of unknown key should fail")
	}
}
