package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testFactories() map[Kind]Factory {
	return map[Kind]Factory{
		KindUser: func(id string) Doc {
			return Doc{
				"id":    id,
				"coins": 100,
				"level": 1,
				"inventory": Doc{
					"materials": Doc{},
					"potions":   Doc{},
				},
			}
		},
		KindGuild: func(id string) Doc {
			return Doc{"id": id, "settings": Doc{}}
		},
	}
}

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s := New(path, time.Minute, testFactories())
	if err := s.Open(); err != nil {
		t.Fatalf("Open() = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// Marshal both sides so int-vs-float64 differences from a JSON reload
// do not matter.
func jsonEqual(t *testing.T, a, b any) bool {
	t.Helper()
	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	jb, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(ja) == string(jb)
}

func TestGet_CreatesDefaultIdempotently(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	first := s.Get(KindUser, "alice")
	if first["coins"] != 100 {
		t.Errorf("new record coins = %v, want 100", first["coins"])
	}
	second := s.Get(KindUser, "alice")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second Get differs from first:\n%v\n%v", first, second)
	}
}

func TestGet_CopyIsolation(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	doc := s.Get(KindUser, "alice")
	doc["coins"] = 999999
	doc["inventory"].(Doc)["materials"].(Doc)["herb"] = 42

	fresh := s.Get(KindUser, "alice")
	if fresh["coins"] != 100 {
		t.Errorf("external mutation leaked into the store: coins = %v", fresh["coins"])
	}
	if _, ok := fresh["inventory"].(Doc)["materials"].(Doc)["herb"]; ok {
		t.Error("external mutation of a nested map leaked into the store")
	}
}

func TestUpdate_SequentialUpdatesDoNotClobber(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	p := s.Get(KindUser, "alice")
	if !s.Update(KindUser, "alice", Doc{"coins": p["coins"].(int) - 30}) {
		t.Fatal("first update failed")
	}
	if !s.Update(KindUser, "alice", Doc{"inventory": Doc{"materials": Doc{"herb": 2}}}) {
		t.Fatal("second update failed")
	}

	got := s.Get(KindUser, "alice")
	if got["coins"] != 70 {
		t.Errorf("coins = %v, want 70", got["coins"])
	}
	if herb := got["inventory"].(Doc)["materials"].(Doc)["herb"]; herb != 2 {
		t.Errorf("inventory.materials.herb = %v, want 2", herb)
	}
	if _, ok := got["lastSeen"].(int64); !ok {
		t.Errorf("lastSeen = %v, want a timestamp", got["lastSeen"])
	}
}

func TestUpdate_PatchAliasingIsHarmless(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	patch := Doc{"inventory": Doc{"materials": Doc{"herb": 2}}}
	s.Update(KindUser, "alice", patch)
	patch["inventory"].(Doc)["materials"].(Doc)["herb"] = 9000

	got := s.Get(KindUser, "alice")
	if herb := got["inventory"].(Doc)["materials"].(Doc)["herb"]; herb != 2 {
		t.Errorf("mutating the patch after Update changed the store: herb = %v", herb)
	}
}

func TestUpdate_FailureLeavesRecordUnchanged(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	p := s.Get(KindUser, "alice")
	s.Update(KindUser, "alice", Doc{"coins": p["coins"].(int) - 30})

	// channels do not serialize to JSON
	if s.Update(KindUser, "alice", Doc{"coins": 0, "oops": make(chan int)}) {
		t.Fatal("update with an unserializable patch reported success")
	}

	got := s.Get(KindUser, "alice")
	if got["coins"] != 70 {
		t.Errorf("failed update changed the record: coins = %v, want 70", got["coins"])
	}
	if _, ok := got["oops"]; ok {
		t.Error("failed update left partial data in the record")
	}
}

func TestUpdate_CreatesRecordFirst(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	if !s.Update(KindUser, "bob", Doc{"level": 5}) {
		t.Fatal("update of an unseen id failed")
	}
	got := s.Get(KindUser, "bob")
	if got["level"] != 5 {
		t.Errorf("level = %v, want 5", got["level"])
	}
	if got["coins"] != 100 {
		t.Errorf("coins = %v, want the factory default 100", got["coins"])
	}
}

func TestRoundTrip_FlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := openStore(t, path)

	s.Update(KindUser, "alice", Doc{"coins": 70, "inventory": Doc{"materials": Doc{"herb": 2}}})
	s.Update(KindGuild, "guild-1", Doc{"settings": Doc{"currency": "doubloons"}})
	s.SetGlobalData("market", Doc{"listing-1": Doc{"seller": "alice", "price": 10}})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}

	reloaded := openStore(t, path)
	if !jsonEqual(t, s.Get(KindUser, "alice"), reloaded.Get(KindUser, "alice")) {
		t.Error("user record did not survive the round trip")
	}
	if !jsonEqual(t, s.Get(KindGuild, "guild-1"), reloaded.Get(KindGuild, "guild-1")) {
		t.Error("guild record did not survive the round trip")
	}
	if !jsonEqual(t, s.GetGlobalData("market"), reloaded.GetGlobalData("market")) {
		t.Error("global blob did not survive the round trip")
	}
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", "data.json"), time.Minute, testFactories())
	if err := s.Open(); err != nil {
		t.Fatalf("Open() on a missing file = %v", err)
	}
	defer s.Close()

	if got := s.Get(KindUser, "alice"); got["coins"] != 100 {
		t.Errorf("coins = %v, want the factory default", got["coins"])
	}
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{this is not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path, time.Minute, testFactories())
	if err := s.Open(); err != nil {
		t.Fatalf("Open() on a corrupt file = %v", err)
	}
	defer s.Close()

	if got := s.Get(KindUser, "alice"); got["coins"] != 100 {
		t.Errorf("coins = %v, want the factory default", got["coins"])
	}
}

func TestGlobalData_SetGetAndIsolation(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "data.json"))

	if got := s.GetGlobalData("market"); len(got) != 0 {
		t.Errorf("unset global blob = %v, want empty", got)
	}

	s.SetGlobalData("market", Doc{"listing-1": Doc{"price": 10}})
	got := s.GetGlobalData("market")
	got["listing-1"].(Doc)["price"] = 0

	if fresh := s.GetGlobalData("market"); fresh["listing-1"].(Doc)["price"] != 10 {
		t.Error("mutating a returned global blob changed the store")
	}

	// set replaces outright, no merge
	s.SetGlobalData("market", Doc{"listing-2": Doc{"price": 5}})
	fresh := s.GetGlobalData("market")
	if _, ok := fresh["listing-1"]; ok {
		t.Error("SetGlobalData merged instead of replacing")
	}
}

func TestWriter_DebouncedSaveHitsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := New(path, 10*time.Millisecond, testFactories())
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.Update(KindUser, "alice", Doc{"coins": 70})

	deadline := time.Now().Add(2 * time.Second)
	for {
		if raw, err := os.ReadFile(path); err == nil {
			var data tables
			if err := json.Unmarshal(raw, &data); err != nil {
				t.Fatalf("written file does not parse: %v", err)
			}
			if data.Users["alice"]["coins"] == float64(70) {
				return
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced save never reached disk")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClose_FlushesPendingState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := New(path, time.Hour, testFactories())
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}

	s.Update(KindUser, "alice", Doc{"coins": 70})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("no data file after Close: %v", err)
	}
	var data tables
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("written file does not parse: %v", err)
	}
	if data.Users["alice"]["coins"] != float64(70) {
		t.Errorf("coins on disk = %v, want 70", data.Users["alice"]["coins"])
	}
}
