package storage

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var starter = map[string]int{"revive": 2, "clear_small": 3, "shake": 3}

func TestNewProfileGetsStarterInventory(t *testing.T) {
	store := NewMemoryStore()
	pm, err := NewProfileManager(store, starter, discardLogger())
	if err != nil {
		t.Fatalf("NewProfileManager error: %v", err)
	}

	for kind, want := range starter {
		if got := pm.Count(kind); got != want {
			t.Errorf("Count(%s) = %d, want %d", kind, got, want)
		}
	}
	if _, ok, _ := store.Get(ProfileKey); !ok {
		t.Error("new profile should be saved immediately")
	}
}

func TestProfileSurvivesReload(t *testing.T) {
	store := NewMemoryStore()
	pm, _ := NewProfileManager(store, starter, discardLogger())

	pm.Consume("revive")
	pm.Grant("upgrade", 1)
	pm.SetDoubleScore(true)
	if !pm.RecordGame(420, 17) {
		t.Error("first game should set a best score")
	}

	reloaded, err := NewProfileManager(store, starter, discardLogger())
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := reloaded.Count("revive"); got != starter["revive"]-1 {
		t.Errorf("revives after reload = %d, want %d (starter not granted twice)", got, starter["revive"]-1)
	}

	p := reloaded.Profile()
	if p.BestScore != 420 || p.GamesPlayed != 1 || p.TotalMerges != 17 || p.TotalScore != 420 {
		t.Errorf("reloaded profile = %+v", p)
	}
	if !p.DoubleScore {
		t.Error("double score unlock lost")
	}
	if p.Inventory["revive"] != 1 || p.Inventory["upgrade"] != 1 {
		t.Errorf("reloaded inventory = %v", p.Inventory)
	}
}

func TestRecordGameBestScore(t *testing.T) {
	pm, _ := NewProfileManager(NewMemoryStore(), nil, discardLogger())

	tests := []struct {
		score    int
		wantBest bool
		best     int
	}{
		{score: 100, wantBest: true, best: 100},
		{score: 50, wantBest: false, best: 100},
		{score: 100, wantBest: false, best: 100},
		{score: 101, wantBest: true, best: 101},
	}
	for _, tt := range tests {
		if got := pm.RecordGame(tt.score, 0); got != tt.wantBest {
			t.Errorf("RecordGame(%d) = %v, want %v", tt.score, got, tt.wantBest)
		}
		if pm.BestScore() != tt.best {
			t.Errorf("best after %d = %d, want %d", tt.score, pm.BestScore(), tt.best)
		}
	}
}

func TestConsumeEmpty(t *testing.T) {
	pm, _ := NewProfileManager(nil, map[string]int{"shake": 1}, discardLogger())

	if !pm.Consume("shake") {
		t.Fatal("first Consume should succeed")
	}
	if pm.Consume("shake") {
		t.Error("Consume with none held should fail")
	}
	if pm.Count("shake") != 0 {
		t.Errorf("Count = %d, want 0", pm.Count("shake"))
	}
}

func TestProfileCopyIsDetached(t *testing.T) {
	pm, _ := NewProfileManager(nil, starter, discardLogger())
	inv := pm.Inventory()
	inv["revive"] = 99

	if pm.Count("revive") != 2 {
		t.Error("mutating the returned inventory must not change the profile")
	}
}

func TestCorruptProfile(t *testing.T) {
	store := NewMemoryStore()
	store.Set(ProfileKey, []byte("best_score: [not a number"))

	if _, err := NewProfileManager(store, starter, discardLogger()); err == nil {
		t.Error("expected an error for a corrupt profile")
	}
}

type failingStore struct{}

var errDisk = errors.New("disk full")

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (failingStore) Set(string, []byte) error         { return errDisk }

func TestSaveFailureKeepsPlaying(t *testing.T) {
	pm, err := NewProfileManager(failingStore{}, starter, discardLogger())
	if err != nil {
		t.Fatalf("NewProfileManager error: %v", err)
	}

	pm.RecordGame(10, 1)
	if pm.BestScore() != 10 {
		t.Errorf("best = %d, want 10 in memory", pm.BestScore())
	}
	if err := pm.Save(); !errors.Is(err, errDisk) {
		t.Errorf("Save error = %v, want errDisk", err)
	}
}
