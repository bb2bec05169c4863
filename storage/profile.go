package storage

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// ProfileKey is the store key holding the serialized profile.
const ProfileKey = "profile"

// Profile is everything that outlives a session.
type Profile struct {
	BestScore   int            `yaml:"best_score"`
	DoubleScore bool           `yaml:"double_score"`
	Inventory   map[string]int `yaml:"inventory"`

	GamesPlayed int `yaml:"games_played"`
	TotalMerges int `yaml:"total_merges"`
	TotalScore  int `yaml:"total_score"`
}

// ProfileManager owns the loaded profile and writes it back on change.
// A nil store, or a store that fails, leaves the manager working in memory.
type ProfileManager struct {
	store   Store
	logger  *slog.Logger
	profile Profile
}

// NewProfileManager loads the profile from store. A missing profile is
// created with the starter inventory and saved immediately. A corrupt
// profile is an error.
func NewProfileManager(store Store, starter map[string]int, logger *slog.Logger) (*ProfileManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pm := &ProfileManager{store: store, logger: logger}

	data, ok, err := pm.load()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := yaml.Unmarshal(data, &pm.profile); err != nil {
			return nil, fmt.Errorf("parsing profile: %w", err)
		}
	}
	if pm.profile.Inventory == nil {
		pm.profile.Inventory = make(map[string]int)
	}
	if !ok {
		for kind, n := range starter {
			if n > 0 {
				pm.profile.Inventory[kind] += n
			}
		}
		logger.Info("created profile", "inventory", pm.profile.Inventory)
		pm.save()
	}
	return pm, nil
}

func (pm *ProfileManager) load() ([]byte, bool, error) {
	if pm.store == nil {
		return nil, false, nil
	}
	data, ok, err := pm.store.Get(ProfileKey)
	if err != nil {
		return nil, false, fmt.Errorf("reading profile: %w", err)
	}
	return data, ok, nil
}

// save writes the profile. Failures are logged; play continues in memory.
func (pm *ProfileManager) save() {
	if err := pm.Save(); err != nil {
		pm.logger.Error("failed to save profile", "error", err)
	}
}

// Save writes the profile to the store.
func (pm *ProfileManager) Save() error {
	if pm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(&pm.profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return pm.store.Set(ProfileKey, data)
}

// Profile returns a copy of the current profile.
func (pm *ProfileManager) Profile() Profile {
	p := pm.profile
	p.Inventory = pm.Inventory()
	return p
}

// BestScore returns the persisted best score.
func (pm *ProfileManager) BestScore() int {
	return pm.profile.BestScore
}

// DoubleScore reports whether the permanent double score unlock is owned.
func (pm *ProfileManager) DoubleScore() bool {
	return pm.profile.DoubleScore
}

// SetDoubleScore sets the double score unlock.
func (pm *ProfileManager) SetDoubleScore(on bool) {
	if pm.profile.DoubleScore == on {
		return
	}
	pm.profile.DoubleScore = on
	pm.save()
}

// Count returns how many of kind the player holds.
func (pm *ProfileManager) Count(kind string) int {
	return pm.profile.Inventory[kind]
}

// Inventory returns a copy of the inventory.
func (pm *ProfileManager) Inventory() map[string]int {
	out := make(map[string]int, len(pm.profile.Inventory))
	for k, v := range pm.profile.Inventory {
		out[k] = v
	}
	return out
}

// Consume takes one of kind. It reports false when none is held.
func (pm *ProfileManager) Consume(kind string) bool {
	if pm.profile.Inventory[kind] <= 0 {
		return false
	}
	pm.profile.Inventory[kind]--
	pm.save()
	return true
}

// Grant adds n of kind. Non-positive n is ignored.
func (pm *ProfileManager) Grant(kind string, n int) {
	if n <= 0 {
		return
	}
	pm.profile.Inventory[kind] += n
	pm.save()
}

// SubmitScore updates the best score and reports whether score beat it.
func (pm *ProfileManager) SubmitScore(score int) bool {
	if score <= pm.profile.BestScore {
		return false
	}
	pm.profile.BestScore = score
	pm.save()
	return true
}

// RecordGame folds a finished session into the profile and reports whether
// score is a new best.
func (pm *ProfileManager) RecordGame(score, merges int) bool {
	pm.profile.GamesPlayed++
	pm.profile.TotalMerges += merges
	pm.profile.TotalScore += score

	best := score > pm.profile.BestScore
	if best {
		pm.profile.BestScore = score
	}
	pm.save()
	return best
}
