package models

// DefaultTitle is the display title used before one is configured
const DefaultTitle = "NEBULA LUCK"

// Settings holds the presentation settings of the draw
type Settings struct {
	Title        string `bson:"title" json:"title"`
	SoundEnabled bool   `bson:"soundEnabled" json:"soundEnabled"`
}

// DefaultSettings returns the settings used on first run
func DefaultSettings() Settings {
	return Settings{Title: DefaultTitle, SoundEnabled: true}
}

// Snapshot is the full persisted state of the draw
type Snapshot struct {
	Settings Settings      `json:"settings"`
	Roster   []Participant `json:"roster"`
	Catalog  []PrizeTier   `json:"catalog"`
	Ledger   []WinRecord   `json:"ledger"`
}

// DefaultSnapshot returns the first-run state
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Settings: DefaultSettings(),
		Roster:   SampleRoster(),
		Catalog:  DefaultCatalog(),
		Ledger:   []WinRecord{},
	}
}

// SettingsUpdate is a partial settings edit; nil fields are left unchanged
type SettingsUpdate struct {
	Title        *string `json:"title"`
	SoundEnabled *bool   `json:"soundEnabled"`
}

// Apply returns s with the non-nil fields of u
func (u SettingsUpdate) Apply(s Settings) Settings {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.SoundEnabled != nil {
		s.SoundEnabled = *u.SoundEnabled
	}
	return s
}
