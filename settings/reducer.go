// Package settings merges store settings arriving from the local store-config
// document and from remote pushes.
package settings

import (
	"sync"

	"github.com/princinho/boutique/models"
)

// Event is either a LocalLoaded or a RemotePatch.
type Event interface {
	patch() models.SettingsPatch
}

// LocalLoaded carries the fields read from the local store-config document.
type LocalLoaded struct {
	Patch models.SettingsPatch
}

// RemotePatch carries a whole or partial row pushed by the backend.
type RemotePatch struct {
	Patch models.SettingsPatch
}

func (e LocalLoaded) patch() models.SettingsPatch { return e.Patch }
func (e RemotePatch) patch() models.SettingsPatch { return e.Patch }

// Reduce overlays the fields present in ev onto current. Absent fields keep
// their current value, whichever source set them; last write wins per field.
func Reduce(current models.StoreSettings, ev Event) models.StoreSettings {
	return Apply(current, ev.patch())
}

func Apply(s models.StoreSettings, p models.SettingsPatch) models.StoreSettings {
	if p.IsOpen != nil {
		s.IsOpen = *p.IsOpen
	}
	if p.NoticeText != nil {
		s.NoticeText = *p.NoticeText
	}
	if p.NoticeVisible != nil {
		s.NoticeVisible = *p.NoticeVisible
	}
	if p.OwnerName != nil {
		s.OwnerName = *p.OwnerName
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.Instagram != nil {
		s.Instagram = *p.Instagram
	}
	if p.Facebook != nil {
		s.Facebook = *p.Facebook
	}
	if p.TikTok != nil {
		s.TikTok = *p.TikTok
	}
	if p.MapLat != nil {
		s.MapLat = *p.MapLat
	}
	if p.MapLng != nil {
		s.MapLng = *p.MapLng
	}
	return s
}

// PatchOf turns a full row into a patch with every remote field present.
func PatchOf(s models.StoreSettings) models.SettingsPatch {
	return models.SettingsPatch{
		IsOpen:        &s.IsOpen,
		NoticeText:    &s.NoticeText,
		NoticeVisible: &s.NoticeVisible,
		OwnerName:     &s.OwnerName,
		Phone:         &s.Phone,
		Email:         &s.Email,
		Address:       &s.Address,
		Instagram:     &s.Instagram,
		Facebook:      &s.Facebook,
		TikTok:        &s.TikTok,
	}
}

// FromConfig builds the local-load event for a store-config document. Only the
// fields the document actually holds are present.
func FromConfig(cfg models.StoreConfig) LocalLoaded {
	var p models.SettingsPatch
	if cfg.Phone != "" {
		p.Phone = &cfg.Phone
	}
	if cfg.MapLat != 0 || cfg.MapLng != 0 {
		p.MapLat = &cfg.MapLat
		p.MapLng = &cfg.MapLng
	}
	return LocalLoaded{Patch: p}
}

// View is the settings one client sees: its store-config document loaded
// first, then the remote row overlaid on top. Remote fields win; MapLat and
// MapLng, which the remote row never carries, keep their local value.
func View(remote models.StoreSettings, cfg models.StoreConfig) models.StoreSettings {
	s := models.StoreSettings{Id: remote.Id, UpdatedAt: remote.UpdatedAt}
	s = Reduce(s, FromConfig(cfg))
	return Reduce(s, RemotePatch{Patch: PatchOf(remote)})
}

// State is the process-wide settings value, fed by Dispatch.
type State struct {
	mu    sync.RWMutex
	value models.StoreSettings
}

func NewState(initial models.StoreSettings) *State {
	if initial.Id == "" {
		initial.Id = models.StoreSettingsID
	}
	return &State{value: initial}
}

func (s *State) Dispatch(ev Event) models.StoreSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = Reduce(s.value, ev)
	return s.value
}

func (s *State) Get() models.StoreSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}
