package models

import "time"

// StoreSettingsID is the fixed id of the singleton settings row.
const StoreSettingsID = "store"

type StoreSettings struct {
	Id            string    `bson:"_id" json:"id"`
	IsOpen        bool      `bson:"isOpen" json:"isOpen"`
	NoticeText    string    `bson:"noticeText" json:"noticeText"`
	NoticeVisible bool      `bson:"noticeVisible" json:"noticeVisible"`
	OwnerName     string    `bson:"ownerName" json:"ownerName"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email" json:"email"`
	Address       string    `bson:"address" json:"address"`
	Instagram     string    `bson:"instagram" json:"instagram"`
	Facebook      string    `bson:"facebook" json:"facebook"`
	TikTok        string    `bson:"tiktok" json:"tiktok"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`

	// Held locally only; the remote row never carries them.
	MapLat float64 `bson:"-" json:"mapLat"`
	MapLng float64 `bson:"-" json:"mapLng"`
}

// SettingsPatch is a partial StoreSettings. Nil means absent.
type SettingsPatch struct {
	IsOpen        *bool    `bson:"isOpen,omitempty" json:"isOpen,omitempty"`
	NoticeText    *string  `bson:"noticeText,omitempty" json:"noticeText,omitempty"`
	NoticeVisible *bool    `bson:"noticeVisible,omitempty" json:"noticeVisible,omitempty"`
	OwnerName     *string  `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Phone         *string  `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         *string  `bson:"email,omitempty" json:"email,omitempty"`
	Address       *string  `bson:"address,omitempty" json:"address,omitempty"`
	Instagram     *string  `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook      *string  `bson:"facebook,omitempty" json:"facebook,omitempty"`
	TikTok        *string  `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	MapLat        *float64 `bson:"-" json:"mapLat,omitempty"`
	MapLng        *float64 `bson:"-" json:"mapLng,omitempty"`
}

// StoreConfig is the typed store-config document kept in client state.
type StoreConfig struct {
	Phone    string  `json:"phone"`
	MapLat   float64 `json:"mapLat"`
	MapLng   float64 `json:"mapLng"`
	Currency string  `json:"currency"`
}
