package config

import (
	"fmt"
)

type StorageKeyStruct struct{}

func NewStorageKeyStruct() *StorageKeyStruct {
	return &StorageKeyStruct{}
}

// UsersKey returns the storage key for the full user collection
func (r *StorageKeyStruct) UsersKey() string {
	return "brainspark:users"
}

// CurrentUserKey returns the storage key for the signed-in identity snapshot
func (r *StorageKeyStruct) CurrentUserKey() string {
	return "brainspark:current_user"
}

// LeaderboardKey returns the storage key for the global leaderboard
func (r *StorageKeyStruct) LeaderboardKey() string {
	return "brainspark:leaderboard"
}

// HistoryKey returns the storage key for a user's quiz history
func (r *StorageKeyStruct) HistoryKey(userID string) string {
	return fmt.Sprintf("brainspark:history:%s", userID)
}

// QuestionsKey returns the storage key for admin-authored question sets
func (r *StorageKeyStruct) QuestionsKey() string {
	return "brainspark:questions"
}

// SettingKey returns the storage key for a named app setting
func (r *StorageKeyStruct) SettingKey(name string) string {
	return fmt.Sprintf("brainspark:setting:%s", name)
}

var StorageKey = NewStorageKeyStruct()
