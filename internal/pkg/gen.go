package pkg

import "github.com/google/uuid"

// GenerateRoomID - mints an opaque unique room id.
func GenerateRoomID() string {
	return uuid.NewString()
}
