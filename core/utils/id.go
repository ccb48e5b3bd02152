package utils

import (
	"crypto/rand"
	"encoding/hex"

	"gradinvite/core/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

func GenerateID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateInviteToken produces the bearer credential embedded in invite links:
// 256 bits from crypto/rand, hex encoded. Uniqueness is enforced by the
// invitees.unique_token constraint, not here.
func GenerateInviteToken() (string, error) {
	b := make([]byte, constants.InviteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
