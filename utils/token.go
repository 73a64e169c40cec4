package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
)

// InviteTokenBytes of randomness yield a 64-character hex token.
const InviteTokenBytes = 32

// GenerateInviteToken returns a cryptographically random opaque token.
// The process cannot safely hand out invitations without randomness, so an
// unreadable source is fatal.
func GenerateInviteToken() string {
	buf := make([]byte, InviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal("Failed to read random source:", err)
	}
	return hex.EncodeToString(buf)
}

// MagicLink builds the registration URL embedded in invitation emails.
func MagicLink(baseURL, token string) string {
	return fmt.Sprintf("%s/register?token=%s", baseURL, token)
}
