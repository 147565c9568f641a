package api

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	idLength = 24
	charset  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	userIDPrefix = "usr_"
	taskIDPrefix = "task_"
)

var (
	userIDPattern = regexp.MustCompile(`^usr_[a-zA-Z0-9]{24}$`)
	taskIDPattern = regexp.MustCompile(`^task_[a-zA-Z0-9]{24}$`)
)

// NewUserID generates a new user ID with the "usr_" prefix followed by
// 24 cryptographically random alphanumeric characters.
func NewUserID() string {
	return userIDPrefix + randomAlphanumeric(idLength)
}

// NewTaskID generates a new task ID with the "task_" prefix followed by
// 24 cryptographically random alphanumeric characters.
func NewTaskID() string {
	return taskIDPrefix + randomAlphanumeric(idLength)
}

// ValidateUserID checks whether the given string is a valid user ID.
func ValidateUserID(id string) bool {
	return userIDPattern.MatchString(id)
}

// ValidateTaskID checks whether the given string is a valid task ID.
func ValidateTaskID(id string) bool {
	return taskIDPattern.MatchString(id)
}

func randomAlphanumeric(n int) string {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b)
}
