package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password the policy accepts.
const MinPasswordLength = 8

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher is the Hasher used in production.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// maxSimilarity is the character overlap ratio at which a password counts
// as too close to the username.
const maxSimilarity = 0.7

var nonWord = regexp.MustCompile(`\W+`)

var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		password password1 password12 password123 passw0rd p@ssw0rd
		12345678 123456789 1234567890 87654321 11111111 00000000
		qwerty123 qwertyuiop 1q2w3e4r 1qaz2wsx zaq12wsx asdfghjkl
		iloveyou sunshine princess football baseball welcome welcome1
		abc12345 abcd1234 letmein1 trustno1 superman batman123
		whatever starwars dragon123 monkey123 computer internet
		changeme administrator admin123 master123 michael1 jennifer
		charlie1 shadow123 freedom1 qwerty12 access14 mustang1
	`) {
		commonPasswords[p] = struct{}{}
	}
}

// ValidatePassword applies the password policy and returns one message per
// failed rule, in a stable order. username may be empty.
func ValidatePassword(password, username string) []string {
	var msgs []string

	if username != "" && tooSimilar(password, username) {
		msgs = append(msgs, "The password is too similar to the username.")
	}
	if len([]rune(password)) < MinPasswordLength {
		msgs = append(msgs, fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		msgs = append(msgs, "This password is too common.")
	}
	if isNumeric(password) {
		msgs = append(msgs, "This password is entirely numeric.")
	}
	return msgs
}

func tooSimilar(password, username string) bool {
	pw := strings.ToLower(password)
	value := strings.ToLower(username)
	candidates := append(nonWord.Split(value, -1), value)
	for _, part := range candidates {
		if part == "" {
			continue
		}
		if quickRatio(pw, part) >= maxSimilarity {
			return true
		}
	}
	return false
}

// quickRatio is an upper bound on sequence similarity: twice the size of the
// multiset intersection of characters divided by the combined length.
func quickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	counts := make(map[rune]int, len(rb))
	for _, r := range rb {
		counts[r]++
	}
	matches := 0
	for _, r := range ra {
		if counts[r] > 0 {
			counts[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
