package utils

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and checks credentials with a fixed bcrypt cost.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{Cost: cost}
}

func (h PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h PasswordHasher) Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
