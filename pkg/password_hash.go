package pkg

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is deliberately above bcrypt.DefaultCost: user accounts
// are created offline via the adduser tool, so slow hashing costs nothing
// at runtime except on login.
const passwordHashCost = 14

// HashPassword hashes a user password for storage in the users table.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return BytesToString(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
