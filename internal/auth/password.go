package auth

import "golang.org/x/crypto/bcrypt"

// DummyPasswordHash is a bcrypt hash (cost 12, matching stored credentials)
// of a random throwaway password. The authenticator verifies against it when
// a credential lookup misses, so the wall-clock cost of an unknown email is
// indistinguishable from that of a wrong password.
const DummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// VerifyPassword compares a cleartext password against a stored bcrypt hash.
// The algorithm and cost are read from the self-describing hash; comparison
// is constant-time inside bcrypt. A malformed hash verifies as false rather
// than erroring.
func VerifyPassword(storedHash, cleartext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(cleartext)) == nil
}
