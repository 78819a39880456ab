package token

import "time"

// Issuer bundles the signing configuration so use cases can mint tokens
// without carrying secret/issuer/ttl separately.
type Issuer struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Issue mints an access token for the given profile snapshot.
func (i Issuer) Issue(userID, name, email, role string, verified bool, status string) (string, error) {
	return New(i.Secret, i.Issuer, i.TTL, Claims{
		UserID:   userID,
		Name:     name,
		Email:    email,
		Role:     role,
		Verified: verified,
		Status:   status,
	})
}

// Parse verifies a token against the issuer's secret.
func (i Issuer) Parse(tokenString string) (*Claims, error) {
	return Parse(i.Secret, tokenString)
}
