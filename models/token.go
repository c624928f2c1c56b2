package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/serr"
)

// JWT configuration constants
const (
	// TokenExpiration is how long a field token stays valid
	TokenExpiration = 12 * time.Hour

	// TokenIssuer identifies tokens minted by this service
	TokenIssuer = "contentfield"

	// MinSecretLength is the minimum acceptable length for the JWT secret
	MinSecretLength = 32

	// developmentSecret is used when no secret is configured
	developmentSecret = "development-only-secret-do-not-use-in-production"
)

// jwtSecret holds the signing key set during InitJWT
var jwtSecret []byte

// FieldTokenClaims bind a token to one entry field on the host.
// The host hands the widget a token when it opens the field; every
// request that reads or writes the stored value must carry it.
type FieldTokenClaims struct {
	jwt.RegisteredClaims
	EntryID string `json:"entry_id"`
	FieldID string `json:"field_id"`
}

// InitJWT sets the signing key. An empty secret falls back to the
// development key.
func InitJWT(secret string) error {
	if secret == "" {
		secret = developmentSecret
	}

	if len(secret) < MinSecretLength {
		return serr.New("JWT secret must be at least 32 characters")
	}

	jwtSecret = []byte(secret)
	return nil
}

// GenerateFieldToken signs a token for entryID/fieldID.
func GenerateFieldToken(entryID, fieldID string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", serr.New("JWT not initialized - call InitJWT first")
	}
	if entryID == "" {
		return "", serr.New("entry id is required")
	}

	now := time.Now()
	claims := FieldTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   entryID,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		EntryID: entryID,
		FieldID: fieldID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign token")
	}
	return tokenString, nil
}

// ValidateToken parses and validates a field token.
// Returns the claims if valid, or an error if the token is
// expired, malformed, or has an invalid signature.
func ValidateToken(tokenString string) (*FieldTokenClaims, error) {
	if len(jwtSecret) == 0 {
		return nil, serr.New("JWT not initialized - call InitJWT first")
	}

	token, err := jwt.ParseWithClaims(tokenString, &FieldTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return jwtSecret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, serr.Wrap(err, "failed to parse token")
	}

	claims, ok := token.Claims.(*FieldTokenClaims)
	if !ok || !token.Valid {
		return nil, serr.New("invalid token claims")
	}
	if claims.EntryID == "" {
		return nil, serr.New("token carries no entry id")
	}

	return claims, nil
}
