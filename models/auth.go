package models

import "github.com/golang-jwt/jwt/v5"

// SignerClaims are the claims of a signer token. Subject is the base58
// public key that signed the token, ID is single-use and BodyHash is the hex
// SHA-256 of the request payload the token authorizes.
type SignerClaims struct {
	jwt.RegisteredClaims
	BodyHash string `json:"bh"`
}
