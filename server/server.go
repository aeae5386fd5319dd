// Package server implements the parse service: a minimal HTTP front end that
// exposes the core parser over JSON, with bearer-token auth for service
// accounts and an on-disk result cache shared with the CLI.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dekarrin/smtparse/internal/parsecache"
	"github.com/dekarrin/smtparse/server/dao/sqlite"
)

// tokenIssuer identifies this service as the issuer of its own JWTs.
const tokenIssuer = "smtparse"

// Server holds the parse service's dependencies: the account store, the
// result cache, and the secret used to sign bearer tokens.
type Server struct {
	Accounts *sqlite.AccountsDB
	Cache    *parsecache.Cache
	secret   []byte
}

// New creates a Server backed by the given account store, optional cache (may
// be nil, in which case every parse is performed fresh), and token-signing
// secret. secret must be non-empty.
func New(accounts *sqlite.AccountsDB, cache *parsecache.Cache, secret string) (*Server, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	return &Server{Accounts: accounts, Cache: cache, secret: []byte(secret)}, nil
}

// Login checks name/plaintextSecret against the account store and, on
// success, returns a signed bearer token for subsequent requests.
func (s *Server) Login(ctx context.Context, name, plaintextSecret string) (string, error) {
	acct, err := s.Accounts.GetByName(ctx, name)
	if err != nil {
		if err == sqlite.ErrNotFound {
			return "", fmt.Errorf("bad credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.SecretHash), []byte(plaintextSecret)); err != nil {
		return "", fmt.Errorf("bad credentials")
	}

	return s.generateJWTForAccount(acct)
}

// VerifyToken checks tok's signature and claims and returns the account it
// authenticates as. The signing key is derived from the service secret plus
// the account's own hash and logout time, so rotating either immediately
// invalidates any token issued before the rotation.
func (s *Server) VerifyToken(ctx context.Context, tok string) (sqlite.Account, error) {
	var acct sqlite.Account

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		acct, err = s.Accounts.GetByID(ctx, id)
		if err != nil {
			if err == sqlite.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		return s.signingKey(acct), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return sqlite.Account{}, err
	}
	return acct, nil
}

func (s *Server) generateJWTForAccount(acct sqlite.Account) (string, error) {
	claims := &jwt.MapClaims{
		"iss": tokenIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": acct.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(s.signingKey(acct))
}

func (s *Server) signingKey(acct sqlite.Account) []byte {
	var key []byte
	key = append(key, s.secret...)
	key = append(key, []byte(acct.SecretHash)...)
	key = append(key, []byte(fmt.Sprintf("%d", acct.LastLogoutTime.Unix()))...)
	return key
}

// HashSecret bcrypt-hashes a service account's plaintext secret for storage.
func HashSecret(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
