package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ticketIssuer     = "space-server"
	defaultTicketTTL = 24 * time.Hour
	maxPilotNameLen  = 16
)

var ErrBadTicket = errors.New("bad ticket")

// Tickets issues and checks signed join tickets for the WebSocket gateway
type Tickets struct {
	secret []byte
}

// NewTickets returns nil when secret is empty, which disables ticket checks
func NewTickets(secret string) *Tickets {
	if secret == "" {
		return nil
	}
	return &Tickets{secret: []byte(secret)}
}

// Issue signs a ticket for a pilot name
func (t *Tickets) Issue(name string, ttl time.Duration) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxPilotNameLen {
		return "", fmt.Errorf("name must be 1-%d characters", maxPilotNameLen)
	}
	if ttl <= 0 {
		ttl = defaultTicketTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    ticketIssuer,
		Subject:   name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate checks a ticket and returns the pilot name it was issued to
func (t *Tickets) Validate(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", fmt.Errorf("%w: missing", ErrBadTicket)
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ticketIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadTicket, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: no subject", ErrBadTicket)
	}
	return claims.Subject, nil
}
