package auth

import (
	"time"

	"github.com/polkiloo/orderservice/internal/domain/model"
)

// Strategy issues and verifies bearer tokens for authenticated principals.
type Strategy interface {
	IssueToken(principal model.Principal) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
