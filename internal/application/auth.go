package application

import (
	"context"
	"strconv"
	"time"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

const sessionTTL = 24 * time.Hour

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Login authenticates and issues a token pair with a Redis-backed session.
func (f *Facade) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := f.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := f.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records the session hash.
func (f *Facade) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := f.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		f.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := f.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		f.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if f.Redis != nil {
		key := sessionKey(u.ID)
		pipe := f.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"is_admin":   strconv.FormatBool(u.IsAdmin),
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			f.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Refresh rotates the token pair for a valid refresh token.
func (f *Facade) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := f.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := f.Users.Get(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	pair, err := f.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the session so the auth middleware stops accepting tokens.
func (f *Facade) Logout(ctx context.Context, userID string) {
	if f.Redis == nil {
		return
	}
	if err := f.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		f.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}
