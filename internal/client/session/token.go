package session

import (
	"fmt"

	"github.com/dmitrijs2005/resqsync/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// decodeExpiry reads the exp claim of a JWT without verifying its signature;
// the server is the only party that can do that. ok is false when the token
// parses but carries no exp claim.
func decodeExpiry(token string) (exp int64, ok bool, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, false, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	nd, err := claims.GetExpirationTime()
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if nd == nil {
		return 0, false, nil
	}
	return nd.Unix(), true, nil
}
