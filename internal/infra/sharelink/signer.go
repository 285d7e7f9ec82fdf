package sharelink

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	tokenType = "share-dashboard"
	issuer    = "report-pipeline"
	// Share links expire after seven days; a report email is stale well
	// before a non-expiring link would ever be wanted.
	tokenTTL = 7 * 24 * time.Hour
)

// Signer issues signed share-dashboard URLs by embedding a short-lived JWT
// in the dashboard link.
type Signer struct {
	secret  []byte
	baseURL string
	clock   func() time.Time
}

func NewSigner(secret, baseURL string) *Signer {
	return &Signer{secret: []byte(secret), baseURL: baseURL, clock: time.Now}
}

// WithClock overrides the clock used for token timestamps.
func (s *Signer) WithClock(clock func() time.Time) *Signer {
	s.clock = clock
	return s
}

type shareClaims struct {
	TokenType string `json:"token_type"`
	ClientID  int64  `json:"client_id"`
	jwt.StandardClaims
}

// DashboardURL returns the client's dashboard link with a signed access
// token attached.
func (s *Signer) DashboardURL(clientID int64) (string, error) {
	now := s.clock()
	claims := shareClaims{
		TokenType: tokenType,
		ClientID:  clientID,
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid dashboard base URL: %w", err)
	}
	q := u.Query()
	q.Set("token", signed)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Verify parses a share token and returns the client it grants access to.
// Used by the dashboard side of the system; kept here so the claim shape has
// a single owner.
func (s *Signer) Verify(tokenStr string) (int64, error) {
	claims := &shareClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid share token: %w", err)
	}
	if !tkn.Valid || claims.TokenType != tokenType {
		return 0, fmt.Errorf("share token rejected")
	}
	return claims.ClientID, nil
}
