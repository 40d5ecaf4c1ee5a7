package sessions

import "time"

// Session is a refresh session issued at admin login.
type Session struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	RefreshToken string    `bson:"refreshToken" json:"refreshToken"`
	AdminID      string    `bson:"adminId" json:"adminId"`
	ExpiresAt    time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func (s *Session) expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// ttl is how long the session stays valid after now; zero once expired.
func (s *Session) ttl(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
