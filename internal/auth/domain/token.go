package domain

import "time"

// PurposeAuth is the only purpose tag issued today. It is embedded in the
// signed payload and stored alongside the token in the allow-list.
const PurposeAuth = "auth"

// UserToken is one entry of a user's ordered token list. A token grants
// access only while its entry exists; deleting the entry is logout.
type UserToken struct {
	UserID    string
	Purpose   string
	Token     string
	CreatedAt time.Time
}
