package domain

import "time"

// User models a registered account. CredentialHash is opaque to the core and
// is never serialized outward.
type User struct {
	ID             string      `json:"id" bson:"_id"`
	Username       string      `json:"username" bson:"username"`
	Email          string      `json:"email" bson:"email"`
	CredentialHash string      `json:"-" bson:"credential_hash"`
	DisplayName    string      `json:"display_name,omitempty" bson:"display_name,omitempty"`
	Bio            string      `json:"bio,omitempty" bson:"bio,omitempty"`
	Environment    Environment `json:"-" bson:"environment"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" bson:"updated_at"`
}
