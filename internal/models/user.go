package models

import "time"

// User is a student identity, either anonymous or OAuth-backed.
// An anonymous user never carries an OAuth provider.
type User struct {
	UserID        string    `json:"userId" bson:"userId"`
	Username      string    `json:"username" bson:"username"`
	Email         *string   `json:"email,omitempty" bson:"email,omitempty"`
	IsVerified    bool      `json:"isVerified" bson:"isVerified"`
	IsAnonymous   bool      `json:"isAnonymous" bson:"isAnonymous"`
	GradeLevel    *int      `json:"gradeLevel,omitempty" bson:"gradeLevel,omitempty"`
	Bio           string    `json:"bio" bson:"bio"`
	Interests     []string  `json:"interests" bson:"interests"`
	Subjects      []string  `json:"subjects" bson:"subjects"`
	OAuthProvider *string   `json:"oauthProvider,omitempty" bson:"oauthProvider,omitempty"`
	OAuthID       *string   `json:"oauthId,omitempty" bson:"oauthId,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	LastActive    time.Time `json:"lastActive" bson:"lastActive"`
}

// PublicProfile is the classmate-visible projection of a user.
type PublicProfile struct {
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	GradeLevel *int      `json:"gradeLevel,omitempty"`
	Interests  []string  `json:"interests"`
	Subjects   []string  `json:"subjects"`
	Bio        string    `json:"bio"`
	IsVerified bool      `json:"isVerified"`
	LastActive time.Time `json:"lastActive"`
}

// Public strips fields that must not leak to other students.
func (u *User) Public() *PublicProfile {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	subjects := u.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return &PublicProfile{
		UserID:     u.UserID,
		Username:   u.Username,
		GradeLevel: u.GradeLevel,
		Interests:  interests,
		Subjects:   subjects,
		Bio:        u.Bio,
		IsVerified: u.IsVerified,
		LastActive: u.LastActive,
	}
}
