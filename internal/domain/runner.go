package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Runner represents a registered user of the app. Every account is a runner;
// there are no roles.
type Runner struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string             `bson:"email" json:"email"` // Should be unique
	PasswordHash        string             `bson:"passwordHash" json:"-"`
	FullName            string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	OnboardingCompleted bool               `bson:"onboardingCompleted" json:"onboardingCompleted"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
