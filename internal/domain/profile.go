package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FitnessProfile holds the body metrics and training background a user fills
// in separately from their account. One document per user.
type FitnessProfile struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	Age                int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender             string             `bson:"gender,omitempty" json:"gender,omitempty"` // "male" or "female"
	Height             float64            `bson:"height,omitempty" json:"height,omitempty"` // cm
	Weight             float64            `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	WaistCircumference float64            `bson:"waistCircumference,omitempty" json:"waistCircumference,omitempty"` // cm
	Goal               string             `bson:"goal,omitempty" json:"goal,omitempty"`
	Level              string             `bson:"level,omitempty" json:"level,omitempty"`
	InjuryHistory      string             `bson:"injuryHistory,omitempty" json:"injuryHistory,omitempty"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile is the normalized, ephemeral view used for plan generation:
// identity fields come from the account, body metrics from the stored
// fitness profile. It is recomputed on each request and never persisted.
type UserProfile struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Avatar             string  `json:"avatar,omitempty"`
	Age                int     `json:"age,omitempty"`
	Gender             string  `json:"gender,omitempty"`
	Height             float64 `json:"height,omitempty"`
	Weight             float64 `json:"weight,omitempty"`
	WaistCircumference float64 `json:"waistCircumference,omitempty"`
	Goal               string  `json:"goal,omitempty"`
	Level              string  `json:"level,omitempty"`
	InjuryHistory      string  `json:"injuryHistory,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

// NormalizeProfile merges the account record with the stored fitness profile
// into one UserProfile. Identity fields (id, name, avatar) are taken from the
// account; everything else from the fitness profile. Either input may be nil;
// missing fields simply stay zero-valued and are validated downstream.
func NormalizeProfile(user *User, profile *FitnessProfile) UserProfile {
	var p UserProfile
	if profile != nil {
		p.ID = profile.UserID.Hex()
		p.Age = profile.Age
		p.Gender = profile.Gender
		p.Height = profile.Height
		p.Weight = profile.Weight
		p.WaistCircumference = profile.WaistCircumference
		p.Goal = profile.Goal
		p.Level = profile.Level
		p.InjuryHistory = profile.InjuryHistory
		p.Notes = profile.Notes
	}
	if user != nil {
		if user.ID != primitive.NilObjectID {
			p.ID = user.ID.Hex()
		}
		if user.Name != "" {
			p.Name = user.Name
		}
		if user.AvatarURL != "" {
			p.Avatar = user.AvatarURL
		}
	}
	return p
}
