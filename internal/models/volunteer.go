package models

type VolunteerProfile struct {
	ID           string   `bson:"_id,omitempty" json:"id"`
	Email        string   `bson:"email" json:"email"`
	Name         string   `bson:"name" json:"name"`
	Role         string   `bson:"role" json:"role"`
	Location     string   `bson:"location" json:"location"`
	Specialties  []string `bson:"specialties" json:"specialties"`
	Availability string   `bson:"availability" json:"availability"`
	Experience   string   `bson:"experience" json:"experience"`
	CreatedAt    float64  `bson:"createdAt" json:"createdAt"`
}

func (v *VolunteerProfile) SetID(id string) { v.ID = id }
