package models

// Roles a registered user can hold. The set is not enforced on registration.
const (
	RoleFirstResponder     = "first_responder"
	RoleVolunteer          = "volunteer"
	RoleAffectedIndividual = "affected_individual"
)

type User struct {
	ID       string `bson:"_id,omitempty" json:"id,omitempty"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // plaintext, mock auth only
	FullName string `bson:"fullName" json:"fullName"`
	Location string `bson:"location" json:"location"`
	Role     string `bson:"role" json:"role"`
}

func (u *User) SetID(id string) { u.ID = id }

// Session is what login and registration hand back to the client.
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	Location string `json:"location"`
}
