package models

import (
	"time"

	emailverifier "github.com/AfterShip/email-verifier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailValidator = emailverifier.NewVerifier().
	DisableSMTPCheck().
	DisableGravatarCheck().
	DisableDomainSuggest().
	DisableAutoUpdateDisposable()

const USER_COLLECTION = "users"

// User is the account record. OTP holds the outstanding verification or
// password-reset code; it is cleared on successful email verification
// and overwritten each time a reset code is requested.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	Verified    bool               `bson:"verified" json:"verified"`
	OTP         string             `bson:"otp,omitempty" json:"-"`
	CompanyName string             `bson:"company_name,omitempty" json:"companyName,omitempty"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	FirstLogin  bool               `bson:"first_login" json:"firstLogin"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// ValidEmail checks address syntax only; no SMTP or MX probing.
func ValidEmail(email string) bool {
	ret, err := emailValidator.Verify(email)
	if err != nil {
		return false
	}

	return ret.Syntax.Valid
}
