package user

import (
	"fmt"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
	StatusBanned   = "banned"
)

const (
	BulkActionChangeRole   = "change-role"
	BulkActionChangeStatus = "change-status"
)

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleInstructor || role == RoleStudent
}

func IsValidStatus(status string) bool {
	return status == StatusActive ||
		status == StatusInactive ||
		status == StatusPending ||
		status == StatusBanned
}

type RegisterPayload struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,gte=8"`
	AcceptTerms bool   `json:"acceptTerms" validate:"required"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmailPayload struct {
	Action string `json:"action" validate:"required,eq=verify-email"`
	Token  string `json:"token" validate:"required"`
}

type ResendVerificationPayload struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordPayload struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordPayload struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,gte=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type BulkUpdatePayload struct {
	Action    string   `json:"action" validate:"required,oneof=change-role change-status"`
	UserIds   []string `json:"userIds" validate:"required,min=1,dive,required"`
	NewRole   string   `json:"newRole,omitempty"`
	NewStatus string   `json:"newStatus,omitempty"`
}

type UserDocument struct {
	Id        string `bson:"_id"`
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
	Email     string `bson:"email"`
	Password  string `bson:"password"`
	Role      string `bson:"role"`
	Status    string `bson:"status"`

	Bio      string `bson:"bio,omitempty"`
	Phone    string `bson:"phone,omitempty"`
	Location string `bson:"location,omitempty"`
	Avatar   string `bson:"avatar,omitempty"`

	EmailVerified            bool      `bson:"emailVerified"`
	EmailVerificationToken   string    `bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpires time.Time `bson:"emailVerificationExpires,omitempty"`

	PasswordResetToken   string    `bson:"passwordResetToken,omitempty"`
	PasswordResetExpires time.Time `bson:"passwordResetExpires,omitempty"`

	PurchasedCourses  []string `bson:"purchasedCourses,omitempty"`
	PurchasedServices []string `bson:"purchasedServices,omitempty"`

	JoinDate  time.Time `bson:"joinDate"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	LastLogin time.Time `bson:"lastLogin,omitempty"`
}

// UserProjection is the non-sensitive view of a user returned by the API.
type UserProjection struct {
	Id            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	DisplayName   string    `json:"displayName"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	Bio           string    `json:"bio,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Location      string    `json:"location,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	JoinDate      time.Time `json:"joinDate"`
}

func (user *UserDocument) Projection() *UserProjection {
	return &UserProjection{
		Id:            user.Id,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		DisplayName:   fmt.Sprintf("%s %s", user.FirstName, user.LastName),
		Email:         user.Email,
		Role:          user.Role,
		Status:        user.Status,
		Bio:           user.Bio,
		Phone:         user.Phone,
		Location:      user.Location,
		Avatar:        user.Avatar,
		EmailVerified: user.EmailVerified,
		JoinDate:      user.JoinDate,
	}
}

type BulkUpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
