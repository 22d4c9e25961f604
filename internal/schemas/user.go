package schemas

import (
	"time"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
)

// UserCreate is the payload of POST /users/
type UserCreate struct {
	SubjectID string  `json:"subject_id" binding:"required,uuid"`
	Email     string  `json:"email" binding:"required,email"`
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FullName  *string `json:"full_name" binding:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Password  *string `json:"password" binding:"omitempty,min=8,bcryptlen"`
}

// Model builds the user row. The password, if any, is hashed.
func (p UserCreate) Model() (*models.User, error) {
	user := &models.User{
		SubjectID: p.SubjectID,
		Email:     p.Email,
		Username:  p.Username,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
	}
	if p.Password != nil {
		if err := user.HashPassword(*p.Password); err != nil {
			return nil, services.HashError(err)
		}
	}
	return user, nil
}

// UserUpdate is the payload of PUT /users/{id} and PUT /users/me
type UserUpdate struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	FullName  *string `json:"full_name" binding:"omitempty,max=100"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Password  *string `json:"password" binding:"omitempty,min=8,bcryptlen"`
}

// Changes returns the columns present in the payload.
func (p UserUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	if p.Username != nil {
		changes["username"] = *p.Username
	}
	if p.FullName != nil {
		changes["full_name"] = *p.FullName
	}
	if p.AvatarURL != nil {
		changes["avatar_url"] = *p.AvatarURL
	}
	if p.Password != nil {
		changes["password"] = *p.Password
	}
	return changes
}

// UserResponse is the public shape of a user
type UserResponse struct {
	ID        uint      `json:"id"`
	SubjectID string    `json:"subject_id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		SubjectID: u.SubjectID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
