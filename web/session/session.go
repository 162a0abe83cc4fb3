// Package session stores the logged-in user in the cookie session.
//
// The session carries a snapshot of the account taken at login time. A role
// change made by an admin therefore takes effect on the affected user's next
// login, not immediately.
package session

import (
	"encoding/gob"

	"librairie/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

func init() {
	gob.Register(model.User{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	// Snapshot only the public identity fields; the hash never enters the cookie.
	s.Set(loginUser, model.User{
		Id:       user.Id,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func IsAdmin(c *gin.Context) bool {
	user := GetLoginUser(c)
	return user != nil && user.Role == model.RoleAdmin
}

// ClearSession destroys the session. Safe to call when no session exists.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
