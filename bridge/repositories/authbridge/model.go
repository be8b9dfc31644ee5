package authbridge

import "github.com/jrazmi/taskline/core/cases/authcase"

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is what register and login return. The token is the bearer
// credential for every task route.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func MarshalSession(s authcase.Session) Session {
	return Session{
		ID:       s.User.UserID,
		Username: s.User.Username,
		Email:    s.User.Email,
		Token:    s.Token,
	}
}
