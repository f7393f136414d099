package domain

// Account is a registered visitor as persisted in the client's account list.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"passwordHash"`
	PasswordSalt []byte `json:"passwordSalt"`
}

// Session never carries credential material.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a Account) Session() Session {
	return Session{ID: a.ID, Name: a.Name, Email: a.Email}
}
