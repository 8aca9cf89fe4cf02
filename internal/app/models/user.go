package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UserID accepts both numeric and string identifiers from the backend.
type UserID string

// UnmarshalJSON implements json.Unmarshaler
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// Int64 returns the identifier as a number when it is one.
func (id UserID) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// User is the account returned by the login and signup mutations.
type User struct {
	ID    UserID   `json:"id"`
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email"`
	Role  RoleType `json:"role"`
}

// DisplayName falls back to "Admin" when the backend sent no name.
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "Admin"
	}
	return u.Name
}
