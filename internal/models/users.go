package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // user or admin
}

// HasRegisteredRole reports whether the user holds at least the "user" tier.
func (u User) HasRegisteredRole() bool {
	return u.Role == RoleUser || u.Role == RoleAdmin
}

var DummyUsers = []User{ //update later
	{"1", "ada", "pass1", RoleUser},
	{"2", "brann", "pass2", RoleUser},
	{"3", "corin", "pass3", RoleUser},
	{"4", "dagny", "pass4", RoleUser},
	{"5", "eamon", "pass5", RoleUser},
	{"6", "freya", "pass6", RoleUser},
	{"10", "admin", "admin123", RoleAdmin},
}

// FindUser returns the dummy user with the given ID.
func FindUser(id string) (User, bool) {
	for _, u := range DummyUsers {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
