package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"marketplace/model"
	"marketplace/store"
)

// AuthService registers users and resolves credentials. Passwords are
// compared as plaintext — a known gap of this scope, kept rather than
// fixed so persisted demo accounts keep working.
type AuthService struct {
	store  store.Store
	notify Notifier
	newID  func() string
	now    func() time.Time
}

func NewAuthService(s store.Store, n Notifier) *AuthService {
	return &AuthService{store: s, notify: n, newID: uuid.NewString, now: time.Now}
}

func (a *AuthService) users() ([]model.User, error) {
	var users []model.User
	if err := a.store.Read(store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Login matches email and password against the user collection. The
// returned user has the password blanked.
func (a *AuthService) Login(email, password string) (model.User, error) {
	if email == "" {
		return model.User{}, required("email")
	}
	if password == "" {
		return model.User{}, required("password")
	}
	users, err := a.users()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			u.Password = ""
			a.notify.Notify("Login successful", fmt.Sprintf("Welcome back, %s!", u.Name))
			return u, nil
		}
	}
	return model.User{}, invalid("credentials", "invalid email or password")
}

// Register creates a user with a fresh id. Email must be unique; role
// defaults to customer.
func (a *AuthService) Register(name, email, password string, role model.Role) (model.User, error) {
	if name == "" {
		return model.User{}, required("name")
	}
	if email == "" {
		return model.User{}, required("email")
	}
	if password == "" {
		return model.User{}, required("password")
	}
	if role == "" {
		role = model.RoleCustomer
	}

	users, err := a.users()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return model.User{}, invalid("email", "already in use")
		}
	}

	user := model.User{
		ID:        a.newID(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: a.now(),
	}
	users = append(users, user)
	if err := a.store.Write(store.CollectionUsers, users); err != nil {
		return model.User{}, err
	}

	user.Password = ""
	a.notify.Notify("Registration successful", fmt.Sprintf("Welcome, %s!", user.Name))
	return user, nil
}

// UserByID resolves an id to a user, password blanked. Used by the HTTP
// layer to turn the upstream identity into a User for role-gated calls.
func (a *AuthService) UserByID(id string) (model.User, error) {
	users, err := a.users()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			u.Password = ""
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}
