package repository

import "cultivapp/entities"

// UserRepository stores accounts. Lookup methods return (nil, nil) when no
// user matches.
type UserRepository interface {
	Create(u *entities.User) error
	FindByEmail(email string) (*entities.User, error)
	FindByID(id uint) (*entities.User, error)
}
