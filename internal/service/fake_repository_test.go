package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/models"
)

// memoryUserRepository is an in-memory store.UserRepository that honours
// the uniqueness and compare-and-swap contracts of the real drivers.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]models.User{}}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

func (r *memoryUserRepository) FindProfileByID(ctx context.Context, id string) (models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if (username != "" && user.Username == username) || (email != "" && user.Email == email) {
			return user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (r *memoryUserRepository) Create(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID == user.ID || existing.Username == user.Username || existing.Email == user.Email {
			return store.ErrUserAlreadyExists
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepository) SetRefreshToken(_ context.Context, id, refreshToken string) error {
	return r.update(id, func(u *models.User) error {
		u.RefreshToken = refreshToken
		return nil
	})
}

func (r *memoryUserRepository) SwapRefreshToken(_ context.Context, id, expected, refreshToken string) error {
	err := r.update(id, func(u *models.User) error {
		if expected == "" || u.RefreshToken != expected {
			return store.ErrRefreshTokenMismatch
		}
		u.RefreshToken = refreshToken
		return nil
	})
	if err == store.ErrUserNotFound {
		return store.ErrRefreshTokenMismatch
	}
	return err
}

func (r *memoryUserRepository) ClearRefreshToken(ctx context.Context, id string) (models.User, error) {
	if err := r.update(id, func(u *models.User) error {
		u.RefreshToken = ""
		return nil
	}); err != nil {
		return models.User{}, err
	}
	return r.FindProfileByID(ctx, id)
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(u *models.User) error {
		u.PasswordHash = passwordHash
		return nil
	})
}

func (r *memoryUserRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	if update.Email != nil {
		if other, err := r.FindByUsernameOrEmail(ctx, "", *update.Email); err == nil && other.ID != id {
			return models.User{}, store.ErrUserAlreadyExists
		}
	}

	err := r.update(id, func(u *models.User) error {
		if update.FullName != nil {
			u.FullName = *update.FullName
		}
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.AvatarURL != nil {
			u.AvatarURL = *update.AvatarURL
		}
		if update.CoverImageURL != nil {
			u.CoverImageURL = *update.CoverImageURL
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return r.FindProfileByID(ctx, id)
}

func (r *memoryUserRepository) update(id string, fn func(u *models.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	if err := fn(&user); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[id] = user
	return nil
}

// seed stores a user with a hashed password and returns it.
func (r *memoryUserRepository) seed(id, username, email, password string) models.User {
	user := models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		FullName:  "Test " + username,
		AvatarURL: "https://cdn/" + username + ".png",
		CreatedAt: time.Now().UTC(),
	}
	if err := user.SetPassword(password, bcrypt.MinCost); err != nil {
		panic(err)
	}

	r.mu.Lock()
	r.users[id] = user
	r.mu.Unlock()
	return user
}

func testAuthConfig() config.Auth {
	return config.Auth{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		TokenIssuer:        "go-user-service-test",
		PasswordHashCost:   bcrypt.MinCost,
	}
}
