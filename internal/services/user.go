package services

import (
	"fmt"
	"strings"
	"time"

	"cleanup-backend/internal/apperrors"
	"cleanup-backend/internal/models"
	"cleanup-backend/internal/query"
	"cleanup-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const jwtExpDays = 365

// UserService handles identity and user-listing logic
type UserService struct {
	store     *repository.Store
	gate      *SessionGate
	hub       *NotificationHub
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(store *repository.Store, gate *SessionGate, hub *NotificationHub, jwtSecret string) *UserService {
	return &UserService{
		store:     store,
		gate:      gate,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// SignUpRequest represents a sign-up profile
type SignUpRequest struct {
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	Password string `json:"password"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// SignUp registers a new user. Email and handle must be unique.
func (s *UserService) SignUp(req SignUpRequest) (models.User, error) {
	email := strings.TrimSpace(req.Email)
	handle := strings.TrimSpace(req.Handle)
	if email == "" || handle == "" || req.Password == "" {
		return models.User{}, apperrors.InvalidData("email, handle, and password are required")
	}
	if _, exists := s.store.FindUserByEmail(email); exists {
		return models.User{}, apperrors.InvalidData("email already in use")
	}
	if _, exists := s.store.FindUserByHandle(handle); exists {
		return models.User{}, apperrors.InvalidData("handle already in use")
	}

	user := s.store.CreateUser(models.User{
		Email:    email,
		Handle:   handle,
		Password: req.Password,
		PhotoURL: req.PhotoURL,
	})

	log.Info().Int("user_id", user.ID).Str("handle", user.Handle).Msg("User signed up")

	// Users carry no location, so this is never delivered; the event is
	// still published for contract parity with the other mutations.
	s.hub.Publish(models.ChangeEvent{
		Kind:     models.ChangeNewObject,
		Entity:   models.EntityUser,
		EntityID: user.ID,
	}, nil)

	return user, nil
}

// UpdateSelf replaces the active user's mutable profile fields. The id,
// email, and counters are preserved.
func (s *UserService) UpdateSelf(patch models.User) (models.User, error) {
	if err := s.gate.Authorize(); err != nil {
		return models.User{}, err
	}
	current, _ := s.gate.CurrentUser()

	ok := s.store.MutateUser(current.ID, func(u *models.User) {
		if patch.Handle != "" {
			u.Handle = patch.Handle
		}
		if patch.Password != "" {
			u.Password = patch.Password
		}
		if patch.PhotoURL != "" {
			u.PhotoURL = patch.PhotoURL
		}
		if patch.PushToken != nil {
			u.PushToken = patch.PushToken
		}
	})
	if !ok {
		return models.User{}, apperrors.NotFound("user no longer exists")
	}

	updated, _ := s.store.GetUser(current.ID)
	return updated, nil
}

// RemoveAccount deletes the active user and drops the session.
func (s *UserService) RemoveAccount() error {
	if err := s.gate.Authorize(); err != nil {
		return err
	}
	current, _ := s.gate.CurrentUser()

	s.store.DeleteUser(current.ID)
	s.gate.clearSession()

	log.Info().Int("user_id", current.ID).Msg("Account removed")
	return nil
}

// GetUsers returns the leaderboard: filtered, ranked by score
// descending, private fields redacted, then paginated.
func (s *UserService) GetUsers(filter query.UserFilter, r *query.Range) ([]models.User, error) {
	ranked := query.Users(s.store.ListUsers(), filter)
	return query.Page(ranked, r), nil
}

// ResetPassword is not yet supported.
func (s *UserService) ResetPassword(email string) {
	panic("resetPassword is not implemented")
}

// GenerateJWT generates a bearer token for the HTTP surface
func (s *UserService) GenerateJWT(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a bearer token and returns the user id
func (s *UserService) ValidateJWT(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("user_id not found in token")
	}

	return int(userID), nil
}
