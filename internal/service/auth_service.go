package service

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id string, set bson.M) error
	CreateSession(ctx context.Context, s *model.Session) error
	FindSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrBadToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	users      UserRepository
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewAuthService(users UserRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessionTTL: sessionTTL,
		resetTTL:   time.Hour,
	}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         "customer",
	}
	err = s.users.Insert(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the password and issues an opaque session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrBadCredentials
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID.Hex(),
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return nil, "", err
	}
	return u, session.Token, nil
}

// ValidateToken resolves a bearer token to its user; expired sessions are
// deleted on sight.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	session, err := s.users.FindSession(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBadToken
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.users.DeleteSession(ctx, token)
		return nil, ErrBadToken
	}

	u, err := s.users.FindByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBadToken
	}
	return u, err
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.users.DeleteSession(ctx, token)
}

// ForgotPassword stores a reset token on the user and returns it. Delivery
// (mail) is outside this service; callers decide what to do with the token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		// do not reveal which emails exist
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	expiry := time.Now().UTC().Add(s.resetTTL)
	err = s.users.Update(ctx, u.ID.Hex(), bson.M{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	u, err := s.users.FindByResetToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBadToken
	}
	if err != nil {
		return err
	}
	if u.ResetTokenExpiry == nil || time.Now().After(*u.ResetTokenExpiry) {
		return ErrBadToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, u.ID.Hex(), bson.M{
		"password_hash":      string(hash),
		"reset_token":        "",
		"reset_token_expiry": nil,
	})
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBadToken
	}
	return u, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req dto.ProfileUpdateRequest) error {
	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if req.SecondaryAddress != nil {
		set["secondary_address"] = req.SecondaryAddress
	}
	if len(set) == 0 {
		return nil
	}
	return s.users.Update(ctx, userID, set)
}

// Wishlist and compare-list are sets of product ids on the user document.

func (s *AuthService) SetWishlisted(ctx context.Context, userID, productID string, wishlisted bool) error {
	return s.mutateList(ctx, userID, "wishlist", productID, wishlisted)
}

func (s *AuthService) SetCompared(ctx context.Context, userID, productID string, compared bool) error {
	return s.mutateList(ctx, userID, "compare", productID, compared)
}

func (s *AuthService) mutateList(ctx context.Context, userID, field, productID string, add bool) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	list := u.Wishlist
	if field == "compare" {
		list = u.Compare
	}

	out := make([]string, 0, len(list)+1)
	for _, id := range list {
		if id != productID {
			out = append(out, id)
		}
	}
	if add {
		out = append(out, productID)
	}
	return s.users.Update(ctx, userID, bson.M{field: out})
}
