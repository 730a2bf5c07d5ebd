package auth

import (
	"context"
	"time"

	"refermark-server/internal/model"
	"refermark-server/pkg/config"
	"refermark-server/pkg/errutil"
	"refermark-server/pkg/repository"
	"refermark-server/pkg/validate"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	cfg   *config.Config
	users repository.Repository[model.User]
}

type ServiceParams struct {
	fx.In

	DB     *gorm.DB
	Config *config.Config
}

func NewService(p ServiceParams) *Service {
	return &Service{
		cfg:   p.Config,
		users: repository.ProvideStore[model.User](p.DB),
	}
}

// Login verifies the credentials and issues a signed token carrying the
// user id as its subject.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindOne(ctx, &model.User{Email: req.Email})
	if err != nil {
		zap.L().Error("failed to fetch user for login", zap.Error(err))
		return nil, errutil.Internal("Server error!", errutil.WithErr(err))
	}
	if user == nil {
		return nil, errutil.BadRequest("User not found!")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errutil.BadRequest("Invalid credentials!")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.TTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		zap.L().Error("failed to sign token", zap.Error(err))
		return nil, errutil.Internal("Server error!", errutil.WithErr(err))
	}

	return &LoginResponse{Token: token}, nil
}
