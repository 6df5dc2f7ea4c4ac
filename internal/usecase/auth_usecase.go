package usecase

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gatherly/internal/entity"
	"gatherly/internal/model"
	"gatherly/internal/repo/persistent"
	"gatherly/pkg/jwt"
	"gatherly/pkg/logger"

	"github.com/mcnijman/go-emailaddress"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email is not verified")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrInvalidCode        = errors.New("invalid or expired confirmation code")
)

const confirmationCodeTTL = 5 * time.Minute

// ConfirmationSender delivers confirmation codes out of band.
type ConfirmationSender interface {
	SendConfirmationCode(to, code string) error
}

type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	SecondName string
	Interests  []string
}

type AuthUseCase interface {
	Register(input RegisterInput) (*entity.User, error)
	ConfirmEmail(email, code string) error
	Login(email, password string) (*entity.User, string, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	mailer     ConfirmationSender
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	mailer ConfirmationSender,
	log *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     log,
	}
}

// Register creates an unverified account and emails a confirmation code.
// Stale unconfirmed accounts are purged first so an abandoned registration
// does not hold the email hostage.
func (uc *authUseCase) Register(input RegisterInput) (*entity.User, error) {
	if _, err := emailaddress.Parse(input.Email); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if purged, err := uc.userRepo.PurgeExpiredUnconfirmed(time.Now()); err != nil {
		uc.logger.Warn("Failed to purge expired unconfirmed accounts: %v", err)
	} else if purged > 0 {
		uc.logger.Info("Purged %d expired unconfirmed accounts", purged)
	}

	_, err := uc.userRepo.GetByEmail(input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, persistent.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process registration")
	}

	code, err := generateConfirmationCode()
	if err != nil {
		uc.logger.Error("Failed to generate confirmation code: %v", err)
		return nil, fmt.Errorf("failed to process registration")
	}
	expires := time.Now().Add(confirmationCodeTTL)

	m := &model.UserModel{
		Email:                   input.Email,
		PasswordHash:            string(hashedPassword),
		FirstName:               input.FirstName,
		SecondName:              input.SecondName,
		Interests:               input.Interests,
		ConfirmationCode:        &code,
		ConfirmationCodeExpires: &expires,
	}
	if err := uc.userRepo.Create(m); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user")
	}

	if err := uc.mailer.SendConfirmationCode(input.Email, code); err != nil {
		uc.logger.Error("Failed to send confirmation code to %s: %v", input.Email, err)
	}

	return uc.userRepo.GetByID(m.ID)
}

func (uc *authUseCase) ConfirmEmail(email, code string) error {
	err := uc.userRepo.ConfirmEmail(email, code)
	if errors.Is(err, persistent.ErrNotFound) {
		return ErrInvalidCode
	}
	return err
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	creds, err := uc.userRepo.GetCredentials(email)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !creds.EmailVerified {
		return nil, "", ErrEmailNotVerified
	}
	if creds.IsBlocked {
		return nil, "", ErrAccountBlocked
	}

	role := "user"
	if creds.IsAdmin {
		role = "admin"
	}
	token, err := uc.jwtService.GenerateToken(creds.ID, role)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user, err := uc.userRepo.GetByID(creds.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func generateConfirmationCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
