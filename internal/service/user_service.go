package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// UserService coordina registro, login y el flujo de reset de contraseña.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	emailSender EmailSender
	otpLimiter  OTPRateLimiter
	bcryptCost  int
}

// EmailSender es lo que el servicio necesita del paquete email.
type EmailSender interface {
	SendPasswordResetOTP(ctx context.Context, toEmail string, code string, expiresAt time.Time) error
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrSignupTypeMismatch = errors.New("account registered with another signup method")
	ErrPasswordRequired   = errors.New("password required")
	ErrOTPInvalid         = errors.New("otp invalid")
	ErrOTPExpired         = errors.New("otp expired")
	ErrEmailSendFailure   = errors.New("email send failed")
	ErrRateLimited        = errors.New("rate limited")
)

const otpTTL = 10 * time.Minute

func NewUserService(logger *zap.Logger, users repository.UserRepository, emailSender EmailSender, otpLimiter OTPRateLimiter, bcryptCost int) *UserService {
	if otpLimiter == nil {
		otpLimiter = NewOTPRateLimiter(otpTTL, 3)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		logger:      logger,
		users:       users,
		emailSender: emailSender,
		otpLimiter:  otpLimiter,
		bcryptCost:  bcryptCost,
	}
}

type RegisterInput struct {
	UserName   string
	Email      string
	Password   string
	SignupType string
	FCMToken   string
	Avatar     string
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}
	signupType := strings.ToUpper(strings.TrimSpace(input.SignupType))
	password := strings.TrimSpace(input.Password)

	var passwordHash string
	if signupType == domain.SignupEmail {
		if password == "" {
			return domain.User{}, ErrPasswordRequired
		}
		hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return domain.User{}, err
		}
		passwordHash = string(hashBytes)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		UserName:     strings.TrimSpace(input.UserName),
		Email:        emailAddr,
		PasswordHash: passwordHash,
		SignupType:   signupType,
		FCMToken:     strings.TrimSpace(input.FCMToken),
		Avatar:       strings.TrimSpace(input.Avatar),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	return created, nil
}

type LoginInput struct {
	Email      string
	Password   string
	SignupType string
	FCMToken   string
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (domain.User, error) {
	emailAddr := normalizeEmail(input.Email)
	signupType := strings.ToUpper(strings.TrimSpace(input.SignupType))
	if emailAddr == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	// Una cuenta federada no puede entrar con contraseña.
	if user.SignupType != domain.SignupEmail && signupType == domain.SignupEmail {
		return domain.User{}, ErrSignupTypeMismatch
	}

	if signupType == domain.SignupGoogle || signupType == domain.SignupApple {
		fcm := strings.TrimSpace(input.FCMToken)
		if fcm == "" {
			return domain.User{}, ErrInvalidCredentials
		}
		if err := s.users.UpdateFCMToken(ctx, user.ID, fcm); err != nil {
			return domain.User{}, err
		}
		user.FCMToken = fcm
		return user, nil
	}

	password := strings.TrimSpace(input.Password)
	if password == "" || user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SendResetOTP genera el código de reset, lo persiste hasheado y lo envía por
// correo. El código nunca viaja en la respuesta HTTP.
func (s *UserService) SendResetOTP(ctx context.Context, emailAddr string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}

	if s.otpLimiter != nil && !s.otpLimiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	code, hash, expiresAt, err := generateOTP()
	if err != nil {
		return domain.User{}, err
	}
	if err := s.users.SetResetOTP(ctx, user.ID, hash, expiresAt); err != nil {
		return domain.User{}, err
	}

	if s.emailSender == nil {
		return domain.User{}, ErrEmailSendFailure
	}
	if err := s.emailSender.SendPasswordResetOTP(ctx, emailAddr, code, expiresAt); err != nil {
		if s.logger != nil {
			s.logger.Warn("send reset otp failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return domain.User{}, ErrEmailSendFailure
	}

	user.ResetOTPExpiresAt = &expiresAt
	return user, nil
}

type ChangePasswordInput struct {
	Email    string
	Password string
	Code     string
}

// ChangePassword consume el OTP: verifica el código contra el hash guardado y,
// en la misma sentencia, fija la contraseña nueva y limpia el código.
func (s *UserService) ChangePassword(ctx context.Context, input ChangePasswordInput) (domain.User, error) {
	emailAddr := normalizeEmail(input.Email)
	code := strings.TrimSpace(input.Code)
	password := strings.TrimSpace(input.Password)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}
	if password == "" {
		return domain.User{}, ErrPasswordRequired
	}
	if !isValidOTPCode(code) {
		return domain.User{}, ErrOTPInvalid
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if user.ResetOTPHash == "" || user.ResetOTPExpiresAt == nil {
		return domain.User{}, ErrOTPInvalid
	}
	if time.Now().UTC().After(*user.ResetOTPExpiresAt) {
		return domain.User{}, ErrOTPExpired
	}
	if !verifyOTP(code, user.ResetOTPHash) {
		return domain.User{}, ErrOTPInvalid
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.users.ConsumePasswordReset(ctx, user.ID, string(hashBytes)); err != nil {
		return domain.User{}, err
	}

	user.PasswordHash = string(hashBytes)
	user.ResetOTPHash = ""
	user.ResetOTPExpiresAt = nil
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, fields map[string]any) (domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func generateOTP() (string, string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", "", time.Time{}, err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", "", time.Time{}, err
	}
	saltStr := base64.StdEncoding.EncodeToString(salt)
	hashBytes := sha256.Sum256([]byte(saltStr + ":" + code))
	hash := base64.StdEncoding.EncodeToString(hashBytes[:])

	expiresAt := time.Now().UTC().Add(otpTTL)
	return code, saltStr + ":" + hash, expiresAt, nil
}

func verifyOTP(code, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 2 {
		return false
	}
	saltStr := parts[0]
	expectedHash := parts[1]
	hashBytes := sha256.Sum256([]byte(saltStr + ":" + code))
	hash := base64.StdEncoding.EncodeToString(hashBytes[:])
	return subtle.ConstantTimeCompare([]byte(hash), []byte(expectedHash)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
