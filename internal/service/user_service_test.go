package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

type mockUserRepo struct {
	usersByID    map[string]domain.User
	usersByEmail map[string]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	if _, taken := m.usersByEmail[user.Email]; taken {
		return repository.ErrDuplicate
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.GetByID(context.Background(), id)
}

func (m *mockUserRepo) UpdateFCMToken(_ context.Context, id, token string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.FCMToken = token
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) SetResetOTP(_ context.Context, id, otpHash string, expiresAt time.Time) error {
	user, ok := m.usersByID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.ResetOTPHash = otpHash
	user.ResetOTPExpiresAt = &expiresAt
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) ConsumePasswordReset(_ context.Context, id, passwordHash string) error {
	user, ok := m.usersByID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetOTPHash = ""
	user.ResetOTPExpiresAt = nil
	m.usersByID[id] = user
	return nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id string, fields map[string]any) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	if len(fields) == 0 {
		return domain.User{}, repository.ErrNoFields
	}
	if v, ok := fields["user_name"]; ok {
		user.UserName = v.(string)
	}
	if v, ok := fields["avatar"]; ok {
		user.Avatar = v.(string)
	}
	if v, ok := fields["fcm_token"]; ok {
		user.FCMToken = v.(string)
	}
	m.usersByID[id] = user
	return user, nil
}

type mockEmailSender struct {
	lastTo      string
	lastCode    string
	lastExpires time.Time
	err         error
}

func (m *mockEmailSender) SendPasswordResetOTP(_ context.Context, toEmail string, code string, expiresAt time.Time) error {
	m.lastTo = toEmail
	m.lastCode = code
	m.lastExpires = expiresAt
	return m.err
}

func newTestUserService(repo repository.UserRepository, sender EmailSender, limiter OTPRateLimiter) *UserService {
	return NewUserService(zap.NewNop(), repo, sender, limiter, bcrypt.MinCost)
}

func TestUserServiceRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, &mockEmailSender{}, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		UserName:   "Test",
		Email:      "  User@Example.com ",
		Password:   "secret123",
		SignupType: "EMAIL",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", user.PasswordHash)
	}

	logged, err := svc.Login(context.Background(), LoginInput{
		Email:      "user@example.com",
		Password:   "secret123",
		SignupType: "EMAIL",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("expected same user back")
	}
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, &mockEmailSender{}, nil)

	input := RegisterInput{Email: "user@example.com", Password: "secret123", SignupType: "EMAIL"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserServiceRegisterEmailTypeNeedsPassword(t *testing.T) {
	svc := newTestUserService(newMockUserRepo(), &mockEmailSender{}, nil)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:      "user@example.com",
		SignupType: "EMAIL",
	})
	if !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestUserServiceLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, &mockEmailSender{}, nil)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", Password: "secret123", SignupType: "EMAIL",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{
		Email: "user@example.com", Password: "wrong", SignupType: "EMAIL",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserServiceLoginFederatedMismatch(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, &mockEmailSender{}, nil)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", SignupType: "GOOGLE", FCMToken: "fcm-1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// La cuenta es de Google: el login con contraseña se rechaza.
	_, err := svc.Login(context.Background(), LoginInput{
		Email: "user@example.com", Password: "whatever", SignupType: "EMAIL",
	})
	if !errors.Is(err, ErrSignupTypeMismatch) {
		t.Fatalf("expected ErrSignupTypeMismatch, got %v", err)
	}
}

func TestUserServiceLoginGoogleRefreshesFCMToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, &mockEmailSender{}, nil)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", SignupType: "GOOGLE", FCMToken: "fcm-old",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Login(context.Background(), LoginInput{
		Email: "user@example.com", SignupType: "GOOGLE", FCMToken: "fcm-new",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.FCMToken != "fcm-new" {
		t.Fatalf("expected refreshed fcm token, got %q", user.FCMToken)
	}
}

func TestUserServicePasswordResetFlow(t *testing.T) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{}
	svc := newTestUserService(repo, sender, nil)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", Password: "oldpass123", SignupType: "EMAIL",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Sin OTP emitido el cambio se rechaza.
	_, err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		Email: "user@example.com", Password: "newpass123", Code: "123456",
	})
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid before issuing otp, got %v", err)
	}

	user, err := svc.SendResetOTP(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("send otp: %v", err)
	}
	if sender.lastCode == "" || sender.lastTo != "user@example.com" {
		t.Fatalf("expected otp email to be sent")
	}
	if user.ResetOTPExpiresAt == nil {
		t.Fatalf("expected otp expiry set")
	}

	// El hash guardado nunca es el código en claro.
	stored := repo.usersByID[user.ID]
	if strings.Contains(stored.ResetOTPHash, sender.lastCode) {
		t.Fatalf("otp stored in plain text")
	}

	// Código equivocado.
	wrong := "000000"
	if wrong == sender.lastCode {
		wrong = "000001"
	}
	_, err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		Email: "user@example.com", Password: "newpass123", Code: wrong,
	})
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid for wrong code, got %v", err)
	}

	// Código correcto: cambia la contraseña y consume el OTP.
	if _, err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		Email: "user@example.com", Password: "newpass123", Code: sender.lastCode,
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{
		Email: "user@example.com", Password: "newpass123", SignupType: "EMAIL",
	}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// El mismo código ya no sirve.
	_, err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		Email: "user@example.com", Password: "again1234", Code: sender.lastCode,
	})
	if !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected consumed otp to be rejected, got %v", err)
	}
}

func TestUserServiceSendOTPExpired(t *testing.T) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{}
	svc := newTestUserService(repo, sender, nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", Password: "oldpass123", SignupType: "EMAIL",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.SendResetOTP(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("send otp: %v", err)
	}

	// Forzamos expiración directamente en el mock.
	stored := repo.usersByID[user.ID]
	expired := time.Now().UTC().Add(-time.Minute)
	stored.ResetOTPExpiresAt = &expired
	repo.usersByID[user.ID] = stored

	_, err = svc.ChangePassword(context.Background(), ChangePasswordInput{
		Email: "user@example.com", Password: "newpass123", Code: sender.lastCode,
	})
	if !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}

type mockLimiter struct {
	allow bool
}

func (m *mockLimiter) Allow(_ string) bool {
	return m.allow
}

func TestUserServiceSendOTPRateLimited(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestUserService(repo, &mockEmailSender{}, &mockLimiter{allow: false})

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", Password: "pass1234", SignupType: "EMAIL",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.SendResetOTP(context.Background(), "user@example.com"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestUserServiceSendOTPUnknownEmail(t *testing.T) {
	svc := newTestUserService(newMockUserRepo(), &mockEmailSender{}, nil)
	if _, err := svc.SendResetOTP(context.Background(), "missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserServiceSendOTPEmailFailure(t *testing.T) {
	repo := newMockUserRepo()
	sender := &mockEmailSender{err: errors.New("smtp down")}
	svc := newTestUserService(repo, sender, nil)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "user@example.com", Password: "pass1234", SignupType: "EMAIL",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.SendResetOTP(context.Background(), "user@example.com"); !errors.Is(err, ErrEmailSendFailure) {
		t.Fatalf("expected ErrEmailSendFailure, got %v", err)
	}
}
