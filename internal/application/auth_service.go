package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pinshelf/pinshelf-api/internal/domain/entity"
	"github.com/pinshelf/pinshelf-api/internal/domain/repository"
	"github.com/pinshelf/pinshelf-api/pkg/apperror"
	"github.com/pinshelf/pinshelf-api/pkg/helpers"
	"github.com/pinshelf/pinshelf-api/pkg/mailer"
)

// AuthService implements registration, OTP-gated login, password reset, and
// token refresh. Tokens are only ever issued after OTP verification; login
// itself answers with "code dispatched".
type AuthService struct {
	Users       repository.UserRepository
	Otps        repository.OtpRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Pub         Publisher
	Logger      *logrus.Logger
	OtpTTL      time.Duration
	SessionTTL  time.Duration
	MailEnabled bool
}

// TokenPair is derived from the user on demand and never persisted.
type TokenPair struct {
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"accessExpiresAt"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"refreshExpiresAt"`
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	existing, err := s.Users.FindOneBy(ctx, bson.M{"$or": []bson.M{
		{"username": in.Username},
		{"email": in.Email},
	}}, nil)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Username == in.Username {
			return nil, apperror.Conflict("username", in.Username)
		}
		return nil, apperror.Conflict("email", in.Email)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := entity.NewUser(in.Username, in.Email, hash)
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	// Account stays pending until the welcome code is verified.
	if err := s.issueOtp(ctx, user, entity.OtpPurposeLogin, mailer.TemplateWelcome); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and dispatches a login OTP. It never returns the
// token pair; that only happens in VerifyForLogin.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (bool, error) {
	user, err := s.findByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		return false, apperror.Unauthorized("invalid credentials")
	}
	if !helpers.CheckPassword(user.Password, password) {
		return false, apperror.Unauthorized("invalid credentials")
	}
	if err := s.issueOtp(ctx, user, entity.OtpPurposeLogin, mailer.TemplateLoginOTP); err != nil {
		return false, err
	}
	return true, nil
}

// VerifyForLogin consumes a login OTP and, on success, issues the token pair
// and activates the account if it was still pending.
func (s *AuthService) VerifyForLogin(ctx context.Context, email, code string) (*entity.User, TokenPair, error) {
	otp, err := s.redeemOtp(ctx, email, code, entity.OtpPurposeLogin)
	if err != nil {
		return nil, TokenPair{}, err
	}
	user, err := s.Users.FindOneBy(ctx, bson.M{"email": otp.Email}, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, TokenPair{}, apperror.NotFound("user", email)
	}
	if err != nil {
		return nil, TokenPair{}, err
	}
	if !user.IsVerified {
		if updated, uErr := s.Users.Update(ctx, user.ID, bson.M{"$set": bson.M{"isVerified": true}}); uErr == nil {
			user = updated
		}
	}
	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// ResetPassword dispatches a reset OTP. Unknown emails still report success
// so the endpoint cannot be used for account enumeration.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (bool, error) {
	user, err := s.Users.FindOneBy(ctx, bson.M{"email": email}, nil)
	if errors.Is(err, repository.ErrNotFound) {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Info("reset requested for unknown email")
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.issueOtp(ctx, user, entity.OtpPurposeReset, mailer.TemplateResetOTP); err != nil {
		return false, err
	}
	return true, nil
}

// VerifyForResetPassword consumes a reset OTP and stores the new password.
func (s *AuthService) VerifyForResetPassword(ctx context.Context, email, code, newPassword string) (bool, error) {
	otp, err := s.redeemOtp(ctx, email, code, entity.OtpPurposeReset)
	if err != nil {
		return false, err
	}
	user, err := s.Users.FindOneBy(ctx, bson.M{"email": otp.Email}, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return false, apperror.NotFound("user", email)
	}
	if err != nil {
		return false, err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return false, err
	}
	if _, err := s.Users.Update(ctx, user.ID, bson.M{"$set": bson.M{"password": hash}}); err != nil {
		return false, err
	}
	return true, nil
}

// Logout drops the caller's session; already-issued tokens expire on their
// own but the session check in the middleware stops honoring them.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return helpers.DropSession(ctx, s.Redis, userID)
}

// Refresh rotates the pair from a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperror.Unauthorized("invalid refresh token")
	}
	id, err := parseActorID(claims.UserID)
	if err != nil {
		return TokenPair{}, err
	}
	user, err := s.Users.FindOne(ctx, id)
	if err != nil {
		return TokenPair{}, apperror.Unauthorized("invalid refresh token")
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) findByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*entity.User, error) {
	return s.Users.FindOneBy(ctx, bson.M{"$or": []bson.M{
		{"username": usernameOrEmail},
		{"email": usernameOrEmail},
	}}, nil)
}

func (s *AuthService) issueOtp(ctx context.Context, user *entity.User, purpose entity.OtpPurpose, template string) error {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	otp := entity.NewOtp(user.Email, code, purpose, s.OtpTTL)
	if err := s.Otps.Create(ctx, otp); err != nil {
		return err
	}
	if s.Pub == nil || !s.MailEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", user.Email).Warn("mail dispatch disabled, otp not sent")
		}
		return nil
	}
	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	job := mailer.EmailJob{
		To:       user.Email,
		Template: template,
		Data: map[string]any{
			"Name":      name,
			"Code":      code,
			"ExpiresIn": s.OtpTTL.String(),
		},
	}
	return s.Pub.PublishJSON(ctx, job)
}

// redeemOtp finds the latest open code for the email/purpose, checks it, and
// consumes it so it can never be replayed.
func (s *AuthService) redeemOtp(ctx context.Context, email, code string, purpose entity.OtpPurpose) (*entity.Otp, error) {
	otp, err := s.Otps.FindOneBy(ctx,
		bson.M{"email": email, "purpose": purpose, "consumed": false},
		bson.D{{Key: "createdAt", Value: -1}},
	)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Declined("no active verification code")
	}
	if err != nil {
		return nil, err
	}
	if otp.Expired(time.Now().UTC()) {
		return nil, apperror.Declined("verification code expired")
	}
	if otp.Code != code {
		return nil, apperror.Declined("incorrect verification code")
	}
	if _, err := s.Otps.Update(ctx, otp.ID, bson.M{"$set": bson.M{"consumed": true}}); err != nil {
		return nil, err
	}
	return otp, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(user.HexID(), user.IsAdmin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(user.HexID(), user.IsAdmin)
	if err != nil {
		return TokenPair{}, err
	}
	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    user.HexID(),
			"email":      user.Email,
			"username":   user.Username,
			"is_admin":   user.IsAdmin,
			"logged_in":  true,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		if err := helpers.StoreSession(ctx, s.Redis, user.HexID(), fields, s.SessionTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", user.HexID()).Warn("session store failed")
		}
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}
