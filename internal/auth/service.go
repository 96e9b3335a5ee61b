package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"librarium/internal/config"
	"librarium/internal/entities"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrFieldsRequired    = errors.New("please fill all required fields")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrUsernameTaken     = errors.New("username already exists")
	ErrEmailTaken        = errors.New("email already exists")
	ErrUsernameInvalid   = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid      = errors.New("invalid email format")
	ErrInvalidMemberType = errors.New("invalid member type")
	ErrAccountLocked     = errors.New("account is locked due to too many failed login attempts")
)

// Service handles signup and authentication.
type Service struct {
	db     *gorm.DB
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SignupInput carries the signup form fields. All string fields are
// required; the confirmation must match the password.
type SignupInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
	MemberType      entities.MemberType
}

// Signup validates the input and creates the user identity together with
// its member profile in one transaction.
func (s *Service) Signup(in SignupInput) (*entities.User, error) {
	if in.Username == "" || in.Email == "" || in.FirstName == "" || in.LastName == "" ||
		in.Password == "" || in.PasswordConfirm == "" {
		return nil, ErrFieldsRequired
	}
	if in.Password != in.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}
	if !usernamePattern.MatchString(in.Username) {
		return nil, ErrUsernameInvalid
	}
	// RFC 5321 length limit is 254
	if len(in.Email) > 254 || !emailPattern.MatchString(in.Email) {
		return nil, ErrEmailInvalid
	}
	if !in.MemberType.Valid() {
		return nil, ErrInvalidMemberType
	}

	var taken int64
	if err := s.db.Model(&entities.User{}).Where("username = ?", in.Username).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken > 0 {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Model(&entities.User{}).Where("email = ?", in.Email).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken > 0 {
		return nil, ErrEmailTaken
	}

	passwordHash, err := HashPassword(in.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: passwordHash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		member := &entities.Member{
			UserID:     user.ID,
			MemberType: in.MemberType,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to create member profile: %w", err)
		}
		user.Member = member
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. The identifier
// may be either the username or the email address. Implements account
// lockout after too many failed attempts.
func (s *Service) Authenticate(identifier, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.LockedUntil != nil && time.Now().Before(*user.LockedUntil) {
		return nil, ErrAccountLocked
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		s.recordFailedLogin(&user)
		return nil, err
	}

	// Successful login - reset failed attempts and update last login
	now := time.Now()
	s.db.Model(&user).Updates(map[string]any{
		"last_login_at":      now,
		"failed_login_count": 0,
		"locked_until":       nil,
	})

	return &user, nil
}

// recordFailedLogin increments the failed login counter and locks the
// account if the threshold is reached.
func (s *Service) recordFailedLogin(user *entities.User) {
	user.FailedLoginCount++

	updates := map[string]any{
		"failed_login_count": user.FailedLoginCount,
	}

	maxAttempts := s.config.MaxLoginAttempts
	if maxAttempts == 0 {
		maxAttempts = 5
	}
	if user.FailedLoginCount >= maxAttempts {
		lockoutDuration := s.config.LockoutDuration
		if lockoutDuration == 0 {
			lockoutDuration = 30 * time.Minute
		}
		updates["locked_until"] = time.Now().Add(lockoutDuration)
	}

	s.db.Model(user).Updates(updates)
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
