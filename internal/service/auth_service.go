package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"ruunai/server/internal/domain"
	"ruunai/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRunnerAlreadyExists  = errors.New("runner with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.Runner, error)
	Login(ctx context.Context, email, password string) (token string, runner *domain.Runner, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	runnerRepo    repository.RunnerRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(runnerRepo repository.RunnerRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		runnerRepo:    runnerRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new runner registration.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (*domain.Runner, error) {
	// 1. Basic input validation
	if email == "" || password == "" {
		return nil, errors.New("email and password cannot be empty")
	}

	// 2. Check if the email is already taken
	_, err := s.runnerRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrRunnerAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err // Propagate unexpected repository errors
	}

	// 3. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 4. Create the runner
	runner := &domain.Runner{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
		// ID, CreatedAt, UpdatedAt set by the repository layer
	}
	runnerID, err := s.runnerRepo.Create(ctx, runner)
	if err != nil {
		// The unique index closes the race between the GetByEmail check and
		// the insert.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrRunnerAlreadyExists
		}
		return nil, err
	}
	runner.ID = runnerID

	// Remove the hash before returning
	runner.PasswordHash = ""
	return runner, nil
}

// Login handles runner authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, runner *domain.Runner, err error) {
	// 1. Basic input validation
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	// 2. Fetch runner by email
	runner, err = s.runnerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed // Unknown email maps to auth failure
			return
		}
		return
	}

	// 3. Compare the provided password with the stored hash
	err = bcrypt.CompareHashAndPassword([]byte(runner.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		runner = nil
		return
	}

	// 4. Authentication successful - generate JWT
	token, err = s.generateJWT(runner)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	runner.PasswordHash = ""
	return token, runner, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given runner.
func (s *authService) generateJWT(runner *domain.Runner) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: runner.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   runner.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "ruunai",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
