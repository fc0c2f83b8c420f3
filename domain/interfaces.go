package domain

import "context"

// AccountRepository defines account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Save(ctx context.Context, account *Account) error
	List(ctx context.Context, emailQuery string) ([]*Account, error)
	Delete(ctx context.Context, id string) error
}

// BookRepository defines book data access operations
type BookRepository interface {
	List(ctx context.Context) (map[string]*Book, error)
	Get(ctx context.Context, id string) (*Book, error)
	Put(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*TokenEnvelope, error)
	Refresh(ctx context.Context, account *Account) (*TokenEnvelope, error)
	Logout(ctx context.Context, account *Account) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, password, confirmation string, code int) error
	Profile(ctx context.Context, accountID string) (*Account, error)
}

// OTPService defines password reset challenge operations
type OTPService interface {
	Issue(ctx context.Context, account *Account) (int, error)
	Consume(ctx context.Context, account *Account, code int, newPassword string) error
}

// AccountService defines the users resource
type AccountService interface {
	List(ctx context.Context, emailQuery string) ([]*Account, error)
	Get(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, email, password string) (*Account, error)
	UpdateEmail(ctx context.Context, id, email string) (*Account, error)
	Delete(ctx context.Context, id string) error
}

// BookService defines the books resource
type BookService interface {
	List(ctx context.Context) (map[string]*Book, error)
	Get(ctx context.Context, id string) (*Book, error)
	Create(ctx context.Context, name string, price int64) (map[string]*Book, error)
	Update(ctx context.Context, id, name string, price int64) (*Book, error)
	Delete(ctx context.Context, id string) error
}

// BillingService filters billing denominations
type BillingService interface {
	Denominations(ctx context.Context) ([]int, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations
type TokenService interface {
	Issue(subjectID string) (*TokenEnvelope, error)
	Verify(token string) (*TokenClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}
