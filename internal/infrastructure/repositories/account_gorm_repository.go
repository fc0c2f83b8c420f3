package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
	"gorm.io/gorm"
)

// GormAccountRepository implements domain.AccountRepository on a SQL database
type GormAccountRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `gorm:"column:password;not null"`
	Token        *string    `gorm:"column:token;type:text"`
	OTPCode      *int       `gorm:"column:otp_code"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "users"
}

// likeEscaper makes LIKE wildcards in a search term match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NewGormAccountRepository creates a new SQL account repository
func NewGormAccountRepository(db *gorm.DB, timeout time.Duration) domain.AccountRepository {
	return &GormAccountRepository{db: db, timeout: timeout}
}

func (r *GormAccountRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create implements domain.AccountRepository
func (r *GormAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrUserAlreadyExists
		}
		return upstream(err)
	}
	account.ID = strconv.FormatUint(uint64(dbAccount.ID), 10)
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// FindByEmail implements domain.AccountRepository
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, upstream(err)
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository
func (r *GormAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	numericID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var dbAccount DBAccount
	err = r.db.WithContext(ctx).Where("id = ?", numericID).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, upstream(err)
	}
	return r.dbToDomain(&dbAccount), nil
}

// Save implements domain.AccountRepository. Nil token and OTP fields are written as NULL.
func (r *GormAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	if _, err := strconv.ParseUint(account.ID, 10, 64); err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	dbAccount := r.domainToDB(account)
	result := r.db.WithContext(ctx).Model(dbAccount).Select("*").Omit("created_at").Updates(dbAccount)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domain.ErrUserAlreadyExists
		}
		return upstream(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// List implements domain.AccountRepository
func (r *GormAccountRepository) List(ctx context.Context, emailQuery string) ([]*domain.Account, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Order("id")
	if emailQuery != "" {
		query = query.Where(`LOWER(email) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(emailQuery))+"%")
	}

	var dbAccounts []DBAccount
	if err := query.Find(&dbAccounts).Error; err != nil {
		return nil, upstream(err)
	}

	accounts := make([]*domain.Account, 0, len(dbAccounts))
	for i := range dbAccounts {
		accounts = append(accounts, r.dbToDomain(&dbAccounts[i]))
	}
	return accounts, nil
}

// Delete implements domain.AccountRepository
func (r *GormAccountRepository) Delete(ctx context.Context, id string) error {
	numericID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).Delete(&DBAccount{}, numericID)
	if result.Error != nil {
		return upstream(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// domainToDB converts domain account to database account
func (r *GormAccountRepository) domainToDB(account *domain.Account) *DBAccount {
	dbAccount := &DBAccount{
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	}
	if id, err := strconv.ParseUint(account.ID, 10, 64); err == nil {
		dbAccount.ID = uint(id)
	}
	if account.ActiveToken != "" {
		token := account.ActiveToken
		dbAccount.Token = &token
	}
	if account.OTP != nil {
		code := account.OTP.Code
		expiresAt := account.OTP.ExpiresAt
		dbAccount.OTPCode = &code
		dbAccount.OTPExpiresAt = &expiresAt
	}
	return dbAccount
}

// dbToDomain converts database account to domain account
func (r *GormAccountRepository) dbToDomain(dbAccount *DBAccount) *domain.Account {
	account := &domain.Account{
		ID:           strconv.FormatUint(uint64(dbAccount.ID), 10),
		Email:        dbAccount.Email,
		PasswordHash: dbAccount.PasswordHash,
		CreatedAt:    dbAccount.CreatedAt,
		UpdatedAt:    dbAccount.UpdatedAt,
	}
	if dbAccount.Token != nil {
		account.ActiveToken = *dbAccount.Token
	}
	if dbAccount.OTPCode != nil && dbAccount.OTPExpiresAt != nil {
		account.OTP = &domain.OTPChallenge{
			Code:      *dbAccount.OTPCode,
			ExpiresAt: *dbAccount.OTPExpiresAt,
		}
	}
	return account
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
