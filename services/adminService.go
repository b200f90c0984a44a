package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Kariqs/aroena-api/models"
	"github.com/Kariqs/aroena-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dummyHash is compared against when the email is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	hashed, _ := utils.HashPassword("aroena-dummy-password")
	return hashed
})

type LoginResult struct {
	Token     string           `json:"token"`
	Admin     models.AdminInfo `json:"admin"`
	ExpiresAt time.Time        `json:"-"`
}

type AdminService struct {
	db      *gorm.DB
	tokens  *utils.TokenManager
	revoked utils.RevocationStore
}

func NewAdminService(db *gorm.DB, tokens *utils.TokenManager, revoked utils.RevocationStore) *AdminService {
	return &AdminService{db: db, tokens: tokens, revoked: revoked}
}

// CreateAdmin stores a new admin with a bcrypt hash of password. Email
// uniqueness is left to the database constraint.
func (s *AdminService) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := newAdmin(email, password)
	if err != nil {
		return nil, err
	}
	if err := insertAdmin(s.db.WithContext(ctx), admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// BootstrapAdmin creates the first admin. The count and the insert share a
// transaction holding the admins lock, so concurrent callers cannot both see
// an empty table.
func (s *AdminService) BootstrapAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	admin, err := newAdmin(email, password)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := countAdminsLocked(tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAdminRequired
		}
		return insertAdmin(tx, admin)
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func newAdmin(email, password string) (*models.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, NewBadRequestError("email and password are required")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}
	return &models.Admin{Email: email, Password: hashed}, nil
}

func insertAdmin(db *gorm.DB, admin *models.Admin) error {
	if err := db.Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &Error{Kind: KindBadRequest, Message: "admin with this email already exists", Err: err}
		}
		return fromDB(err, "admin not found", "failed to create admin")
	}
	return nil
}

// countAdminsLocked counts admins inside tx and blocks concurrent writers to
// the table until tx ends. SQLite needs no lock: its connection pool is capped
// at one so transactions already run one at a time.
func countAdminsLocked(tx *gorm.DB) (int64, error) {
	query := tx.Model(&models.Admin{})
	switch tx.Dialector.Name() {
	case "postgres":
		if err := tx.Exec("LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return 0, NewInternalError("failed to lock admins", err)
		}
	case "mysql":
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, NewInternalError("failed to count admins", err)
	}
	return count, nil
}

// Login checks the credentials and issues a signed token. Unknown emails and
// wrong passwords fail identically.
func (s *AdminService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&admin).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewInternalError("failed to look up admin", err)
		}
		_ = utils.ComparePasswords(dummyHash(), password)
		return nil, ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(admin.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Generate(admin.ID, admin.Email)
	if err != nil {
		return nil, NewInternalError("failed to generate token", err)
	}

	return &LoginResult{
		Token:     token,
		Admin:     models.AdminInfo{ID: admin.ID, Email: admin.Email},
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authenticate verifies a token and rejects it once it has been logged out
// or its admin has been deleted.
func (s *AdminService) Authenticate(ctx context.Context, token string) (*utils.AdminClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, Message: "invalid or expired token", Err: err}
	}
	if s.revoked != nil && claims.RegisteredClaims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.RegisteredClaims.ID)
		if err != nil {
			return nil, NewInternalError("failed to check token revocation", err)
		}
		if revoked {
			return nil, &Error{Kind: KindUnauthorized, Message: "token has been revoked"}
		}
	}

	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", claims.ID).Count(&exists).Error; err != nil {
		return nil, NewInternalError("failed to look up admin", err)
	}
	if exists == 0 {
		return nil, &Error{Kind: KindUnauthorized, Message: "admin no longer exists"}
	}
	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *AdminService) Logout(ctx context.Context, claims *utils.AdminClaims) error {
	if s.revoked == nil || claims.RegisteredClaims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.RegisteredClaims.ID, claims.ExpiresAt.Time); err != nil {
		return NewInternalError("failed to revoke token", err)
	}
	return nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.AdminInfo, error) {
	var admins []models.AdminInfo
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Select("id", "email").Order("id asc").Find(&admins).Error; err != nil {
		return nil, NewInternalError("failed to fetch admins", err)
	}
	return admins, nil
}

// DeleteAdmin removes an admin unless it is the last one left.
func (s *AdminService) DeleteAdmin(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := countAdminsLocked(tx)
		if err != nil {
			return err
		}

		var admin models.Admin
		if err := tx.First(&admin, id).Error; err != nil {
			return fromDB(err, "admin not found", "failed to fetch admin")
		}
		if count <= 1 {
			return ErrLastAdmin
		}

		if err := tx.Delete(&admin).Error; err != nil {
			return NewInternalError("failed to delete admin", err)
		}
		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
