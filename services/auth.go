package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	AccessToken string   `json:"access_token"`
	Role        string   `json:"role"`
	Roles       []string `json:"roles"`
}

type RegisterCustomerInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Fullname string `json:"fullname" form:"fullname" validate:"required,max=100"`
	Address  string `json:"address" form:"address" validate:"required,max=255"`
	Pincode  string `json:"pincode" form:"pincode" validate:"required,max=6"`
}

type RegisterProfessionalInput struct {
	Email             string   `json:"email" form:"email" validate:"required,email"`
	Password          string   `json:"password" form:"password" validate:"required"`
	Fullname          string   `json:"fullname" form:"fullname" validate:"required,max=100"`
	AvailableServices []string `json:"available_services" form:"available_services"`
	Experience        *int     `json:"experience" form:"experience" validate:"required,min=0"`
	Address           string   `json:"address" form:"address" validate:"omitempty,max=255"`
	Pincode           string   `json:"pincode" form:"pincode" validate:"omitempty,max=6"`
}

// Upload is a document received with a registration form.
type Upload struct {
	Filename string
	Body     io.Reader
}

type AuthService struct {
	DB     *gorm.DB
	Hasher utils.PasswordHasher
	Tokens *utils.TokenIssuer
	Store  utils.DocumentStore
}

func NewAuthService(db *gorm.DB, hasher utils.PasswordHasher, tokens *utils.TokenIssuer, store utils.DocumentStore) *AuthService {
	return &AuthService{DB: db, Hasher: hasher, Tokens: tokens, Store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies credentials and the account's standing, then issues a token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	log := utils.Log.WithField("email", email)

	var account models.Account
	err := s.DB.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("login failed: unknown email")
		return nil, utils.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return nil, utils.StorageError("load account", err)
	}
	if !s.Hasher.Check(account.Password, in.Password) {
		log.Warn("login failed: bad password")
		return nil, utils.Unauthenticated("invalid email or password")
	}

	if !account.Active {
		log.Warn("login refused: account inactive")
		return nil, utils.Unauthorized("account is inactive")
	}
	if len(account.Roles) == 0 {
		return nil, utils.ValidationError("account has no role assigned")
	}

	if _, err := s.authorizeAll(ctx, &account); err != nil {
		log.WithError(err).Warn("login refused")
		return nil, err
	}

	role := account.PrimaryRole()
	token, err := s.Tokens.Issue(account.ID, account.Email, role)
	if err != nil {
		return nil, utils.Unexpected("issue token", err)
	}

	log.WithField("role", role).Info("login succeeded")
	return &LoginResult{AccessToken: token, Role: role, Roles: account.RoleNames()}, nil
}

// authorizeAll applies the gate with every role the account holds.
func (s *AuthService) authorizeAll(ctx context.Context, account *models.Account) (*Identity, error) {
	return authorize(s.DB.WithContext(ctx), account.ID, account.RoleNames())
}

// Me returns the caller's account and profiles.
func (s *AuthService) Me(ctx context.Context, accountID uint) (*Identity, error) {
	return authorize(s.DB.WithContext(ctx), accountID, nil)
}

func (s *AuthService) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*models.CustomerProfile, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)

	hashed, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, utils.Unexpected("hash password", err)
	}

	profile := &models.CustomerProfile{
		Fullname:   strings.TrimSpace(in.Fullname),
		Address:    strings.TrimSpace(in.Address),
		Pincode:    in.Pincode,
		IsActive:   true,
		IsApproved: true,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := createAccount(tx, email, hashed, models.RoleCustomer)
		if err != nil {
			return err
		}
		profile.AccountID = account.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, registrationError(err)
	}

	utils.Log.WithFields(logrus.Fields{"email": email, "customer_id": profile.ID}).Info("customer registered")
	return profile, nil
}

// RegisterProfessional stores doc (if any) before the transaction and removes
// it again when the transaction fails.
func (s *AuthService) RegisterProfessional(ctx context.Context, in RegisterProfessionalInput, doc *Upload) (*models.ProfessionalProfile, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)

	hashed, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, utils.Unexpected("hash password", err)
	}

	var ref string
	if doc != nil && s.Store != nil {
		ref, err = s.Store.Save(ctx, doc.Filename, doc.Body)
		if err != nil {
			return nil, utils.StorageError("store document", err)
		}
	}

	profile := &models.ProfessionalProfile{
		Fullname:          strings.TrimSpace(in.Fullname),
		AvailableServices: models.JoinServices(in.AvailableServices),
		Experience:        *in.Experience,
		Documents:         ref,
		Address:           strings.TrimSpace(in.Address),
		Pincode:           in.Pincode,
		IsActive:          true,
		IsApproved:        false,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := createAccount(tx, email, hashed, models.RoleProfessional)
		if err != nil {
			return err
		}
		profile.AccountID = account.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		if ref != "" {
			if derr := s.Store.Delete(ctx, ref); derr != nil {
				utils.Log.WithError(derr).WithField("ref", ref).Warn("remove orphaned document")
			}
		}
		return nil, registrationError(err)
	}

	utils.Log.WithFields(logrus.Fields{"email": email, "professional_id": profile.ID}).Info("professional registered")
	return profile, nil
}

func createAccount(tx *gorm.DB, email, hashed, roleName string) (*models.Account, error) {
	var count int64
	if err := tx.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("email already registered")
	}

	var role models.Role
	if err := tx.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, utils.Unexpected("role "+roleName+" missing", err)
	}

	account := &models.Account{
		Email:    email,
		Password: hashed,
		Active:   true,
		Roles:    []models.Role{role},
	}
	if err := tx.Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// registrationError maps a concurrent insert of the same email to Conflict.
func registrationError(err error) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if utils.IsDuplicateKey(err) {
		return utils.Conflict("email already registered")
	}
	return utils.StorageError("register account", err)
}
