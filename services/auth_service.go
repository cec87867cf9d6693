package services

import (
	"errors"
	"strings"
	"time"

	"hotel-marketplace/models"
	"hotel-marketplace/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const minPasswordLen = 6

// AuthService owns the credential store: registration, login and
// owner-driven username/password changes.
type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
	// AdminSignup lets the public register endpoint create admin accounts.
	AdminSignup bool
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, JWTSecret: secret, TokenTTL: ttl, AdminSignup: true}
}

// Session is what register/login hand back to clients.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique constraint")
}

func (s *AuthService) issue(u models.User) (Session, error) {
	token, err := utils.IssueToken(s.JWTSecret, u.ID, u.Username, u.Role, s.TokenTTL)
	if err != nil {
		return Session{}, ServerError("failed to issue token", err)
	}
	return Session{Token: token, User: u}, nil
}

func (s *AuthService) usernameTaken(username string, exceptID uint) (bool, error) {
	var count int64
	q := s.DB.Model(&models.User{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *AuthService) Register(username, password, role string) (Session, error) {
	username = strings.TrimSpace(username)
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = models.RoleMerchant
	}
	if username == "" || password == "" {
		return Session{}, BadRequest("username and password required")
	}
	if len(password) < minPasswordLen {
		return Session{}, BadRequest("password must be at least 6 characters")
	}
	if !models.ValidRole(role) {
		return Session{}, BadRequest("role must be admin or merchant")
	}
	if role == models.RoleAdmin && !s.AdminSignup {
		return Session{}, Forbidden("admin registration is disabled")
	}

	taken, err := s.usernameTaken(username, 0)
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, Conflict("username already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return Session{}, ServerError("failed to hash password", err)
	}
	user := models.User{Username: username, Password: hash, Role: role}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return Session{}, Conflict("username already exists")
		}
		return Session{}, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, BadRequest("username and password required")
	}
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, Unauthorized("invalid credentials")
		}
		return Session{}, err
	}
	if !utils.VerifyPassword(user.Password, password) {
		return Session{}, Unauthorized("invalid credentials")
	}
	return s.issue(user)
}

func (s *AuthService) Me(userID uint) (models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, NotFound("user not found")
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile renames the account and re-issues a token carrying the new
// username.
func (s *AuthService) UpdateProfile(userID uint, username string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, BadRequest("username required")
	}
	user, err := s.Me(userID)
	if err != nil {
		return Session{}, err
	}
	if username != user.Username {
		taken, err := s.usernameTaken(username, user.ID)
		if err != nil {
			return Session{}, err
		}
		if taken {
			return Session{}, Conflict("username already exists")
		}
		if err := s.DB.Model(&user).Update("username", username).Error; err != nil {
			if isDuplicateKey(err) {
				return Session{}, Conflict("username already exists")
			}
			return Session{}, err
		}
		user.Username = username
	}
	return s.issue(user)
}

func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return BadRequest("oldPassword and newPassword required")
	}
	if len(newPassword) < minPasswordLen {
		return BadRequest("password must be at least 6 characters")
	}
	user, err := s.Me(userID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(user.Password, oldPassword) {
		return BadRequest("old password is incorrect")
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return ServerError("failed to hash password", err)
	}
	return s.DB.Model(&user).Update("password", hash).Error
}
