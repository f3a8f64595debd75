package services

import (
	"errors"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/dparra0/alerta-escolar-server/apperr"
	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/repository"
	"github.com/dparra0/alerta-escolar-server/utils"
)

var (
	ErrEmailTaken         = errors.New("el correo ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

type RegisterInput struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Grade            string  `json:"grade"`
	EmergencyContact *string `json:"emergencyContact"`
}

type UpdateUserInput struct {
	Name             *string `json:"name"`
	Grade            *string `json:"grade"`
	EmergencyContact *string `json:"emergencyContact"`
	Password         *string `json:"password"`
}

type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repository.NewUserRepository(db)}
}

func validateRegister(in RegisterInput) error {
	verr := &apperr.ValidationError{}
	if len(strings.TrimSpace(in.Name)) < 3 {
		verr.Add("name", "debe tener al menos 3 caracteres")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		verr.Add("email", "no es un correo válido")
	}
	if len(in.Password) < 6 {
		verr.Add("password", "debe tener al menos 6 caracteres")
	}
	if strings.TrimSpace(in.Grade) == "" {
		verr.Add("grade", "es obligatorio")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Register crea la cuenta y emite de una vez el token de sesión, igual que
// el login: la app queda autenticada tras registrarse.
func (s *AuthService) Register(in RegisterInput) (*models.User, string, error) {
	if err := validateRegister(in); err != nil {
		return nil, "", err
	}

	taken, err := s.users.ExistsByEmail(in.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:             strings.TrimSpace(in.Name),
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:     hash,
		Grade:            in.Grade,
		EmergencyContact: in.EmergencyContact,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Usuario", id)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateUser(id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	verr := &apperr.ValidationError{}
	if in.Name != nil {
		if len(strings.TrimSpace(*in.Name)) < 3 {
			verr.Add("name", "debe tener al menos 3 caracteres")
		} else {
			user.Name = strings.TrimSpace(*in.Name)
		}
	}
	if in.Grade != nil {
		if strings.TrimSpace(*in.Grade) == "" {
			verr.Add("grade", "es obligatorio")
		} else {
			user.Grade = *in.Grade
		}
	}
	if in.EmergencyContact != nil {
		user.EmergencyContact = in.EmergencyContact
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			verr.Add("password", "debe tener al menos 6 caracteres")
		} else {
			hash, err := utils.HashPassword(*in.Password)
			if err != nil {
				return nil, err
			}
			user.PasswordHash = hash
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
