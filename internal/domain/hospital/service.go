package hospital

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	hospitals HospitalRepository
	users     UserRepository
}

func NewService(hospitals HospitalRepository, users UserRepository) *Service {
	return &Service{hospitals: hospitals, users: users}
}

// -- Hospitals --

func (s *Service) CreateHospital(ctx context.Context, h *Hospital) error {
	if h.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.hospitals.Create(ctx, h)
}

func (s *Service) GetHospital(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return s.hospitals.GetByID(ctx, id)
}

func (s *Service) UpdateHospital(ctx context.Context, h *Hospital) error {
	if h.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.hospitals.Update(ctx, h)
}

func (s *Service) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	return s.hospitals.Delete(ctx, id)
}

func (s *Service) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.hospitals.List(ctx, limit, offset)
}

// -- Users --

func (s *Service) CreateUser(ctx context.Context, u *User) error {
	if u.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("valid email is required")
	}
	if u.Role == "" {
		u.Role = RoleViewer
	}
	if !ValidRole(u.Role) {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	if u.Status == "" {
		u.Status = UserActive
	}
	return s.users.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetUserBySubject(ctx context.Context, subject string) (*User, error) {
	return s.users.GetBySubject(ctx, subject)
}

func (s *Service) UpdateUser(ctx context.Context, u *User) error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Role != "" && !ValidRole(u.Role) {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return s.users.Update(ctx, u)
}

// AssignRole changes a user's role in place.
func (s *Service) AssignRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *Service) ListUsersByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*User, int, error) {
	return s.users.ListByHospital(ctx, hospitalID, limit, offset)
}
