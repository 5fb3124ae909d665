package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"po-backend/internal/auth"
	"po-backend/internal/models"
	"po-backend/internal/repositories"
)

// ErrUserReferenced is returned when a delete is attempted while
// projects or orders still point at the user.
var ErrUserReferenced = errors.New("user is still referenced by projects or orders")

// ErrTOTPRequired is returned by Login when the account has 2FA
// enabled; the caller must complete the second step with a temp token.
var ErrTOTPRequired = errors.New("totp verification required")

type UserService struct {
	Repo       *repositories.UserRepository
	TOTPRepo   *repositories.TOTPRepository
	LoginLogs  *repositories.LoginLogRepository
	ActionLogs *repositories.AdminActionLogRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, totpRepo *repositories.TOTPRepository,
	loginLogs *repositories.LoginLogRepository, actionLogs *repositories.AdminActionLogRepository,
	jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		TOTPRepo:   totpRepo,
		LoginLogs:  loginLogs,
		ActionLogs: actionLogs,
		JWTManager: jwtManager,
	}
}

// Signup creates a new user with hashed password
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}

	existingUser, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and returns a JWT token. Every attempt,
// successful or not, lands in the login log. When the account has 2FA
// enabled a temp token is returned alongside ErrTOTPRequired.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ip, userAgent string) (*models.AuthResponse, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", errors.New("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.logLogin(ctx, nil, req.Email, false, ip, userAgent)
		return nil, "", errors.New("invalid email or password")
	}
	if !user.IsActive {
		s.logLogin(ctx, &user.ID, req.Email, false, ip, userAgent)
		return nil, "", errors.New("account is deactivated")
	}

	if totpSecret, err := s.TOTPRepo.GetByUser(ctx, user.ID); err == nil && totpSecret.Enabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, "", err
		}
		return nil, tempToken, ErrTOTPRequired
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	s.logLogin(ctx, &user.ID, req.Email, true, ip, userAgent)
	return &models.AuthResponse{Token: token, User: user}, "", nil
}

// CompleteLogin issues the final token after 2FA verification
func (s *UserService) CompleteLogin(ctx context.Context, userID int, ip, userAgent string) (*models.AuthResponse, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.logLogin(ctx, &user.ID, user.Email, true, ip, userAgent)
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) logLogin(ctx context.Context, userID *int, email string, success bool, ip, userAgent string) {
	entry := &models.LoginLog{UserID: userID, Email: email, Success: success}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if userAgent != "" {
		entry.UserAgent = &userAgent
	}
	if err := s.LoginLogs.Create(ctx, entry); err != nil {
		log.Printf("[UserService] Failed to record login attempt: %v", err)
	}
}

// CreateUser creates a user on behalf of an admin
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest, adminID int, ip string) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logAdminAction(ctx, adminID, models.ActionUserCreated, user.ID,
		fmt.Sprintf("Created user %s (%s)", user.Name, user.Email), nil, nil, ip)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// UpdateUser applies an admin edit and records the role change if any
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest, adminID int, ip string) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	user.Phone = req.Phone
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashedPassword
	} else {
		user.PasswordHash = ""
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}

	var oldVal, newVal *string
	if oldRole != user.Role {
		oldVal, newVal = &oldRole, &user.Role
	}
	s.logAdminAction(ctx, adminID, models.ActionUserUpdated, user.ID,
		fmt.Sprintf("Updated user %s", user.Email), oldVal, newVal, ip)

	return s.Repo.Get(ctx, id)
}

// GetReferences returns the records still pointing at a user, feeding
// the deletion wizard's checking step.
func (s *UserService) GetReferences(ctx context.Context, userID int) (*models.UserReferences, error) {
	return s.Repo.GetReferences(ctx, userID)
}

// ReassignProjects hands every project managed by fromUserID to the
// target user, as the wizard's reassigning step requires.
func (s *UserService) ReassignProjects(ctx context.Context, fromUserID int, req *models.ReassignProjectsRequest, adminID int, ip string) (int, error) {
	if req.ToUserID == fromUserID {
		return 0, errors.New("cannot reassign projects to the user being deleted")
	}
	target, err := s.Repo.Get(ctx, req.ToUserID)
	if err != nil {
		return 0, errors.New("target user not found")
	}
	if !target.IsActive {
		return 0, errors.New("target user is deactivated")
	}

	moved, err := s.Repo.ReassignProjects(ctx, fromUserID, req.ToUserID)
	if err != nil {
		return 0, err
	}

	s.logAdminAction(ctx, adminID, models.ActionProjectsReassigned, fromUserID,
		fmt.Sprintf("Reassigned %d projects to %s", moved, target.Email), nil, nil, ip)
	return moved, nil
}

// DeleteUser runs the full wizard server-side: re-check references,
// then delete only when the confirm step is reachable. A stale client
// that skipped reassignment gets ErrUserReferenced, never a partial
// delete.
func (s *UserService) DeleteUser(ctx context.Context, userID, adminID int, ip string) error {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	wizard := NewDeletionWizard(userID)
	refs, err := s.Repo.GetReferences(ctx, userID)
	if err != nil {
		return err
	}
	if err := wizard.ApplyReferences(refs); err != nil {
		return err
	}
	if !wizard.CanConfirm() {
		return ErrUserReferenced
	}
	if err := wizard.Confirm(); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logAdminAction(ctx, adminID, models.ActionUserDeleted, userID,
		fmt.Sprintf("Deleted user %s (%s)", user.Name, user.Email), nil, nil, ip)
	return nil
}

func (s *UserService) logAdminAction(ctx context.Context, adminID int, actionType string, targetID int, description string, oldVal, newVal *string, ip string) {
	entry := &models.AdminActionLog{
		AdminUserID: adminID,
		ActionType:  actionType,
		TargetType:  "user",
		TargetID:    &targetID,
		Description: description,
		OldValue:    oldVal,
		NewValue:    newVal,
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if err := s.ActionLogs.CreateActionLog(ctx, entry); err != nil {
		log.Printf("[UserService] Failed to record admin action: %v", err)
	}
}
