package mockbackend

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func userPayload(u *user) gin.H {
	return gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"telefono":   u.Phone,
		"direccion":  u.Address,
		"role":       u.Role,
		"isVerified": u.Verified,
	}
}

func (s *Server) register(c *gin.Context) {
	var in struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid registration data", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[in.Email]; exists {
		fail(c, http.StatusConflict, "Email is already registered", "")
		return
	}
	u := &user{
		ID:          s.newID(),
		Name:        in.Name,
		Email:       in.Email,
		Password:    in.Password,
		Role:        "user",
		VerifyToken: uuid.NewString(),
	}
	s.users[in.Email] = u
	s.log.Info("user_registered", "email", in.Email)
	ok(c, userPayload(u), "Registered. Check your email to verify your account.")
}

func (s *Server) login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required", "")
		return
	}

	s.mu.Lock()
	u := s.users[in.Email]
	s.mu.Unlock()
	if u == nil || u.Deleted || u.Password != in.Password {
		fail(c, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not issue token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    userPayload(u),
	})
}

func (s *Server) verifyEmail(c *gin.Context) {
	token := c.Param("token")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.VerifyToken != "" && u.VerifyToken == token {
			u.Verified = true
			u.VerifyToken = ""
			signed, err := s.issueToken(u)
			if err != nil {
				fail(c, http.StatusInternalServerError, "Could not issue token", "")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"type":    "VERIFIED",
				"token":   signed,
				"user":    userPayload(u),
				"message": "Email verified",
			})
			return
		}
	}
	fail(c, http.StatusBadRequest, "Invalid or expired verification token", "")
}

func (s *Server) resendVerification(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Email is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[in.Email]
	if u == nil || u.Verified {
		// Same answer either way so the endpoint can't enumerate accounts.
		ok(c, nil, "If the account exists, a verification email was sent")
		return
	}
	u.VerifyToken = uuid.NewString()
	s.log.Info("verification_resent", "email", in.Email, "token", u.VerifyToken)
	ok(c, nil, "If the account exists, a verification email was sent")
}

func (s *Server) requestPasswordReset(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Email is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u := s.users[in.Email]; u != nil && !u.Deleted {
		u.ResetToken = uuid.NewString()
		s.log.Info("password_reset_requested", "email", in.Email, "token", u.ResetToken)
	}
	ok(c, nil, "If the account exists, a reset email was sent")
}

func (s *Server) resetPassword(c *gin.Context) {
	token := c.Param("token")
	var in struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Password is required", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetToken != "" && u.ResetToken == token {
			u.Password = in.Password
			u.ResetToken = ""
			ok(c, nil, "Password updated")
			return
		}
	}
	fail(c, http.StatusBadRequest, "Invalid or expired reset token", "")
}

// profile resolves by email or by id; production answers this one with a
// bare user object instead of the envelope.
func (s *Server) profile(c *gin.Context) {
	identifier := c.Param("identifier")

	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.Contains(identifier, "@") {
		if u := s.users[identifier]; u != nil && !u.Deleted {
			c.JSON(http.StatusOK, userPayload(u))
			return
		}
	} else {
		for _, u := range s.users {
			if u.ID == identifier && !u.Deleted {
				c.JSON(http.StatusOK, userPayload(u))
				return
			}
		}
	}
	fail(c, http.StatusNotFound, "User not found", "")
}

func (s *Server) updateProfile(c *gin.Context, u *user) {
	var in struct {
		Name    string `json:"name"`
		Phone   string `json:"telefono"`
		Address string `json:"direccion"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid profile data", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	ok(c, userPayload(u), "Profile updated")
}

// Admin user management.

func (s *Server) allUsers(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0, len(s.users))
	for _, u := range s.users {
		p := userPayload(u)
		p["deleted"] = u.Deleted
		out = append(out, p)
	}
	ok(c, gin.H{"users": out}, "")
}

func (s *Server) userStats(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var verified, deleted int
	for _, u := range s.users {
		if u.Verified {
			verified++
		}
		if u.Deleted {
			deleted++
		}
	}
	ok(c, gin.H{
		"total":    len(s.users),
		"verified": verified,
		"deleted":  deleted,
	}, "")
}

func (s *Server) findUserByID(id string) *user {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Server) updateUser(c *gin.Context, _ *user) {
	var in map[string]any
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid user data", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUserByID(c.Param("id"))
	if u == nil {
		fail(c, http.StatusNotFound, "User not found", "")
		return
	}
	if v, ok := in["name"].(string); ok && v != "" {
		u.Name = v
	}
	if v, ok := in["role"].(string); ok && v != "" {
		u.Role = v
	}
	if v, ok := in["isVerified"].(bool); ok {
		u.Verified = v
	}
	ok(c, userPayload(u), "User updated")
}

func (s *Server) deleteUser(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUserByID(c.Param("id"))
	if u == nil {
		fail(c, http.StatusNotFound, "User not found", "")
		return
	}
	u.Deleted = true
	ok(c, nil, "User deleted")
}

func (s *Server) restoreUser(c *gin.Context, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.findUserByID(c.Param("id"))
	if u == nil {
		fail(c, http.StatusNotFound, "User not found", "")
		return
	}
	u.Deleted = false
	ok(c, userPayload(u), "User restored")
}
