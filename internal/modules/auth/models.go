package auth

import (
	"encoding/json"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

// wireUser tolerates the backend's profile shape variants: id/_id,
// phone/telefono, camel and snake case for the verification flag.
type wireUser struct {
	ID            string `json:"id"`
	AltID         string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Telefono      string `json:"telefono"`
	BirthDate     string `json:"birthDate"`
	FechaCamel    string `json:"fechaNacimiento"`
	FechaSnake    string `json:"fecha_nacimiento"`
	Address       string `json:"address"`
	Direccion     string `json:"direccion"`
	Avatar        string `json:"avatar"`
	Role          string `json:"role"`
	VerifiedCamel *bool  `json:"isVerified"`
	VerifiedSnake *bool  `json:"is_verified"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (w wireUser) toUser() User {
	role := w.Role
	if role == "" {
		role = "user"
	}
	verified := false
	switch {
	case w.VerifiedSnake != nil:
		verified = *w.VerifiedSnake
	case w.VerifiedCamel != nil:
		verified = *w.VerifiedCamel
	}
	name := w.Name
	if name == "" {
		name = "User"
	}
	return User{
		ID:        firstNonEmpty(w.ID, w.AltID),
		Name:      name,
		Email:     w.Email,
		Phone:     firstNonEmpty(w.Telefono, w.Phone),
		BirthDate: firstNonEmpty(w.FechaSnake, w.FechaCamel, w.BirthDate),
		Address:   firstNonEmpty(w.Direccion, w.Address),
		Avatar:    w.Avatar,
		Role:      role,
		Verified:  verified,
	}
}

// decodeUser pulls a profile out of an envelope, checking data, then the
// top-level user field, then the bare body.
func decodeUser(env *api.Envelope) (User, bool) {
	for _, raw := range []json.RawMessage{env.Data, env.User, env.Raw} {
		if len(raw) == 0 {
			continue
		}
		var w wireUser
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		if w.Email != "" || w.ID != "" || w.AltID != "" || w.Name != "" {
			return w.toUser(), true
		}
	}
	return User{}, false
}
