package dtos

import (
	"strings"

	"github.com/xdoubleu/essentia/v2/pkg/validate"
)

type SignInDto struct {
	Email      string `schema:"email"`
	Password   string `schema:"password"`
	RememberMe bool   `schema:"rememberMe"`
	Next       string `schema:"next"`
}

func (dto *SignInDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "email", dto.Email, validate.IsNotEmpty)
	validate.Check(v, "password", dto.Password, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}

// ReturnURL is Next when it names a page on this site, else fallback.
func (dto *SignInDto) ReturnURL(fallback string) string {
	if !strings.HasPrefix(dto.Next, "/") || strings.HasPrefix(dto.Next, "//") {
		return fallback
	}
	return dto.Next
}

type MeDto struct {
	ID       string `json:"id"`
	Identity string `json:"identity"`
	Fallback bool   `json:"fallback"`
}
