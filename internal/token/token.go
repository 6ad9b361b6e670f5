// Package token firma y verifica el par access/refresh.
// Es independiente del transporte: acá no hay cookies ni headers.
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Pair es el par de tokens firmados que viaja al transporte.
type Pair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// Claims es la vista verificada del payload de un token.
// Para refresh tokens solo Subject viene poblado.
type Claims struct {
	Subject       string
	Email         string
	Role          string
	GymID         string
	GymLocationID string
	ExpiresAt     time.Time
}

// Errores de verificación. El caller no distingue firma inválida de
// expiración: ambas son credencial no utilizable.
var (
	ErrInvalidToken = errors.New("token: invalid or expired token")
)

// Config agrupa los dos secretos y TTLs. Inmutable después del arranque;
// se pasa por valor al constructor, sin lookup global.
type Config struct {
	// AccessSecret y RefreshSecret DEBEN ser distintos: la clase del token
	// se distingue por qué secreto valida la firma, no por un claim.
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // ej: 15m
	RefreshTTL    time.Duration // ej: 168h
}

// Service firma HS256 con el secreto de cada clase.
type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Service{cfg: cfg}
}

// IssuePair emite access + refresh juntos. En refresh rotamos SIEMPRE los
// dos; el refresh viejo no se revoca server-side (no hay blacklist).
func (s *Service) IssuePair(subject, email, role, gymID, gymLocationID string) (Pair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(s.cfg.AccessTTL)
	refreshExp := now.Add(s.cfg.RefreshTTL)

	// Access: claims completos del principal
	ac := jwtv5.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": accessExp.Unix(),
	}
	if email != "" {
		ac["email"] = email
	}
	if role != "" {
		ac["role"] = role
	}
	if gymID != "" {
		ac["gym_id"] = gymID
	}
	if gymLocationID != "" {
		ac["gym_location_id"] = gymLocationID
	}
	access, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, ac).SignedString(s.cfg.AccessSecret)
	if err != nil {
		return Pair{}, err
	}

	// Refresh: solo el subject. Menos superficie si se filtra.
	rc := jwtv5.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": refreshExp.Unix(),
	}
	refresh, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, rc).SignedString(s.cfg.RefreshSecret)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// VerifyAccess valida un access token. Un refresh token presentado acá
// falla por secreto distinto.
func (s *Service) VerifyAccess(raw string) (Claims, error) {
	return s.verify(raw, s.cfg.AccessSecret)
}

// VerifyRefresh valida un refresh token, contrato espejo de VerifyAccess.
func (s *Service) VerifyRefresh(raw string) (Claims, error) {
	return s.verify(raw, s.cfg.RefreshSecret)
}

func (s *Service) verify(raw string, secret []byte) (Claims, error) {
	tk, err := jwtv5.Parse(raw,
		func(t *jwtv5.Token) (any, error) { return secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tk.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	out := Claims{Subject: sub}
	out.Email, _ = mc["email"].(string)
	out.Role, _ = mc["role"].(string)
	out.GymID, _ = mc["gym_id"].(string)
	out.GymLocationID, _ = mc["gym_location_id"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// AccessTTL expone el TTL del access para que el transporte arme cookies.
func (s *Service) AccessTTL() time.Duration { return s.cfg.AccessTTL }

// RefreshTTL expone el TTL del refresh.
func (s *Service) RefreshTTL() time.Duration { return s.cfg.RefreshTTL }
