package jwt

import (
	"QR-Ordering-Backend/domain"
	"QR-Ordering-Backend/internal/utils"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
		GenerateTableToken(tableID string, sessionID string) (string, error)
		ParseTableToken(token string) (string, string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	// Table tokens carry no expiry. They stay valid until the table's QR
	// code is regenerated.
	jwtTableClaim struct {
		TableID   string `json:"table_id"`
		SessionID string `json:"session_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		qrSecret  string
		issuer    string
		tokenTTL  time.Duration
	}
)

func NewJWTService() JWTService {
	secret := utils.GetConfig("JWT_SECRET")
	qrSecret := utils.GetConfig("QR_SECRET")
	if qrSecret == "" {
		qrSecret = secret
	}
	return NewJWTServiceWithSecrets(secret, qrSecret)
}

func NewJWTServiceWithSecrets(secret, qrSecret string) JWTService {
	return &jwtService{
		secretKey: secret,
		qrSecret:  qrSecret,
		issuer:    "QR-ORDERING",
		tokenTTL:  12 * time.Hour,
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) string {
	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Errorw("failed to sign user token", "error", err)
	}
	return tx
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(t_ *jwt.Token) (any, error) {
		if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
		}
		return []byte(secret), nil
	}
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, keyFunc(j.secretKey))
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	return claims.UserID, claims.Role, nil
}

func (j *jwtService) GenerateTableToken(tableID string, sessionID string) (string, error) {
	claims := jwtTableClaim{
		tableID,
		sessionID,
		jwt.RegisteredClaims{
			Issuer:   j.issuer,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.qrSecret))
}

// ParseTableToken checks the signature only. Whether the token is still the
// current one for its table is decided against the stored value.
func (j *jwtService) ParseTableToken(token string) (string, string, error) {
	t_Token, err := jwt.ParseWithClaims(token, &jwtTableClaim{}, keyFunc(j.qrSecret))
	if err != nil || !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}
	claims := t_Token.Claims.(*jwtTableClaim)
	if claims.TableID == "" || claims.SessionID == "" {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.TableID, claims.SessionID, nil
}
