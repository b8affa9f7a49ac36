package jwt

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/internal/utils"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserDetailByToken(token string) (string, string, []string, error)
	}

	jwtUserClaim struct {
		UserID string   `json:"user_id"`
		Role   string   `json:"role"`
		Scopes []string `json:"scopes"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		expiry    time.Duration
	}
)

func getSecretKey() string {
	secretKey := utils.GetConfig("JWT_SECRET")
	return secretKey
}

func getExpiry() time.Duration {
	minutes, err := strconv.Atoi(utils.GetConfig("JWT_EXPIRY_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 120
	}
	return time.Duration(minutes) * time.Minute
}

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: getSecretKey(),
		issuer:    "RESTOPOS",
		expiry:    getExpiry(),
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) string {
	claims := jwtUserClaim{
		userId,
		role,
		domain.ScopesForRole(role),
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.expiry)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserDetailByToken(token string) (string, string, []string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", nil, domain.ErrTokenExpired
		}
		return "", "", nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", nil, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)

	scopes := claims.Scopes
	if len(scopes) == 0 {
		scopes = domain.ScopesForRole(claims.Role)
	}
	return claims.UserID, claims.Role, scopes, nil
}
