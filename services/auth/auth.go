package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/playproof-io/footage-web/models"
)

const (
	UseFlag        = "use-auth"
	authSecretFlag = "auth-secret"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.BoolTFlag{
			Name:   UseFlag,
			Usage:  "use auth",
			EnvVar: "USE_AUTH",
		},
		cli.StringFlag{
			Name:   authSecretFlag,
			Usage:  "shared secret for tokens issued by the auth provider",
			EnvVar: "AUTH_SECRET",
		},
	)
}

// User is the authenticated identity attached to a request. Role and
// blacklist flag come from the external auth provider's token, the
// core never manages credentials itself.
type User struct {
	ID          uuid.UUID
	Email       string
	Role        models.Role
	Blacklisted bool
	HasToken    bool
}

func (s *User) HasAuth() bool {
	return s.HasToken
}

type UserContext struct{}

func GetUserFromContext(c *gin.Context) *User {
	if uc := c.Request.Context().Value(UserContext{}); uc != nil {
		return uc.(*User)
	}
	return &User{}
}

// HasAuth is route middleware rejecting unauthenticated requests.
func HasAuth(c *gin.Context) {
	u := GetUserFromContext(c)
	if !u.HasAuth() {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

type claims struct {
	jwt.StandardClaims
	Email       string `json:"email"`
	Role        string `json:"role"`
	Blacklisted bool   `json:"blacklisted"`
}

type Auth struct {
	secret []byte
	pg     *cs.PG
}

func New(c *cli.Context, pg *cs.PG) *Auth {
	if !c.BoolT(UseFlag) {
		return nil
	}
	secret := c.String(authSecretFlag)
	if secret == "" {
		log.Warn("auth enabled without secret, all requests will be anonymous")
		return nil
	}
	return &Auth{
		secret: []byte(secret),
		pg:     pg,
	}
}

// RegisterHandler installs middleware that turns a bearer token into
// a *User in the request context. Requests without a token proceed
// anonymously, mutating handlers gate on HasAuth.
func (s *Auth) RegisterHandler(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		u, err := s.parse(c.Request.Context(), raw)
		if err != nil {
			log.WithError(err).Warn("failed to verify auth token")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), UserContext{}, u))
		c.Next()
	})
}

func (s *Auth) parse(ctx context.Context, raw string) (*User, error) {
	cl := &claims{}
	_, err := jwt.ParseWithClaims(raw, cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	u := &User{
		Email:       cl.Email,
		Role:        models.Role(cl.Role),
		Blacklisted: cl.Blacklisted,
		HasToken:    true,
	}
	if u.Role.Rank() < 0 {
		u.Role = models.RoleUser
	}
	if s.pg == nil {
		return u, nil
	}
	if db := s.pg.Get(); db != nil {
		su, _, err := models.GetOrCreateUser(ctx, db, cl.Email, u.Role, u.Blacklisted)
		if err != nil {
			return nil, err
		}
		u.ID = su.UserID
	}
	return u, nil
}
