package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/umer212dot/Vehicle-Rental-System/model"
	userrepo "github.com/umer212dot/Vehicle-Rental-System/repository/user"
	"github.com/umer212dot/Vehicle-Rental-System/util/hash"
	jwtutil "github.com/umer212dot/Vehicle-Rental-System/util/jwt"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadInput     = errors.New("bad input")
	ErrInvalidCreds = errors.New("invalid credentials")
)

type LoginResult struct {
	User       *model.User
	CustomerID *int64
	Name       string
	Token      string
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*LoginResult, error)
	Login(ctx context.Context, req model.LoginReq) (*LoginResult, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*LoginResult, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         model.RoleCustomer,
	}
	c := &model.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.ur.CreateCustomer(ctx, u, c); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), &c.ID, 24)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, CustomerID: &c.ID, Name: c.Name, Token: token}, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*LoginResult, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCreds
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCreds
	}

	res := &LoginResult{User: u}
	if u.Role == model.RoleCustomer {
		c, err := s.ur.CustomerByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			res.CustomerID = &c.ID
			res.Name = c.Name
		}
	}

	res.Token, err = jwtutil.Issue(s.secret, u.ID, string(u.Role), res.CustomerID, 24)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(strings.ToLower(pgErr.ConstraintName), "email") ||
			strings.Contains(strings.ToLower(pgErr.Message), "email") {
			return ErrEmailTaken
		}
		return ErrBadInput
	}
	return nil
}
