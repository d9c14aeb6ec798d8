package authsvc_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/umer212dot/Vehicle-Rental-System/model"
	authsvc "github.com/umer212dot/Vehicle-Rental-System/service/auth"
	"github.com/umer212dot/Vehicle-Rental-System/util/hash"
)

const secret = "test-secret"

type fakeUserRepo struct {
	users     map[string]*model.User
	customers map[int64]*model.Customer
	nextID    int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, customers: map[int64]*model.Customer{}}
}

func (f *fakeUserRepo) CreateCustomer(ctx context.Context, u *model.User, c *model.Customer) error {
	key := strings.ToLower(u.Email)
	if _, ok := f.users[key]; ok {
		return &pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "users_email_key",
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users[key] = u

	f.nextID++
	c.ID = f.nextID
	c.UserID = u.ID
	f.customers[u.ID] = c
	return nil
}

func (f *fakeUserRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) CustomerByUserID(ctx context.Context, userID int64) (*model.Customer, error) {
	return f.customers[userID], nil
}

func claimsOf(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestRegister(t *testing.T) {
	f := newFakeUserRepo()
	s := authsvc.New(f, secret)

	res, err := s.Register(context.Background(), model.RegisterReq{
		Name: "Ada", Email: "ada@example.com", Phone: "0812", Password: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleCustomer, res.User.Role)
	require.NotNil(t, res.CustomerID)
	require.Equal(t, "Ada", res.Name)

	stored := f.users["ada@example.com"]
	require.True(t, hash.CheckPassword(stored.PasswordHash, "hunter22"))
	require.NotEqual(t, "hunter22", stored.PasswordHash)

	claims := claimsOf(t, res.Token)
	require.Equal(t, string(model.RoleCustomer), claims["role"])
	require.EqualValues(t, *res.CustomerID, claims["customer_id"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFakeUserRepo()
	s := authsvc.New(f, secret)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = s.Register(ctx, model.RegisterReq{Name: "Eve", Email: "ada@example.com", Password: "other"})
	require.ErrorIs(t, err, authsvc.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	f := newFakeUserRepo()
	s := authsvc.New(f, secret)
	ctx := context.Background()

	reg, err := s.Register(ctx, model.RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	res, err := s.Login(ctx, model.LoginReq{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, res.User.ID)
	require.Equal(t, *reg.CustomerID, *res.CustomerID)
	require.Equal(t, "Ada", res.Name)
	require.NotEmpty(t, res.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFakeUserRepo()
	s := authsvc.New(f, secret)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = s.Login(ctx, model.LoginReq{Email: "ada@example.com", Password: "nope"})
	require.ErrorIs(t, err, authsvc.ErrInvalidCreds)

	_, err = s.Login(ctx, model.LoginReq{Email: "ghost@example.com", Password: "nope"})
	require.ErrorIs(t, err, authsvc.ErrInvalidCreds)
}
