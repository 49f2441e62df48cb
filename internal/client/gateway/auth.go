package gateway

import (
	"context"
	"io"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Auth wraps the /auth endpoints.
type Auth struct {
	client *api.Client
}

// NewAuth returns the authentication gateway.
func NewAuth(c *api.Client) *Auth {
	return &Auth{client: c}
}

// Login exchanges credentials for a token and the user snapshot.
func (g *Auth) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := g.client.Post(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me resolves the identity behind the current bearer token.
func (g *Auth) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := g.client.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a regular account.
func (g *Auth) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return g.postUser(ctx, "/auth/register", req)
}

// RegisterAdmin self-registers an admin; the server checks the email domain.
func (g *Auth) RegisterAdmin(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return g.postUser(ctx, "/auth/admin/register", req)
}

// CreateAdmin lets an authenticated admin create another admin.
func (g *Auth) CreateAdmin(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return g.postUser(ctx, "/auth/admin/create", req)
}

func (g *Auth) postUser(ctx context.Context, path string, req models.RegisterRequest) (*models.User, error) {
	var out models.User
	if err := g.client.Post(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage stores an image and returns its absolute URL.
func (g *Auth) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	return g.upload(ctx, "/auth/upload/image", filename, r)
}

// UploadPDF stores a PDF and returns its absolute URL.
func (g *Auth) UploadPDF(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	return g.upload(ctx, "/auth/upload/pdf", filename, r)
}

func (g *Auth) upload(ctx context.Context, path, filename string, r io.Reader) (*models.UploadResult, error) {
	var out models.UploadResult
	if err := g.client.Upload(ctx, path, "file", filename, r, &out); err != nil {
		return nil, err
	}
	out.URL = g.client.ResolveUploadURL(out.URL)
	return &out, nil
}
