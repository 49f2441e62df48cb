package apitest

import (
	"errors"
	"net/http"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

const maxUploadSize = 10 << 20

var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	pdfExtensions   = map[string]bool{".pdf": true}
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, ok := s.authenticate(req.Email, req.Password)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{AccessToken: token, TokenType: "bearer", User: u})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, ok := s.user(principalID(r))
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	if !u.IsActive {
		writeDetail(w, http.StatusBadRequest, "Inactive user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.createAccount(w, req, models.RoleUser)
}

func (s *Server) registerAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.createAdminAccount(w, req)
}

func (s *Server) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.createAdminAccount(w, req)
}

func (s *Server) createAdminAccount(w http.ResponseWriter, req models.RegisterRequest) {
	if !s.adminDomainAllowed(req.Email) {
		writeDetail(w, http.StatusBadRequest,
			"Admin email must be from one of these domains: "+strings.Join(s.adminDomains, ", "))
		return
	}
	s.createAccount(w, req, models.RoleAdmin)
}

func (s *Server) createAccount(w http.ResponseWriter, req models.RegisterRequest, role models.Role) {
	var p problems
	if _, err := mail.ParseAddress(req.Email); err != nil {
		p.add("body", "email", "value is not a valid email address")
	}
	if n := len(req.Username); n < 3 || n > 50 {
		p.add("body", "username", "String should have between 3 and 50 characters")
	}
	if n := len(req.Password); n < 6 || n > 100 {
		p.add("body", "password", "String should have between 6 and 100 characters")
	}
	if len(p) > 0 {
		writeProblems(w, p)
		return
	}

	u, err := s.AddUser(req.Email, req.Username, req.Password, role)
	switch {
	case errors.Is(err, ErrDuplicate):
		writeDetail(w, http.StatusBadRequest, "Email or username already registered")
	case err != nil:
		writeDetail(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusCreated, u)
	}
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	s.upload(w, r, "images", imageExtensions, "Only image files are allowed")
}

func (s *Server) uploadPDF(w http.ResponseWriter, r *http.Request) {
	s.upload(w, r, "pdfs", pdfExtensions, "Only PDF files are allowed")
}

// upload validates the multipart file and answers with the site-relative
// URL it would be served from. The content itself is discarded.
func (s *Server) upload(w http.ResponseWriter, r *http.Request, dir string, allowed map[string]bool, rejectMsg string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeDetail(w, http.StatusBadRequest, "No filename provided")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowed[ext] {
		writeDetail(w, http.StatusBadRequest, rejectMsg)
		return
	}
	name := uuid.NewString() + ext
	writeJSON(w, http.StatusOK, models.UploadResult{
		URL:      "/uploads/" + dir + "/" + name,
		Filename: header.Filename,
	})
}
