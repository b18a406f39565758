package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"amora/internal/config"
	"amora/internal/models"
	"amora/internal/repository"
	"amora/internal/services"
)

const resetTokenTTL = 15 * time.Minute

type AuthHandler struct {
	users  repository.UserRepository
	resets repository.PasswordResetRepository
	mailer services.EmailSender
	cfg    *config.Config
	v      *validator.Validate
}

func NewAuthHandler(db *sql.DB, cfg *config.Config, mailer services.EmailSender) *AuthHandler {
	return &AuthHandler{
		users:  repository.NewUserRepository(db),
		resets: repository.NewPasswordResetRepository(db),
		mailer: mailer,
		cfg:    cfg,
		v:      validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "register_failed", "Failed to create account")
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusConflict, "email_taken", "An account with this email already exists")
			return
		}
		log.Printf("Failed to create user: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "register_failed", "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"message":    "Account created successfully",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_credentials", "Wrong password or unregistered email")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_credentials", "Wrong password or unregistered email")
		return
	}

	expiresIn := h.cfg.JWTExpiresInSeconds
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": u.ID,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(expiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "login_failed", "Failed to login")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:     signed,
		UserID:    u.ID,
		ExpiresIn: expiresIn,
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unknown_email", "User not found")
		return
	}

	rawToken, tokenHash, err := generateResetToken()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "forgot_failed", "Failed to create reset token")
		return
	}

	now := time.Now().UTC()
	prt := &models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}
	if err := h.resets.Create(r.Context(), prt); err != nil {
		log.Printf("Failed to store reset token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "forgot_failed", "Failed to create reset token")
		return
	}

	resetLink := fmt.Sprintf("%s/reset.html?token=%s&email=%s", h.cfg.FrontendURL, rawToken, u.Email)
	subject := "Password reset"
	textBody := "You requested a password reset for your account. Open this link to choose a new password:\n\n" +
		resetLink + "\n\nThe link expires in 15 minutes. If you did not request this, ignore this email."
	htmlBody := `<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;">` +
		`<h2>Password reset</h2>` +
		`<p>You requested a password reset for your account.</p>` +
		`<p><a href="` + resetLink + `">Reset your password</a></p>` +
		`<p>If you did not request this change, please ignore this email.</p>` +
		`</div>`

	if err := h.mailer.Send(u.Email, subject, textBody, htmlBody); err != nil {
		log.Printf("Failed to send reset email to %s: %v", u.Email, err)
		writeJSONError(w, http.StatusInternalServerError, "mail_failed", "Failed to send email")
		return
	}

	resp := map[string]any{"message": "Email sent successfully"}
	if h.cfg.AuthReturnResetToken {
		resp["token"] = rawToken
		resp["expires_in_seconds"] = int64(resetTokenTTL / time.Second)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	hash := sha256.Sum256([]byte(req.Token))
	tokenHash := hex.EncodeToString(hash[:])

	token, err := h.resets.GetValidByTokenHash(r.Context(), tokenHash)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired token")
		return
	}

	// The token must belong to the account named in the request.
	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil || u.ID != token.UserID {
		writeJSONError(w, http.StatusBadRequest, "invalid_token", "Invalid or expired token")
		return
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	if err := h.users.UpdatePasswordHash(r.Context(), token.UserID, string(pwHash)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "reset_failed", "Failed to reset password")
		return
	}

	// The password is already rotated; an unmarked token still expires on
	// its own.
	if err := h.resets.MarkUsed(r.Context(), token.ID, time.Now().UTC()); err != nil {
		log.Printf("Failed to mark reset token %s as used: %v", token.ID, err)
	}
	writeJSONMessage(w, http.StatusOK, "Password reset successful")
}

func generateResetToken() (rawToken string, tokenHash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	rawToken = hex.EncodeToString(b)
	h := sha256.Sum256([]byte(rawToken))
	tokenHash = hex.EncodeToString(h[:])
	return rawToken, tokenHash, nil
}
