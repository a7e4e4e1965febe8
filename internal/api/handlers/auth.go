package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nebulavault/server/internal/api/middleware"
	"github.com/nebulavault/server/internal/config"
	"github.com/nebulavault/server/internal/repositories"
	"github.com/nebulavault/server/internal/services"
	"github.com/nebulavault/server/internal/utils"
)

const sessionTTL = 24 * time.Hour

// Claims carried in the session JWT.
type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GET /
// Sends the visitor to the dashboard when a session exists, otherwise
// to the login page.
func Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionIdentity(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// POST /register
func Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	accounts := services.NewAccounts(repositories.DB)
	user, err := accounts.Register(input.Username, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.OK(w, http.StatusCreated, "Account created, you can now log in", user)
}

// POST /login
func Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	accounts := services.NewAccounts(repositories.DB)
	user, err := accounts.Authenticate(input.Username, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	expiration := time.Now().Add(sessionTTL)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.Envs.SessionSecret))
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	setSessionCookie(w, tokenString, int(time.Until(expiration).Seconds()))
	utils.OK(w, http.StatusOK, "Login successful", nil)
}

// GET /logout
func Logout(w http.ResponseWriter, r *http.Request) {
	setSessionCookie(w, "", -1)
	utils.OK(w, http.StatusOK, "Logged out", nil)
}

// GET /dashboard
func Dashboard(w http.ResponseWriter, r *http.Request) {
	accounts := services.NewAccounts(repositories.DB)
	stats, err := accounts.Stats()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "", map[string]any{
		"user":  middleware.Identity(r),
		"stats": stats,
	})
}

// POST /profile
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	accounts := services.NewAccounts(repositories.DB)
	if err := accounts.ChangePassword(middleware.Identity(r), input.NewPassword, input.ConfirmPassword); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Password updated", nil)
}

func setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	isProd := config.Envs.Environment == "production"

	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
}
