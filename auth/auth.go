// Package auth handles signup, login and logout. Logins are role-tagged
// (participant or organization) and the rememberMe flag picks the session
// tier: durable sessions outlive the browser, ephemeral ones do not.
package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"gatherly/db"
	"gatherly/globals"
	"gatherly/middleware"
	"gatherly/models"
	"gatherly/session"
	"gatherly/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

var Sessions session.Repository

type signupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

func Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input signupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Role = strings.ToUpper(strings.TrimSpace(input.Role))
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if input.Role != globals.RoleParticipant && input.Role != globals.RoleOrganization {
		utils.RespondWithError(w, http.StatusBadRequest, "Role must be PARTICIPANT or ORGANIZATION")
		return
	}

	count, err := db.UsersCollection.CountDocuments(r.Context(), bson.M{"username": input.Username})
	if err != nil {
		log.Println("Signup lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Signup failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Username already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	user := models.User{
		UserID:    utils.GetUUID(),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      input.Role,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}
	if _, err := db.UsersCollection.InsertOne(r.Context(), user); err != nil {
		log.Println("Signup insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{
		"userid": user.UserID,
		"role":   user.Role,
	}, "Signup successful", nil)
}

type loginInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var user models.User
	if err := db.UsersCollection.FindOne(r.Context(), bson.M{"username": input.Username}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tier := session.Ephemeral
	if input.RememberMe {
		tier = session.Durable
	}

	token, err := generateToken(user, tier.TTL())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	sess := &models.Session{
		UserID:    user.UserID,
		Username:  user.Username,
		Role:      user.Role,
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := Sessions.Set(r.Context(), token, sess, tier); err != nil {
		log.Println("Login session store error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	_, _ = db.UsersCollection.UpdateOne(r.Context(), bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}})

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":  token,
		"userid": user.UserID,
		"role":   user.Role,
	}, "Login successful", nil)
}

func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tokenString := r.Header.Get("Authorization")
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		if err := Sessions.Clear(r.Context(), tokenString[7:]); err != nil {
			log.Println("Logout clear error:", err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "message": "Logged out"})
}

// Me returns the session behind the presented token.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tokenString := r.Header.Get("Authorization")
	if len(tokenString) <= 7 || tokenString[:7] != "Bearer " {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	sess, err := Sessions.Get(r.Context(), tokenString[7:])
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Session expired")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sess)
}

func generateToken(user models.User, ttl time.Duration) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
