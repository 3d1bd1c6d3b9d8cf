package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	AuthCallback(w http.ResponseWriter, r *http.Request)
	User(w http.ResponseWriter, r *http.Request)
	Middleware(next http.HandlerFunc) http.HandlerFunc
}

type MockAuth struct{}

func (m *MockAuth) Login(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:  tokenCookieName,
		Value: "mock-token",
	})
	w.WriteHeader(http.StatusOK)
}

func (m *MockAuth) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   tokenCookieName,
		Value:  "",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusOK)
}

func (m *MockAuth) AuthCallback(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "mock-token",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin", http.StatusTemporaryRedirect)
}

func (m *MockAuth) User(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(`{"username":"mock-user","name":"Mock User","role":"admin"}`))
	if err != nil {
		log.Printf("error sending user response: %v", err)
	}
}

func (m *MockAuth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextRole, "admin")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GoogleAuth guards the admin surface. Humans authenticate with Google
// OAuth and get a signed cookie, integrations send the shared api key in
// the Authorization header.
type GoogleAuth struct {
	serverKey    []byte
	serverApiKey string
	authConfig   *oauth2.Config
}

func NewGoogleAuth() (*GoogleAuth, error) {
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	callbackUrl := os.Getenv("CALLBACK_URL")
	clientId := os.Getenv("GOOGLE_CLIENT_ID")
	if clientId == "" || clientSecret == "" || callbackUrl == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or CALLBACK_URL environment variable not set")
	}
	hash := os.Getenv("ADMIN_TOKEN_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN_HASH environment variable not set")
	}
	apiKey := os.Getenv("ADMIN_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY environment variable not set")
	}
	authConfig := &oauth2.Config{
		ClientID:     clientId,
		ClientSecret: clientSecret,
		RedirectURL:  callbackUrl,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	return &GoogleAuth{
		authConfig:   authConfig,
		serverKey:    []byte(hash),
		serverApiKey: apiKey,
	}, nil
}

func generateStateOauthCookie() string {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(b)
}

func (ws *GoogleAuth) createToken(username, name, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"username": username,
			"name":     name,
			"role":     role,
			"exp":      time.Now().Add(time.Hour * 24).Unix(),
		})

	return token.SignedString(ws.serverKey)
}

func (ws *GoogleAuth) Login(w http.ResponseWriter, r *http.Request) {
	oauthState := generateStateOauthCookie()
	url := ws.authConfig.AuthCodeURL(oauthState, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

type UserData struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Id            string `json:"id"`
	Picture       string `json:"picture"`
}

const tokenCookieName = "bt-admin"

func (ws *GoogleAuth) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:   tokenCookieName,
		Value:  "",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusOK)
}

type ContextValue string

var ContextRole = ContextValue("role")

func (ws *GoogleAuth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		role := "anonymous"
		if auth != ws.serverApiKey {
			cookie, err := r.Cookie(tokenCookieName)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			token, err := ws.ParseJwt(cookie.Value)
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			role, _ = claims["role"].(string)
		} else {
			role = "api"
		}
		ctx := context.WithValue(r.Context(), ContextRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserData(token *oauth2.Token) (*UserData, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var userData UserData
	if err = json.NewDecoder(resp.Body).Decode(&userData); err != nil {
		return nil, err
	}
	return &userData, nil
}

func (ws *GoogleAuth) AuthCallback(w http.ResponseWriter, r *http.Request) {
	token, err := ws.authConfig.Exchange(context.Background(), r.FormValue("code"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	userData, err := getUserData(token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	ownToken, err := ws.createToken(userData.Email, userData.Name, "admin")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    ownToken,
		Path:     "/",
		Expires:  time.Now().Add(time.Hour * 24),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.Redirect(w, r, "/admin", http.StatusTemporaryRedirect)
}

func (ws *GoogleAuth) ParseJwt(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ws.serverKey, nil
	})
}

func (ws *GoogleAuth) User(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	token, err := ws.ParseJwt(cookie.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !token.Valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		http.Error(w, "No claims found", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(claims); err != nil {
		log.Printf("error sending user response: %v", err)
	}
}
