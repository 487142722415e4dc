package identity

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/taskfixer/servicios-api/internal/apperr"
)

const signInURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s"

var (
	initOnce sync.Once
	initErr  error
	fbClient *fbauth.Client
)

type Firebase struct {
	auth   *fbauth.Client
	apiKey string
	http   *http.Client
}

// NewFirebase initializes the Firebase app exactly once per process.
// Credentials come from the base64 env value when set, otherwise from the
// secrets file.
func NewFirebase(ctx context.Context, credsBase64, credsFile, apiKey string) (*Firebase, error) {
	initOnce.Do(func() {
		var opt option.ClientOption
		if credsBase64 != "" {
			raw, err := base64.StdEncoding.DecodeString(credsBase64)
			if err != nil {
				initErr = fmt.Errorf("decode firebase credentials: %w", err)
				return
			}
			opt = option.WithCredentialsJSON(raw)
		} else {
			if _, err := os.Stat(credsFile); err != nil {
				initErr = fmt.Errorf("firebase credentials file: %w", err)
				return
			}
			opt = option.WithCredentialsFile(credsFile)
		}

		app, err := firebase.NewApp(ctx, nil, opt)
		if err != nil {
			initErr = fmt.Errorf("init firebase app: %w", err)
			return
		}
		fbClient, initErr = app.Auth(ctx)
	})
	if initErr != nil {
		return nil, initErr
	}

	return &Firebase{
		auth:   fbClient,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (f *Firebase) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		Disabled(false)

	rec, err := f.auth.CreateUser(ctx, params)
	if err != nil {
		return "", apperr.BadRequest("failed to register user with identity provider")
	}
	return rec.UID, nil
}

func (f *Firebase) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.auth.DeleteUser(ctx, uid); err != nil {
		return apperr.Upstream("failed to delete identity provider account", err)
	}
	return nil
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) error {
	if f.apiKey == "" {
		return apperr.Internal(fmt.Errorf("FIREBASE_API_KEY not configured"))
	}

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return apperr.Internal(err)
	}

	url := fmt.Sprintf(signInURL, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return apperr.Internal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return apperr.Upstream("error communicating with identity provider", err)
	}
	defer resp.Body.Close()

	var body struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperr.Upstream("unexpected identity provider response", err)
	}
	if body.Error != nil {
		return apperr.BadRequest("failed to authenticate user")
	}
	return nil
}
