package auth

import "time"

// Device is a registered tracking device. The secret is returned exactly
// once at registration; only its bcrypt hash is stored.
type Device struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Name string `json:"name"`
}

type RegisterResponse struct {
	Device Device `json:"device"`
	Secret string `json:"secret"`
}

type TokenRequest struct {
	DeviceID string `json:"device_id"`
	Secret   string `json:"secret"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
