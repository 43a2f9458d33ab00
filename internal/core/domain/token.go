package domain

// TokenPair is the credential pair minted at login: a short-lived access
// token for request authentication and a long-lived refresh token used
// only to mint new access tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
