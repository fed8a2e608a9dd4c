package cognito

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// ErrCognitoThrottled marks errors returned when Cognito throttles requests.
var ErrCognitoThrottled = errors.New("cognito throttling")

// ErrCognitoNotAuthorized marks errors returned when Cognito rejects credentials.
var ErrCognitoNotAuthorized = errors.New("cognito not authorized")

// ErrCognitoExpiredCode marks errors returned when Cognito sees expired codes.
var ErrCognitoExpiredCode = errors.New("cognito code expired")

// ErrCognitoCodeMismatch marks errors returned when Cognito sees mismatched codes.
var ErrCognitoCodeMismatch = errors.New("cognito code mismatch")

// ErrCognitoUserNotFound marks errors returned for unknown usernames.
var ErrCognitoUserNotFound = errors.New("cognito user not found")

// ErrCognitoSoftwareTokenNotFound marks errors returned when no TOTP device is enrolled.
var ErrCognitoSoftwareTokenNotFound = errors.New("cognito software token not enrolled")

type CognitoClient struct {
	client   *cognitoidentityprovider.Client
	clientID string
}

// SignInResult carries the outcome of a password sign-in attempt. When the
// pool requires TOTP the tokens are empty and Session must be passed back
// through RespondToTOTPChallenge.
type SignInResult struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	Session      string
	NeedsTOTP    bool
}

// NewClient creates a new Cognito client from pool ID and client ID.
// The region is extracted from the pool ID (format: "region_poolid").
func NewClient(poolID, clientID string) (*CognitoClient, error) {
	region, err := regionFromPoolID(poolID)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &CognitoClient{
		client:   cognitoidentityprovider.NewFromConfig(awsCfg),
		clientID: clientID,
	}, nil
}

// PasswordSignIn starts the USER_PASSWORD_AUTH flow. Pools with MFA enabled
// answer with a SOFTWARE_TOKEN_MFA challenge instead of tokens.
func (c *CognitoClient) PasswordSignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	out, err := c.client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, mapCognitoError(err)
	}

	if out.ChallengeName == types.ChallengeNameTypeSoftwareTokenMfa {
		return &SignInResult{
			Session:   aws.ToString(out.Session),
			NeedsTOTP: true,
		}, nil
	}

	return signInResultFromAuth(out.AuthenticationResult)
}

// RespondToTOTPChallenge completes a sign-in that was answered with a
// SOFTWARE_TOKEN_MFA challenge.
func (c *CognitoClient) RespondToTOTPChallenge(ctx context.Context, session, email, code string) (*SignInResult, error) {
	out, err := c.client.RespondToAuthChallenge(ctx, &cognitoidentityprovider.RespondToAuthChallengeInput{
		ChallengeName: types.ChallengeNameTypeSoftwareTokenMfa,
		ClientId:      aws.String(c.clientID),
		Session:       aws.String(session),
		ChallengeResponses: map[string]string{
			"USERNAME":                email,
			"SOFTWARE_TOKEN_MFA_CODE": code,
		},
	})
	if err != nil {
		return nil, mapCognitoError(err)
	}

	return signInResultFromAuth(out.AuthenticationResult)
}

// AssociateSoftwareToken begins TOTP enrollment for a signed-in user and
// returns the shared secret to encode into an authenticator app.
func (c *CognitoClient) AssociateSoftwareToken(ctx context.Context, accessToken string) (string, error) {
	out, err := c.client.AssociateSoftwareToken(ctx, &cognitoidentityprovider.AssociateSoftwareTokenInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return "", mapCognitoError(err)
	}
	return aws.ToString(out.SecretCode), nil
}

// VerifySoftwareToken confirms TOTP enrollment with a code from the
// authenticator app, then marks TOTP as the preferred MFA method.
func (c *CognitoClient) VerifySoftwareToken(ctx context.Context, accessToken, code string) error {
	out, err := c.client.VerifySoftwareToken(ctx, &cognitoidentityprovider.VerifySoftwareTokenInput{
		AccessToken: aws.String(accessToken),
		UserCode:    aws.String(code),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	if out.Status != types.VerifySoftwareTokenResponseTypeSuccess {
		return fmt.Errorf("%w: verification status %s", ErrCognitoCodeMismatch, out.Status)
	}

	_, err = c.client.SetUserMFAPreference(ctx, &cognitoidentityprovider.SetUserMFAPreferenceInput{
		AccessToken: aws.String(accessToken),
		SoftwareTokenMfaSettings: &types.SoftwareTokenMfaSettingsType{
			Enabled:      true,
			PreferredMfa: true,
		},
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

// OTPAuthURI builds the otpauth:// provisioning URI for a TOTP secret.
func OTPAuthURI(issuer, email, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s", issuer, email, secret, issuer)
}

// ForgotPassword asks Cognito to email a reset code to the account's address.
// It returns the masked delivery destination (e.g. "f***@e***.com").
func (c *CognitoClient) ForgotPassword(ctx context.Context, username string) (string, error) {
	out, err := c.client.ForgotPassword(ctx, &cognitoidentityprovider.ForgotPasswordInput{
		ClientId: aws.String(c.clientID),
		Username: aws.String(username),
	})
	if err != nil {
		return "", mapCognitoError(err)
	}
	if out.CodeDeliveryDetails == nil {
		return "", nil
	}
	return aws.ToString(out.CodeDeliveryDetails.Destination), nil
}

// ConfirmForgotPassword completes the reset with the emailed code and the new
// password.
func (c *CognitoClient) ConfirmForgotPassword(ctx context.Context, username, code, newPassword string) error {
	_, err := c.client.ConfirmForgotPassword(ctx, &cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		return mapCognitoError(err)
	}
	return nil
}

func signInResultFromAuth(auth *types.AuthenticationResultType) (*SignInResult, error) {
	if auth == nil {
		return nil, fmt.Errorf("%w: no authentication result", ErrCognitoNotAuthorized)
	}
	return &SignInResult{
		AccessToken:  aws.ToString(auth.AccessToken),
		IDToken:      aws.ToString(auth.IdToken),
		RefreshToken: aws.ToString(auth.RefreshToken),
	}, nil
}

func mapCognitoError(err error) error {
	var throttled *types.TooManyRequestsException
	if errors.As(err, &throttled) {
		return fmt.Errorf("%w: %v", ErrCognitoThrottled, err)
	}
	var notAuthorized *types.NotAuthorizedException
	if errors.As(err, &notAuthorized) {
		return fmt.Errorf("%w: %v", ErrCognitoNotAuthorized, err)
	}
	var expired *types.ExpiredCodeException
	if errors.As(err, &expired) {
		return fmt.Errorf("%w: %v", ErrCognitoExpiredCode, err)
	}
	var mismatch *types.CodeMismatchException
	if errors.As(err, &mismatch) {
		return fmt.Errorf("%w: %v", ErrCognitoCodeMismatch, err)
	}
	var userMissing *types.UserNotFoundException
	if errors.As(err, &userMissing) {
		return fmt.Errorf("%w: %v", ErrCognitoUserNotFound, err)
	}
	var tokenMissing *types.SoftwareTokenMFANotFoundException
	if errors.As(err, &tokenMissing) {
		return fmt.Errorf("%w: %v", ErrCognitoSoftwareTokenNotFound, err)
	}
	return err
}

func regionFromPoolID(poolID string) (string, error) {
	parts := strings.SplitN(poolID, "_", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid cognito pool id: %q", poolID)
	}
	return parts[0], nil
}
