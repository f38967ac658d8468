package flickr

import (
	"context"
	"fmt"
	"log/slog"
)

// Account identifies the authenticated user; implemented by *Client
type Account interface {
	TestLogin(ctx context.Context) (*User, error)
	PersonInfo(ctx context.Context, userID string) (*Person, error)
}

// Login verifies the credentials and logs the account's photo and view counts
func Login(ctx context.Context, a Account) (*User, *Person, error) {
	user, err := a.TestLogin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to log in: %w", err)
	}
	slog.Info(fmt.Sprintf("Logged in as %s (%s)", user.Username, user.ID))

	person, err := a.PersonInfo(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account info: %w", err)
	}
	slog.Info(fmt.Sprintf("%d photos; %s views", person.PhotoCount(), person.Photos.Views))

	return user, person, nil
}
