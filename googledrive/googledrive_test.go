package googledrive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFolderQuery(t *testing.T) {
	require.Equal(t,
		"mimeType = 'application/vnd.google-apps.folder' and trashed = false and 'root' in parents and name = 'EasyLauncher'",
		folderQuery("root", "EasyLauncher"))
	require.Equal(t,
		`mimeType = 'application/vnd.google-apps.folder' and trashed = false and 'abc' in parents and name = 'Bob\'s \\ previews'`,
		folderQuery("abc", `Bob's \ previews`))
}

func TestNewInvalidCredentials(t *testing.T) {
	_, err := New(context.Background(), []byte(`{"nothing": "here"}`), []string{"EasyLauncher"}, "", nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "client credentials")
}

func TestNewWithoutAuthorization(t *testing.T) {
	credentials := []byte(`{"installed":{"client_id":"id","client_secret":"secret",` +
		`"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token",` +
		`"redirect_uris":["http://localhost"]}}`)
	_, err := New(context.Background(), credentials, nil, "", nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no way to ask for authorization")
}
