// Package googledrive shares preview sheets of processed icons in Google
// Drive, so that reviewers can see what a build variant looks like.
package googledrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Manager is the object that manages Google Drive's credentials, authentication,
// token and the folder where previews are uploaded.
type Manager struct {
	path []string

	jsonToken string
	config    *oauth2.Config
	token     *oauth2.Token
	client    *http.Client
	service   *drive.Service

	SetToken           func(string)
	EnterAuthorization func(authURL string) string
}

// New creates a Manager for the OAuth client described by credentialsJSON
// (as downloaded from the Google Cloud console, for an "installed"
// application).
//
// Previews are created within the folder `path` (list of folder names from
// the Drive root), created as needed.
//
// A previously saved authorization `token` can be passed to reuse authorization.
// If none is available pass an empty string, and a new authorization is requested:
//
//   - setToken: called with the new token, so it can be saved and passed as `token`
//     the next time. May be nil.
//   - enterAuthorization: called with the URL where the user authorizes access;
//     returns the authorization code given by Google, or "" to give up.
func New(ctx context.Context, credentialsJSON []byte, path []string, token string,
	setToken func(token string), enterAuthorization func(authURL string) string) (*Manager, error) {
	m := &Manager{
		path:               path,
		jsonToken:          token,
		SetToken:           setToken,
		EnterAuthorization: enterAuthorization,
	}
	var err error
	m.config, err = google.ConfigFromJSON(credentialsJSON, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client credentials: %w", err)
	}

	if m.jsonToken != "" {
		tok := &oauth2.Token{}
		err = json.NewDecoder(strings.NewReader(m.jsonToken)).Decode(tok)
		if err != nil {
			glog.Errorf("unable to parse token from what was previously saved, ignoring it: %s", err)
			m.jsonToken = ""
			m.token = nil
		} else {
			m.token = tok
		}
	}

	m.client, err = m.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	m.service, err = drive.NewService(ctx, option.WithHTTPClient(m.client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve GoogleDrive client: %w", err)
	}
	return m, nil
}

// getClient acquires a token if there isn't one yet and returns the
// authorized client.
func (m *Manager) getClient(ctx context.Context) (*http.Client, error) {
	var err error
	if m.jsonToken == "" || m.token == nil {
		m.token, err = m.getTokenFromWeb(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get authorization from the web: %w", err)
		}
		var b strings.Builder
		_ = json.NewEncoder(&b).Encode(m.token)
		m.jsonToken = b.String()
		if m.SetToken != nil {
			m.SetToken(m.jsonToken)
		}
	}
	return m.config.Client(ctx, m.token), nil
}

func (m *Manager) getTokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	if m.EnterAuthorization == nil {
		return nil, fmt.Errorf("no GoogleDrive token and no way to ask for authorization")
	}
	authURL := m.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	if err := openurl(authURL); err != nil {
		glog.Warningf("Can't open the browser, authorize at the URL by hand: %v", err)
	}
	authCode := m.EnterAuthorization(authURL)
	if authCode == "" {
		return nil, fmt.Errorf("no GoogleDrive authorization given")
	}

	tok, err := m.config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web with authorization given: %w", err)
	}
	return tok, nil
}

// ShareImage uploads img as "<name>.png" into the Manager's folder, makes it
// readable by anyone with the link, and returns the link.
func (m *Manager) ShareImage(ctx context.Context, name string, img image.Image) (url string, err error) {
	parentId, err := m.createPath(ctx)
	if err != nil {
		return "", err
	}

	var contentBuffer bytes.Buffer
	if err = png.Encode(&contentBuffer, img); err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", name, err)
	}

	f := &drive.File{
		MimeType: "image/png",
		Name:     name + ".png",
		Parents:  []string{parentId},
	}
	f, err = m.service.Files.Create(f).
		Context(ctx).
		Media(bytes.NewReader(contentBuffer.Bytes())).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	glog.V(2).Infof("Returned file: %+v", f)

	// Make uploaded image visible (but not writeable) to all.
	_, err = m.service.Permissions.Create(f.Id, &drive.Permission{
		AllowFileDiscovery: false,
		Role:               "reader",
		Type:               "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create shared read permissions for file name=%q id=%q: %w",
			f.Name, f.Id, err)
	}

	f2, err := m.service.Files.Get(f.Id).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get shared link to file name=%q id=%q: %w",
			f.Name, f.Id, err)
	}
	glog.V(2).Infof("- WebLinkView=%s", f2.WebViewLink)
	return f2.WebViewLink, nil
}

const folderMimeType = "application/vnd.google-apps.folder"

// folderQuery is the Drive search for the folder name inside parent.
func folderQuery(parent, name string) string {
	escape := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return fmt.Sprintf("mimeType = '%s' and trashed = false and '%s' in parents and name = '%s'",
		folderMimeType, escape.Replace(parent), escape.Replace(name))
}

// createPath creates the path for the manager, if it doesn't yet exist.
func (m *Manager) createPath(ctx context.Context) (id string, err error) {
	var parents []string
	id = "root"
	for _, name := range m.path {
		fileList, err := m.service.Files.List().Q(folderQuery(id, name)).Context(ctx).Do()
		if err != nil {
			err = fmt.Errorf("failed to find subdirectory %q in %v: %w", name, parents, err)
			glog.Errorf("googledrive.Manager.createPath: %v", err)
			return "", err
		}
		if len(fileList.Files) == 0 {
			f := &drive.File{
				MimeType: folderMimeType,
				Name:     name,
				Parents:  []string{id},
			}
			f, err = m.service.Files.Create(f).Context(ctx).Do()
			if err != nil {
				return "", fmt.Errorf("failed to create sub-folder %q in %v: %w", name, parents, err)
			}
			id = f.Id
		} else {
			// Drive allows several folders with the same name: take the first one.
			id = fileList.Files[0].Id
		}
		glog.V(2).Infof("Path part %q: id=%q", name, id)
		parents = append(parents, name)
	}
	return id, nil
}

func openurl(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	}
	return fmt.Errorf("unsupported platform %q -- don't know how to open a browser", runtime.GOOS)
}
