// easylauncher draws build variant markers (ribbons, grayscale, overlays)
// over the launcher icons of an Android application.
//
// Usage:
//
//	easylauncher --config=easylauncher.yaml --variant=debug --res=app/src/main/res --out=build/res
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/janpfeifer/easylauncher/config"
	"github.com/janpfeifer/easylauncher/googledrive"
	"github.com/janpfeifer/easylauncher/icons"
	"github.com/janpfeifer/easylauncher/preview"
)

var (
	flagConfig      = flag.String("config", "easylauncher.yaml", "YAML file describing the configuration of each build variant.")
	flagVariant     = flag.String("variant", "", "Build variant to process: the name of one of the configurations.")
	flagRes         = flag.String("res", "app/src/main/res", "Android resource directory with the launcher icons.")
	flagOut         = flag.String("out", "", "Directory where to write the processed icons. If empty icons are overwritten in --res.")
	flagNames       = flag.String("names", strings.Join(icons.DefaultNames, ","), "Comma separated base names of the icons to process.")
	flagParallelism = flag.Int("parallelism", 0, "Number of icons processed in parallel. Defaults to the number of CPUs.")

	flagPreview     = flag.String("preview", "", "If set, a PNG with the icons before and after is written to this path.")
	flagPreviewCell = flag.Int("preview_cell", 96, "Size in pixels of each icon in the preview.")

	flagShareDrive      = flag.Bool("share_drive", false, "Upload the preview to Google Drive and print a shareable link.")
	flagDrivePath       = flag.String("drive_path", "EasyLauncher", "Slash separated folder in Google Drive where previews are uploaded.")
	flagDriveCredential = flag.String("drive_credentials", "", "OAuth client credentials JSON file, required by --share_drive.")
	flagDriveTokenFile  = flag.String("drive_token_file", "", "File where the Google Drive authorization token is kept, to reuse it across runs.")
)

// options of one run, as given by the flags.
type options struct {
	config, variant, res, out string
	names                     []string
	parallelism               int

	preview     string
	previewCell int

	shareDrive                       bool
	drivePath                        []string
	driveCredentials, driveTokenFile string
}

func main() {
	flag.Parse()
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := run(ctx, options{
		config:           *flagConfig,
		variant:          *flagVariant,
		res:              *flagRes,
		out:              *flagOut,
		names:            splitList(*flagNames),
		parallelism:      *flagParallelism,
		preview:          *flagPreview,
		previewCell:      *flagPreviewCell,
		shareDrive:       *flagShareDrive,
		drivePath:        splitPath(*flagDrivePath),
		driveCredentials: *flagDriveCredential,
		driveTokenFile:   *flagDriveTokenFile,
	})
	if err != nil {
		glog.Fatalf("%v", err)
	}
}

// run processes the icons of one build variant.
func run(ctx context.Context, o options) error {
	if o.variant == "" {
		return fmt.Errorf("please set --variant to the build variant to process")
	}
	configs, err := config.Load(o.config)
	if err != nil {
		return fmt.Errorf("failed to load configurations: %w", err)
	}
	cfg, found := config.Find(configs, o.variant)
	if !found {
		glog.Warningf("No configuration for variant %q in %q, icons left as they are.", o.variant, o.config)
		return nil
	}

	foundIcons, err := icons.Find(o.res, o.names)
	if err != nil {
		return fmt.Errorf("failed to find icons: %w", err)
	}
	glog.Infof("Variant %q: %d icons in %q", cfg.Name(), len(foundIcons), o.res)

	p := &icons.Processor{Config: cfg, OutDir: o.out, Parallelism: o.parallelism}
	results, err := p.Process(ctx, foundIcons)
	if err != nil {
		return fmt.Errorf("failed to process icons: %w", err)
	}
	var written int
	for _, r := range results {
		if r.Written {
			written++
		}
	}
	glog.Infof("Variant %q: %d icons written", cfg.Name(), written)

	if o.preview == "" && !o.shareDrive {
		return nil
	}
	sheet := preview.Sheet(results, o.previewCell)
	if o.preview != "" {
		if err := icons.Save(o.preview, sheet); err != nil {
			return fmt.Errorf("failed to save preview: %w", err)
		}
		glog.Infof("Preview saved in %q", o.preview)
	}
	if o.shareDrive {
		url, err := shareWithGoogleDrive(ctx, o, cfg.Name(), sheet)
		if err != nil {
			return fmt.Errorf("failed to share preview in Google Drive: %w", err)
		}
		fmt.Println(url)
	}
	return nil
}

func splitList(s string) (list []string) {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	return
}

func shareWithGoogleDrive(ctx context.Context, o options, name string, sheet image.Image) (string, error) {
	if o.driveCredentials == "" {
		return "", fmt.Errorf("--share_drive requires --drive_credentials")
	}
	credentials, err := os.ReadFile(o.driveCredentials)
	if err != nil {
		return "", err
	}
	var token string
	if o.driveTokenFile != "" {
		if contents, err := os.ReadFile(o.driveTokenFile); err == nil {
			token = string(contents)
		} else if !os.IsNotExist(err) {
			glog.Warningf("Ignoring Google Drive token in %q: %v", o.driveTokenFile, err)
		}
	}
	setToken := func(token string) {
		if o.driveTokenFile == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(o.driveTokenFile), 0700); err != nil {
			glog.Errorf("Failed to save Google Drive token: %v", err)
			return
		}
		if err := os.WriteFile(o.driveTokenFile, []byte(token), 0600); err != nil {
			glog.Errorf("Failed to save Google Drive token: %v", err)
		}
	}
	gDrive, err := googledrive.New(ctx, credentials, o.drivePath, token, setToken, enterAuthorization)
	if err != nil {
		return "", err
	}
	return gDrive.ShareImage(ctx, name, sheet)
}

func splitPath(p string) (path []string) {
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			path = append(path, part)
		}
	}
	return
}

// enterAuthorization asks for the authorization code in the terminal.
func enterAuthorization(authURL string) string {
	fmt.Fprintf(os.Stderr, "Authorize access to Google Drive at:\n\n\t%s\n\nand enter the authorization code: ", authURL)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
