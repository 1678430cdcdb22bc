// Package updater implements self-update from GitHub releases.
package updater

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	repoOwner  = "z0mbix"
	repoName   = "whence"
	binaryName = "whence"
	apiURL     = "https://api.github.com/repos/" + repoOwner + "/" + repoName + "/releases/latest"
)

// Release is the subset of the GitHub release payload the updater reads.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a downloadable release artifact.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Updater checks for and installs new releases.
type Updater struct {
	CurrentVersion string
	HTTPClient     *http.Client
	APIURL         string
}

// New creates an Updater for the running version.
func New(currentVersion string) *Updater {
	return &Updater{
		CurrentVersion: currentVersion,
		HTTPClient:     http.DefaultClient,
		APIURL:         apiURL,
	}
}

// CheckResult describes the latest release relative to the running build.
type CheckResult struct {
	CurrentVersion string
	LatestVersion  string
	UpdateNeeded   bool
	AssetURL       string
	AssetName      string
	ChecksumURL    string
}

// Check fetches the latest release and locates the asset for this OS/arch.
func (u *Updater) Check() (*CheckResult, error) {
	req, err := http.NewRequest(http.MethodGet, u.APIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := u.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(u.CurrentVersion, "v")
	result := &CheckResult{
		CurrentVersion: current,
		LatestVersion:  latest,
		UpdateNeeded:   latest != current,
	}

	wantAsset := fmt.Sprintf("%s_%s_%s_%s.tar.gz", binaryName, latest, runtime.GOOS, runtime.GOARCH)
	for _, asset := range release.Assets {
		switch asset.Name {
		case wantAsset:
			result.AssetURL = asset.BrowserDownloadURL
			result.AssetName = asset.Name
		case "checksums.txt":
			result.ChecksumURL = asset.BrowserDownloadURL
		}
	}
	if result.AssetURL == "" {
		return nil, fmt.Errorf("no release asset found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	return result, nil
}

// Update downloads the release asset, verifies its checksum and swaps the
// running binary for the new one.
func (u *Updater) Update(result *CheckResult) error {
	expected, err := u.fetchChecksum(result.ChecksumURL, result.AssetName)
	if err != nil {
		return fmt.Errorf("fetching checksums: %w", err)
	}

	archive, err := u.download(result.AssetURL)
	if err != nil {
		return fmt.Errorf("downloading archive: %w", err)
	}
	defer func() { _ = os.Remove(archive) }()

	if err := verifyChecksum(archive, expected); err != nil {
		return err
	}

	binary, err := extractBinary(archive, binaryName)
	if err != nil {
		return fmt.Errorf("extracting binary: %w", err)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("determining executable path: %w", err)
	}
	if execPath, err = filepath.EvalSymlinks(execPath); err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}
	return replaceBinary(execPath, binary)
}

func (u *Updater) fetchChecksum(checksumURL, assetName string) (string, error) {
	if checksumURL == "" {
		return "", fmt.Errorf("no checksums.txt asset in release")
	}
	resp, err := u.HTTPClient.Get(checksumURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(body), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == assetName {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("checksum not found for %s", assetName)
}

func (u *Updater) download(url string) (string, error) {
	resp, err := u.HTTPClient.Get(url)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", binaryName+"-update-*.tar.gz")
	if err != nil {
		return "", err
	}
	defer func() { _ = tmp.Close() }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func verifyChecksum(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

func extractBinary(archivePath, name string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		base := filepath.Base(hdr.Name)
		if hdr.Typeflag == tar.TypeReg && (base == name || base == name+".exe") {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// replaceBinary stages the new binary next to the old one and renames it
// into place, keeping the swap atomic on the same filesystem.
func replaceBinary(execPath string, binary []byte) error {
	info, err := os.Stat(execPath)
	if err != nil {
		return fmt.Errorf("stat current binary: %w", err)
	}

	dir := filepath.Dir(execPath)
	tmp, err := os.CreateTemp(dir, "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("cannot write to %s (try running with sudo): %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(binary); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing new binary: %w", err)
	}
	_ = tmp.Close()

	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, execPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing binary (try running with sudo): %w", err)
	}
	return nil
}
